package domain

import "context"

// ServicePort is the entity detection surface the transport layer mounts
type ServicePort interface {
	Date(ctx context.Context, in DetectInput) ([]Entity, error)
	Time(ctx context.Context, in DetectInput) ([]Entity, error)
	Number(ctx context.Context, in DetectInput) ([]Entity, error)
	Budget(ctx context.Context, in DetectInput) ([]Entity, error)
	Phone(ctx context.Context, in DetectInput) ([]Entity, error)
	Email(ctx context.Context, in DetectInput) ([]Entity, error)
	PNR(ctx context.Context, in DetectInput) ([]Entity, error)
	City(ctx context.Context, in DetectInput) ([]Entity, error)

	// Detect dispatches by entity type; Batch fans requests out concurrently
	Detect(ctx context.Context, typ EntityType, in DetectInput) ([]Entity, error)
	Batch(ctx context.Context, in BatchInput) ([]BatchResult, error)
}
