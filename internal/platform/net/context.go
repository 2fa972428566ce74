// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyConversationID ctxKey = "conversation_id"

// WithRequest annotates context with common request scoped ids
func WithRequest(ctx context.Context, reqID, conversationID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if conversationID != "" {
		ctx = context.WithValue(ctx, keyConversationID, conversationID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// ConversationID returns the conversation id on the context if present
func ConversationID(ctx context.Context) string {
	if v, ok := ctx.Value(keyConversationID).(string); ok {
		return v
	}
	return ""
}
