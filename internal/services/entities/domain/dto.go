// Package domain declares the entity detection DTOs and ports
package domain

// Method records which input layer produced a detection
type Method string

// Detection methods in precedence order
const (
	MethodStructured Method = "structured"
	MethodMessage    Method = "message"
	MethodFallback   Method = "fallback_value"
)

// DetectInput is one entity detection request. At least one of the text,
// structured value, or fallback value layers must be present
type DetectInput struct {
	Text            string `json:"text"                           validate:"required_without_all=StructuredValue FallbackValue,omitempty,max=2000"`
	StructuredValue string `json:"structured_value,omitempty"     validate:"omitempty,max=2000"`
	FallbackValue   string `json:"fallback_value,omitempty"       validate:"omitempty,max=2000"`
	BotMessage      string `json:"bot_message,omitempty"          validate:"omitempty,max=2000"`
	Locale          string `json:"locale,omitempty"               validate:"omitempty,max=12"`
	Timezone        string `json:"timezone,omitempty"             validate:"omitempty,tzname"`
	PastReferenced  bool   `json:"past_date_referenced,omitempty"`
	RangeEnabled    bool   `json:"range_enabled,omitempty"`
	FormCheck       bool   `json:"form_check,omitempty"`
}

// Entity is the uniform detection envelope across all entity types
type Entity struct {
	Value        any    `json:"entity_value"`
	OriginalText string `json:"original_text"`
	Method       Method `json:"detection_method"`
}

// EntityType names one detectable entity class
type EntityType string

// Entity types served by the API
const (
	TypeDate   EntityType = "date"
	TypeTime   EntityType = "time"
	TypeNumber EntityType = "number"
	TypeBudget EntityType = "budget"
	TypePhone  EntityType = "phone"
	TypeEmail  EntityType = "email"
	TypePNR    EntityType = "pnr"
	TypeCity   EntityType = "city"
)

// BatchItem is one entry of a batch request
type BatchItem struct {
	Type EntityType `json:"type" validate:"required,oneof=date time number budget phone email pnr city"`
	DetectInput
}

// BatchInput fans several detection requests out in one call
type BatchInput struct {
	Requests []BatchItem `json:"requests" validate:"required,min=1,max=16,dive"`
}

// BatchResult is one entry of a batch response, in request order
type BatchResult struct {
	Type     EntityType `json:"type"`
	Entities []Entity   `json:"entities"`
	Error    string     `json:"error,omitempty"`
}
