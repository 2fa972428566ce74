// Package domain declares the detection event types and ports
package domain

import "time"

// Event is one recorded detection outcome
// Text carries the source utterance so later engine versions can replay it
type Event struct {
	ID             string    `json:"id"`
	RequestID      string    `json:"request_id"`
	ConversationID string    `json:"conversation_id"`
	EntityType     string    `json:"entity_type"`
	Method         string    `json:"method"`
	Span           string    `json:"span"`
	Text           string    `json:"text"`
	Locale         string    `json:"locale"`
	Version        string    `json:"version"`
	LatencyMs      int64     `json:"latency_ms"`
	CreatedAt      time.Time `json:"created_at"`
}
