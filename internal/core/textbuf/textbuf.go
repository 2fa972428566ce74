// Package textbuf holds the per-call rewrite state the detection engines
// scan and consume. Each detect call owns one Buffer exclusively; nothing
// here survives the call
package textbuf

import "strings"

// PlaceholderTag replaces consumed spans in the tagged view
const PlaceholderTag = "<entity>"

// Mode selects how consumed spans are rewritten
type Mode uint8

const (
	// Remove blanks spans out of the processed view so later detectors cannot
	// re-match them, and tags them in the tagged view (date engine behavior)
	Remove Mode = iota
	// Tag replaces spans with the placeholder in both views, keeping relative
	// positions stable for cross-entity consumption (time/text engine behavior)
	Tag
)

// Buffer carries the three views of one message through a detector battery
type Buffer struct {
	// Original is the raw input, untouched
	Original string
	// Processed is progressively stripped of matched substrings
	Processed string
	// Tagged is progressively rewritten with the placeholder tag
	Tagged string
}

// New lowercases and trims the input, then pads one space on each side so
// word-boundary patterns anchored on surrounding whitespace match at the
// string edges
func New(raw string) *Buffer {
	padded := " " + strings.TrimSpace(strings.ToLower(raw)) + " "
	return &Buffer{
		Original:  raw,
		Processed: padded,
		Tagged:    padded,
	}
}

// Consume rewrites every exact occurrence of each span according to mode.
// An empty span list is a no-op; consuming the same span twice is a no-op
// the second time
func (b *Buffer) Consume(spans []string, mode Mode) {
	for _, span := range spans {
		if span == "" {
			continue
		}
		switch mode {
		case Remove:
			b.Processed = strings.ReplaceAll(b.Processed, span, "")
			b.Tagged = strings.ReplaceAll(b.Tagged, span, PlaceholderTag)
		case Tag:
			b.Processed = strings.ReplaceAll(b.Processed, span, PlaceholderTag)
			b.Tagged = strings.ReplaceAll(b.Tagged, span, PlaceholderTag)
		}
	}
}
