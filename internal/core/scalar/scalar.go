// Package scalar implements the non-temporal single-pass extractors: numbers,
// budgets, phone numbers, emails, and PNR booking codes. Unlike the temporal
// engines these are stateless one-shot scans; each method pairs values with
// the exact matched substring
package scalar

import (
	"chatner/internal/core/lexicon"
	perr "chatner/internal/platform/errors"
)

// Detector holds the compiled patterns and the numeral table. Construct once
// at startup, safe for concurrent use
type Detector struct {
	tab  *lexicon.Table
	pats *patterns
}

// New builds a detector over a loaded locale table; the table supplies the
// numeral words for spelled-out numbers
func New(tab *lexicon.Table) (*Detector, error) {
	if tab == nil {
		return nil, perr.Configf("scalar: nil lexicon table")
	}
	return &Detector{tab: tab, pats: compileScalarPatterns(tab)}, nil
}

// NumberDetection is one numeric value with its source substring
type NumberDetection struct {
	Value int    `json:"value"`
	Span  string `json:"span"`
}

// BudgetDetection is one price constraint; Min zero means unbounded below
type BudgetDetection struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency,omitempty"`
	Span     string `json:"span"`
}

// PhoneDetection carries the normalized digit string
type PhoneDetection struct {
	Number string `json:"number"`
	Span   string `json:"span"`
}

// EmailDetection is one address occurrence
type EmailDetection struct {
	Address string `json:"address"`
	Span    string `json:"span"`
}

// PNRDetection is one booking-code occurrence
type PNRDetection struct {
	Code string `json:"code"`
	Span string `json:"span"`
}
