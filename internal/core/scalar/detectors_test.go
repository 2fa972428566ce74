package scalar

import (
	"testing"

	"chatner/internal/core/lexicon"
)

func mustDetector(t *testing.T) *Detector {
	t.Helper()
	tab, err := lexicon.Load("en")
	if err != nil {
		t.Fatalf("load en tables: %v", err)
	}
	d, err := New(tab)
	if err != nil {
		t.Fatalf("new detector: %v", err)
	}
	return d
}

func TestNumbers_DigitsAndWords(t *testing.T) {
	d := mustDetector(t)
	out := d.Numbers("we are 4 people, maybe twenty five later")
	if len(out) != 2 {
		t.Fatalf("want 2 numbers, got %+v", out)
	}
	if out[0].Value != 4 || out[0].Span != "4" {
		t.Fatalf("want 4, got %+v", out[0])
	}
	if out[1].Value != 25 || out[1].Span != "twenty five" {
		t.Fatalf("multi-word numeral must win over its prefix, got %+v", out[1])
	}
}

func TestBudgets_UnderK(t *testing.T) {
	d := mustDetector(t)
	out := d.Budgets("something under 5k please")
	if len(out) != 1 {
		t.Fatalf("want 1 budget, got %+v", out)
	}
	b := out[0]
	if b.Min != 0 || b.Max != 5000 {
		t.Fatalf("want max 5000, got %+v", b)
	}
}

func TestBudgets_Range(t *testing.T) {
	d := mustDetector(t)
	out := d.Budgets("between 2k and 5k")
	if len(out) != 1 {
		t.Fatalf("want 1 budget, got %+v", out)
	}
	if out[0].Min != 2000 || out[0].Max != 5000 {
		t.Fatalf("want 2000..5000, got %+v", out[0])
	}
}

func TestBudgets_CurrencyMarked(t *testing.T) {
	d := mustDetector(t)
	out := d.Budgets("rs 3000 max is fine")
	if len(out) != 1 {
		t.Fatalf("want 1 budget, got %+v", out)
	}
	if out[0].Max != 3000 || out[0].Currency != "INR" {
		t.Fatalf("want INR 3000, got %+v", out[0])
	}
}

func TestBudgets_BareNumberPairIgnored(t *testing.T) {
	d := mustDetector(t)
	out := d.Budgets("we arrive between 10 and 15")
	if len(out) != 0 {
		t.Fatalf("unmarked number pair must not read as money, got %+v", out)
	}
}

func TestPhones_WithCountryCode(t *testing.T) {
	d := mustDetector(t)
	out := d.Phones("reach me on +91 9876543210 anytime")
	if len(out) != 1 {
		t.Fatalf("want 1 phone, got %+v", out)
	}
	if out[0].Number != "+919876543210" {
		t.Fatalf("want normalized digits, got %q", out[0].Number)
	}
}

func TestPhones_ShortNumberIgnored(t *testing.T) {
	d := mustDetector(t)
	out := d.Phones("room 404 on floor 12")
	if len(out) != 0 {
		t.Fatalf("short digit runs are not phones, got %+v", out)
	}
}

func TestEmails(t *testing.T) {
	d := mustDetector(t)
	out := d.Emails("Send it to Meera.R+travel@example.co.in today")
	if len(out) != 1 {
		t.Fatalf("want 1 email, got %+v", out)
	}
	if out[0].Address != "meera.r+travel@example.co.in" {
		t.Fatalf("got %q", out[0].Address)
	}
}

func TestPNRs_Keyed(t *testing.T) {
	d := mustDetector(t)
	out := d.PNRs("my pnr is AB12CD")
	if len(out) != 1 {
		t.Fatalf("want 1 code, got %+v", out)
	}
	if out[0].Code != "AB12CD" {
		t.Fatalf("want AB12CD, got %q", out[0].Code)
	}
}

func TestPNRs_BareNeedsLettersAndDigits(t *testing.T) {
	d := mustDetector(t)
	out := d.PNRs("code X9J4KQ for the flight")
	if len(out) != 1 || out[0].Code != "X9J4KQ" {
		t.Fatalf("want bare code, got %+v", out)
	}

	out = d.PNRs("nothing here just words and 123456")
	if len(out) != 0 {
		t.Fatalf("plain words and plain numbers are not codes, got %+v", out)
	}
}
