package rxscan

import (
	"regexp"
	"testing"
)

func TestAllAndGroups(t *testing.T) {
	re := regexp.MustCompile(`(\d+):(\d+)(?:\s*(pm))?`)
	ms := All(re, "meet 3:30 pm or 16:45")
	if len(ms) != 2 {
		t.Fatalf("want 2 matches, got %d", len(ms))
	}

	if ms[0].Group(1) != "3" || ms[0].Int(2) != 30 || !ms[0].Has(3) {
		t.Fatalf("first match: %q %d %v", ms[0].Group(1), ms[0].Int(2), ms[0].Has(3))
	}
	if ms[1].Has(3) {
		t.Fatal("optional group must report absent")
	}
	if ms[1].Group(3) != "" {
		t.Fatalf("absent group must read empty, got %q", ms[1].Group(3))
	}
}

func TestFirstInt(t *testing.T) {
	re := regexp.MustCompile(`(?:(\d+)h|(\d+)m)`)
	ms := All(re, "45m")
	if len(ms) != 1 {
		t.Fatalf("want 1 match, got %d", len(ms))
	}
	if got := ms[0].FirstInt(1, 2); got != 45 {
		t.Fatalf("want 45 from the first populated group, got %d", got)
	}
}

func TestNoMatches(t *testing.T) {
	re := regexp.MustCompile(`\d`)
	if ms := All(re, "no digits"); ms != nil {
		t.Fatalf("want nil, got %v", ms)
	}
}
