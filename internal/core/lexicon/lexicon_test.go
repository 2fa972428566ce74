package lexicon

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func mustTable(t *testing.T, locale string) *Table {
	t.Helper()
	tab, err := Load(locale)
	if err != nil {
		t.Fatalf("load %s tables: %v", locale, err)
	}
	return tab
}

func TestLoadUnknownLocale(t *testing.T) {
	if _, err := Load("xx"); err == nil {
		t.Fatal("want an error for a locale with no tables")
	}
	if _, err := Load(""); err == nil {
		t.Fatal("want an error for an empty locale")
	}
}

func TestLoadIsDeterministic(t *testing.T) {
	a := mustTable(t, "en")
	b := mustTable(t, "en")

	if !reflect.DeepEqual(a.VariantsOf(KindRelativeDate), b.VariantsOf(KindRelativeDate)) {
		t.Fatal("variant ordering differs between loads")
	}
	if a.Alternation(KindWeekday) != b.Alternation(KindWeekday) {
		t.Fatal("alternation differs between loads")
	}
	if a.NumeralAlternation() != b.NumeralAlternation() {
		t.Fatal("numeral alternation differs between loads")
	}
}

func TestLocalesListsEmbeddedData(t *testing.T) {
	got := Locales()
	want := map[string]bool{"en": false, "hi": false}
	for _, l := range got {
		if _, ok := want[l]; ok {
			want[l] = true
		}
	}
	for l, seen := range want {
		if !seen {
			t.Fatalf("locale %s missing from %v", l, got)
		}
	}
}

func TestVariantResolution(t *testing.T) {
	tab := mustTable(t, "en")

	l, ok := tab.Literal("tmrw")
	if !ok || l.Canonical != "tomorrow" || l.Kind != KindRelativeDate {
		t.Fatalf("tmrw: %+v ok=%v", l, ok)
	}
	l, ok = tab.Literal(" Mon ")
	if !ok || l.Canonical != "monday" {
		t.Fatalf("variant lookup must trim and fold case, got %+v ok=%v", l, ok)
	}
	if _, ok := tab.Literal("nonsense"); ok {
		t.Fatal("unknown variant must not resolve")
	}
}

func TestMonthAndWeekdayIndexes(t *testing.T) {
	tab := mustTable(t, "en")
	n, ok := tab.MonthNumber("august")
	if !ok || n != 8 {
		t.Fatalf("august: %d ok=%v", n, ok)
	}
	wd, ok := tab.Weekday("friday")
	if !ok || wd != time.Friday {
		t.Fatalf("friday: %v ok=%v", wd, ok)
	}
}

func TestAlternationOrdersLongestFirst(t *testing.T) {
	tab := mustTable(t, "en")
	vs := tab.VariantsOf(KindRelativeDate)
	for i := 1; i < len(vs); i++ {
		wi, wj := wordCount(vs[i-1]), wordCount(vs[i])
		if wi < wj {
			t.Fatalf("word count must be non-increasing: %q before %q", vs[i-1], vs[i])
		}
		if wi == wj && len(vs[i-1]) < len(vs[i]) {
			t.Fatalf("length must be non-increasing on word-count ties: %q before %q", vs[i-1], vs[i])
		}
	}

	alt := tab.Alternation(KindRelativeDate)
	if strings.Index(alt, "day after tomorrow") > strings.Index(alt, "tomorrow") {
		t.Fatal("multi-word phrase must precede its suffix in the alternation")
	}
}

func TestZoneAlias(t *testing.T) {
	tab := mustTable(t, "en")
	z, ok := tab.ZoneAlias("IST")
	if !ok || z.Name != "Asia/Kolkata" || z.Region != "IN" {
		t.Fatalf("ist: %+v ok=%v", z, ok)
	}
}

func TestNumerals(t *testing.T) {
	tab := mustTable(t, "en")
	n, ok := tab.Numeral("twenty five")
	if !ok || n != 25 {
		t.Fatalf("twenty five: %d ok=%v", n, ok)
	}
}

func TestFindLiteralsWordBounded(t *testing.T) {
	tab := mustTable(t, "en")

	hits := tab.FindLiterals("see you tomorrow, monday works too")
	var texts []string
	for _, h := range hits {
		texts = append(texts, h.Text)
	}
	if len(hits) < 2 || texts[0] != "tomorrow" {
		t.Fatalf("got %v", texts)
	}
	foundMonday := false
	for _, h := range hits {
		if h.Text == "monday" && h.Lit.Canonical == "monday" {
			foundMonday = true
		}
	}
	if !foundMonday {
		t.Fatalf("monday not found in %v", texts)
	}

	// "mon" inside "money" must not hit
	for _, h := range tab.FindLiterals("the money is ready") {
		if h.Text == "mon" {
			t.Fatalf("embedded literal leaked: %+v", h)
		}
	}
}

func TestFindLiteralsPrefersLongerOnTies(t *testing.T) {
	tab := mustTable(t, "en")
	hits := tab.FindLiterals("day after tomorrow then")
	if len(hits) == 0 {
		t.Fatal("no hits")
	}
	if hits[0].Text != "day after tomorrow" || hits[0].Lit.Canonical != "day_after" {
		t.Fatalf("first hit must be the longest phrase, got %+v", hits[0])
	}
}

func TestHindiTables(t *testing.T) {
	tab := mustTable(t, "hi")
	l, ok := tab.Literal("कल")
	if !ok || l.Canonical != "tomorrow" {
		t.Fatalf("कल: %+v ok=%v", l, ok)
	}
	hits := tab.FindLiterals("कल मिलते हैं")
	found := false
	for _, h := range hits {
		if h.Text == "कल" {
			found = true
		}
	}
	if !found {
		t.Fatalf("devanagari literal not found: %+v", hits)
	}
}
