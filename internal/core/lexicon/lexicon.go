// Package lexicon loads per-locale constant tables (date literals, datetime
// diff qualifiers, numeral words, timezone aliases) from embedded CSV files
// and builds the compiled pattern fragments the detection engines run on.
//
// Tables are immutable after Load and safe for concurrent readers. Loading is
// deterministic; loading the same locale twice yields identical tables
package lexicon

import (
	"embed"
	"encoding/csv"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"

	perr "chatner/internal/platform/errors"
)

//go:embed data
var dataFS embed.FS

// Kind classifies a date literal by its semantic role
type Kind uint8

const (
	// KindRelativeDate covers today/tomorrow/yesterday and their two-day forms
	KindRelativeDate Kind = iota
	// KindDateLiteral covers generic day words ("day", "date")
	KindDateLiteral
	// KindMonthLiteral covers generic month unit words ("month")
	KindMonthLiteral
	// KindWeekday covers weekday names
	KindWeekday
	// KindMonth covers month names
	KindMonth
	// KindMonthDateRef covers phrases naming a month relative to now ("next month")
	KindMonthDateRef
)

var kindNames = map[string]Kind{
	"relative-date":  KindRelativeDate,
	"date-literal":   KindDateLiteral,
	"month-literal":  KindMonthLiteral,
	"weekday":        KindWeekday,
	"month":          KindMonth,
	"month-date-ref": KindMonthDateRef,
}

// Literal is one canonical date word with its spelling variants
type Literal struct {
	Canonical string
	Kind      Kind
	Variants  []string
}

// DiffKind splits qualifier phrases into additive offsets and references
type DiffKind uint8

const (
	// DiffAdd marks arithmetic qualifiers ("after", "ago")
	DiffAdd DiffKind = iota
	// DiffRef marks reference qualifiers ("next", "last", "this")
	DiffRef
)

// Diff is a signed offset carried by a qualifier phrase
type Diff struct {
	Phrase string
	Offset int
	Kind   DiffKind
}

// Zone maps an informal timezone alias to a canonical IANA zone
type Zone struct {
	Alias  string
	Name   string // IANA zone name
	Region string // preferred region code, may be empty
}

// Table holds all constant tables for one locale
type Table struct {
	Locale string

	literals map[string]*Literal // canonical -> literal
	variants map[string]*Literal // variant -> literal
	diffs    map[string]Diff     // phrase -> diff
	numerals map[string]int      // word -> value
	zones    map[string]Zone     // alias -> zone

	idx *literalIndex
}

// Load reads the four constant tables for locale from the embedded data files.
// A missing or malformed file is a configuration error; engines must refuse
// construction when Load fails
func Load(locale string) (*Table, error) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		return nil, perr.Configf("lexicon: empty locale")
	}
	if _, err := fs.Stat(dataFS, "data/"+locale); err != nil {
		return nil, perr.Configf("lexicon: no tables for locale %q", locale)
	}

	t := &Table{
		Locale:   locale,
		literals: make(map[string]*Literal, 64),
		variants: make(map[string]*Literal, 256),
		diffs:    make(map[string]Diff, 32),
		numerals: make(map[string]int, 128),
		zones:    make(map[string]Zone, 32),
	}

	if err := t.loadDateLiterals(locale); err != nil {
		return nil, err
	}
	if err := t.loadDiffs(locale); err != nil {
		return nil, err
	}
	if err := t.loadNumerals(locale); err != nil {
		return nil, err
	}
	if err := t.loadZones(locale); err != nil {
		return nil, err
	}

	idx, err := buildLiteralIndex(t)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeConfig, "lexicon: literal index for %q", locale)
	}
	t.idx = idx

	return t, nil
}

// MustLoad panics when Load fails; intended for process startup
func MustLoad(locale string) *Table {
	t, err := Load(locale)
	if err != nil {
		panic(err)
	}
	return t
}

// Locales lists the locales the embedded data ships tables for
func Locales() []string {
	entries, err := fs.ReadDir(dataFS, "data")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}

// Literal resolves a matched variant to its canonical literal
func (t *Table) Literal(variant string) (*Literal, bool) {
	l, ok := t.variants[strings.ToLower(strings.TrimSpace(variant))]
	return l, ok
}

// Canonical resolves a canonical name directly
func (t *Table) Canonical(name string) (*Literal, bool) {
	l, ok := t.literals[name]
	return l, ok
}

// Canonicals returns the canonical names of the given kind, sorted
func (t *Table) Canonicals(kind Kind) []string {
	var out []string
	for name, l := range t.literals {
		if l.Kind == kind {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Diff returns the signed offset for a qualifier phrase
func (t *Table) Diff(phrase string) (Diff, bool) {
	d, ok := t.diffs[strings.ToLower(strings.TrimSpace(phrase))]
	return d, ok
}

// Numeral returns the integer value of a numeral word
func (t *Table) Numeral(word string) (int, bool) {
	n, ok := t.numerals[strings.ToLower(strings.TrimSpace(word))]
	return n, ok
}

// ZoneAlias resolves an informal timezone alias
func (t *Table) ZoneAlias(alias string) (Zone, bool) {
	z, ok := t.zones[strings.ToLower(strings.TrimSpace(alias))]
	return z, ok
}

// MonthNumber maps a canonical month name to 1..12
func (t *Table) MonthNumber(canonical string) (int, bool) {
	n, ok := monthIndex[canonical]
	return n, ok
}

// Weekday maps a canonical weekday name to time.Weekday
func (t *Table) Weekday(canonical string) (time.Weekday, bool) {
	wd, ok := weekdayIndex[canonical]
	return wd, ok
}

// canonical month and weekday names are locale-independent keys; non-English
// locales map their variants onto these

var monthIndex = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

var weekdayIndex = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// file loaders

func (t *Table) loadDateLiterals(locale string) error {
	rows, err := readCSV(locale, "date_literals.csv", 3)
	if err != nil {
		return err
	}
	for _, row := range rows {
		variant := strings.ToLower(strings.TrimSpace(row[0]))
		canonical := strings.ToLower(strings.TrimSpace(row[1]))
		kind, ok := kindNames[strings.TrimSpace(row[2])]
		if !ok {
			return perr.Configf("lexicon: %s/date_literals.csv: unknown subtype %q", locale, row[2])
		}
		if variant == "" || canonical == "" {
			return perr.Configf("lexicon: %s/date_literals.csv: empty variant or canonical", locale)
		}
		if kind == KindMonth {
			if _, ok := monthIndex[canonical]; !ok {
				return perr.Configf("lexicon: %s: unknown canonical month %q", locale, canonical)
			}
		}
		if kind == KindWeekday {
			if _, ok := weekdayIndex[canonical]; !ok {
				return perr.Configf("lexicon: %s: unknown canonical weekday %q", locale, canonical)
			}
		}
		l, ok := t.literals[canonical]
		if !ok {
			l = &Literal{Canonical: canonical, Kind: kind}
			t.literals[canonical] = l
		} else if l.Kind != kind {
			return perr.Configf("lexicon: %s: canonical %q has conflicting subtypes", locale, canonical)
		}
		l.Variants = append(l.Variants, variant)
		t.variants[variant] = l
	}
	return nil
}

func (t *Table) loadDiffs(locale string) error {
	rows, err := readCSV(locale, "datetime_diffs.csv", 3)
	if err != nil {
		return err
	}
	for _, row := range rows {
		phrase := strings.ToLower(strings.TrimSpace(row[0]))
		off, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return perr.Configf("lexicon: %s/datetime_diffs.csv: bad offset %q", locale, row[1])
		}
		var kind DiffKind
		switch strings.TrimSpace(row[2]) {
		case "add":
			kind = DiffAdd
		case "ref":
			kind = DiffRef
		default:
			return perr.Configf("lexicon: %s/datetime_diffs.csv: unknown subtype %q", locale, row[2])
		}
		t.diffs[phrase] = Diff{Phrase: phrase, Offset: off, Kind: kind}
	}
	return nil
}

func (t *Table) loadNumerals(locale string) error {
	rows, err := readCSV(locale, "numerals.csv", 3)
	if err != nil {
		return err
	}
	for _, row := range rows {
		word := strings.ToLower(strings.TrimSpace(row[0]))
		n, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return perr.Configf("lexicon: %s/numerals.csv: bad value %q", locale, row[1])
		}
		t.numerals[word] = n
	}
	return nil
}

func (t *Table) loadZones(locale string) error {
	rows, err := readCSV(locale, "timezone_aliases.csv", 2)
	if err != nil {
		return err
	}
	for _, row := range rows {
		alias := strings.ToLower(strings.TrimSpace(row[0]))
		zone := strings.TrimSpace(row[1])
		region := ""
		if len(row) > 2 {
			region = strings.ToUpper(strings.TrimSpace(row[2]))
		}
		if alias == "" || zone == "" {
			return perr.Configf("lexicon: %s/timezone_aliases.csv: empty alias or zone", locale)
		}
		t.zones[alias] = Zone{Alias: alias, Name: zone, Region: region}
	}
	return nil
}

// readCSV reads one embedded table, skipping blank and comment lines
func readCSV(locale, name string, minFields int) ([][]string, error) {
	path := "data/" + locale + "/" + name
	f, err := dataFS.Open(path)
	if err != nil {
		return nil, perr.Configf("lexicon: missing data file %s", path)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.Comment = '#'
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeConfig, "lexicon: parse %s", path)
	}
	out := make([][]string, 0, len(records))
	for _, rec := range records {
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) < minFields {
			return nil, perr.Configf("lexicon: %s: want at least %d fields, got %d", path, minFields, len(rec))
		}
		out = append(out, rec)
	}
	if len(out) == 0 {
		return nil, perr.Configf("lexicon: %s: no rows", path)
	}
	return out, nil
}
