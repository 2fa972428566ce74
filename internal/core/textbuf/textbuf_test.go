package textbuf

import "testing"

func TestNewPadsAndLowercases(t *testing.T) {
	b := New("  See You Tomorrow ")
	if b.Original != "  See You Tomorrow " {
		t.Fatalf("original must stay raw, got %q", b.Original)
	}
	if b.Processed != " see you tomorrow " {
		t.Fatalf("got %q", b.Processed)
	}
	if b.Tagged != b.Processed {
		t.Fatalf("views must start identical, got %q / %q", b.Processed, b.Tagged)
	}
}

func TestConsumeRemove(t *testing.T) {
	b := New("see you tomorrow at 5")
	b.Consume([]string{"tomorrow"}, Remove)
	if b.Processed != " see you  at 5 " {
		t.Fatalf("processed: %q", b.Processed)
	}
	if b.Tagged != " see you "+PlaceholderTag+" at 5 " {
		t.Fatalf("tagged: %q", b.Tagged)
	}
}

func TestConsumeTag(t *testing.T) {
	b := New("see you at 5 pm")
	b.Consume([]string{"5 pm"}, Tag)
	want := " see you at " + PlaceholderTag + " "
	if b.Processed != want || b.Tagged != want {
		t.Fatalf("got %q / %q", b.Processed, b.Tagged)
	}
}

func TestConsumeIsIdempotent(t *testing.T) {
	b := New("meet tomorrow")
	b.Consume([]string{"tomorrow"}, Remove)
	first := *b
	b.Consume([]string{"tomorrow"}, Remove)
	if *b != first {
		t.Fatalf("second consume changed the buffer: %+v vs %+v", *b, first)
	}
}

func TestConsumeEmptySafe(t *testing.T) {
	b := New("hello")
	before := *b
	b.Consume(nil, Remove)
	b.Consume([]string{""}, Tag)
	if *b != before {
		t.Fatalf("empty consumes must be no-ops: %+v vs %+v", *b, before)
	}
}
