package normalize

import (
	"sync"
	"testing"
)

func TestNormalizeBasics(t *testing.T) {
	n := New()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace collapse", "  see \t you\n\n tomorrow  ", "see you tomorrow"},
		{"case fold", "Tomorrow At 5PM", "tomorrow at 5pm"},
		{"fullwidth digits", "５０００", "5000"},
		{"zero width joiner stripped", "to‍morrow", "tomorrow"},
		{"control chars dropped", "call\x07 me", "call me"},
		{"invalid utf8 dropped", "ok\xff then", "ok then"},
	}
	for _, tc := range cases {
		if got := n.Normalize(tc.in); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDevanagariMatrasSurvive(t *testing.T) {
	n := New()
	in := "कल मिलते हैं"
	if got := n.Normalize(in); got != in {
		t.Fatalf("combining marks must be preserved, got %q", got)
	}
}

func TestConcurrentUse(t *testing.T) {
	n := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := n.Normalize("  Hello WORLD  "); got != "hello world" {
					t.Errorf("got %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
