package date

import (
	"testing"
	"time"
)

func TestParseAcceptsFormInputs(t *testing.T) {
	cases := []string{
		"2026-03-05",
		"2026-03-05T14:30",
		"2026-03-05 14:30",
		"2026-03-05T14:30:00Z",
		"2026-03-05T14:30:00.123+02:00",
	}
	for _, in := range cases {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got.Year() != 2026 || got.Month() != time.March {
			t.Fatalf("parse %q: unexpected date %v", in, got)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "tomorrow", "2026-13-01"} {
		if _, err := Parse(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestISORoundTrip(t *testing.T) {
	orig := time.Date(2026, 10, 16, 9, 30, 15, 123456789, time.FixedZone("X", 3600))
	parsed, err := ParseISO(ISO(orig))
	if err != nil {
		t.Fatalf("parse iso: %v", err)
	}
	if !parsed.Equal(orig) {
		t.Fatalf("expected %v, got %v", orig, parsed)
	}
}

func TestRemaining(t *testing.T) {
	if got := Remaining(5*time.Hour + 20*time.Minute); got != "5 hours" {
		t.Fatalf("got %q", got)
	}
	if got := Remaining(3*24*time.Hour + 4*time.Hour); got != "3 days 4 hours" {
		t.Fatalf("got %q", got)
	}
	if got := Remaining(30 * time.Minute); got != "0 hours" {
		t.Fatalf("got %q", got)
	}
}

func TestTickStrictlyIncreases(t *testing.T) {
	future := time.Now().Add(time.Hour)
	next := Tick(future)
	if !next.After(future) {
		t.Fatalf("expected %v to be after %v", next, future)
	}

	past := time.Now().Add(-time.Hour)
	if got := Tick(past); !got.After(past) {
		t.Fatalf("expected tick after %v, got %v", past, got)
	}
}
