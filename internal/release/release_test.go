package release

import (
	"testing"
	"time"

	"swcal/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeExactFormats(t *testing.T) {
	today := day(2024, time.January, 1)
	n := New()

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"month day year", "Oct 21, 2024", day(2024, time.October, 21)},
		{"day month year", "21 Oct, 2024", day(2024, time.October, 21)},
		{"full month name", "October 21 2024", day(2024, time.October, 21)},
		{"iso", "2024-10-21", day(2024, time.October, 21)},
		{"dotted year first", "2024.10.21", day(2024, time.October, 21)},
		{"cjk markers", "2024年10月21日", day(2024, time.October, 21)},
		{"us slash via fallback", "10/21/2024", day(2024, time.October, 21)},
		{"uppercase", "OCT 21, 2024", day(2024, time.October, 21)},
		{"trailing annotation", "Oct 21, 2024*", day(2024, time.October, 21)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.raw, today)
			if got.Status != model.StatusExact {
				t.Fatalf("Normalize(%q) status = %v, reason %q; want exact", tt.raw, got.Status, got.Reason)
			}
			if !got.Date.Equal(tt.want) {
				t.Errorf("Normalize(%q) = %s, want %s", tt.raw, got.Date, tt.want)
			}
		})
	}
}

func TestNormalizeEquivalentFormatsAgree(t *testing.T) {
	today := day(2024, time.January, 1)
	n := New()

	variants := []string{"Oct 21, 2024", "2024-10-21", "21 Oct 2024", "2024年10月21日"}
	want := day(2024, time.October, 21)
	for _, v := range variants {
		got := n.Normalize(v, today)
		if got.Status != model.StatusExact || !got.Date.Equal(want) {
			t.Errorf("Normalize(%q) = %+v, want exact %s", v, got, want)
		}
	}
}

func TestNormalizeMonthYearAnchorsToMonthEnd(t *testing.T) {
	today := day(2024, time.January, 1)
	n := New()

	tests := []struct {
		raw  string
		want time.Time
	}{
		{"October 2024", day(2024, time.October, 31)},
		{"Jun 2025", day(2025, time.June, 30)},
		{"Feb 2024", day(2024, time.February, 29)},
		{"Feb 2025", day(2025, time.February, 28)},
		{"2024.10.", day(2024, time.October, 31)},
		{"2024年10月", day(2024, time.October, 31)},
	}

	for _, tt := range tests {
		got := n.Normalize(tt.raw, today)
		if got.Status != model.StatusExact {
			t.Fatalf("Normalize(%q) unresolved: %q", tt.raw, got.Reason)
		}
		if !got.Date.Equal(tt.want) {
			t.Errorf("Normalize(%q) = %s, want %s", tt.raw, got.Date, tt.want)
		}
		if !got.Estimated {
			t.Errorf("Normalize(%q) not flagged as estimated", tt.raw)
		}
	}
}

func TestNormalizeQuarters(t *testing.T) {
	today := day(2024, time.January, 1)
	n := New()

	tests := []struct {
		raw  string
		want time.Time
	}{
		{"Q1 2025", day(2025, time.March, 31)},
		{"Q2 2024", day(2024, time.June, 30)},
		{"Q3 2024", day(2024, time.September, 30)},
		{"Q4 2024", day(2024, time.December, 31)},
		{"2024 Q4", day(2024, time.December, 31)},
		{"Q4 2024*", day(2024, time.December, 31)},
		{"2024年第四季度", day(2024, time.December, 31)},
	}

	for _, tt := range tests {
		got := n.Normalize(tt.raw, today)
		if got.Status != model.StatusExact {
			t.Fatalf("Normalize(%q) unresolved: %q", tt.raw, got.Reason)
		}
		if !got.Date.Equal(tt.want) {
			t.Errorf("Normalize(%q) = %s, want %s", tt.raw, got.Date, tt.want)
		}
	}
}

func TestNormalizeSeasons(t *testing.T) {
	today := day(2024, time.January, 1)
	n := New()

	tests := []struct {
		raw  string
		want time.Time
	}{
		{"Winter 2025", day(2025, time.March, 31)},
		{"Spring 2025", day(2025, time.June, 30)},
		{"Summer 2025", day(2025, time.September, 30)},
		{"Fall 2025", day(2025, time.December, 31)},
		{"Autumn 2025", day(2025, time.December, 31)},
	}

	for _, tt := range tests {
		got := n.Normalize(tt.raw, today)
		if got.Status != model.StatusExact {
			t.Fatalf("Normalize(%q) unresolved: %q", tt.raw, got.Reason)
		}
		if !got.Date.Equal(tt.want) {
			t.Errorf("Normalize(%q) = %s, want %s", tt.raw, got.Date, tt.want)
		}
	}
}

func TestNormalizeYearOnlyPivot(t *testing.T) {
	n := New()

	// Before the September 15 pivot the item is assumed due by then.
	got := n.Normalize("2025", day(2025, time.January, 1))
	if got.Status != model.StatusExact || !got.Date.Equal(day(2025, time.September, 15)) {
		t.Errorf("early year-only = %+v, want 2025-09-15", got)
	}

	// Past the pivot it slips to year end.
	got = n.Normalize("2025", day(2025, time.October, 1))
	if got.Status != model.StatusExact || !got.Date.Equal(day(2025, time.December, 31)) {
		t.Errorf("late year-only = %+v, want 2025-12-31", got)
	}
}

func TestNormalizeNoDatePhrases(t *testing.T) {
	today := day(2024, time.January, 1)
	n := New()

	for _, raw := range []string{
		"",
		"   ",
		"TBA",
		"TBD",
		"To be announced",
		"Coming soon",
		"Coming Soon!",
		"When it's done",
		"即将推出",
		"即将宣布",
	} {
		got := n.Normalize(raw, today)
		if got.Status != model.StatusUnresolved {
			t.Errorf("Normalize(%q) = %+v, want unresolved", raw, got)
			continue
		}
		if got.Reason != ReasonNoDate {
			t.Errorf("Normalize(%q) reason = %q, want %q", raw, got.Reason, ReasonNoDate)
		}
	}
}

func TestNormalizeExtraPhrases(t *testing.T) {
	today := day(2024, time.January, 1)
	n := New("wishlist now")

	got := n.Normalize("Wishlist Now", today)
	if got.Status != model.StatusUnresolved || got.Reason != ReasonNoDate {
		t.Errorf("extra phrase not recognized: %+v", got)
	}
}

func TestNormalizeUnparseableKeepsRaw(t *testing.T) {
	today := day(2024, time.January, 1)
	n := New()

	raw := "sometime after the next one"
	got := n.Normalize(raw, today)
	if got.Status != model.StatusUnresolved {
		t.Fatalf("Normalize(%q) = %+v, want unresolved", raw, got)
	}
	want := ReasonUnparseablePrefix + raw
	if got.Reason != want {
		t.Errorf("reason = %q, want %q", got.Reason, want)
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	today := day(2024, time.June, 1)
	n := New()

	for _, raw := range []string{"Q4 2024", "October 2024", "Oct 21, 2024", "TBA", "???"} {
		first := n.Normalize(raw, today)
		for i := 0; i < 3; i++ {
			if got := n.Normalize(raw, today); got != first {
				t.Errorf("Normalize(%q) not deterministic: %+v vs %+v", raw, got, first)
			}
		}
	}
}
