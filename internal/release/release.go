// Package release turns the storefront's free-form release date strings
// into concrete calendar days where possible.
package release

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"swcal/internal/model"
)

// ReasonNoDate is the resolution reason for strings that carry no date
// information at all (empty, "TBA", "Coming soon", ...).
const ReasonNoDate = "no date given"

// ReasonUnparseablePrefix prefixes the raw string in diagnostics for inputs
// that looked like they might contain a date but could not be understood.
const ReasonUnparseablePrefix = "unparseable: "

var (
	quarterPattern   = regexp.MustCompile(`\bq([1-4])\b`)
	yearTokenPattern = regexp.MustCompile(`\b(\d{4})\b`)

	// Numeric forms, year first: "2024-10-21", "2024.10.21.", "2024/10".
	numericFullPattern  = regexp.MustCompile(`^(\d{4})[./-](\d{1,2})[./-](\d{1,2})[./-]?$`)
	numericMonthPattern = regexp.MustCompile(`^(\d{4})[./-](\d{1,2})[./-]?$`)

	tokenSeparator = regexp.MustCompile(`[\s,.]+`)
)

// Normalizer resolves raw release strings. The zero value is not usable;
// construct with New.
type Normalizer struct {
	noDate []string
}

// New returns a Normalizer recognizing the built-in no-date vocabulary plus
// any extra phrases (already expected lowercase).
func New(extraNoDatePhrases ...string) *Normalizer {
	phrases := make([]string, 0, len(noDatePhrases)+len(extraNoDatePhrases))
	phrases = append(phrases, noDatePhrases...)
	for _, p := range extraNoDatePhrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			phrases = append(phrases, p)
		}
	}
	return &Normalizer{noDate: phrases}
}

// Normalize converts a raw release string into a Resolution. Pure and
// deterministic: today only feeds the year-only pivot rule, never any other
// parsing path.
//
// Attempts, in order, first match wins:
//  1. empty or known non-committal phrase -> Unresolved("no date given")
//  2. quarter + year (seasons and CJK quarters map onto quarters)
//  3. numeric year-first date or year-month
//  4. month name (+ optional day) + year tokens
//  5. bare year -> Sep 15 if still ahead, else Dec 31
//  6. generic date parse for remaining locale-varied exact formats
//  7. Unresolved("unparseable: <raw>")
func (n *Normalizer) Normalize(raw string, today time.Time) model.Resolution {
	s := strings.TrimSpace(stripAnnotations(raw))
	if s == "" {
		return model.Unresolved(ReasonNoDate)
	}

	lower := strings.ToLower(s)
	for _, phrase := range n.noDate {
		if strings.Contains(lower, phrase) {
			return model.Unresolved(ReasonNoDate)
		}
	}

	sub := substituteVocabulary(lower)

	if res, ok := parseQuarter(sub); ok {
		return res
	}
	if res, ok := parseNumeric(sub); ok {
		return res
	}
	if res, ok := parseTokens(sub); ok {
		return res
	}
	if res, ok := parseYearOnly(sub, today); ok {
		return res
	}
	if t, err := dateparse.ParseAny(s); err == nil && plausibleYear(t.Year()) {
		return model.Exact(model.Day(t))
	}

	return model.Unresolved(ReasonUnparseablePrefix + raw)
}

// parseQuarter resolves "<quarter> <year>" (in either order) to the last day
// of the quarter's final month: Q1->Mar 31, Q2->Jun 30, Q3->Sep 30, Q4->Dec 31.
func parseQuarter(s string) (model.Resolution, bool) {
	qm := quarterPattern.FindStringSubmatch(s)
	ym := yearTokenPattern.FindStringSubmatch(s)
	if qm == nil || ym == nil {
		return model.Resolution{}, false
	}
	quarter, _ := strconv.Atoi(qm[1])
	year, _ := strconv.Atoi(ym[1])
	if !plausibleYear(year) {
		return model.Resolution{}, false
	}
	return model.Estimated(lastDayOfMonth(year, time.Month(quarter*3))), true
}

func parseNumeric(s string) (model.Resolution, bool) {
	t := strings.TrimSpace(s)

	if m := numericFullPattern.FindStringSubmatch(t); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if plausibleYear(year) && month >= 1 && month <= 12 && day >= 1 && day <= daysIn(year, time.Month(month)) {
			return model.Exact(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)), true
		}
		return model.Resolution{}, false
	}

	if m := numericMonthPattern.FindStringSubmatch(t); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if plausibleYear(year) && month >= 1 && month <= 12 {
			return model.Estimated(lastDayOfMonth(year, time.Month(month))), true
		}
	}

	return model.Resolution{}, false
}

// parseTokens handles month-name forms in any token order: "oct 21 2024",
// "21 oct 2024", "october 2024". A month plus year without a day anchors to
// the last day of that month.
func parseTokens(s string) (model.Resolution, bool) {
	var (
		year  int
		day   int
		month time.Month
	)

	for _, tok := range tokenSeparator.Split(strings.TrimSpace(s), -1) {
		if tok == "" {
			continue
		}
		if m, ok := monthNames[tok]; ok {
			if month != 0 {
				return model.Resolution{}, false
			}
			month = m
			continue
		}
		if !allDigits(tok) {
			return model.Resolution{}, false
		}
		n, _ := strconv.Atoi(tok)
		switch {
		case len(tok) == 4 && plausibleYear(n):
			if year != 0 {
				return model.Resolution{}, false
			}
			year = n
		case n >= 1 && n <= 31:
			if day != 0 {
				return model.Resolution{}, false
			}
			day = n
		default:
			return model.Resolution{}, false
		}
	}

	if year == 0 || month == 0 {
		return model.Resolution{}, false
	}
	if day == 0 {
		return model.Estimated(lastDayOfMonth(year, month)), true
	}
	if day > daysIn(year, month) {
		return model.Resolution{}, false
	}
	return model.Exact(time.Date(year, month, day, 0, 0, 0, 0, time.UTC)), true
}

// parseYearOnly resolves a bare year. If September 15 of that year is still
// ahead of today the item is assumed due by then, otherwise by year end.
func parseYearOnly(s string, today time.Time) (model.Resolution, bool) {
	t := strings.Trim(strings.TrimSpace(s), ". ")
	if len(t) != 4 || !allDigits(t) {
		return model.Resolution{}, false
	}
	year, _ := strconv.Atoi(t)
	if !plausibleYear(year) {
		return model.Resolution{}, false
	}
	pivot := time.Date(year, time.September, 15, 0, 0, 0, 0, time.UTC)
	if pivot.After(model.Day(today)) {
		return model.Estimated(pivot), true
	}
	return model.Estimated(time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)), true
}

func lastDayOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return lastDayOfMonth(year, month).Day()
}

func plausibleYear(year int) bool {
	return year >= 1970 && year <= 2100
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
