package release

import (
	"regexp"
	"strings"
	"time"
)

// The storefront serves release strings in the configured locale. The tables
// below enumerate the vocabulary actually observed in the "english" and
// "schinese" locales; anything outside them falls through to the generic
// parsing attempts in Normalize.

// noDatePhrases are non-committal release strings. Matching is by substring
// on the lowercased input, so "Coming Soon!" and "coming soon 2025" both
// count as undated.
var noDatePhrases = []string{
	"tbd",
	"tba",
	"to be announced",
	"to be determined",
	"coming soon",
	"when it's done",
	"when it's ready",
	"即将推出",
	"即将宣布",
}

// seasonQuarter maps season words to the quarter they close out.
// A season resolves to the last day of its quarter, so the later month of
// the season's range always wins.
var seasonQuarter = map[string]string{
	"winter": "q1",
	"spring": "q2",
	"summer": "q3",
	"fall":   "q4",
	"autumn": "q4",
}

var seasonPattern = regexp.MustCompile(`\b(winter|spring|summer|fall|autumn)\b`)

// cjkReplacer rewrites Simplified Chinese date vocabulary into forms the
// generic parsers understand: quarter phrases become quarter tokens and the
// year/month/day markers become plain separators ("2024年10月21日" ->
// "2024.10.21.").
var cjkReplacer = strings.NewReplacer(
	"第一季度", " q1 ",
	"第二季度", " q2 ",
	"第三季度", " q3 ",
	"第四季度", " q4 ",
	"年", ".",
	"月", ".",
	"日", ".",
	"号", ".",
)

// monthNames covers full and abbreviated English month names, including the
// common four-letter "sept".
var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// annotationMarkers are punctuation/annotation runes stripped before any
// matching, so "Q4 2024*" still resolves.
const annotationMarkers = "*™®!?"

// substituteVocabulary applies the locale vocabulary to a lowercased string.
func substituteVocabulary(s string) string {
	s = cjkReplacer.Replace(s)
	s = seasonPattern.ReplaceAllStringFunc(s, func(m string) string {
		return seasonQuarter[m]
	})
	return s
}

func stripAnnotations(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(annotationMarkers, r) {
			return -1
		}
		return r
	}, s)
}
