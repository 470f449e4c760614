package model

import "time"

// WishlistItem is a single wishlisted product as returned by the storefront.
// Immutable within a run.
type WishlistItem struct {
	// AppID is the storefront application id (map key in the API response).
	AppID string

	Name string

	// ReleaseString is the free-form release date text shown on the store
	// page ("Oct 21, 2024", "Q4 2024", "Coming soon", ...).
	ReleaseString string

	// ReleaseDate is a concrete release timestamp when the storefront
	// supplies one (typically for already-released items). Zero otherwise.
	ReleaseDate time.Time

	// DLC marks downloadable content as opposed to a base game.
	DLC bool

	// Prerelease is set when the storefront still considers the item
	// unreleased; such items only carry the free-form ReleaseString.
	Prerelease bool
}

// Status tags the outcome of release-date normalization.
type Status int

const (
	// StatusExact means a specific calendar day could be derived.
	StatusExact Status = iota
	// StatusUnresolved means no day could be derived (missing, unparseable,
	// or explicitly "to be announced").
	StatusUnresolved
)

// Resolution is the normalized outcome for one item's release string.
// Exactly one of Date (StatusExact) or Reason (StatusUnresolved) is
// meaningful; consumers switch on Status rather than on sentinel values.
type Resolution struct {
	Status Status

	// Date is the resolved day at midnight UTC. Valid only for StatusExact.
	Date time.Time

	// Estimated is set when Date was derived from a vague string
	// (month/quarter/season/year) rather than a full date.
	Estimated bool

	// Reason describes why no day could be derived. Valid only for
	// StatusUnresolved.
	Reason string
}

// Exact returns an exact resolution for the given day.
func Exact(date time.Time) Resolution {
	return Resolution{Status: StatusExact, Date: date}
}

// Estimated returns an exact resolution flagged as derived from a vague string.
func Estimated(date time.Time) Resolution {
	return Resolution{Status: StatusExact, Date: date, Estimated: true}
}

// Unresolved returns a resolution carrying only a diagnostic reason.
func Unresolved(reason string) Resolution {
	return Resolution{Status: StatusUnresolved, Reason: reason}
}

// ClassifiedItem pairs a wishlist item with its date resolution.
type ClassifiedItem struct {
	Item       WishlistItem
	Resolution Resolution
}

// HistoryPoint is one day's summary in the persisted history series.
type HistoryPoint struct {
	// Day is the calendar day in YYYY-MM-DD form (series key).
	Day string

	// Total is the number of wishlisted items that day (post DLC filter).
	Total int

	// Prerelease is the number of items whose resolved date was still in
	// the future on that day.
	Prerelease int
}

// CalendarEntry is one all-day event in the generated calendar feed.
type CalendarEntry struct {
	// UID is stable across runs for the same item, so refreshing a
	// subscription never duplicates events.
	UID         string
	Title       string
	Date        time.Time
	Description string
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayString formats t as a series key.
func DayString(t time.Time) string {
	return t.Format("2006-01-02")
}
