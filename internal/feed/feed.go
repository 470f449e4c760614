// Package feed builds the subscribable calendar from successfully dated
// wishlist items.
package feed

import (
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"swcal/internal/model"
)

const storeAppURL = "https://store.steampowered.com/app/"

// Options controls feed contents.
type Options struct {
	// IncludeReleased keeps entries whose day is already in the past.
	// Default is to publish only entries dated today or later, so a stale
	// feed never fills up with history.
	IncludeReleased bool
}

// EntryUID derives a stable identifier for an item. The same item yields
// the same UID on every run, so calendar clients never see duplicates on
// refresh. Keyed by the store app URL when the app id is known, by the item
// name otherwise.
func EntryUID(appID, name string) string {
	if appID != "" {
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte(storeAppURL+appID)).String()
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// Build turns dated items into calendar entries, applying the released-item
// policy from opts. Input order is preserved.
func Build(successful []model.ClassifiedItem, today time.Time, opts Options) []model.CalendarEntry {
	day := model.Day(today)
	entries := make([]model.CalendarEntry, 0, len(successful))

	for _, ci := range successful {
		if ci.Resolution.Status != model.StatusExact {
			continue
		}
		if !opts.IncludeReleased && ci.Resolution.Date.Before(day) {
			continue
		}

		desc := ""
		if ci.Item.AppID != "" {
			desc = storeAppURL + ci.Item.AppID
		}
		if ci.Resolution.Estimated {
			if desc != "" {
				desc += "\n"
			}
			desc += `Estimation based on "` + ci.Item.ReleaseString + `"`
		}

		entries = append(entries, model.CalendarEntry{
			UID:         EntryUID(ci.Item.AppID, ci.Item.Name),
			Title:       ci.Item.Name,
			Date:        ci.Resolution.Date,
			Description: desc,
		})
	}
	return entries
}

// Calendar serializes entries into an ICS document with one all-day event
// per entry.
func Calendar(entries []model.CalendarEntry, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//swcal//steam wishlist calendar//EN")

	for _, e := range entries {
		ev := cal.AddEvent(e.UID)
		ev.SetDtStampTime(now)
		ev.SetModifiedAt(now)
		ev.SetSummary(e.Title)
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		ev.SetAllDayStartAt(e.Date)
		ev.SetAllDayEndAt(e.Date.AddDate(0, 0, 1))
		ev.SetProperty(ical.ComponentPropertyCategories, "game_release")
	}

	return cal.Serialize()
}
