// Package classify partitions wishlist items by whether a concrete release
// day could be determined for them.
package classify

import (
	"time"

	"swcal/internal/model"
	"swcal/internal/release"
)

// Result is a stable partition of the input: every item appears in exactly
// one bucket, input order preserved within each.
type Result struct {
	Successful []model.ClassifiedItem
	Failed     []model.ClassifiedItem
}

// Filter drops DLC items unless includeDLC is set. Applied before
// classification; filtering is not a classification concern.
func Filter(items []model.WishlistItem, includeDLC bool) []model.WishlistItem {
	if includeDLC {
		return items
	}
	out := make([]model.WishlistItem, 0, len(items))
	for _, it := range items {
		if it.DLC {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Classify resolves a release day for each item and routes it by outcome.
//
// Items the storefront already dates with a concrete timestamp (released
// titles) bypass string parsing; everything else goes through the
// normalizer on its free-form release string.
func Classify(items []model.WishlistItem, today time.Time, n *release.Normalizer) Result {
	if n == nil {
		n = release.New()
	}

	res := Result{
		Successful: make([]model.ClassifiedItem, 0, len(items)),
		Failed:     make([]model.ClassifiedItem, 0),
	}

	for _, it := range items {
		r := resolve(it, today, n)
		ci := model.ClassifiedItem{Item: it, Resolution: r}
		if r.Status == model.StatusExact {
			res.Successful = append(res.Successful, ci)
		} else {
			res.Failed = append(res.Failed, ci)
		}
	}
	return res
}

func resolve(it model.WishlistItem, today time.Time, n *release.Normalizer) model.Resolution {
	if !it.Prerelease && !it.ReleaseDate.IsZero() {
		return model.Exact(model.Day(it.ReleaseDate))
	}
	return n.Normalize(it.ReleaseString, today)
}
