// Package history maintains the day-by-day record of wishlist size and
// prerelease composition.
package history

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"swcal/internal/classify"
	appLog "swcal/internal/log"
	"swcal/internal/model"
)

// Series is an ordered sequence of history points, ascending by day, at
// most one point per day.
type Series struct {
	points []model.HistoryPoint
}

// Points returns the series contents in ascending day order.
func (s *Series) Points() []model.HistoryPoint {
	return s.points
}

// Len returns the number of points in the series.
func (s *Series) Len() int {
	return len(s.points)
}

// Upsert inserts p in day order, replacing any existing point for the same
// day. Re-running the pipeline on the same day therefore never produces
// duplicate or out-of-order points.
func (s *Series) Upsert(p model.HistoryPoint) {
	i := sort.Search(len(s.points), func(i int) bool {
		return s.points[i].Day >= p.Day
	})
	if i < len(s.points) && s.points[i].Day == p.Day {
		s.points[i] = p
		return
	}
	s.points = append(s.points, model.HistoryPoint{})
	copy(s.points[i+1:], s.points[i:])
	s.points[i] = p
}

// Aggregate computes today's summary point from a classified run.
// Total counts every item (post DLC filter); Prerelease counts successfully
// dated items whose day is strictly after today.
func Aggregate(res classify.Result, today time.Time) model.HistoryPoint {
	day := model.Day(today)
	prerelease := 0
	for _, ci := range res.Successful {
		if ci.Resolution.Date.After(day) {
			prerelease++
		}
	}
	return model.HistoryPoint{
		Day:        model.DayString(day),
		Total:      len(res.Successful) + len(res.Failed),
		Prerelease: prerelease,
	}
}

// storedPoint is the on-disk value shape; the day is the JSON object key.
type storedPoint struct {
	Total      int `json:"total"`
	Prerelease int `json:"prerelease"`
}

// Load reads a series from path. A missing file yields an empty series.
// A corrupt or unreadable file also yields an empty series: continuing the
// run (and starting a fresh record) beats crashing, but the condition is
// logged since it is indistinguishable from intentional emptiness.
func Load(path string) *Series {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			appLog.Error("history file unreadable, starting fresh series", err, "path", path)
		}
		return &Series{}
	}

	var raw map[string]storedPoint
	if err := json.Unmarshal(data, &raw); err != nil {
		appLog.Error("history file corrupt, starting fresh series", err, "path", path)
		return &Series{}
	}

	s := &Series{points: make([]model.HistoryPoint, 0, len(raw))}
	for day, p := range raw {
		s.points = append(s.points, model.HistoryPoint{Day: day, Total: p.Total, Prerelease: p.Prerelease})
	}
	sort.Slice(s.points, func(i, j int) bool {
		return s.points[i].Day < s.points[j].Day
	})
	return s
}

// Save writes the series to path as a JSON object keyed by day, atomically
// (temp file + rename).
func Save(path string, s *Series) error {
	raw := make(map[string]storedPoint, len(s.points))
	for _, p := range s.points {
		raw[p.Day] = storedPoint{Total: p.Total, Prerelease: p.Prerelease}
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".swcal-history-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
