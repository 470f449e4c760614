// Package report writes the human-auditable success/failure listings.
package report

import (
	"os"
	"strings"

	"swcal/internal/model"
)

// WriteSuccess writes one line per successfully dated item:
// name, two tabs, resolved day.
func WriteSuccess(path string, successful []model.ClassifiedItem) error {
	lines := make([]string, 0, len(successful))
	for _, ci := range successful {
		lines = append(lines, ci.Item.Name+"\t\t"+model.DayString(ci.Resolution.Date))
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
}

// WriteFailures writes one line per unresolved item: name, two tabs, the
// raw release string that could not be understood. Nothing is written when
// there are no failures.
func WriteFailures(path string, failed []model.ClassifiedItem) error {
	if len(failed) == 0 {
		return nil
	}
	lines := make([]string, 0, len(failed))
	for _, ci := range failed {
		lines = append(lines, ci.Item.Name+"\t\t"+ci.Item.ReleaseString)
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
}
