package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"swcal/internal/model"
)

func TestWriteSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "successful.txt")

	items := []model.ClassifiedItem{
		{
			Item:       model.WishlistItem{Name: "Alpha"},
			Resolution: model.Exact(time.Date(2024, time.October, 21, 0, 0, 0, 0, time.UTC)),
		},
		{
			Item:       model.WishlistItem{Name: "Beta"},
			Resolution: model.Exact(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)),
		},
	}

	if err := WriteSuccess(path, items); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "Alpha\t\t2024-10-21\nBeta\t\t2024-12-31"
	if string(data) != want {
		t.Errorf("content = %q, want %q", data, want)
	}
}

func TestWriteFailuresKeepsRawString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failed_deductions.txt")

	items := []model.ClassifiedItem{
		{
			Item:       model.WishlistItem{Name: "Mystery", ReleaseString: "when the stars align"},
			Resolution: model.Unresolved("unparseable: when the stars align"),
		},
	}

	if err := WriteFailures(path, items); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "Mystery\t\twhen the stars align"; string(data) != want {
		t.Errorf("content = %q, want %q", data, want)
	}
}

func TestWriteFailuresSkipsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failed_deductions.txt")

	if err := WriteFailures(path, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("failure file written despite no failures")
	}
}
