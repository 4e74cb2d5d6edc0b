package formatter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/stayx/internal/models"
	"github.com/desertthunder/stayx/internal/shared"
	th "github.com/desertthunder/stayx/internal/testing"
)

func testExport() *FavoritesExport {
	user := models.NewUser(1, "jane@example.com", "Jane")
	user.SetID("user-1")

	seaside := models.NewListing(1, "owner-1", models.ListingDetails{
		Title:         "Seaside, with views",
		Description:   "Right on the beach",
		ImageURL:      "https://img.example/seaside.jpg",
		Category:      "Beach",
		LocationValue: "PT",
		RoomCount:     2,
		BathroomCount: 1,
		GuestCount:    4,
		Price:         120,
	})
	seaside.SetID("listing-1")

	cabin := models.NewListing(2, "owner-1", models.ListingDetails{
		Title:         "Cabin",
		Category:      "Mountains",
		LocationValue: "CH",
		RoomCount:     1,
		BathroomCount: 1,
		GuestCount:    2,
		Price:         90,
	})
	cabin.SetID("listing-2")

	return &FavoritesExport{User: user, Listings: []*models.Listing{seaside, cabin}}
}

func TestParseFormat(t *testing.T) {
	tc := []struct {
		in   string
		want Format
	}{
		{"", FormatText},
		{"text", FormatText},
		{"CSV", FormatCSV},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
	}
	for _, tt := range tc {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(testExport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
		}
		if lines[0] != "ID,Title,Category,Location,Rooms,Bathrooms,Guests,Price" {
			t.Errorf("CSV missing headers, got: %s", lines[0])
		}
		if lines[1] != `listing-1,"Seaside, with views",Beach,PT,2,1,4,120` {
			t.Errorf("unexpected first row: %s", lines[1])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(testExport())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Favorites of Jane",
			"**Listings**: 2",
			"## Seaside, with views",
			"![Seaside, with views](https://img.example/seaside.jpg)",
			"Right on the beach",
			"- **Price**: $90 / night",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q", want)
			}
		}
	})

	t.Run("ExportToMarkdown Empty", func(t *testing.T) {
		export := testExport()
		export.Listings = nil

		data, err := ExportToMarkdown(export)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		if !strings.Contains(string(data), "No favorites found") {
			t.Error("expected empty note")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(testExport())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "User: Jane <jane@example.com>") {
			t.Errorf("text missing user line: %s", output)
		}
		if !strings.Contains(output, "1. Seaside, with views - Beach, PT ($120/night)") {
			t.Errorf("text missing first listing: %s", output)
		}
		if !strings.Contains(output, "2. Cabin - Mountains, CH ($90/night)") {
			t.Errorf("text missing second listing: %s", output)
		}
	})

	t.Run("Export Unknown Format", func(t *testing.T) {
		if _, err := Export(testExport(), Format("xml")); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("WriteExport", func(t *testing.T) {
		var b strings.Builder
		if err := WriteExport(&b, testExport(), FormatCSV); err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if !strings.HasPrefix(b.String(), "ID,Title") {
			t.Errorf("unexpected output: %s", b.String())
		}
	})

	t.Run("WriteExport Failure", func(t *testing.T) {
		if err := WriteExport(&th.FWriter{}, testExport(), FormatText); err == nil {
			t.Error("expected write error")
		}
	})

	t.Run("WriteExportFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "favorites.md")

		got, err := WriteExportFile(testExport(), FormatMarkdown, path)
		if err != nil {
			t.Fatalf("WriteExportFile failed: %v", err)
		}
		if got != path {
			t.Errorf("expected %s, got %s", path, got)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read export: %v", err)
		}
		if !strings.Contains(string(data), "# Favorites of Jane") {
			t.Error("file content mismatch")
		}
	})

	t.Run("WriteExportFile Default Name", func(t *testing.T) {
		t.Chdir(t.TempDir())

		got, err := WriteExportFile(testExport(), FormatText, "")
		if err != nil {
			t.Fatalf("WriteExportFile failed: %v", err)
		}
		if got != "user-1_favorites.txt" {
			t.Errorf("unexpected default name %s", got)
		}
	})
}

func TestPalette(t *testing.T) {
	p := NewPalette("#FF385C", "#04B575", "#FF0000", "#FFA500", "#626262")

	if !strings.Contains(p.OK("done"), "done") || !strings.Contains(p.Err("failed"), "failed") {
		t.Error("styled output should keep the text")
	}
	if !strings.Contains(p.Title("stayx"), "stayx") || !strings.Contains(p.Warn("careful"), "careful") {
		t.Error("styled output should keep the text")
	}
}
