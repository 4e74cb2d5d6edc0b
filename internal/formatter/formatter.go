// package formatter provides functions to export favorite listings to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/stayx/internal/models"
	"github.com/desertthunder/stayx/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatText     Format = "text"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
)

// ParseFormat resolves a format flag value. The empty string means [FormatText].
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: unknown format %q (want text, csv or md)", shared.ErrInvalidArgument, s)
}

// FavoritesExport is a user's favorite listings, most recently favorited first.
type FavoritesExport struct {
	User     *models.User
	Listings []*models.Listing
}

// ExportToCSV converts a FavoritesExport to CSV format with columns:
// ID, Title, Category, Location, Rooms, Bathrooms, Guests, Price
func ExportToCSV(export *FavoritesExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Category", "Location", "Rooms", "Bathrooms", "Guests", "Price"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, l := range export.Listings {
		record := []string{
			l.ID(),
			l.Title(),
			l.Category(),
			l.LocationValue(),
			strconv.Itoa(l.RoomCount()),
			strconv.Itoa(l.BathroomCount()),
			strconv.Itoa(l.GuestCount()),
			strconv.Itoa(l.Price()),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a FavoritesExport to a Markdown document with one section per listing
func ExportToMarkdown(export *FavoritesExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Favorites of %s\n\n", export.User.DisplayName())
	fmt.Fprintf(&buf, "**Listings**: %d\n\n", len(export.Listings))

	if len(export.Listings) == 0 {
		buf.WriteString("_No favorites found._\n")
		return buf.Bytes(), nil
	}

	for _, l := range export.Listings {
		fmt.Fprintf(&buf, "## %s\n\n", l.Title())
		if l.ImageURL() != "" {
			fmt.Fprintf(&buf, "![%s](%s)\n\n", l.Title(), l.ImageURL())
		}
		if l.Description() != "" {
			fmt.Fprintf(&buf, "%s\n\n", l.Description())
		}
		fmt.Fprintf(&buf, "- **Category**: %s\n", l.Category())
		fmt.Fprintf(&buf, "- **Location**: %s\n", l.LocationValue())
		fmt.Fprintf(&buf, "- **Rooms**: %d, **Bathrooms**: %d, **Guests**: %d\n", l.RoomCount(), l.BathroomCount(), l.GuestCount())
		fmt.Fprintf(&buf, "- **Price**: $%d / night\n\n", l.Price())
	}

	return buf.Bytes(), nil
}

// ExportToText converts a FavoritesExport to plain text format
func ExportToText(export *FavoritesExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "User: %s <%s>\n", export.User.DisplayName(), export.User.Email())
	fmt.Fprintf(&buf, "Favorites: %d\n\n", len(export.Listings))

	for i, l := range export.Listings {
		fmt.Fprintf(&buf, "%d. %s - %s, %s ($%d/night)\n", i+1, l.Title(), l.Category(), l.LocationValue(), l.Price())
	}

	return buf.Bytes(), nil
}

// Export renders the export in the given format.
func Export(export *FavoritesExport, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown:
		return ExportToMarkdown(export)
	case FormatText:
		return ExportToText(export)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
}

// WriteExport renders the export and writes it to w.
func WriteExport(w io.Writer, export *FavoritesExport, format Format) error {
	data, err := Export(export, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// WriteExportFile renders the export to a file.
//
// Defaults to {user.ID}_favorites.{ext} as the filename.
func WriteExportFile(export *FavoritesExport, format Format, path string) (string, error) {
	if path == "" {
		ext := string(format)
		if format == FormatText {
			ext = "txt"
		}
		path = fmt.Sprintf("%s_favorites.%s", export.User.ID(), ext)
	}

	data, err := Export(export, format)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
