// Package export writes an outline and its bookmarks to Markdown or YAML
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/pstuifzand/codenav/internal/document"
	"github.com/pstuifzand/codenav/internal/model"
)

// Format is an export file format
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatYAML     Format = "yaml"
)

// ParseFormat accepts the format names and their usual file extensions
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q", name)
}

// FormatForPath picks the format from the file extension
func FormatForPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("cannot tell export format of %s: no extension", path)
	}
	return ParseFormat(ext)
}

// Outline is what gets exported
type Outline struct {
	File   string
	Styles []model.BookmarkStyle
	Items  []*model.Item

	// BookmarkedOnly leaves out items that have no bookmark and no
	// bookmarked members
	BookmarkedOnly bool

	// Exported is written below the heading unless it is zero, formatted
	// with the strftime DateFormat
	Exported   time.Time
	DateFormat string
}

const defaultDateFormat = "%Y-%m-%d %H:%M"

// exportedAt returns the formatted export time, empty when none is set
func (o Outline) exportedAt() string {
	if o.Exported.IsZero() {
		return ""
	}
	format := o.DateFormat
	if format == "" {
		format = defaultDateFormat
	}
	return strftime.Format(format, o.Exported)
}

// FromDocument collects the outline of an open document
func FromDocument(doc *document.Document) Outline {
	return Outline{
		File:   doc.FilePath(),
		Styles: doc.BookmarkStyles(),
		Items:  doc.Items(),
	}
}

// include reports whether item is part of the export
func (o Outline) include(item *model.Item) bool {
	if !o.BookmarkedOnly || item.HasBookmark() {
		return true
	}
	for _, member := range item.Members {
		if o.include(member) {
			return true
		}
	}
	return false
}

// styleName returns the name of the item's bookmark style
func (o Outline) styleName(item *model.Item) string {
	idx, ok := item.Bookmark()
	if !ok || idx >= len(o.Styles) {
		return ""
	}
	return o.Styles[idx].Name
}

// Write writes the outline in the given format
func Write(w io.Writer, format Format, outline Outline) error {
	switch format {
	case FormatMarkdown:
		return WriteMarkdown(w, outline)
	case FormatYAML:
		return WriteYAML(w, outline)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// ExportToFile writes the outline to path in the format matching its extension
func ExportToFile(path string, outline Outline) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Write(&buf, format, outline); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return nil
}
