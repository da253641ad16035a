package command

import (
	"context"
	"fmt"
	"log"

	"github.com/pstuifzand/codenav/internal/diff"
	"github.com/pstuifzand/codenav/internal/document"
	"github.com/pstuifzand/codenav/internal/model"
	"github.com/pstuifzand/codenav/internal/storage"
)

// SetMaxHistory sets how many visited items documents opened from now on remember
func (c *Commands) SetMaxHistory(n int) {
	c.maxHistory = n
}

// SetDefaultStyles sets the palette of documents that have no saved state yet
func (c *Commands) SetDefaultStyles(styles []model.BookmarkStyle) {
	c.defaultStyles = append([]model.BookmarkStyle(nil), styles...)
}

// Open loads the persisted state of filePath, attaches the outline to it
// and registers the document
func (c *Commands) Open(ctx context.Context, filePath string, items []*model.Item) (*document.Document, error) {
	state, err := storage.LoadDocument(ctx, c.store, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load document state: %w", err)
	}
	if state == nil {
		state = document.NewState(filePath)
		if len(c.defaultStyles) > 0 {
			state.BookmarkStyles = append([]model.BookmarkStyle(nil), c.defaultStyles...)
		}
	}

	maxHistory := c.maxHistory
	if maxHistory <= 0 {
		maxHistory = document.DefaultMaxHistory
	}

	doc := document.FromState(state, maxHistory)
	doc.SetItems(items)
	c.registry.Open(doc)
	return doc, nil
}

// Update replaces the document outline with a freshly parsed one unless it
// is structurally equal to the displayed outline, in which case the
// displayed items only take over the new positions. It reports whether the
// outline was replaced.
func (c *Commands) Update(doc *document.Document, items []*model.Item) bool {
	current := doc.Items()
	if len(current) > 0 && diff.EqualSequences(current, items) {
		model.CopyLocations(current, items)
		return false
	}

	if len(current) > 0 {
		log.Printf("outline of %s changed: %s", doc.FilePath(), diff.Summary(diff.Compute(current, items)))
	}
	doc.SetItems(items)
	return true
}

// Close unregisters the document
func (c *Commands) Close(doc *document.Document) {
	c.registry.Close(doc.ID())
}

// Flush waits for all pending saves
func (c *Commands) Flush() {
	c.queue.Flush()
}
