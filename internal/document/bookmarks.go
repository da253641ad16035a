package document

import (
	"fmt"

	"github.com/pstuifzand/codenav/internal/model"
)

// BookmarkStyles returns a copy of the document palette
func (d *Document) BookmarkStyles() []model.BookmarkStyle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]model.BookmarkStyle(nil), d.state.BookmarkStyles...)
}

// SetBookmarkStyles replaces the palette. Assignments keep their indexes;
// ones that no longer resolve behave as no bookmark.
func (d *Document) SetBookmarkStyles(styles []model.BookmarkStyle) {
	d.mu.Lock()
	d.state.BookmarkStyles = append([]model.BookmarkStyle(nil), styles...)
	d.mu.Unlock()
}

// Style returns the palette entry at index
func (d *Document) Style(index int) (model.BookmarkStyle, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 0 || index >= len(d.state.BookmarkStyles) {
		return model.BookmarkStyle{}, false
	}
	return d.state.BookmarkStyles[index], true
}

// StyleIndex returns the palette index of a style with the same colors
func (d *Document) StyleIndex(style model.BookmarkStyle) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, s := range d.state.BookmarkStyles {
		if s.Matches(style) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%s/%s: %w", style.Background, style.Foreground, ErrStyleNotFound)
}

// StyleFor returns the style of the item's bookmark. Items whose index does
// not resolve are reported as having no bookmark.
func (d *Document) StyleFor(item *model.Item) (model.BookmarkStyle, bool) {
	idx, ok := item.Bookmark()
	if !ok {
		return model.BookmarkStyle{}, false
	}
	return d.Style(idx)
}

// AddBookmark registers a bookmark for an item ID
func (d *Document) AddBookmark(id string, styleIndex int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Bookmarks[id] = styleIndex
}

// RemoveBookmark removes the bookmark for an item ID
func (d *Document) RemoveBookmark(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.state.Bookmarks, id)
}

// Bookmarks returns a copy of the id to style index assignments
func (d *Document) Bookmarks() map[string]int {
	d.mu.Lock()
	defer d.mu.Unlock()
	result := make(map[string]int, len(d.state.Bookmarks))
	for id, idx := range d.state.Bookmarks {
		result[id] = idx
	}
	return result
}

// BookmarksAvailable reports whether any item of the document is bookmarked
func (d *Document) BookmarksAvailable() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.state.Bookmarks) > 0
}

// ClearBookmarks removes every bookmark of the document, both the persisted
// assignments and the styles shown on the current outline
func (d *Document) ClearBookmarks() {
	d.mu.Lock()
	d.state.Bookmarks = make(map[string]int)
	items := d.items
	d.mu.Unlock()

	model.Walk(items, func(item *model.Item) bool {
		ClearBookmark(item)
		return true
	})
}

// ApplyBookmarks sets the bookmark of every item of the current outline from
// the assignments, by item ID. Assignments whose style index is out of range
// leave the item without a bookmark.
func (d *Document) ApplyBookmarks() {
	d.mu.Lock()
	bookmarks := make(map[string]int, len(d.state.Bookmarks))
	for id, idx := range d.state.Bookmarks {
		bookmarks[id] = idx
	}
	styleCount := len(d.state.BookmarkStyles)
	items := d.items
	d.mu.Unlock()

	model.Walk(items, func(item *model.Item) bool {
		idx, ok := bookmarks[item.ID]
		if ok && idx >= 0 && idx < styleCount {
			item.SetBookmark(idx)
		} else {
			ClearBookmark(item)
		}
		return true
	})
}

// ApplyBookmark shows a bookmark style on a single item
func ApplyBookmark(item *model.Item, index int) {
	item.SetBookmark(index)
}

// ClearBookmark removes the bookmark shown on a single item
func ClearBookmark(item *model.Item) {
	item.ClearBookmark()
}
