// Package command implements the actions a user can take on a code item of
// the outline: bookmarking, navigation, history and filtering.
//
// Every command is fire-and-forget. Failures are caught at the command
// boundary, reported to the LogSink with the command's tag and swallowed;
// state changed before the failure is not rolled back.
package command

import (
	"context"
	"fmt"

	"github.com/pstuifzand/codenav/internal/document"
	"github.com/pstuifzand/codenav/internal/model"
	"github.com/pstuifzand/codenav/internal/storage"
)

// Log tags, one per command
const (
	TagBookmark                = "CodeItem.Bookmark"
	TagDeleteBookmark          = "CodeItem.DeleteBookmark"
	TagClearBookmarks          = "CodeItem.ClearBookmarks"
	TagCustomizeBookmarkStyles = "CodeItem.CustomizeBookmarkStyles"
	TagClickItem               = "CodeItem.ClickItem"
	TagGoToDefinition          = "CodeItem.GoToDefinition"
	TagGoToEnd                 = "CodeItem.GoToEnd"
	TagSelectInCode            = "CodeItem.SelectInCode"
	TagCopyName                = "CodeItem.CopyName"
	TagRefresh                 = "CodeItem.Refresh"
	TagClearHistory            = "CodeItem.ClearHistory"
)

// Commands holds the collaborators shared by all item commands
type Commands struct {
	registry *document.Registry
	store    storage.Store
	host     Host
	log      LogSink
	queue    *Queue

	maxHistory    int
	defaultStyles []model.BookmarkStyle
}

// New creates the command layer
func New(registry *document.Registry, store storage.Store, host Host, sink LogSink, queue *Queue) *Commands {
	if sink == nil {
		sink = StdLogSink{}
	}
	return &Commands{
		registry: registry,
		store:    store,
		host:     host,
		log:      sink,
		queue:    queue,
	}
}

// For binds the commands to one item
func (c *Commands) For(item *model.Item) *ItemCommands {
	return &ItemCommands{c: c, item: item}
}

// saveDocument posts a save of the document state. The state is captured
// when the save runs, so the latest in-memory state is what gets written.
func (c *Commands) saveDocument(tag string, doc *document.Document) {
	posted := c.queue.Post(func(ctx context.Context) {
		if err := storage.SaveDocument(ctx, c.store, doc.Snapshot()); err != nil {
			c.log.Log(tag, err)
		}
	})
	if !posted {
		c.log.Log(tag, fmt.Errorf("save %s: command queue is closed", doc.FilePath()))
	}
}

// ItemCommands are the commands bound to one code item
type ItemCommands struct {
	c    *Commands
	item *model.Item
}

// Item returns the bound item
func (ic *ItemCommands) Item() *model.Item {
	return ic.item
}

func (ic *ItemCommands) document(tag string) (*document.Document, bool) {
	doc, err := ic.c.registry.For(ic.item)
	if err != nil {
		ic.c.log.Log(tag, fmt.Errorf("item %s: %w", ic.item.ID, err))
		return nil, false
	}
	return doc, true
}

// Bookmark applies a style to the item, records it in the document and
// persists the document
func (ic *ItemCommands) Bookmark(style model.BookmarkStyle) {
	doc, ok := ic.document(TagBookmark)
	if !ok {
		return
	}

	index, err := doc.StyleIndex(style)
	if err != nil {
		ic.c.log.Log(TagBookmark, err)
		return
	}

	ic.applyBookmark(doc, index)
}

// BookmarkIndex bookmarks the item with the palette entry at index
func (ic *ItemCommands) BookmarkIndex(index int) {
	doc, ok := ic.document(TagBookmark)
	if !ok {
		return
	}

	if _, ok := doc.Style(index); !ok {
		ic.c.log.Log(TagBookmark, fmt.Errorf("index %d: %w", index, document.ErrStyleNotFound))
		return
	}
	ic.applyBookmark(doc, index)
}

// applyBookmark stores the palette index itself, so palettes with equal
// entries keep the entry that was picked
func (ic *ItemCommands) applyBookmark(doc *document.Document, index int) {
	document.ApplyBookmark(ic.item, index)
	doc.AddBookmark(ic.item.ID, index)
	ic.item.ContextMenuOpen = false

	ic.c.saveDocument(TagBookmark, doc)
}

// DeleteBookmark removes the item's bookmark. Items without one are left alone.
func (ic *ItemCommands) DeleteBookmark() {
	if !ic.item.HasBookmark() {
		return
	}

	doc, ok := ic.document(TagDeleteBookmark)
	if !ok {
		return
	}

	document.ClearBookmark(ic.item)
	doc.RemoveBookmark(ic.item.ID)

	ic.c.saveDocument(TagDeleteBookmark, doc)
}

// ClearBookmarks removes every bookmark of the item's document
func (ic *ItemCommands) ClearBookmarks() {
	doc, ok := ic.document(TagClearBookmarks)
	if !ok {
		return
	}

	doc.ClearBookmarks()

	ic.c.saveDocument(TagClearBookmarks, doc)
}

// FilterBookmarks toggles showing only bookmarked items
func (ic *ItemCommands) FilterBookmarks() {
	doc, err := ic.c.registry.For(ic.item)
	if err != nil {
		return
	}
	doc.ToggleFilterOnBookmarks()
	ic.c.host.FilterBookmarks(doc)
}

// CustomizeBookmarkStyles opens the style editor and re-applies the styles
// to every item once it is closed
func (ic *ItemCommands) CustomizeBookmarkStyles() {
	doc, ok := ic.document(TagCustomizeBookmarkStyles)
	if !ok {
		return
	}

	if err := ic.c.host.EditBookmarkStyles(doc); err != nil {
		ic.c.log.Log(TagCustomizeBookmarkStyles, err)
	}

	doc.ApplyBookmarks()
	ic.c.saveDocument(TagCustomizeBookmarkStyles, doc)
}

// Click records the item in the navigation history and moves the editor to it
func (ic *ItemCommands) Click() {
	doc, ok := ic.document(TagClickItem)
	if !ok {
		return
	}

	doc.AddToHistory(ic.item)
	ic.c.saveDocument(TagClickItem, doc)

	ic.scrollTo(TagClickItem, ic.item.StartLinePosition)
}

// GoToDefinition moves the editor to the start of the item
func (ic *ItemCommands) GoToDefinition() {
	ic.scrollTo(TagGoToDefinition, ic.item.StartLinePosition)
}

// GoToEnd moves the editor to the end of the item
func (ic *ItemCommands) GoToEnd() {
	ic.scrollTo(TagGoToEnd, ic.item.EndLinePosition)
}

func (ic *ItemCommands) scrollTo(tag string, pos model.LinePosition) {
	if err := ic.c.host.ScrollToLine(context.Background(), ic.item.FilePath, pos); err != nil {
		ic.c.log.Log(tag, err)
	}
}

// SelectInCode selects the item's source in the editor
func (ic *ItemCommands) SelectInCode() {
	if err := ic.c.host.SelectSpan(context.Background(), ic.item.FilePath, ic.item.Span); err != nil {
		ic.c.log.Log(TagSelectInCode, err)
	}
}

// CopyName puts the item's name on the clipboard
func (ic *ItemCommands) CopyName() {
	if err := ic.c.host.SetClipboard(ic.item.Name); err != nil {
		ic.c.log.Log(TagCopyName, err)
	}
}

// Refresh re-parses the item's document
func (ic *ItemCommands) Refresh() {
	doc, ok := ic.document(TagRefresh)
	if !ok {
		return
	}
	if err := ic.c.host.UpdateDocument(doc); err != nil {
		ic.c.log.Log(TagRefresh, err)
	}
}

// ExpandAll expands the item and everything below it
func (ic *ItemCommands) ExpandAll() {
	ic.c.host.ToggleAll(true, []*model.Item{ic.item})
}

// CollapseAll collapses the item and everything below it
func (ic *ItemCommands) CollapseAll() {
	ic.c.host.ToggleAll(false, []*model.Item{ic.item})
}

// ClearHistory forgets the navigation history of the item's document
func (ic *ItemCommands) ClearHistory() {
	doc, ok := ic.document(TagClearHistory)
	if !ok {
		return
	}

	doc.ClearHistory()
	ic.c.saveDocument(TagClearHistory, doc)
}
