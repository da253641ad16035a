package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/codenav/internal/diff"
	"github.com/pstuifzand/codenav/internal/document"
	"github.com/pstuifzand/codenav/internal/model"
	"github.com/pstuifzand/codenav/internal/ui"
)

// errScreenClosed is returned when the terminal goes away while a modal is open
var errScreenClosed = errors.New("screen closed")

// ScrollToLine opens the file in the editor with the cursor at pos
func (a *App) ScrollToLine(ctx context.Context, filePath string, pos model.LinePosition) error {
	return a.edit(ctx, ui.EditorCommandLine(a.cfg.EditorCommand(), filePath, pos, nil))
}

// SelectSpan opens the file in the editor with the byte range selected
func (a *App) SelectSpan(ctx context.Context, filePath string, span model.Span) error {
	src, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	start := ui.PositionAt(src, span.Start)
	end := ui.PositionAt(src, span.End)
	return a.edit(ctx, ui.EditorCommandLine(a.cfg.EditorCommand(), filePath, start, &end))
}

// edit runs the editor and picks up whatever was changed in it
func (a *App) edit(ctx context.Context, commandLine string) error {
	if err := a.runEditor(ctx, commandLine); err != nil {
		return err
	}
	return a.UpdateDocument(a.doc)
}

// SetClipboard copies text to the terminal clipboard
func (a *App) SetClipboard(text string) error {
	a.screen.SetClipboard(text)
	a.status.Info(fmt.Sprintf("Copied %q", text))
	return nil
}

// EditBookmarkStyles shows the style editor on top of the outline and runs
// its own event loop until it is closed
func (a *App) EditBookmarkStyles(doc *document.Document) error {
	a.startPolling()

	editor := ui.NewStyleEditor(doc.BookmarkStyles())
	for !editor.Done() {
		a.render()
		editor.Render(a.screen)
		a.screen.Show()

		var ev tcell.Event
		select {
		case ev = <-a.events:
		case <-a.done:
		}
		if ev == nil {
			return errScreenClosed
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			editor.HandleKey(ev)
		case *tcell.EventResize:
			a.screen.Sync()
		}
	}

	if editor.Saved() {
		doc.SetBookmarkStyles(editor.Styles())
		a.status.Info("Bookmark styles saved")
	}
	return nil
}

// UpdateDocument re-parses the document and replaces the outline when it changed
func (a *App) UpdateDocument(doc *document.Document) error {
	items, err := a.parse(doc.FilePath())
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", doc.FilePath(), err)
	}

	collapsed := collapsedIDs(doc.Items())
	changes := diff.Compute(doc.Items(), items)
	if !a.commands.Update(doc, items) {
		a.status.Info("Outline is up to date")
		return nil
	}
	model.Walk(doc.Items(), func(item *model.Item) bool {
		if collapsed[item.ID] {
			item.Expanded = false
		}
		return true
	})
	if doc == a.doc {
		a.tree.SetItems(doc.Items())
		a.changes.SetResult(changes, doc.FilePath())
	}
	a.status.Info("Outline updated: " + diff.Summary(changes))
	return nil
}

// ToggleAll expands or collapses the items and all their members
func (a *App) ToggleAll(expand bool, items []*model.Item) {
	a.tree.SetExpanded(expand, items)
}

// FilterBookmarks shows only bookmarked items while the document filter is on
func (a *App) FilterBookmarks(doc *document.Document) {
	on := doc.FilterOnBookmarks()
	a.tree.SetBookmarkFilter(on)
	if on && !doc.BookmarksAvailable() {
		a.status.Info("No bookmarks")
	}
}

// collapsedIDs returns the IDs of collapsed containers so a new generation
// of the outline can keep them collapsed
func collapsedIDs(items []*model.Item) map[string]bool {
	ids := make(map[string]bool)
	model.Walk(items, func(item *model.Item) bool {
		if item.IsContainer() && !item.Expanded {
			ids[item.ID] = true
		}
		return true
	})
	return ids
}
