package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pstuifzand/codenav/internal/export"
)

// handleCommand processes a command from command mode
func (a *App) handleCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "q", "quit":
		a.quit = true
	case "e", "refresh":
		if ic := a.rootCommands(); ic != nil {
			ic.Refresh()
		}
	case "goto":
		if len(parts) != 2 {
			a.status.Error("Usage: :goto LINE")
			return
		}
		line, err := strconv.Atoi(parts[1])
		if err != nil || line <= 0 {
			a.status.Error("Invalid line: " + parts[1])
			return
		}
		a.gotoLine(line)
	case "export":
		a.exportCommand(parts[1:])
	case "bookmark":
		if len(parts) != 2 {
			a.status.Error("Usage: :bookmark STYLE")
			return
		}
		a.bookmarkCommand(parts[1])
	case "styles":
		if ic := a.rootCommands(); ic != nil {
			ic.CustomizeBookmarkStyles()
		}
	case "history":
		a.showHistory()
	case "changes":
		if a.changes.Result() == nil {
			a.SetStatus("No changes since the outline was opened")
			return
		}
		a.changes.Show()
	case "help":
		a.help.Toggle()
	case "debug":
		a.debugMode = !a.debugMode
		if a.debugMode {
			a.SetStatus("Debug mode ON")
		} else {
			a.SetStatus("Debug mode OFF")
		}
	default:
		a.status.Error("Unknown command: " + parts[0])
	}
}

// exportCommand handles ":export [-b] PATH"
func (a *App) exportCommand(args []string) {
	out := export.FromDocument(a.doc)
	out.Exported = time.Now()
	out.DateFormat = a.cfg.DateFormat
	if len(args) > 0 && args[0] == "-b" {
		out.BookmarkedOnly = true
		args = args[1:]
	}
	if len(args) != 1 {
		a.status.Error("Usage: :export [-b] FILE.md|FILE.yaml")
		return
	}

	if err := export.ExportToFile(args[0], out); err != nil {
		a.status.Error(err.Error())
		return
	}
	a.SetStatus("Exported to " + args[0])
}

// bookmarkCommand bookmarks the selected item with a style given by
// number (one-based) or name
func (a *App) bookmarkCommand(arg string) {
	ic := a.selectedCommands()
	if ic == nil {
		return
	}

	if n, err := strconv.Atoi(arg); err == nil {
		ic.BookmarkIndex(n - 1)
		return
	}
	for _, style := range a.doc.BookmarkStyles() {
		if strings.EqualFold(style.Name, arg) {
			ic.Bookmark(style)
			return
		}
	}
	a.status.Error("Unknown bookmark style: " + arg)
}

// gotoLine highlights the innermost item containing the one-based line
func (a *App) gotoLine(line int) {
	item := a.tree.Highlight(line)
	if item == nil {
		a.SetStatus(fmt.Sprintf("No item at line %d", line))
		return
	}
	a.SetStatus(fmt.Sprintf("%s at line %d", item.Name, line))
}

// showHistory shows the navigation history on the status line
func (a *App) showHistory() {
	ids := a.doc.HistoryItems()
	if len(ids) == 0 {
		a.SetStatus("History is empty")
		return
	}
	a.SetStatus("History: " + strings.Join(ids, ", "))
}
