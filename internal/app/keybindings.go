package app

import (
	"fmt"
	"sort"

	"github.com/pstuifzand/codenav/internal/command"
	"github.com/pstuifzand/codenav/internal/ui"
)

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Key         rune
	Description string
	Handler     func(*App)
}

// PendingKeyBinding represents a pending key (like 'g' or 'z') that waits for a second key
type PendingKeyBinding struct {
	Prefix      rune
	Description string
	Sequences   map[rune]KeyBinding
}

// withSelected runs fn on the commands of the selected item
func withSelected(fn func(app *App, ic *command.ItemCommands)) func(*App) {
	return func(app *App) {
		if ic := app.selectedCommands(); ic != nil {
			fn(app, ic)
		}
	}
}

// InitializeKeybindings sets up all the key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	bindings := []KeyBinding{
		{
			Key:         'j',
			Description: "Move down",
			Handler: func(app *App) {
				app.tree.SelectNext()
			},
		},
		{
			Key:         'k',
			Description: "Move up",
			Handler: func(app *App) {
				app.tree.SelectPrev()
			},
		},
		{
			Key:         'h',
			Description: "Collapse item or go to parent",
			Handler: func(app *App) {
				app.tree.Collapse()
			},
		},
		{
			Key:         'l',
			Description: "Expand item",
			Handler: func(app *App) {
				app.tree.Expand()
			},
		},
		{
			Key:         'p',
			Description: "Go to parent",
			Handler: func(app *App) {
				app.tree.SelectParent()
			},
		},
		{
			Key:         'G',
			Description: "Go to last item",
			Handler: func(app *App) {
				app.tree.SelectLast()
			},
		},
		{
			Key:         'o',
			Description: "Open item in editor",
			Handler: withSelected(func(app *App, ic *command.ItemCommands) {
				ic.Click()
			}),
		},
		{
			Key:         'e',
			Description: "Go to end of item",
			Handler: withSelected(func(app *App, ic *command.ItemCommands) {
				ic.GoToEnd()
			}),
		},
		{
			Key:         'v',
			Description: "Select item in editor",
			Handler: withSelected(func(app *App, ic *command.ItemCommands) {
				ic.SelectInCode()
			}),
		},
		{
			Key:         'y',
			Description: "Copy name",
			Handler: withSelected(func(app *App, ic *command.ItemCommands) {
				ic.CopyName()
			}),
		},
		{
			Key:         'x',
			Description: "Delete bookmark",
			Handler: withSelected(func(app *App, ic *command.ItemCommands) {
				ic.DeleteBookmark()
			}),
		},
		{
			Key:         'X',
			Description: "Clear all bookmarks",
			Handler: func(app *App) {
				if ic := app.rootCommands(); ic != nil {
					ic.ClearBookmarks()
					app.SetStatus("Bookmarks cleared")
				}
			},
		},
		{
			Key:         'b',
			Description: "Show only bookmarks",
			Handler: func(app *App) {
				if ic := app.rootCommands(); ic != nil {
					ic.FilterBookmarks()
				}
			},
		},
		{
			Key:         'S',
			Description: "Customize bookmark styles",
			Handler: func(app *App) {
				if ic := app.rootCommands(); ic != nil {
					ic.CustomizeBookmarkStyles()
				}
			},
		},
		{
			Key:         'H',
			Description: "Clear navigation history",
			Handler: func(app *App) {
				if ic := app.rootCommands(); ic != nil {
					ic.ClearHistory()
					app.SetStatus("History cleared")
				}
			},
		},
		{
			Key:         'r',
			Description: "Refresh outline",
			Handler: func(app *App) {
				if ic := app.rootCommands(); ic != nil {
					ic.Refresh()
				}
			},
		},
		{
			Key:         '/',
			Description: "Filter by name",
			Handler: func(app *App) {
				app.filter.Start()
			},
		},
		{
			Key:         ':',
			Description: "Command mode",
			Handler: func(app *App) {
				app.cmdline.Start()
			},
		},
		{
			Key:         '?',
			Description: "Toggle help",
			Handler: func(app *App) {
				app.help.Toggle()
			},
		},
		{
			Key:         'q',
			Description: "Quit",
			Handler: func(app *App) {
				app.Quit()
			},
		},
	}

	for n := 1; n <= 9; n++ {
		index := n - 1
		bindings = append(bindings, KeyBinding{
			Key:         rune('0' + n),
			Description: fmt.Sprintf("Bookmark with style %d", n),
			Handler: withSelected(func(app *App, ic *command.ItemCommands) {
				ic.BookmarkIndex(index)
			}),
		})
	}
	return bindings
}

// InitializePendingKeybindings sets up pending key bindings (keys that wait for a second key)
func (a *App) InitializePendingKeybindings() []PendingKeyBinding {
	return []PendingKeyBinding{
		{
			Prefix:      'g',
			Description: "Go to",
			Sequences: map[rune]KeyBinding{
				'g': {
					Key:         'g',
					Description: "Go to first item",
					Handler: func(app *App) {
						app.tree.SelectFirst()
					},
				},
				'd': {
					Key:         'd',
					Description: "Go to definition",
					Handler: withSelected(func(app *App, ic *command.ItemCommands) {
						ic.GoToDefinition()
					}),
				},
				'e': {
					Key:         'e',
					Description: "Go to end of item",
					Handler: withSelected(func(app *App, ic *command.ItemCommands) {
						ic.GoToEnd()
					}),
				},
			},
		},
		{
			Prefix:      'z',
			Description: "Folding",
			Sequences: map[rune]KeyBinding{
				'o': {
					Key:         'o',
					Description: "Expand item and its members",
					Handler: withSelected(func(app *App, ic *command.ItemCommands) {
						ic.ExpandAll()
					}),
				},
				'c': {
					Key:         'c',
					Description: "Collapse item and its members",
					Handler: withSelected(func(app *App, ic *command.ItemCommands) {
						ic.CollapseAll()
					}),
				},
				'R': {
					Key:         'R',
					Description: "Expand everything",
					Handler: func(app *App) {
						app.ToggleAll(true, app.doc.Items())
					},
				},
				'M': {
					Key:         'M',
					Description: "Collapse everything",
					Handler: func(app *App) {
						app.ToggleAll(false, app.doc.Items())
					},
				},
			},
		},
	}
}

// GetKeybindingByKey returns a keybinding for a given key
func (a *App) GetKeybindingByKey(key rune) *KeyBinding {
	for i := range a.keybindings {
		if a.keybindings[i].Key == key {
			return &a.keybindings[i]
		}
	}
	return nil
}

// GetPendingKeyBindingByPrefix returns a pending keybinding for a prefix key
func (a *App) GetPendingKeyBindingByPrefix(prefix rune) *PendingKeyBinding {
	for i := range a.pendingKeybindings {
		if a.pendingKeybindings[i].Prefix == prefix {
			return &a.pendingKeybindings[i]
		}
	}
	return nil
}

// helpEntries lists the bindings for the help screen. The nine bookmark
// keys share one line.
func (a *App) helpEntries() []ui.KeyBinding {
	var entries []ui.KeyBinding
	for _, kb := range a.keybindings {
		if kb.Key >= '1' && kb.Key <= '9' {
			continue
		}
		entries = append(entries, ui.KeyBinding{Key: string(kb.Key), Description: kb.Description})
	}
	entries = append(entries,
		ui.KeyBinding{Key: "1-9", Description: "Bookmark with style 1-9"},
		ui.KeyBinding{Key: "Enter", Description: "Open item in editor"},
		ui.KeyBinding{Key: "Tab", Description: "Toggle expanded"},
	)

	for _, pkb := range a.pendingKeybindings {
		keys := make([]rune, 0, len(pkb.Sequences))
		for key := range pkb.Sequences {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, key := range keys {
			entries = append(entries, ui.KeyBinding{
				Key:         string(pkb.Prefix) + string(key),
				Description: pkb.Sequences[key].Description,
			})
		}
	}
	return entries
}
