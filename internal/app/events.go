package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// handleRawEvent processes raw input events
func (a *App) handleRawEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		return
	case *tcell.EventMouse:
		a.handleMouse(ev)
		return
	}

	keyEv, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}

	// Handle command mode input
	if a.cmdline.IsActive() {
		if cmd, done := a.cmdline.HandleKey(keyEv); done {
			a.handleCommand(cmd)
		}
		return
	}

	// Handle filter input
	if a.filter.IsActive() {
		if a.filter.HandleKey(keyEv) {
			a.tree.SetNameFilter(a.filter.Query())
		}
		return
	}

	if a.changes.IsVisible() {
		a.changes.HandleKeyEvent(keyEv)
		return
	}

	// Handle help screen
	if a.help.IsVisible() {
		if keyEv.Key() == tcell.KeyEscape || keyEv.Rune() == '?' {
			a.help.Hide()
		}
		return
	}

	a.handleKeypress(keyEv)
}

// handleKeypress handles a single keypress in outline mode
func (a *App) handleKeypress(ev *tcell.EventKey) {
	if a.debugMode {
		a.SetStatus(fmt.Sprintf("Key: %v | Rune: %q | Modifiers: %v", ev.Key(), ev.Rune(), ev.Modifiers()))
	}

	if a.pendingPrefix != 0 {
		prefix := a.pendingPrefix
		a.pendingPrefix = 0
		if ev.Key() != tcell.KeyRune {
			return
		}
		if pkb := a.GetPendingKeyBindingByPrefix(prefix); pkb != nil {
			if kb, ok := pkb.Sequences[ev.Rune()]; ok {
				kb.Handler(a)
			}
		}
		return
	}

	switch ev.Key() {
	case tcell.KeyDown:
		a.tree.SelectNext()
		return
	case tcell.KeyUp:
		a.tree.SelectPrev()
		return
	case tcell.KeyLeft:
		a.tree.Collapse()
		return
	case tcell.KeyRight:
		a.tree.Expand()
		return
	case tcell.KeyHome:
		a.tree.SelectFirst()
		return
	case tcell.KeyEnd:
		a.tree.SelectLast()
		return
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		a.tree.ScrollPageDown(a.pageSize())
		return
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		a.tree.ScrollPageUp(a.pageSize())
		return
	case tcell.KeyTab:
		a.tree.ToggleExpanded()
		return
	case tcell.KeyEnter:
		if ic := a.selectedCommands(); ic != nil {
			ic.Click()
		}
		return
	case tcell.KeyEscape:
		// Esc drops an applied name filter
		if a.tree.NameFilter() != "" {
			a.filter.Clear()
			a.tree.SetNameFilter("")
		}
		return
	case tcell.KeyRune:
	default:
		return
	}

	if pkb := a.GetPendingKeyBindingByPrefix(ev.Rune()); pkb != nil {
		a.pendingPrefix = pkb.Prefix
		return
	}
	if kb := a.GetKeybindingByKey(ev.Rune()); kb != nil {
		kb.Handler(a)
	}
}

func (a *App) pageSize() int {
	return max(a.screen.GetHeight()-treeStartY-1, 1)
}

// handleMouse selects the clicked item and scrolls with the wheel
func (a *App) handleMouse(ev *tcell.EventMouse) {
	_, y := ev.Position()
	switch ev.Buttons() {
	case tcell.Button1:
		if idx, ok := a.tree.ItemAtRow(y, treeStartY); ok {
			a.tree.SelectItem(idx)
		}
	case tcell.Button2:
		if idx, ok := a.tree.ItemAtRow(y, treeStartY); ok {
			a.tree.SelectItem(idx)
			a.tree.ToggleExpanded()
		}
	case tcell.WheelUp:
		a.tree.SelectPrev()
	case tcell.WheelDown:
		a.tree.SelectNext()
	}
}
