package ui

import (
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/codenav/internal/diff"
)

// ChangesView displays what the last refresh changed in the outline
type ChangesView struct {
	visible      bool
	result       *diff.Result
	lines        []diff.Line
	scrollOffset int
	maxHeight    int
	fileName     string
}

// NewChangesView creates a new changes view
func NewChangesView() *ChangesView {
	return &ChangesView{}
}

// SetResult remembers the changes of the latest refresh of the file
func (cv *ChangesView) SetResult(result *diff.Result, file string) {
	cv.result = result
	cv.fileName = filepath.Base(file)
	cv.lines = diff.BuildLines(result, true)
	cv.scrollOffset = 0
}

// Result returns the latest changes, nil when the outline was never refreshed
func (cv *ChangesView) Result() *diff.Result {
	return cv.result
}

// Show displays the view
func (cv *ChangesView) Show() {
	cv.scrollOffset = 0
	cv.visible = true
}

// Hide closes the view
func (cv *ChangesView) Hide() {
	cv.visible = false
}

// IsVisible returns whether the view is currently visible
func (cv *ChangesView) IsVisible() bool {
	return cv.visible
}

// Lines returns the rendered lines of the changes
func (cv *ChangesView) Lines() []diff.Line {
	return cv.lines
}

// HandleKeyEvent processes keyboard input
func (cv *ChangesView) HandleKeyEvent(ev *tcell.EventKey) {
	if !cv.visible {
		return
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		cv.Hide()
	case tcell.KeyUp:
		cv.scroll(-1)
	case tcell.KeyDown:
		cv.scroll(1)
	case tcell.KeyPgUp, tcell.KeyCtrlU:
		cv.scroll(-cv.maxHeight / 2)
	case tcell.KeyPgDn, tcell.KeyCtrlD:
		cv.scroll(cv.maxHeight / 2)
	case tcell.KeyHome:
		cv.scrollOffset = 0
	case tcell.KeyEnd:
		cv.scroll(len(cv.lines))
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			cv.Hide()
		case 'j':
			cv.scroll(1)
		case 'k':
			cv.scroll(-1)
		}
	}
}

func (cv *ChangesView) scroll(lines int) {
	maxScroll := max(len(cv.lines)-cv.maxHeight, 0)
	cv.scrollOffset = min(max(cv.scrollOffset+lines, 0), maxScroll)
}

// Render draws the view on the screen
func (cv *ChangesView) Render(screen *Screen) {
	if !cv.visible {
		return
	}

	width, height := screen.Size()
	boxWidth := width - 4
	boxHeight := height - 2
	if boxWidth < 20 || boxHeight < 5 {
		return
	}
	x, y := 2, 1
	cv.maxHeight = boxHeight - 3

	screen.DrawBox(x, y, boxWidth, boxHeight, "Changes: "+cv.fileName)

	end := min(cv.scrollOffset+cv.maxHeight, len(cv.lines))
	for i := cv.scrollOffset; i < end; i++ {
		line := cv.lines[i]
		text := strings.Repeat("  ", line.Indent) + line.Content
		screen.DrawStringLimited(x+2, y+1+i-cv.scrollOffset, TruncateToWidth(text, boxWidth-4), boxWidth-4, screen.ChangeStyle(line.Type))
	}

	screen.DrawStringLimited(x+2, y+boxHeight-2, "j/k: scroll | q/Esc: close", boxWidth-4, screen.ChangeStyle(diff.LineDetail))
}
