package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Filter is the name filter input shown at the bottom of the outline
type Filter struct {
	query     []rune
	cursorPos int
	active    bool
}

// NewFilter creates an inactive filter input
func NewFilter() *Filter {
	return &Filter{}
}

// Start starts filter input, keeping the current query for editing
func (f *Filter) Start() {
	f.active = true
	f.cursorPos = len(f.query)
}

// Stop leaves filter input; the query stays applied
func (f *Filter) Stop() {
	f.active = false
}

// Clear removes the query
func (f *Filter) Clear() {
	f.query = nil
	f.cursorPos = 0
}

// IsActive returns whether filter input is active
func (f *Filter) IsActive() bool {
	return f.active
}

// Query returns the current query
func (f *Filter) Query() string {
	return string(f.query)
}

// HandleKey handles key presses during filter input and reports whether the query changed
func (f *Filter) HandleKey(ev *tcell.EventKey) bool {
	if !f.active {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		f.Stop()
		changed := len(f.query) > 0
		f.Clear()
		return changed
	case tcell.KeyEnter:
		f.Stop()
		return false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if f.cursorPos > 0 {
			f.query = append(f.query[:f.cursorPos-1], f.query[f.cursorPos:]...)
			f.cursorPos--
			return true
		}
	case tcell.KeyDelete:
		if f.cursorPos < len(f.query) {
			f.query = append(f.query[:f.cursorPos], f.query[f.cursorPos+1:]...)
			return true
		}
	case tcell.KeyCtrlU:
		changed := len(f.query) > 0
		f.Clear()
		return changed
	case tcell.KeyLeft:
		if f.cursorPos > 0 {
			f.cursorPos--
		}
	case tcell.KeyRight:
		if f.cursorPos < len(f.query) {
			f.cursorPos++
		}
	case tcell.KeyHome:
		f.cursorPos = 0
	case tcell.KeyEnd:
		f.cursorPos = len(f.query)
	case tcell.KeyRune:
		r := ev.Rune()
		f.query = append(f.query[:f.cursorPos], append([]rune{r}, f.query[f.cursorPos:]...)...)
		f.cursorPos++
		return true
	}
	return false
}

// Render renders the filter bar on the screen
func (f *Filter) Render(screen *Screen, y int, matchCount int) {
	labelStyle := screen.FilterLabelStyle()
	textStyle := screen.FilterTextStyle()
	cursorStyle := screen.FilterCursorStyle()

	x := screen.DrawString(0, y, "Filter: ", labelStyle)
	for i, r := range f.query {
		style := textStyle
		if f.active && i == f.cursorPos {
			style = cursorStyle
		}
		screen.SetCell(x, y, r, style)
		x += RuneWidth(r)
	}
	if f.active && f.cursorPos >= len(f.query) {
		screen.SetCell(x, y, ' ', cursorStyle)
		x++
	}
	screen.FillLine(x, y, textStyle)

	count := fmt.Sprintf(" (%d matches)", matchCount)
	if matchCount == 0 {
		count = " (no matches)"
	}
	screen.DrawString(screen.GetWidth()-StringWidth(count), y, count, screen.FilterMatchCountStyle())
}
