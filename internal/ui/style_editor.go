package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/codenav/internal/model"
	"github.com/pstuifzand/codenav/internal/theme"
)

type styleField int

const (
	fieldNone styleField = iota
	fieldName
	fieldBackground
	fieldForeground
)

func (f styleField) String() string {
	switch f {
	case fieldName:
		return "Name"
	case fieldBackground:
		return "Background"
	case fieldForeground:
		return "Foreground"
	}
	return ""
}

// StyleEditor is a modal for editing the bookmark style palette of a document.
//
//	j/k       move between styles
//	n/b/f     edit name, background or foreground
//	a         add a style
//	d         delete the selected style
//	Enter     save and close
//	Esc       discard and close
type StyleEditor struct {
	styles   []model.BookmarkStyle
	selected int

	editing styleField
	input   []rune
	message string

	done  bool
	saved bool
}

// NewStyleEditor starts editing a copy of the palette
func NewStyleEditor(styles []model.BookmarkStyle) *StyleEditor {
	return &StyleEditor{
		styles: append([]model.BookmarkStyle(nil), styles...),
	}
}

// Styles returns the edited palette
func (e *StyleEditor) Styles() []model.BookmarkStyle {
	return append([]model.BookmarkStyle(nil), e.styles...)
}

// Done reports whether the editor was closed
func (e *StyleEditor) Done() bool {
	return e.done
}

// Saved reports whether the editor was closed with Enter
func (e *StyleEditor) Saved() bool {
	return e.saved
}

// HandleKey handles a key press
func (e *StyleEditor) HandleKey(ev *tcell.EventKey) {
	if e.editing != fieldNone {
		e.handleInput(ev)
		return
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		e.done = true
		return
	case tcell.KeyEnter:
		e.done = true
		e.saved = true
		return
	case tcell.KeyUp:
		e.move(-1)
		return
	case tcell.KeyDown:
		e.move(1)
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch ev.Rune() {
	case 'k':
		e.move(-1)
	case 'j':
		e.move(1)
	case 'n':
		e.startInput(fieldName)
	case 'b':
		e.startInput(fieldBackground)
	case 'f':
		e.startInput(fieldForeground)
	case 'a':
		e.styles = append(e.styles, model.BookmarkStyle{
			Name:       fmt.Sprintf("Style %d", len(e.styles)+1),
			Background: "#d3d3d3",
			Foreground: "#000000",
		})
		e.selected = len(e.styles) - 1
	case 'd':
		if len(e.styles) == 0 {
			return
		}
		e.styles = append(e.styles[:e.selected], e.styles[e.selected+1:]...)
		if e.selected >= len(e.styles) {
			e.selected = max(len(e.styles)-1, 0)
		}
	}
}

func (e *StyleEditor) move(delta int) {
	e.selected = min(max(e.selected+delta, 0), max(len(e.styles)-1, 0))
}

func (e *StyleEditor) startInput(field styleField) {
	if len(e.styles) == 0 {
		return
	}
	style := e.styles[e.selected]
	e.editing = field
	e.message = ""
	switch field {
	case fieldName:
		e.input = []rune(style.Name)
	case fieldBackground:
		e.input = []rune(style.Background)
	case fieldForeground:
		e.input = []rune(style.Foreground)
	}
}

func (e *StyleEditor) handleInput(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		e.editing = fieldNone
	case tcell.KeyEnter:
		e.commitInput()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(e.input) > 0 {
			e.input = e.input[:len(e.input)-1]
		}
	case tcell.KeyRune:
		e.input = append(e.input, ev.Rune())
	}
}

func (e *StyleEditor) commitInput() {
	value := string(e.input)
	style := &e.styles[e.selected]

	switch e.editing {
	case fieldName:
		if value == "" {
			e.message = "name cannot be empty"
			return
		}
		style.Name = value
	case fieldBackground:
		if err := theme.ValidateHex(value); err != nil {
			e.message = err.Error()
			return
		}
		style.Background = value
		if style.Foreground == "" {
			style.Foreground = theme.ContrastForeground(value)
		}
	case fieldForeground:
		if value == "" {
			value = theme.ContrastForeground(style.Background)
		}
		if err := theme.ValidateHex(value); err != nil {
			e.message = err.Error()
			return
		}
		style.Foreground = value
	}
	e.editing = fieldNone
}

// Render draws the editor as a centered box
func (e *StyleEditor) Render(screen *Screen) {
	width, height := screen.Size()
	boxWidth := min(width-4, 50)
	boxHeight := min(height-2, len(e.styles)+6)
	x := (width - boxWidth) / 2
	y := (height - boxHeight) / 2

	screen.DrawBox(x, y, boxWidth, boxHeight, "Bookmark styles")
	content := screen.HelpStyle()

	row := y + 1
	for i, style := range e.styles {
		if row >= y+boxHeight-4 {
			break
		}
		marker := "  "
		if i == e.selected {
			marker = "> "
		}
		col := x + 2
		col += screen.DrawString(col, row, marker, content)
		col += screen.DrawStringLimited(col, row, " "+style.Name+" ", boxWidth-20, theme.BookmarkStyle(style))
		screen.DrawString(col+1, row, style.Background+" "+style.Foreground, content)
		row++
	}

	status := "n name  b bg  f fg  a add  d del  Enter save  Esc cancel"
	if e.editing != fieldNone {
		status = e.editing.String() + ": " + string(e.input)
	}
	screen.DrawStringLimited(x+2, y+boxHeight-3, status, boxWidth-4, content)
	if e.message != "" {
		screen.DrawStringLimited(x+2, y+boxHeight-2, e.message, boxWidth-4, screen.StatusErrorStyle())
	}
}
