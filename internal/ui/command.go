package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// CommandLine manages `:command` input
type CommandLine struct {
	active    bool
	input     string
	cursorPos int // byte offset into input
	history   *InputHistory
}

// NewCommandLine creates a command line that remembers the last 50 commands
func NewCommandLine() *CommandLine {
	return &CommandLine{history: NewInputHistory(50)}
}

// Start enters command mode
func (c *CommandLine) Start() {
	c.active = true
	c.input = ""
	c.cursorPos = 0
	c.history.Reset()
}

// Stop exits command mode
func (c *CommandLine) Stop() {
	c.active = false
}

// IsActive returns whether command mode is active
func (c *CommandLine) IsActive() bool {
	return c.active
}

// deleteWordBackwards deletes the word before the cursor
func (c *CommandLine) deleteWordBackwards() {
	pos := c.cursorPos - 1
	for pos >= 0 && (c.input[pos] == ' ' || c.input[pos] == '\t') {
		pos--
	}
	for pos >= 0 && c.input[pos] != ' ' && c.input[pos] != '\t' {
		pos--
	}

	start := pos + 1
	c.input = c.input[:start] + c.input[c.cursorPos:]
	c.cursorPos = start
}

// HandleKey processes a key press. done is true once the command line
// closed; command is empty when it was cancelled.
func (c *CommandLine) HandleKey(ev *tcell.EventKey) (command string, done bool) {
	switch ev.Key() {
	case tcell.KeyCtrlW:
		c.deleteWordBackwards()
	case tcell.KeyEscape:
		c.Stop()
		return "", true
	case tcell.KeyEnter:
		cmd := strings.TrimSpace(c.input)
		c.history.Add(cmd)
		c.Stop()
		return cmd, true
	case tcell.KeyUp:
		if !c.history.IsNavigating() {
			c.history.SetTemporary(c.input)
		}
		if prev, ok := c.history.Previous(); ok {
			c.input = prev
			c.cursorPos = len(c.input)
		}
	case tcell.KeyDown:
		if next, ok := c.history.Next(); ok {
			c.input = next
			c.cursorPos = len(c.input)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if c.cursorPos > 0 {
			runes := []rune(c.input[:c.cursorPos])
			before := string(runes[:len(runes)-1])
			c.input = before + c.input[c.cursorPos:]
			c.cursorPos = len(before)
		} else if c.input == "" {
			// backspace on an empty line leaves command mode
			c.Stop()
			return "", true
		}
	case tcell.KeyDelete:
		if c.cursorPos < len(c.input) {
			runes := []rune(c.input[c.cursorPos:])
			c.input = c.input[:c.cursorPos] + string(runes[1:])
		}
	case tcell.KeyLeft:
		if c.cursorPos > 0 {
			runes := []rune(c.input[:c.cursorPos])
			c.cursorPos -= len(string(runes[len(runes)-1]))
		}
	case tcell.KeyRight:
		if c.cursorPos < len(c.input) {
			runes := []rune(c.input[c.cursorPos:])
			c.cursorPos += len(string(runes[0]))
		}
	case tcell.KeyHome:
		c.cursorPos = 0
	case tcell.KeyEnd:
		c.cursorPos = len(c.input)
	case tcell.KeyCtrlU:
		c.input = c.input[c.cursorPos:]
		c.cursorPos = 0
	case tcell.KeyCtrlK:
		c.input = c.input[:c.cursorPos]
	case tcell.KeyRune:
		s := string(ev.Rune())
		c.input = c.input[:c.cursorPos] + s + c.input[c.cursorPos:]
		c.cursorPos += len(s)
	}

	return "", false
}

// Input returns the current command input
func (c *CommandLine) Input() string {
	return strings.TrimSpace(c.input)
}

// Render renders the command line
func (c *CommandLine) Render(screen *Screen, y int) {
	if !c.active {
		return
	}

	textStyle := screen.FilterTextStyle()
	cursorStyle := screen.FilterCursorStyle()
	width := screen.GetWidth()

	x := screen.DrawString(0, y, ":", screen.FilterLabelStyle())
	for i, r := range c.input {
		if x >= width {
			break
		}
		style := textStyle
		if i == c.cursorPos {
			style = cursorStyle
		}
		screen.SetCell(x, y, r, style)
		x += RuneWidth(r)
	}
	if c.cursorPos >= len(c.input) && x < width {
		screen.SetCell(x, y, ' ', cursorStyle)
		x++
	}
	screen.FillLine(x, y, textStyle)
}
