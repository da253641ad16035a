package ui

import "fmt"

// KeyBinding describes one key of the outline for the help screen
type KeyBinding struct {
	Key         string
	Description string
}

// HelpScreen manages the help display
type HelpScreen struct {
	visible     bool
	keybindings []KeyBinding
}

// NewHelpScreen creates a new HelpScreen
func NewHelpScreen(keybindings []KeyBinding) *HelpScreen {
	return &HelpScreen{keybindings: keybindings}
}

// Toggle toggles the help screen visibility
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
}

// Hide hides the help screen
func (h *HelpScreen) Hide() {
	h.visible = false
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Lines returns the formatted keybindings
func (h *HelpScreen) Lines() []string {
	keyWidth := 0
	for _, kb := range h.keybindings {
		keyWidth = max(keyWidth, StringWidth(kb.Key))
	}

	lines := make([]string, 0, len(h.keybindings))
	for _, kb := range h.keybindings {
		lines = append(lines, fmt.Sprintf("%s  %s", PadStringToWidth(kb.Key, keyWidth), kb.Description))
	}
	return lines
}

// Render renders the help screen
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	width, height := screen.Size()
	lines := h.Lines()
	boxWidth := min(width-2, 60)
	boxHeight := min(height, len(lines)+2)
	x := (width - boxWidth) / 2
	y := (height - boxHeight) / 2

	screen.DrawBox(x, y, boxWidth, boxHeight, "Keybindings (? to close)")
	for i, line := range lines {
		row := y + 1 + i
		if row >= y+boxHeight-1 {
			break
		}
		screen.DrawStringLimited(x+2, row, line, boxWidth-4, screen.HelpStyle())
	}
}
