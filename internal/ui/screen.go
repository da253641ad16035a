package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/codenav/internal/diff"
	"github.com/pstuifzand/codenav/internal/model"
	"github.com/pstuifzand/codenav/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates a new Screen on the terminal with the given theme
func NewScreen(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenWith(tcellScreen, t)
}

// NewScreenWith wraps an existing tcell screen, such as a simulation screen
func NewScreenWith(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	if t == nil {
		t = theme.Default()
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Suspend releases terminal control temporarily
func (s *Screen) Suspend() error {
	return s.tcellScreen.Suspend()
}

// Resume restores terminal control after suspension
func (s *Screen) Resume() error {
	return s.tcellScreen.Resume()
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws a string at the given position and returns the number of columns used
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	col := x
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetCell(col, y, r, style)
		col += w
	}
	return col - x
}

// DrawStringLimited draws a string, truncating it if it exceeds maxWidth columns
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return 0
	}
	return s.DrawString(x, y, TruncateToWidthWithEllipsis(text, maxWidth), style)
}

// FillLine fills the rest of a line starting at x
func (s *Screen) FillLine(x, y int, style tcell.Style) {
	for ; x < s.width; x++ {
		s.SetCell(x, y, ' ', style)
	}
}

// PollEvent polls for the next event (key press, mouse, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// PostEvent queues an event for the event loop. It is safe to call from any goroutine.
func (s *Screen) PostEvent(ev tcell.Event) error {
	return s.tcellScreen.PostEvent(ev)
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync repaints the whole screen, used after an external program drew on it
func (s *Screen) Sync() {
	s.tcellScreen.Sync()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// EnableMouse enables mouse support on the screen
func (s *Screen) EnableMouse() {
	s.tcellScreen.EnableMouse()
}

// SetClipboard puts text on the terminal clipboard (OSC 52)
func (s *Screen) SetClipboard(text string) {
	s.tcellScreen.SetClipboard([]byte(text))
}

// Theme-aware style methods

// TreeNormalStyle returns the style for normal tree items
func (s *Screen) TreeNormalStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TreeNormalText)
}

// TreeSelectedStyle returns the style for the selected tree item
func (s *Screen) TreeSelectedStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TreeSelectedItem).Reverse(true).Bold(true)
}

// TreeHighlightStyle returns the row style of the item under the editor cursor
func (s *Screen) TreeHighlightStyle() tcell.Style {
	return tcell.StyleDefault.Background(s.Theme.Colors.TreeHighlight)
}

// TreeLeafArrowStyle returns the style for the marker of items without members
func (s *Screen) TreeLeafArrowStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TreeLeafArrow)
}

// TreeExpandableArrowStyle returns the style for the arrow of container items
func (s *Screen) TreeExpandableArrowStyle(expanded bool) tcell.Style {
	if expanded {
		return theme.ColorToStyle(s.Theme.Colors.TreeExpandedArrow)
	}
	return theme.ColorToStyle(s.Theme.Colors.TreeCollapsedArrow)
}

// KindStyle returns the style for the name of an item
func (s *Screen) KindStyle(item *model.Item) tcell.Style {
	if item.Access == model.AccessPrivate && item.Kind != model.KindRegion && item.Kind != model.KindNamespace {
		return theme.ColorToStyle(s.Theme.Colors.TreePrivateText)
	}
	return theme.ColorToStyle(s.Theme.KindColor(item.Kind))
}

// ParameterStyle returns the style for the parameter list after a function name
func (s *Screen) ParameterStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TreeLeafArrow).Dim(true)
}

// HistoryMarkerStyle returns the style for the navigation history marker
func (s *Screen) HistoryMarkerStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TreeHistoryMarker).Bold(true)
}

// FilterLabelStyle returns the style for the filter label
func (s *Screen) FilterLabelStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FilterLabel)
}

// FilterTextStyle returns the style for the filter text
func (s *Screen) FilterTextStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FilterText)
}

// FilterCursorStyle returns the style for the filter cursor
func (s *Screen) FilterCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FilterCursor).Reverse(true)
}

// FilterMatchCountStyle returns the style for the match count
func (s *Screen) FilterMatchCountStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FilterMatchCount)
}

// HelpStyle returns the style for help background
func (s *Screen) HelpStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpContent, s.Theme.Colors.HelpBackground)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpBorder, s.Theme.Colors.HelpBackground)
}

// HelpTitleStyle returns the style for help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpTitle, s.Theme.Colors.HelpBackground).Bold(true)
}

// StatusModeStyle returns the style for mode indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMode).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMessage)
}

// StatusErrorStyle returns the style for error messages
func (s *Screen) StatusErrorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusError)
}

// HeaderStyle returns the style for header title
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.HeaderTitle).Bold(true)
}

// DrawBox draws a bordered box with a title
func (s *Screen) DrawBox(x, y, w, h int, title string) {
	border := s.HelpBorderStyle()
	fill := s.HelpStyle()

	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetCell(col, row, ' ', fill)
		}
	}
	for col := x + 1; col < x+w-1; col++ {
		s.SetCell(col, y, '─', border)
		s.SetCell(col, y+h-1, '─', border)
	}
	for row := y + 1; row < y+h-1; row++ {
		s.SetCell(x, row, '│', border)
		s.SetCell(x+w-1, row, '│', border)
	}
	s.SetCell(x, y, '┌', border)
	s.SetCell(x+w-1, y, '┐', border)
	s.SetCell(x, y+h-1, '└', border)
	s.SetCell(x+w-1, y+h-1, '┘', border)

	if title != "" {
		s.DrawStringLimited(x+2, y, " "+title+" ", w-4, s.HelpTitleStyle())
	}
}

// ChangeStyle returns the style of a line in the outline changes overlay
func (s *Screen) ChangeStyle(lineType diff.LineType) tcell.Style {
	c := s.Theme.Colors
	switch lineType {
	case diff.LineAddedSection, diff.LineAdded:
		return theme.ColorPairToStyle(c.StatusMessage, c.HelpBackground)
	case diff.LineRemovedSection, diff.LineRemoved:
		return theme.ColorPairToStyle(c.StatusError, c.HelpBackground)
	case diff.LineChangedSection, diff.LineChanged:
		return theme.ColorPairToStyle(c.TreeHistoryMarker, c.HelpBackground)
	case diff.LineDetail:
		return theme.ColorPairToStyle(c.TreeLeafArrow, c.HelpBackground)
	case diff.LineHeader, diff.LineSummary:
		return theme.ColorPairToStyle(c.HelpTitle, c.HelpBackground).Bold(true)
	}
	return s.HelpStyle()
}
