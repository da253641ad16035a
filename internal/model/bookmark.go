package model

// BookmarkStyle is a named marker that can be applied to code items.
// Items reference styles by their index in the document's palette.
type BookmarkStyle struct {
	Name       string `json:"name" toml:"name" yaml:"name"`
	Background string `json:"background" toml:"background" yaml:"background"`
	Foreground string `json:"foreground" toml:"foreground" yaml:"foreground"`
}

// Matches reports whether two styles render identically
func (s BookmarkStyle) Matches(other BookmarkStyle) bool {
	return s.Background == other.Background && s.Foreground == other.Foreground
}

// DefaultBookmarkStyles returns the palette new documents start with
func DefaultBookmarkStyles() []BookmarkStyle {
	return []BookmarkStyle{
		{Name: "Default", Background: "#d3d3d3", Foreground: "#000000"},
		{Name: "Red", Background: "#ff4c4c", Foreground: "#ffffff"},
		{Name: "Orange", Background: "#ffa500", Foreground: "#000000"},
		{Name: "Yellow", Background: "#ffe066", Foreground: "#000000"},
		{Name: "Green", Background: "#3cb371", Foreground: "#ffffff"},
		{Name: "Blue", Background: "#1e90ff", Foreground: "#ffffff"},
		{Name: "Purple", Background: "#9370db", Foreground: "#ffffff"},
	}
}
