package theme

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig represents the raw TOML theme configuration
type ThemeConfig struct {
	Name   string            `toml:"name"`
	Colors map[string]string `toml:"colors"`
}

// colorKeys maps the TOML keys of a theme file to the colors they set
func colorKeys(c *Colors) map[string]*tcell.Color {
	return map[string]*tcell.Color{
		"tree_normal_text":     &c.TreeNormalText,
		"tree_selected_item":   &c.TreeSelectedItem,
		"tree_highlight":       &c.TreeHighlight,
		"tree_leaf_arrow":      &c.TreeLeafArrow,
		"tree_expanded_arrow":  &c.TreeExpandedArrow,
		"tree_collapsed_arrow": &c.TreeCollapsedArrow,
		"tree_private_text":    &c.TreePrivateText,
		"tree_history_marker":  &c.TreeHistoryMarker,
		"kind_namespace":       &c.KindNamespace,
		"kind_type":            &c.KindType,
		"kind_function":        &c.KindFunction,
		"kind_value":           &c.KindValue,
		"kind_region":          &c.KindRegion,
		"filter_label":         &c.FilterLabel,
		"filter_text":          &c.FilterText,
		"filter_cursor":        &c.FilterCursor,
		"filter_match_count":   &c.FilterMatchCount,
		"help_background":      &c.HelpBackground,
		"help_border":          &c.HelpBorder,
		"help_title":           &c.HelpTitle,
		"help_content":         &c.HelpContent,
		"status_mode":          &c.StatusMode,
		"status_message":       &c.StatusMessage,
		"status_error":         &c.StatusError,
		"header_title":         &c.HeaderTitle,
	}
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	return []string{
		filepath.Join(home, ".config", "codenav", "themes"),
		filepath.Join(home, ".local", "share", "codenav", "themes"),
	}
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	err = toml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config), nil
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

// configToTheme converts a ThemeConfig to a Theme, with fallback to Tokyo Night for missing colors
func configToTheme(config ThemeConfig) *Theme {
	theme := TokyoNight()
	keys := colorKeys(&theme.Colors)

	for key, value := range config.Colors {
		target, ok := keys[key]
		if !ok {
			log.Printf("theme %s: unknown color %q", config.Name, key)
			continue
		}
		*target = ParseColorString(value)
	}

	if config.Name != "" {
		theme.Name = config.Name
	}

	return theme
}

// LoadThemeOrDefault loads a theme by name, or returns Tokyo Night if not found
func LoadThemeOrDefault(themeName string) *Theme {
	if themeName == "default" {
		return Default()
	}

	theme, err := LoadTheme(themeName)
	if err != nil {
		return TokyoNight()
	}

	return theme
}
