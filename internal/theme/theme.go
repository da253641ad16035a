package theme

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/codenav/internal/model"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	// Tree view colors
	TreeNormalText     tcell.Color
	TreeSelectedItem   tcell.Color
	TreeHighlight      tcell.Color
	TreeLeafArrow      tcell.Color
	TreeExpandedArrow  tcell.Color
	TreeCollapsedArrow tcell.Color
	TreePrivateText    tcell.Color
	TreeHistoryMarker  tcell.Color

	// Item kinds
	KindNamespace tcell.Color
	KindType      tcell.Color
	KindFunction  tcell.Color
	KindValue     tcell.Color
	KindRegion    tcell.Color

	// Filter bar colors
	FilterLabel      tcell.Color
	FilterText       tcell.Color
	FilterCursor     tcell.Color
	FilterMatchCount tcell.Color

	// Help overlay and modal colors
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color
	HelpContent    tcell.Color

	// Status line colors
	StatusMode    tcell.Color
	StatusMessage tcell.Color
	StatusError   tcell.Color

	// Header colors
	HeaderTitle tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// KindColor returns the color used for the name of an item of the given kind
func (t *Theme) KindColor(kind model.Kind) tcell.Color {
	switch kind {
	case model.KindNamespace:
		return t.Colors.KindNamespace
	case model.KindClass, model.KindStruct, model.KindInterface, model.KindEnum,
		model.KindRecord, model.KindDelegate:
		return t.Colors.KindType
	case model.KindMethod, model.KindConstructor, model.KindIndexer, model.KindEvent:
		return t.Colors.KindFunction
	case model.KindField, model.KindProperty, model.KindConstant, model.KindVariable,
		model.KindEnumMember:
		return t.Colors.KindValue
	case model.KindRegion:
		return t.Colors.KindRegion
	}
	return t.Colors.TreeNormalText
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	d := tcell.ColorDefault
	return &Theme{
		Name: "default",
		Colors: Colors{
			TreeNormalText:     d,
			TreeSelectedItem:   d,
			TreeHighlight:      d,
			TreeLeafArrow:      d,
			TreeExpandedArrow:  d,
			TreeCollapsedArrow: d,
			TreePrivateText:    d,
			TreeHistoryMarker:  d,
			KindNamespace:      d,
			KindType:           d,
			KindFunction:       d,
			KindValue:          d,
			KindRegion:         d,
			FilterLabel:        d,
			FilterText:         d,
			FilterCursor:       d,
			FilterMatchCount:   d,
			HelpBackground:     d,
			HelpBorder:         d,
			HelpTitle:          d,
			HelpContent:        d,
			StatusMode:         d,
			StatusMessage:      d,
			StatusError:        d,
			HeaderTitle:        d,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			TreeNormalText:     HexToColor("#c0caf5"), // Light gray-blue
			TreeSelectedItem:   HexToColor("#7aa2f7"), // Blue
			TreeHighlight:      HexToColor("#292e42"), // Line highlight
			TreeLeafArrow:      HexToColor("#565f89"), // Comment gray
			TreeExpandedArrow:  HexToColor("#7dcfff"), // Cyan
			TreeCollapsedArrow: HexToColor("#7dcfff"), // Cyan
			TreePrivateText:    HexToColor("#737aa2"),
			TreeHistoryMarker:  HexToColor("#e0af68"), // Yellow
			KindNamespace:      HexToColor("#bb9af7"), // Magenta
			KindType:           HexToColor("#2ac3de"),
			KindFunction:       HexToColor("#7aa2f7"), // Blue
			KindValue:          HexToColor("#9ece6a"), // Green
			KindRegion:         HexToColor("#565f89"), // Comment gray
			FilterLabel:        HexToColor("#bb9af7"), // Magenta
			FilterText:         HexToColor("#c0caf5"),
			FilterCursor:       HexToColor("#7aa2f7"),
			FilterMatchCount:   HexToColor("#9ece6a"),
			HelpBackground:     HexToColor("#1a1b26"), // Dark background
			HelpBorder:         HexToColor("#7dcfff"),
			HelpTitle:          HexToColor("#bb9af7"),
			HelpContent:        HexToColor("#c0caf5"),
			StatusMode:         HexToColor("#bb9af7"),
			StatusMessage:      HexToColor("#9ece6a"),
			StatusError:        HexToColor("#f7768e"), // Red
			HeaderTitle:        HexToColor("#bb9af7"),
		},
	}
}
