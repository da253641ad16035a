package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/codenav/internal/model"
)

func TestHexToColor(t *testing.T) {
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), HexToColor("#ff0000"))
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), HexToColor("#F00"))
	assert.Equal(t, tcell.ColorDefault, HexToColor("#ff00"))
	assert.Equal(t, tcell.ColorDefault, HexToColor("#gggggg"))
}

func TestParseColorString(t *testing.T) {
	assert.Equal(t, tcell.NewRGBColor(1, 2, 3), ParseColorString("rgb(1, 2, 3)"))
	assert.Equal(t, tcell.ColorDefault, ParseColorString("rgb(1, 2)"))
	assert.Equal(t, tcell.ColorDefault, ParseColorString("blue"))
}

func TestValidateHex(t *testing.T) {
	assert.NoError(t, ValidateHex("#000000"))
	assert.NoError(t, ValidateHex("#abc"))
	assert.Error(t, ValidateHex("red"))
	assert.Error(t, ValidateHex(""))
}

func TestContrastForeground(t *testing.T) {
	assert.Equal(t, "#000000", ContrastForeground("#ffffff"))
	assert.Equal(t, "#000000", ContrastForeground("#d3d3d3"))
	assert.Equal(t, "#ffffff", ContrastForeground("#000000"))
	assert.Equal(t, "#ffffff", ContrastForeground("#1a1b26"))
}

func TestBookmarkStyleDerivesForeground(t *testing.T) {
	style := BookmarkStyle(model.BookmarkStyle{Name: "Dark", Background: "#000000"})
	fg, bg, _ := style.Decompose()

	assert.Equal(t, tcell.NewRGBColor(255, 255, 255), fg)
	assert.Equal(t, tcell.NewRGBColor(0, 0, 0), bg)
}

func TestKindColor(t *testing.T) {
	th := TokyoNight()

	assert.Equal(t, th.Colors.KindType, th.KindColor(model.KindStruct))
	assert.Equal(t, th.Colors.KindFunction, th.KindColor(model.KindMethod))
	assert.Equal(t, th.Colors.KindValue, th.KindColor(model.KindConstant))
	assert.Equal(t, th.Colors.KindRegion, th.KindColor(model.KindRegion))
	assert.Equal(t, th.Colors.TreeNormalText, th.KindColor(model.KindOther))
}

func TestLoadThemeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.toml")
	data := `
name = "mine"

[colors]
kind_type = "#010203"
status_error = "rgb(4, 5, 6)"
not_a_color = "#ffffff"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	th, err := LoadThemeFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "mine", th.Name)
	assert.Equal(t, tcell.NewRGBColor(1, 2, 3), th.Colors.KindType)
	assert.Equal(t, tcell.NewRGBColor(4, 5, 6), th.Colors.StatusError)
	// untouched colors come from Tokyo Night
	assert.Equal(t, TokyoNight().Colors.KindFunction, th.Colors.KindFunction)
}

func TestLoadThemeOrDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	assert.Equal(t, "default", LoadThemeOrDefault("default").Name)
	assert.Equal(t, "tokyo-night", LoadThemeOrDefault("missing").Name)
}
