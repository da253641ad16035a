package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cartSource = `package shop

type Cart struct {
	items []string
}

func (c *Cart) Add(item string) {
	c.items = append(c.items, item)
}

func NewCart() *Cart {
	return &Cart{}
}
`

type workspace struct {
	dir  string
	file string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module shop\n"), 0o644))
	file := filepath.Join(dir, "cart.go")
	require.NoError(t, os.WriteFile(file, []byte(cartSource), 0o644))
	return &workspace{dir: dir, file: file}
}

// run executes the CLI against the workspace with the default config
func (w *workspace) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(w.dir, "missing.toml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestListWithoutBookmarks(t *testing.T) {
	w := newWorkspace(t)

	out, err := w.run(t, "list", w.file)
	require.NoError(t, err)
	assert.Equal(t, "No bookmarks\n", out)
}

func TestAddListDelete(t *testing.T) {
	w := newWorkspace(t)

	out, err := w.run(t, "add", w.file, "shop.Cart.Add", "2")
	require.NoError(t, err)
	assert.Equal(t, "Bookmarked shop.Cart.Add with Red\n", out)
	assert.FileExists(t, filepath.Join(w.dir, ".codenav", "solution.json"))

	_, err = w.run(t, "add", w.file, "shop.NewCart", "green")
	require.NoError(t, err)

	out, err = w.run(t, "list", w.file)
	require.NoError(t, err)
	assert.Equal(t, "shop.Cart.Add  method  L7  Red\nshop.NewCart  constructor  L11  Green\n", out)

	out, err = w.run(t, "delete", w.file, "shop.Cart.Add")
	require.NoError(t, err)
	assert.Equal(t, "Removed bookmark of shop.Cart.Add\n", out)

	out, err = w.run(t, "list", w.file)
	require.NoError(t, err)
	assert.Equal(t, "shop.NewCart  constructor  L11  Green\n", out)
}

func TestListAll(t *testing.T) {
	w := newWorkspace(t)

	out, err := w.run(t, "list", "--all", w.file)
	require.NoError(t, err)
	assert.Equal(t, `shop  namespace  L1
  shop.Cart  struct  L3
    shop.Cart.items  field  L4
    shop.Cart.Add  method  L7
  shop.NewCart  constructor  L11
`, out)
}

func TestAddErrors(t *testing.T) {
	w := newWorkspace(t)

	_, err := w.run(t, "add", w.file, "shop.Missing", "1")
	assert.ErrorContains(t, err, "no item")

	_, err = w.run(t, "add", w.file, "shop.Cart", "42")
	assert.ErrorContains(t, err, "style")

	_, err = w.run(t, "add", w.file, "shop.Cart", "mauve")
	assert.ErrorContains(t, err, "mauve")
}

func TestClear(t *testing.T) {
	w := newWorkspace(t)
	_, err := w.run(t, "add", w.file, "shop.Cart", "1")
	require.NoError(t, err)

	out, err := w.run(t, "clear", w.file)
	require.NoError(t, err)
	assert.Equal(t, "Removed 1 bookmarks\n", out)

	out, err = w.run(t, "list", w.file)
	require.NoError(t, err)
	assert.Equal(t, "No bookmarks\n", out)
}

func TestStyles(t *testing.T) {
	w := newWorkspace(t)

	out, err := w.run(t, "styles", w.file)
	require.NoError(t, err)
	assert.Contains(t, out, "1  Default  #d3d3d3 #000000\n")
	assert.Contains(t, out, "7  Purple  #9370db #ffffff\n")
}

func TestSQLiteBackend(t *testing.T) {
	w := newWorkspace(t)

	_, err := w.run(t, "--backend", "sqlite", "add", w.file, "shop.Cart", "3")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(w.dir, ".codenav", "solution.db"))

	out, err := w.run(t, "--backend", "sqlite", "list", w.file)
	require.NoError(t, err)
	assert.Equal(t, "shop.Cart  struct  L3  Orange\n", out)
}

func TestExportToStdout(t *testing.T) {
	w := newWorkspace(t)
	_, err := w.run(t, "add", w.file, "shop.Cart.Add", "1")
	require.NoError(t, err)

	out, err := w.run(t, "export", "--bookmarked", "--format", "yaml", w.file)
	require.NoError(t, err)
	assert.Contains(t, out, "id: shop.Cart.Add")
	assert.Contains(t, out, "bookmark: Default")
	assert.NotContains(t, out, "NewCart")
	assert.NotContains(t, out, "exported:")

	out, err = w.run(t, "export", "--timestamp", "--format", "yaml", w.file)
	require.NoError(t, err)
	assert.Contains(t, out, "exported: ")
}

func TestExportToFile(t *testing.T) {
	w := newWorkspace(t)
	target := filepath.Join(w.dir, "cart.md")

	out, err := w.run(t, "export", w.file, target)
	require.NoError(t, err)
	assert.Equal(t, "Exported to "+target+"\n", out)
	assert.FileExists(t, target)
}

func TestHistoryEmpty(t *testing.T) {
	w := newWorkspace(t)

	out, err := w.run(t, "history", w.file)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = w.run(t, "history", "--clear", w.file)
	require.NoError(t, err)
	assert.Equal(t, "History cleared\n", out)
}

func TestGlobalFlags(t *testing.T) {
	opts := &options{}
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.addFlags(flags)

	require.NoError(t, flags.Parse([]string{"--backend", "sqlite", "--store", "/tmp/bm.db", "--no-color"}))
	assert.Equal(t, "sqlite", opts.backend)
	assert.Equal(t, "/tmp/bm.db", opts.storePath)
	assert.Empty(t, opts.configPath)
	assert.False(t, opts.useColor(os.Stdout))
}
