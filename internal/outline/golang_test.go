package outline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/codenav/internal/diff"
	"github.com/pstuifzand/codenav/internal/model"
)

const cartSource = `// Package shop sells things
package shop

import "context"

// MaxItems is the cart limit
const MaxItems = 10

var defaultCart *Cart

// Cart holds items
type Cart struct {
	items []string
	Owner string
}

// NewCart creates a cart
func NewCart(owner string) *Cart {
	return &Cart{Owner: owner}
}

// #region mutation

// Add appends an item
func (c *Cart) Add(ctx context.Context, item string) error {
	c.items = append(c.items, item)
	return nil
}

func (c *Cart) Clear() {
	c.items = nil
}

// #endregion

type Store interface {
	Load(ctx context.Context) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
}

func init() {}
func init() {}
`

func names(items []*model.Item) []string {
	var result []string
	for _, item := range items {
		result = append(result, item.Name)
	}
	return result
}

func parseCart(t *testing.T) *model.Item {
	t.Helper()
	items, err := ParseSource("cart.go", []byte(cartSource))
	require.NoError(t, err)
	require.Len(t, items, 1)
	return items[0]
}

func TestParsePackageIsNamespace(t *testing.T) {
	ns := parseCart(t)

	assert.Equal(t, model.VariantNamespace, ns.Variant())
	assert.Equal(t, "shop", ns.ID)
	assert.Equal(t, 1, ns.StartLine)
	assert.Equal(t, 0, ns.Span.Start)
	assert.Equal(t, len(cartSource), ns.Span.End)
	assert.Equal(t,
		[]string{"MaxItems", "defaultCart", "Cart", "NewCart", "mutation", "Store", "init", "init"},
		names(ns.Members))
}

func TestParseStructMembers(t *testing.T) {
	ns := parseCart(t)

	cart := model.FindByID(ns.Members, "shop.Cart")
	require.NotNil(t, cart)
	assert.Equal(t, model.VariantClass, cart.Variant())
	assert.Equal(t, model.KindStruct, cart.Kind)
	assert.Equal(t, []string{"items", "Owner", "Add", "Clear"}, names(cart.Members))

	assert.Equal(t, model.AccessPrivate, cart.Members[0].Access)
	assert.Equal(t, model.AccessPublic, cart.Members[1].Access)
	assert.Contains(t, cart.Tooltip, "Cart holds items")

	add := model.FindByID(ns.Members, "shop.Cart.Add")
	require.NotNil(t, add)
	assert.Equal(t, cart, add.Parent)
	assert.Equal(t, model.KindMethod, add.Kind)
	assert.Equal(t, "(ctx context.Context, item string)", add.Parameters)
	assert.Contains(t, add.Tooltip, "func (c *Cart) Add(ctx context.Context, item string) error")
}

func TestParsePositions(t *testing.T) {
	ns := parseCart(t)

	newCart := model.FindByID(ns.Members, "shop.NewCart")
	require.NotNil(t, newCart)
	assert.Equal(t, model.KindConstructor, newCart.Kind)
	assert.Equal(t, 18, newCart.StartLine)
	assert.Equal(t, 20, newCart.EndLine)
	assert.Equal(t, model.LinePosition{Line: 17, Character: 0}, newCart.StartLinePosition)
	assert.Equal(t, "func NewCart", cartSource[newCart.Span.Start:newCart.Span.Start+len("func NewCart")])
	assert.Equal(t, byte('}'), cartSource[newCart.Span.End-1])
	assert.True(t, newCart.ContainsLine(19))

	require.NoError(t, model.Validate([]*model.Item{ns}))
}

func TestParseRegions(t *testing.T) {
	ns := parseCart(t)

	region := model.FindByID(ns.Members, "shop.#region.mutation")
	require.NotNil(t, region)
	assert.Equal(t, model.KindRegion, region.Kind)
	assert.Equal(t, model.VariantClass, region.Variant())
	// methods stay with their receiver type, so the region is empty
	assert.Empty(t, region.Members)
	assert.Equal(t, 22, region.StartLine)
	assert.Equal(t, 34, region.EndLine)
}

func TestParseRegionGroupsDeclarations(t *testing.T) {
	src := `package p

// #region helpers
func a() {}

// #region inner
func b() {}
// #endregion

// #endregion

func c() {}

// #region open
func d() {}
`
	items, err := ParseSource("p.go", []byte(src))
	require.NoError(t, err)
	ns := items[0]

	assert.Equal(t, []string{"helpers", "c", "open"}, names(ns.Members))
	helpers := ns.Members[0]
	assert.Equal(t, []string{"a", "inner"}, names(helpers.Members))
	assert.Equal(t, []string{"b"}, names(helpers.Members[1].Members))
	assert.Equal(t, []string{"d"}, names(ns.Members[2].Members))
	assert.Equal(t, len(src), ns.Members[2].Span.End)
}

func TestParseInterfaceMethods(t *testing.T) {
	ns := parseCart(t)

	store := model.FindByID(ns.Members, "shop.Store")
	require.NotNil(t, store)
	assert.Equal(t, model.KindInterface, store.Kind)
	assert.Equal(t, []string{"Load", "Save"}, names(store.Members))
	assert.Equal(t, "(ctx context.Context, c *Cart)", store.Members[1].Parameters)
}

func TestParseDuplicateIDsAreUnique(t *testing.T) {
	ns := parseCart(t)

	assert.NotNil(t, model.FindByID(ns.Members, "shop.init"))
	assert.NotNil(t, model.FindByID(ns.Members, "shop.init#2"))
}

func TestParseForeignReceiver(t *testing.T) {
	src := `package p

func (s *Server) Start() {}

func (s *Server) Stop() {}
`
	items, err := ParseSource("server_run.go", []byte(src))
	require.NoError(t, err)

	server := model.FindByID(items, "p.Server")
	require.NotNil(t, server)
	assert.Equal(t, []string{"Start", "Stop"}, names(server.Members))
	assert.Equal(t, 5, server.EndLine)
}

func TestReparseIsStructurallyEqual(t *testing.T) {
	first, err := ParseSource("cart.go", []byte(cartSource))
	require.NoError(t, err)
	second, err := ParseSource("cart.go", []byte(cartSource))
	require.NoError(t, err)

	assert.True(t, diff.EqualSequences(first, second))
}

func TestParseError(t *testing.T) {
	_, err := ParseSource("bad.go", []byte("package"))
	assert.Error(t, err)
}

func TestParseBrokenSourceKeepsRecoveredItems(t *testing.T) {
	src := `package shop

type Cart struct {
	items []string
}

func (c *Cart) Add(item string) {
	c.items = append(c.items,
}
`
	items, err := ParseSource("cart.go", []byte(src))
	require.NoError(t, err)

	cart := model.FindByID(items, "shop.Cart")
	require.NotNil(t, cart)
	assert.NotNil(t, model.FindByID(cart.Members, "shop.Cart.items"))
}

func TestParseDuplicateTypeNames(t *testing.T) {
	src := `package p

type Cart struct{ a int }

type Cart struct{ b int }

func (c *Cart) Add() {}
`
	items, err := ParseSource("dup.go", []byte(src))
	require.NoError(t, err)

	ns := items[0]
	assert.Equal(t, []string{"Cart", "Cart"}, names(ns.Members))
	assert.Equal(t, []string{"a", "Add"}, names(model.FindByID(items, "p.Cart").Members))
	assert.Equal(t, []string{"b"}, names(model.FindByID(items, "p.Cart#2").Members))
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.go")
	require.NoError(t, os.WriteFile(path, []byte(cartSource), 0644))

	items, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, items[0].FilePath)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.go"))
	assert.Error(t, err)
}
