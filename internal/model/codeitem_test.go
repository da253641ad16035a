package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree(t *testing.T) []*Item {
	t.Helper()

	ns := NewNamespaceItem("N1", "shop")
	class := NewClassItem("C1", "Cart", KindStruct)
	method := NewItem("M1", "Add", KindMethod)
	field := NewItem("F1", "items", KindField)

	require.NoError(t, class.AddMember(field))
	require.NoError(t, class.AddMember(method))
	require.NoError(t, ns.AddMember(class))

	return []*Item{ns}
}

func TestAddMemberSetsParent(t *testing.T) {
	items := buildTree(t)

	method := FindByID(items, "M1")
	require.NotNil(t, method)
	assert.Equal(t, "C1", method.Parent.ID)
	assert.Equal(t, 2, method.Depth())
}

func TestAddMemberToLeafFails(t *testing.T) {
	leaf := NewItem("M1", "Add", KindMethod)
	err := leaf.AddMember(NewItem("M2", "Remove", KindMethod))

	assert.True(t, errors.Is(err, ErrNotContainer))
	assert.Empty(t, leaf.Members)
}

func TestAllItemsKeepsSourceOrder(t *testing.T) {
	items := buildTree(t)

	var ids []string
	for _, item := range AllItems(items) {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"N1", "C1", "F1", "M1"}, ids)
}

func TestWalkCanSkipMembers(t *testing.T) {
	items := buildTree(t)

	var visited []string
	Walk(items, func(item *Item) bool {
		visited = append(visited, item.ID)
		return item.Kind != KindStruct
	})
	assert.Equal(t, []string{"N1", "C1"}, visited)
}

func TestFindByIDMissing(t *testing.T) {
	assert.Nil(t, FindByID(buildTree(t), "nope"))
}

func TestBookmarkZeroValueHasNone(t *testing.T) {
	item := &Item{ID: "X"}
	idx, ok := item.Bookmark()
	assert.False(t, ok)
	assert.Equal(t, -1, idx)

	item.SetBookmark(0)
	idx, ok = item.Bookmark()
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	item.ClearBookmark()
	assert.False(t, item.HasBookmark())
}

func TestSetDocument(t *testing.T) {
	items := buildTree(t)
	SetDocument(items, "/src/cart.go", 3)

	for _, item := range AllItems(items) {
		assert.Equal(t, DocumentID("/src/cart.go"), item.Document)
		assert.Equal(t, uint64(3), item.DocumentGeneration)
	}
}

func TestValidate(t *testing.T) {
	items := buildTree(t)
	require.NoError(t, Validate(items))

	t.Run("duplicate sibling", func(t *testing.T) {
		ns := NewNamespaceItem("N1", "shop")
		require.NoError(t, ns.AddMember(NewItem("A", "a", KindField)))
		require.NoError(t, ns.AddMember(NewItem("A", "a", KindField)))
		assert.Error(t, Validate([]*Item{ns}))
	})

	t.Run("inverted positions", func(t *testing.T) {
		item := NewItem("A", "a", KindMethod)
		item.StartLinePosition = LinePosition{Line: 5}
		item.EndLinePosition = LinePosition{Line: 2}
		assert.Error(t, Validate([]*Item{item}))
	})

	t.Run("inverted span", func(t *testing.T) {
		item := NewItem("A", "a", KindMethod)
		item.Span = Span{Start: 10, End: 3}
		assert.Error(t, Validate([]*Item{item}))
	})
}

func TestLinePositionCompare(t *testing.T) {
	a := LinePosition{Line: 1, Character: 4}
	b := LinePosition{Line: 1, Character: 8}
	c := LinePosition{Line: 2}

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, c.Compare(b))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, "2:5", a.String())
}

func TestParseKind(t *testing.T) {
	kind, ok := ParseKind("Method")
	assert.True(t, ok)
	assert.Equal(t, KindMethod, kind)

	_, ok = ParseKind("widget")
	assert.False(t, ok)
}

func TestCopyLocations(t *testing.T) {
	displayed := buildTree(t)
	parsed := buildTree(t)

	moved := FindByID(parsed, "M1")
	moved.StartLinePosition = LinePosition{Line: 21, Character: 1}
	moved.EndLinePosition = LinePosition{Line: 24}
	moved.StartLine, moved.EndLine = 22, 25
	moved.Span = Span{Start: 300, End: 360}
	moved.Tooltip = "func (c *Cart) Add(n int)"

	method := FindByID(displayed, "M1")
	method.Expanded = true
	CopyLocations(displayed, parsed)

	assert.Same(t, method, FindByID(displayed, "M1"))
	assert.Equal(t, LinePosition{Line: 21, Character: 1}, method.StartLinePosition)
	assert.Equal(t, 22, method.StartLine)
	assert.Equal(t, Span{Start: 300, End: 360}, method.Span)
	assert.Equal(t, "func (c *Cart) Add(n int)", method.Tooltip)
	assert.True(t, method.Expanded)
}

func TestCopyLocationsSkipsMismatchedIDs(t *testing.T) {
	displayed := []*Item{NewItem("A", "a", KindMethod)}
	parsed := []*Item{NewItem("B", "b", KindMethod)}
	parsed[0].StartLine = 40

	CopyLocations(displayed, parsed)

	assert.Equal(t, 0, displayed[0].StartLine)
}
