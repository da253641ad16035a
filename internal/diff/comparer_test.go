package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/codenav/internal/model"
)

func classWith(t *testing.T, id string, memberIDs ...string) *model.Item {
	t.Helper()
	class := model.NewClassItem(id, id, model.KindClass)
	for _, memberID := range memberIDs {
		require.NoError(t, class.AddMember(model.NewItem(memberID, memberID, model.KindMethod)))
	}
	return class
}

func TestEqualIgnoresTransientState(t *testing.T) {
	a := classWith(t, "C1", "M1", "M2")
	b := classWith(t, "C1", "M1", "M2")

	b.Opacity = 0.3
	b.IsHighlighted = true
	b.Members[0].Expanded = true
	b.Members[1].ContextMenuOpen = true
	b.Members[1].SetBookmark(2)

	assert.True(t, Equal(a, b))
}

func TestEqualIsOrderSensitive(t *testing.T) {
	a := classWith(t, "C1", "M1", "M2")
	b := classWith(t, "C1", "M2", "M1")

	assert.False(t, Equal(a, b))
}

func TestEqualDetectsMemberCountChange(t *testing.T) {
	a := classWith(t, "C1", "M1")
	b := classWith(t, "C1", "M1", "M2")

	assert.False(t, Equal(a, b))
}

func TestEqualNilIsNeverEqual(t *testing.T) {
	tree := classWith(t, "C1", "M1")

	assert.False(t, Equal(nil, tree))
	assert.False(t, Equal(tree, nil))
	assert.False(t, Equal(nil, nil))
}

func TestEqualSamePointer(t *testing.T) {
	tree := classWith(t, "C1", "M1")
	assert.True(t, Equal(tree, tree))
}

// A class and a method sharing an ID compare equal: members are only
// inspected when both sides are classes or both are namespaces.
func TestEqualClassAgainstMethodComparesIDOnly(t *testing.T) {
	class := classWith(t, "X", "M1", "M2")
	method := model.NewItem("X", "X", model.KindMethod)

	assert.True(t, Equal(class, method))
	assert.True(t, Equal(method, class))
}

func TestEqualClassAgainstNamespaceSkipsMembers(t *testing.T) {
	class := classWith(t, "X", "M1")
	ns := model.NewNamespaceItem("X", "X")
	require.NoError(t, ns.AddMember(model.NewItem("Other", "Other", model.KindMethod)))

	assert.True(t, Equal(class, ns))
}

func TestEqualRecursesThroughNamespaces(t *testing.T) {
	build := func(methodID string) *model.Item {
		ns := model.NewNamespaceItem("N1", "pkg")
		require.NoError(t, ns.AddMember(classWith(t, "C1", methodID)))
		return ns
	}

	assert.True(t, Equal(build("M1"), build("M1")))
	assert.False(t, Equal(build("M1"), build("M9")))
}

func TestEqualLeavesCompareByID(t *testing.T) {
	a := model.NewItem("M1", "Add", model.KindMethod)
	b := model.NewItem("M1", "Renamed", model.KindProperty)
	c := model.NewItem("M2", "Add", model.KindMethod)

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestEqualSequences(t *testing.T) {
	a := []*model.Item{classWith(t, "C1", "M1"), classWith(t, "C2")}
	b := []*model.Item{classWith(t, "C1", "M1"), classWith(t, "C2")}

	assert.True(t, EqualSequences(a, b))
	assert.False(t, EqualSequences(a, b[:1]))
	assert.True(t, EqualSequences(nil, nil))
}
