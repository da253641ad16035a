package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/codenav/internal/model"
)

func TestComputeNoChanges(t *testing.T) {
	a := []*model.Item{classWith(t, "C1", "M1", "M2")}
	b := []*model.Item{classWith(t, "C1", "M1", "M2")}

	result := Compute(a, b)
	assert.True(t, result.Empty())
	assert.Equal(t, "no changes", Summary(result))
}

func TestComputeAddedRemovedMoved(t *testing.T) {
	a := []*model.Item{classWith(t, "C1", "M1", "M2", "M3")}
	b := []*model.Item{classWith(t, "C1", "M2", "M1", "M4")}

	result := Compute(a, b)

	require.Contains(t, result.Added, "M4")
	require.Contains(t, result.Removed, "M3")
	require.Contains(t, result.Changed, "M1")
	require.Contains(t, result.Changed, "M2")

	assert.True(t, result.Changed["M1"].Moved)
	assert.Equal(t, 0, result.Changed["M1"].OldItem.Position)
	assert.Equal(t, 1, result.Changed["M1"].Item.Position)
	assert.Equal(t, "1 added, 1 removed, 2 changed", Summary(result))
}

func TestComputeRename(t *testing.T) {
	oldItem := model.NewItem("M1", "Add", model.KindMethod)
	newItem := model.NewItem("M1", "AddItem", model.KindMethod)

	result := Compute([]*model.Item{oldItem}, []*model.Item{newItem})

	require.Contains(t, result.Changed, "M1")
	assert.True(t, result.Changed["M1"].Renamed)
	assert.False(t, result.Changed["M1"].Moved)
}

func TestBuildLinesRendersSections(t *testing.T) {
	a := []*model.Item{classWith(t, "C1", "M1")}
	b := []*model.Item{classWith(t, "C1", "M2")}

	text := Render(BuildLines(Compute(a, b), true))

	assert.True(t, strings.Contains(text, "Added:"))
	assert.True(t, strings.Contains(text, "Removed:"))
	assert.True(t, strings.Contains(text, "PARENT: C1 at position 0"))
	assert.True(t, strings.HasSuffix(text, "1 added, 1 removed, 0 changed\n"))
}
