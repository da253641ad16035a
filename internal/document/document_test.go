package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/codenav/internal/model"
)

func outline(t *testing.T) []*model.Item {
	t.Helper()
	class := model.NewClassItem("C1", "Cart", model.KindClass)
	require.NoError(t, class.AddMember(model.NewItem("M1", "Add", model.KindMethod)))
	require.NoError(t, class.AddMember(model.NewItem("M2", "Remove", model.KindMethod)))
	return []*model.Item{class}
}

func TestSetItemsPointsItemsAtDocument(t *testing.T) {
	doc := New("/src/cart.go")
	doc.SetItems(outline(t))

	for _, item := range model.AllItems(doc.Items()) {
		assert.Equal(t, model.DocumentID("/src/cart.go"), item.Document)
	}
}

func TestSetItemsRestoresBookmarksByID(t *testing.T) {
	doc := New("/src/cart.go")
	doc.AddBookmark("M2", 3)

	doc.SetItems(outline(t))

	m2 := model.FindByID(doc.Items(), "M2")
	idx, ok := m2.Bookmark()
	require.True(t, ok)
	assert.Equal(t, 3, idx)
	assert.False(t, model.FindByID(doc.Items(), "M1").HasBookmark())
}

func TestDanglingStyleBehavesAsNoBookmark(t *testing.T) {
	state := NewState("/src/cart.go")
	state.Bookmarks["M1"] = 42
	doc := FromState(state, DefaultMaxHistory)

	doc.SetItems(outline(t))

	m1 := model.FindByID(doc.Items(), "M1")
	assert.False(t, m1.HasBookmark())
	_, ok := doc.StyleFor(m1)
	assert.False(t, ok)

	snapshot := doc.Snapshot()
	assert.NotContains(t, snapshot.Bookmarks, "M1")
}

func TestShrinkingPaletteDropsBookmarks(t *testing.T) {
	doc := New("/src/cart.go")
	doc.SetItems(outline(t))
	doc.AddBookmark("M1", 6)
	doc.ApplyBookmarks()
	require.True(t, model.FindByID(doc.Items(), "M1").HasBookmark())

	doc.SetBookmarkStyles(model.DefaultBookmarkStyles()[:2])
	doc.ApplyBookmarks()

	assert.False(t, model.FindByID(doc.Items(), "M1").HasBookmark())
}

func TestClearBookmarks(t *testing.T) {
	doc := New("/src/cart.go")
	doc.AddBookmark("M1", 1)
	doc.AddBookmark("C1", 2)
	doc.SetItems(outline(t))
	require.True(t, doc.BookmarksAvailable())

	doc.ClearBookmarks()

	assert.False(t, doc.BookmarksAvailable())
	for _, item := range model.AllItems(doc.Items()) {
		assert.False(t, item.HasBookmark(), item.ID)
	}
}

func TestStyleIndex(t *testing.T) {
	doc := New("/src/cart.go")
	styles := doc.BookmarkStyles()

	idx, err := doc.StyleIndex(styles[4])
	require.NoError(t, err)
	assert.Equal(t, 4, idx)

	_, err = doc.StyleIndex(model.BookmarkStyle{Background: "#123456", Foreground: "#654321"})
	assert.True(t, errors.Is(err, ErrStyleNotFound))
}

func TestSnapshotIsACopy(t *testing.T) {
	doc := New("/src/cart.go")
	doc.AddBookmark("M1", 1)

	snapshot := doc.Snapshot()
	snapshot.Bookmarks["M2"] = 2

	assert.NotContains(t, doc.Bookmarks(), "M2")
}

func TestToggleFilterOnBookmarks(t *testing.T) {
	doc := New("/src/cart.go")
	assert.True(t, doc.ToggleFilterOnBookmarks())
	assert.True(t, doc.Snapshot().FilterOnBookmarks)
	assert.False(t, doc.ToggleFilterOnBookmarks())
}

func TestHistoryIsAppliedAndPersisted(t *testing.T) {
	doc := New("/src/cart.go")
	doc.SetItems(outline(t))

	doc.AddToHistory(model.FindByID(doc.Items(), "M1"))
	doc.AddToHistory(model.FindByID(doc.Items(), "M2"))

	assert.Equal(t, 1, model.FindByID(doc.Items(), "M2").HistoryIndex)
	assert.Equal(t, 2, model.FindByID(doc.Items(), "M1").HistoryIndex)
	assert.Equal(t, []string{"M2", "M1"}, doc.Snapshot().HistoryItems)

	restored := FromState(doc.Snapshot(), DefaultMaxHistory)
	restored.SetItems(outline(t))
	assert.Equal(t, 1, model.FindByID(restored.Items(), "M2").HistoryIndex)

	restored.ClearHistory()
	assert.Equal(t, 0, model.FindByID(restored.Items(), "M2").HistoryIndex)
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	doc := New("/src/cart.go")
	doc.SetItems(outline(t))
	reg.Open(doc)

	got, err := reg.For(doc.Items()[0])
	require.NoError(t, err)
	assert.Same(t, doc, got)

	reg.Close(doc.ID())
	_, err = reg.For(doc.Items()[0])
	assert.True(t, errors.Is(err, ErrDocumentNotOpen))
}

func TestRegistryRejectsReopenedDocument(t *testing.T) {
	reg := NewRegistry()
	old := New("/src/cart.go")
	old.SetItems(outline(t))
	reg.Open(old)
	stale := old.Items()[0]

	reg.Close(old.ID())
	reopened := New("/src/cart.go")
	reopened.SetItems(outline(t))
	reg.Open(reopened)
	require.NotEqual(t, old.Generation(), reopened.Generation())

	_, err := reg.For(stale)
	assert.True(t, errors.Is(err, ErrDocumentNotOpen))

	got, err := reg.For(reopened.Items()[0])
	require.NoError(t, err)
	assert.Same(t, reopened, got)
}
