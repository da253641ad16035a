package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddMostRecentFirst(t *testing.T) {
	l := NewList(5, nil)
	l.Add("A")
	l.Add("B")
	l.Add("C")

	assert.Equal(t, []string{"C", "B", "A"}, l.Entries())
}

func TestAddMovesExistingToFront(t *testing.T) {
	l := NewList(5, nil)
	l.Add("A")
	l.Add("B")
	l.Add("A")

	assert.Equal(t, []string{"A", "B"}, l.Entries())
}

func TestAddTrimsOldest(t *testing.T) {
	l := NewList(2, nil)
	l.Add("A")
	l.Add("B")
	l.Add("C")

	assert.Equal(t, []string{"C", "B"}, l.Entries())
}

func TestAddIgnoresEmpty(t *testing.T) {
	l := NewList(2, nil)
	l.Add("")
	assert.Equal(t, 0, l.Len())
}

func TestNewListKeepsPersistedOrder(t *testing.T) {
	l := NewList(5, []string{"C", "B", "A"})
	assert.Equal(t, []string{"C", "B", "A"}, l.Entries())
	assert.Equal(t, map[string]int{"C": 1, "B": 2, "A": 3}, l.Positions())
}

func TestClear(t *testing.T) {
	l := NewList(5, []string{"A"})
	l.Clear()
	assert.Empty(t, l.Entries())
	assert.Empty(t, l.Positions())
}
