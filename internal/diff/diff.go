package diff

import (
	"github.com/pstuifzand/codenav/internal/model"
)

// Compute compares two outlines and reports which items were added, removed,
// moved or renamed. It is used for reporting only; whether the displayed
// outline must be rebuilt is decided by EqualSequences.
func Compute(oldItems, newItems []*model.Item) *Result {
	before := index(oldItems)
	after := index(newItems)

	result := &Result{
		Added:   make(map[string]*Entry),
		Removed: make(map[string]*Entry),
		Changed: make(map[string]*Change),
	}

	for id, entry := range after {
		old, exists := before[id]
		if !exists {
			result.Added[id] = entry
			continue
		}
		if change := compareEntries(old, entry); change != nil {
			result.Changed[id] = change
		}
	}

	for id, entry := range before {
		if _, exists := after[id]; !exists {
			result.Removed[id] = entry
		}
	}

	return result
}

// index flattens an outline into entries keyed by ID
func index(items []*model.Item) map[string]*Entry {
	entries := make(map[string]*Entry)
	indexRecursive(items, "", entries)
	return entries
}

func indexRecursive(items []*model.Item, parentID string, entries map[string]*Entry) {
	for pos, item := range items {
		if item == nil {
			continue
		}
		entries[item.ID] = &Entry{
			ID:        item.ID,
			Name:      item.Name,
			Kind:      item.Kind,
			ParentID:  parentID,
			Position:  pos,
			StartLine: item.StartLine,
		}
		indexRecursive(item.Members, item.ID, entries)
	}
}

// compareEntries returns nil when nothing relevant changed
func compareEntries(old, new *Entry) *Change {
	change := &Change{
		Item:        new,
		OldItem:     old,
		Moved:       old.ParentID != new.ParentID || old.Position != new.Position,
		Renamed:     old.Name != new.Name,
		KindChanged: old.Kind != new.Kind,
	}

	if !change.Moved && !change.Renamed && !change.KindChanged {
		return nil
	}
	return change
}
