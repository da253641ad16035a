// Package history keeps the navigation history of visited code items
package history

// List holds visited item IDs, most recent first
type List struct {
	entries    []string
	maxEntries int
}

// NewList creates a List with a maximum number of entries, seeded with
// previously persisted entries
func NewList(maxEntries int, entries []string) *List {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	l := &List{maxEntries: maxEntries}
	for i := len(entries) - 1; i >= 0; i-- {
		l.Add(entries[i])
	}
	return l
}

// Add moves id to the front of the history.
// Empty IDs are ignored and the oldest entries are dropped beyond the maximum.
func (l *List) Add(id string) {
	if id == "" {
		return
	}

	for i, entry := range l.entries {
		if entry == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			break
		}
	}

	l.entries = append([]string{id}, l.entries...)

	if len(l.entries) > l.maxEntries {
		l.entries = l.entries[:l.maxEntries]
	}
}

// Clear removes all entries
func (l *List) Clear() {
	l.entries = nil
}

// Entries returns a copy of the history, most recent first
func (l *List) Entries() []string {
	return append([]string(nil), l.entries...)
}

// Len returns the number of entries
func (l *List) Len() int {
	return len(l.entries)
}

// Positions maps each visited ID to its one-based position in the history
func (l *List) Positions() map[string]int {
	positions := make(map[string]int, len(l.entries))
	for i, id := range l.entries {
		positions[id] = i + 1
	}
	return positions
}
