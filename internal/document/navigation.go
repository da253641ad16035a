package document

import "github.com/pstuifzand/codenav/internal/model"

// AddToHistory records a visit to the item
func (d *Document) AddToHistory(item *model.Item) {
	d.mu.Lock()
	d.history.Add(item.ID)
	d.mu.Unlock()

	d.ApplyHistory()
}

// ClearHistory forgets all visited items
func (d *Document) ClearHistory() {
	d.mu.Lock()
	d.history.Clear()
	d.mu.Unlock()

	d.ApplyHistory()
}

// HistoryItems returns the visited item IDs, most recent first
func (d *Document) HistoryItems() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.history.Entries()
}

// ApplyHistory updates the history indicator of every item of the outline
func (d *Document) ApplyHistory() {
	d.mu.Lock()
	items := d.items
	positions := d.history.Positions()
	d.mu.Unlock()

	model.Walk(items, func(item *model.Item) bool {
		item.HistoryIndex = positions[item.ID]
		return true
	})
}
