// Package document holds the per-file state shared by all code items of an
// outline: the bookmark style palette, bookmark assignments, the bookmark
// filter flag and the navigation history.
package document

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/pstuifzand/codenav/internal/history"
	"github.com/pstuifzand/codenav/internal/model"
)

var (
	// ErrDocumentNotOpen is returned when an item refers to a document that is no longer open
	ErrDocumentNotOpen = errors.New("document is not open")
	// ErrStyleNotFound is returned when a bookmark style is not part of the document palette
	ErrStyleNotFound = errors.New("bookmark style not found")
)

var generations atomic.Uint64

// DefaultMaxHistory is the number of navigation history entries kept per document
const DefaultMaxHistory = 5

// State is the persisted part of a document
type State struct {
	FilePath          string                `json:"filePath"`
	BookmarkStyles    []model.BookmarkStyle `json:"bookmarkStyles"`
	Bookmarks         map[string]int        `json:"bookmarks"`
	HistoryItems      []string              `json:"historyItems,omitempty"`
	FilterOnBookmarks bool                  `json:"filterOnBookmarks"`
}

// NewState creates the state of a document that has never been saved
func NewState(filePath string) *State {
	return &State{
		FilePath:       filePath,
		BookmarkStyles: model.DefaultBookmarkStyles(),
		Bookmarks:      make(map[string]int),
	}
}

// Clone returns a deep copy of the state
func (s *State) Clone() *State {
	clone := &State{
		FilePath:          s.FilePath,
		BookmarkStyles:    append([]model.BookmarkStyle(nil), s.BookmarkStyles...),
		Bookmarks:         make(map[string]int, len(s.Bookmarks)),
		HistoryItems:      append([]string(nil), s.HistoryItems...),
		FilterOnBookmarks: s.FilterOnBookmarks,
	}
	for id, idx := range s.Bookmarks {
		clone.Bookmarks[id] = idx
	}
	return clone
}

// Document is an open source file: its persisted state and the current
// generation of its outline. The document owns the items; items only hold
// the document's ID.
type Document struct {
	mu         sync.Mutex
	state      *State
	items      []*model.Item
	history    *history.List
	generation uint64
}

// New creates a document for filePath with default state
func New(filePath string) *Document {
	return FromState(NewState(filePath), DefaultMaxHistory)
}

// FromState creates a document from previously persisted state
func FromState(state *State, maxHistory int) *Document {
	state = state.Clone()
	if state.Bookmarks == nil {
		state.Bookmarks = make(map[string]int)
	}
	if len(state.BookmarkStyles) == 0 {
		state.BookmarkStyles = model.DefaultBookmarkStyles()
	}
	return &Document{
		state:      state,
		history:    history.NewList(maxHistory, state.HistoryItems),
		generation: generations.Add(1),
	}
}

// ID returns the handle items use to refer to this document
func (d *Document) ID() model.DocumentID {
	return model.DocumentID(d.state.FilePath)
}

// Generation is unique per opened document, so two documents for the
// same path never share it
func (d *Document) Generation() uint64 {
	return d.generation
}

// FilePath returns the path of the source file
func (d *Document) FilePath() string {
	return d.state.FilePath
}

// Items returns the current outline
func (d *Document) Items() []*model.Item {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.items
}

// SetItems replaces the outline with a new generation and re-applies
// bookmarks and history to it by item ID
func (d *Document) SetItems(items []*model.Item) {
	model.SetDocument(items, d.ID(), d.generation)

	d.mu.Lock()
	d.items = items
	d.mu.Unlock()

	d.ApplyBookmarks()
	d.ApplyHistory()
}

// Snapshot returns a copy of the state for persisting. Bookmarks that
// reference a style missing from the palette are dropped.
func (d *Document) Snapshot() *State {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pruneDanglingLocked()
	d.state.HistoryItems = d.history.Entries()
	return d.state.Clone()
}

func (d *Document) pruneDanglingLocked() {
	for id, idx := range d.state.Bookmarks {
		if idx < 0 || idx >= len(d.state.BookmarkStyles) {
			delete(d.state.Bookmarks, id)
		}
	}
}

// FilterOnBookmarks reports whether only bookmarked items should be shown
func (d *Document) FilterOnBookmarks() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.FilterOnBookmarks
}

// SetFilterOnBookmarks sets the bookmark filter flag
func (d *Document) SetFilterOnBookmarks(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.FilterOnBookmarks = on
}

// ToggleFilterOnBookmarks flips the bookmark filter flag and returns the new value
func (d *Document) ToggleFilterOnBookmarks() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.FilterOnBookmarks = !d.state.FilterOnBookmarks
	return d.state.FilterOnBookmarks
}

func (d *Document) String() string {
	return fmt.Sprintf("document(%s)", d.state.FilePath)
}
