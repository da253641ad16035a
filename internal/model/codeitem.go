// Package model contains the code outline tree
package model

import (
	"errors"
	"fmt"
)

// ErrNotContainer is returned when members are added to an item that cannot hold any
var ErrNotContainer = errors.New("code item is not a container")

// DocumentID is a non-owning handle to the document an item belongs to.
// It is the document's file path and is resolved through a document registry.
type DocumentID string

// Variant is the structural type of an item. Only Class and Namespace variants own members.
type Variant int

const (
	VariantItem Variant = iota
	VariantClass
	VariantNamespace
)

// LinePosition is a zero-based line and character position in a source file
type LinePosition struct {
	Line      int
	Character int
}

// Compare returns -1, 0 or 1 depending on whether p is before, equal to or after other
func (p LinePosition) Compare(other LinePosition) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Character < other.Character:
		return -1
	case p.Character > other.Character:
		return 1
	}
	return 0
}

// String formats the position one-based, the way editors show it
func (p LinePosition) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Character+1)
}

// Span is a half-open byte range [Start, End) in a source file
type Span struct {
	Start int
	End   int
}

// Length returns the number of bytes covered by the span
func (s Span) Length() int {
	return s.End - s.Start
}

// Item represents a single navigable construct in the outline tree
type Item struct {
	ID         string
	Name       string
	FullName   string
	Tooltip    string
	FilePath   string
	Parameters string
	Kind       Kind
	Access     Access

	StartLinePosition LinePosition
	EndLinePosition   LinePosition
	StartLine         int // one-based
	EndLine           int // one-based
	Span              Span

	// Members is only populated for container variants, in source order
	Members []*Item
	Parent  *Item

	Document DocumentID
	// DocumentGeneration tells a reopened document apart from the one the
	// item was parsed for
	DocumentGeneration uint64

	// UI state, never persisted
	Expanded        bool
	IsHighlighted   bool
	Hidden          bool
	Opacity         float64
	ContextMenuOpen bool
	HistoryIndex    int // 0 when the item is not in the navigation history

	variant  Variant
	bookmark int // style index + 1, 0 when the item has no bookmark
}

// NewItem creates a leaf item such as a method, property or field
func NewItem(id, name string, kind Kind) *Item {
	return &Item{
		ID:       id,
		Name:     name,
		FullName: name,
		Kind:     kind,
		Opacity:  1,
		variant:  VariantItem,
	}
}

// NewClassItem creates a container item for classes, structs, interfaces, enums and regions
func NewClassItem(id, name string, kind Kind) *Item {
	item := NewItem(id, name, kind)
	item.variant = VariantClass
	item.Members = make([]*Item, 0)
	item.Expanded = true
	return item
}

// NewNamespaceItem creates a namespace container
func NewNamespaceItem(id, name string) *Item {
	item := NewItem(id, name, KindNamespace)
	item.variant = VariantNamespace
	item.Members = make([]*Item, 0)
	item.Expanded = true
	return item
}

// Variant returns the structural type of the item
func (i *Item) Variant() Variant {
	return i.variant
}

// IsContainer reports whether the item owns members
func (i *Item) IsContainer() bool {
	return i.variant == VariantClass || i.variant == VariantNamespace
}

// AddMember appends a member to a container item
func (i *Item) AddMember(member *Item) error {
	if !i.IsContainer() {
		return fmt.Errorf("add %q to %q: %w", member.ID, i.ID, ErrNotContainer)
	}
	member.Parent = i
	i.Members = append(i.Members, member)
	return nil
}

// Bookmark returns the style index of the item's bookmark, if it has one
func (i *Item) Bookmark() (int, bool) {
	if i.bookmark == 0 {
		return -1, false
	}
	return i.bookmark - 1, true
}

// HasBookmark reports whether a bookmark style is assigned to the item
func (i *Item) HasBookmark() bool {
	return i.bookmark != 0
}

// SetBookmark assigns the bookmark style at index to the item
func (i *Item) SetBookmark(index int) {
	if index < 0 {
		i.bookmark = 0
		return
	}
	i.bookmark = index + 1
}

// ClearBookmark removes the item's bookmark
func (i *Item) ClearBookmark() {
	i.bookmark = 0
}

// ContainsLine reports whether the one-based line falls inside the item
func (i *Item) ContainsLine(line int) bool {
	return line >= i.StartLine && line <= i.EndLine
}

// Depth returns the number of ancestors of the item
func (i *Item) Depth() int {
	depth := 0
	for p := i.Parent; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

// Walk visits items depth-first in source order. Returning false from fn skips the members of that item.
func Walk(items []*Item, fn func(*Item) bool) {
	for _, item := range items {
		if item == nil {
			continue
		}
		if fn(item) {
			Walk(item.Members, fn)
		}
	}
}

// AllItems returns all items of the tree (depth-first)
func AllItems(items []*Item) []*Item {
	var result []*Item
	Walk(items, func(item *Item) bool {
		result = append(result, item)
		return true
	})
	return result
}

// FindByID finds an item by its ID anywhere in the tree
func FindByID(items []*Item, id string) *Item {
	var found *Item
	Walk(items, func(item *Item) bool {
		if found != nil {
			return false
		}
		if item.ID == id {
			found = item
			return false
		}
		return true
	})
	return found
}

// SetDocument points every item of the tree at the owning document
func SetDocument(items []*Item, doc DocumentID, generation uint64) {
	Walk(items, func(item *Item) bool {
		item.Document = doc
		item.DocumentGeneration = generation
		return true
	})
}

// RestoreParents rebuilds parent pointers for a tree assembled without AddMember
func RestoreParents(items []*Item, parent *Item) {
	for _, item := range items {
		item.Parent = parent
		RestoreParents(item.Members, item)
	}
}

// CopyLocations copies positions and display text from a freshly parsed
// outline onto the displayed one. Items are matched pairwise by position
// and ID; pairs that do not line up are skipped with their members.
func CopyLocations(dst, src []*Item) {
	for i := 0; i < len(dst) && i < len(src); i++ {
		d, s := dst[i], src[i]
		if d == nil || s == nil || d.ID != s.ID {
			continue
		}
		d.StartLinePosition = s.StartLinePosition
		d.EndLinePosition = s.EndLinePosition
		d.StartLine = s.StartLine
		d.EndLine = s.EndLine
		d.Span = s.Span
		d.FilePath = s.FilePath
		d.FullName = s.FullName
		d.Tooltip = s.Tooltip
		d.Parameters = s.Parameters
		CopyLocations(d.Members, s.Members)
	}
}

// Validate checks that positions are ordered, spans are well formed and
// sibling IDs are unique
func Validate(items []*Item) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.ID == "" {
			return fmt.Errorf("item %q has no id", item.Name)
		}
		if seen[item.ID] {
			return fmt.Errorf("duplicate sibling id %q", item.ID)
		}
		seen[item.ID] = true

		if item.StartLinePosition.Compare(item.EndLinePosition) > 0 {
			return fmt.Errorf("item %q starts at %s after it ends at %s", item.ID, item.StartLinePosition, item.EndLinePosition)
		}
		if item.Span.Start > item.Span.End {
			return fmt.Errorf("item %q has inverted span [%d, %d)", item.ID, item.Span.Start, item.Span.End)
		}
		if item.StartLine > item.EndLine {
			return fmt.Errorf("item %q starts on line %d after it ends on line %d", item.ID, item.StartLine, item.EndLine)
		}
		if len(item.Members) > 0 && !item.IsContainer() {
			return fmt.Errorf("item %q: %w", item.ID, ErrNotContainer)
		}
		if err := Validate(item.Members); err != nil {
			return err
		}
	}
	return nil
}
