package diff

import "github.com/pstuifzand/codenav/internal/model"

// Entry is the position of one item inside an outline
type Entry struct {
	ID        string
	Name      string
	Kind      model.Kind
	ParentID  string
	Position  int
	StartLine int
}

// Change describes an item present in both outlines whose placement or name differs
type Change struct {
	Item        *Entry
	OldItem     *Entry
	Moved       bool
	Renamed     bool
	KindChanged bool
}

// Result contains the analysis of changes between two outlines
type Result struct {
	Added   map[string]*Entry
	Removed map[string]*Entry
	Changed map[string]*Change
}

// Empty reports whether the outlines contain the same items in the same places
func (r *Result) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}

// LineType indicates the type of a rendered line
type LineType int

const (
	LineHeader LineType = iota
	LineAddedSection
	LineRemovedSection
	LineChangedSection
	LineAdded
	LineRemoved
	LineChanged
	LineDetail
	LineSummary
	LineBlank
)

// Line is a rendered line of diff output
type Line struct {
	Type    LineType
	Content string
	Indent  int
}
