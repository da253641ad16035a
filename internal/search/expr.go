// Package search implements the outline filter query language.
//
// A query is a list of terms that must all match. Bare words fuzzy-match
// the item name, "quoted text" matches a substring and /pattern/ a regular
// expression. Filters narrow by item properties:
//
//	k:method,field   kind
//	a:public         access
//	b:* b:2          bookmarked, with any or the given style (one-based)
//	p:Cart           parent name, p*:Cart for any ancestor
//	d:>1             depth
//	l:42 l:>=100     item containing the line, or start line comparison
//
// Terms combine with | (or), - (not) and parentheses.
package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pstuifzand/codenav/internal/model"
)

// FilterExpr represents a filter expression that can match items
type FilterExpr interface {
	Matches(item *model.Item) bool
	String() string // For debug output
}

// TextExpr matches items whose name contains the search term (case-insensitive)
type TextExpr struct {
	term string
}

func NewTextExpr(term string) *TextExpr {
	return &TextExpr{term: strings.ToLower(term)}
}

func (e *TextExpr) Matches(item *model.Item) bool {
	return strings.Contains(strings.ToLower(item.Name), e.term)
}

func (e *TextExpr) String() string {
	return fmt.Sprintf("text(%q)", e.term)
}

// FuzzyExpr matches items whose name fuzzy-matches the search term (case-insensitive)
type FuzzyExpr struct {
	term string
}

func NewFuzzyExpr(term string) *FuzzyExpr {
	return &FuzzyExpr{term: term}
}

func (e *FuzzyExpr) Matches(item *model.Item) bool {
	return fuzzy.MatchFold(e.term, item.Name)
}

func (e *FuzzyExpr) String() string {
	return fmt.Sprintf("fuzzy(%q)", e.term)
}

// RegexExpr matches items whose name matches a regular expression pattern
type RegexExpr struct {
	re *regexp.Regexp
}

func NewRegexExpr(pattern string) (*RegexExpr, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}
	return &RegexExpr{re: re}, nil
}

func (e *RegexExpr) Matches(item *model.Item) bool {
	return e.re.MatchString(item.Name)
}

func (e *RegexExpr) String() string {
	return fmt.Sprintf("regex(%q)", e.re.String())
}

// KindExpr matches items of any of the kinds
type KindExpr struct {
	kinds []model.Kind
}

func NewKindExpr(kinds ...model.Kind) *KindExpr {
	return &KindExpr{kinds: kinds}
}

func (e *KindExpr) Matches(item *model.Item) bool {
	for _, kind := range e.kinds {
		if item.Kind == kind {
			return true
		}
	}
	return false
}

func (e *KindExpr) String() string {
	names := make([]string, len(e.kinds))
	for i, kind := range e.kinds {
		names[i] = kind.String()
	}
	return fmt.Sprintf("kind(%s)", strings.Join(names, ","))
}

// AccessExpr matches items with the access level
type AccessExpr struct {
	access model.Access
}

func NewAccessExpr(access model.Access) *AccessExpr {
	return &AccessExpr{access: access}
}

func (e *AccessExpr) Matches(item *model.Item) bool {
	return item.Access == e.access
}

func (e *AccessExpr) String() string {
	return fmt.Sprintf("access(%s)", e.access)
}

// BookmarkExpr matches bookmarked items. A negative style matches any style.
type BookmarkExpr struct {
	style int
}

func NewBookmarkExpr(style int) *BookmarkExpr {
	return &BookmarkExpr{style: style}
}

func (e *BookmarkExpr) Matches(item *model.Item) bool {
	idx, ok := item.Bookmark()
	return ok && (e.style < 0 || idx == e.style)
}

func (e *BookmarkExpr) String() string {
	if e.style < 0 {
		return "bookmark(*)"
	}
	return fmt.Sprintf("bookmark(%d)", e.style)
}

// ParentExpr matches items whose parent, or with ancestors set any
// ancestor, matches the inner expression
type ParentExpr struct {
	expr      FilterExpr
	ancestors bool
}

func NewParentExpr(expr FilterExpr, ancestors bool) *ParentExpr {
	return &ParentExpr{expr: expr, ancestors: ancestors}
}

func (e *ParentExpr) Matches(item *model.Item) bool {
	for p := item.Parent; p != nil; p = p.Parent {
		if e.expr.Matches(p) {
			return true
		}
		if !e.ancestors {
			return false
		}
	}
	return false
}

func (e *ParentExpr) String() string {
	if e.ancestors {
		return fmt.Sprintf("ancestor(%s)", e.expr)
	}
	return fmt.Sprintf("parent(%s)", e.expr)
}

// ComparisonOp represents comparison operators
type ComparisonOp string

const (
	OpEqual        ComparisonOp = "="
	OpNotEqual     ComparisonOp = "!="
	OpGreater      ComparisonOp = ">"
	OpGreaterEqual ComparisonOp = ">="
	OpLess         ComparisonOp = "<"
	OpLessEqual    ComparisonOp = "<="
)

func (op ComparisonOp) compare(a, b int) bool {
	switch op {
	case OpNotEqual:
		return a != b
	case OpGreater:
		return a > b
	case OpGreaterEqual:
		return a >= b
	case OpLess:
		return a < b
	case OpLessEqual:
		return a <= b
	}
	return a == b
}

// DepthExpr compares the depth of items, top-level items have depth 0
type DepthExpr struct {
	op    ComparisonOp
	depth int
}

func NewDepthExpr(op ComparisonOp, depth int) *DepthExpr {
	return &DepthExpr{op: op, depth: depth}
}

func (e *DepthExpr) Matches(item *model.Item) bool {
	return e.op.compare(item.Depth(), e.depth)
}

func (e *DepthExpr) String() string {
	return fmt.Sprintf("depth(%s%d)", e.op, e.depth)
}

// LineExpr matches items containing a one-based line, or without a
// plain equality compares their start line
type LineExpr struct {
	op   ComparisonOp
	line int
}

func NewLineExpr(op ComparisonOp, line int) *LineExpr {
	return &LineExpr{op: op, line: line}
}

func (e *LineExpr) Matches(item *model.Item) bool {
	if e.op == OpEqual {
		return item.ContainsLine(e.line)
	}
	return e.op.compare(item.StartLine, e.line)
}

func (e *LineExpr) String() string {
	return fmt.Sprintf("line(%s%d)", e.op, e.line)
}

// AndExpr matches items matching both expressions
type AndExpr struct {
	left, right FilterExpr
}

func NewAndExpr(left, right FilterExpr) *AndExpr {
	return &AndExpr{left: left, right: right}
}

func (e *AndExpr) Matches(item *model.Item) bool {
	return e.left.Matches(item) && e.right.Matches(item)
}

func (e *AndExpr) String() string {
	return fmt.Sprintf("and(%s, %s)", e.left, e.right)
}

// OrExpr matches items matching either expression
type OrExpr struct {
	left, right FilterExpr
}

func NewOrExpr(left, right FilterExpr) *OrExpr {
	return &OrExpr{left: left, right: right}
}

func (e *OrExpr) Matches(item *model.Item) bool {
	return e.left.Matches(item) || e.right.Matches(item)
}

func (e *OrExpr) String() string {
	return fmt.Sprintf("or(%s, %s)", e.left, e.right)
}

// NotExpr inverts an expression
type NotExpr struct {
	expr FilterExpr
}

func NewNotExpr(expr FilterExpr) *NotExpr {
	return &NotExpr{expr: expr}
}

func (e *NotExpr) Matches(item *model.Item) bool {
	return !e.expr.Matches(item)
}

func (e *NotExpr) String() string {
	return fmt.Sprintf("not(%s)", e.expr)
}
