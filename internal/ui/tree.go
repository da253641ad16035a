package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/codenav/internal/model"
	"github.com/pstuifzand/codenav/internal/search"
	"github.com/pstuifzand/codenav/internal/theme"
)

// TreeView manages the display and navigation of the code outline
type TreeView struct {
	items          []*model.Item
	selectedIdx    int
	view           []*displayItem
	viewportOffset int // Index of first visible item in the viewport

	nameFilter     string
	filterExpr     search.FilterExpr
	bookmarkFilter bool
}

type displayItem struct {
	Item  *model.Item
	Depth int
}

// NewTreeView creates a new TreeView
func NewTreeView(items []*model.Item) *TreeView {
	tv := &TreeView{items: items}
	tv.rebuildView()
	return tv
}

// SetItems replaces the outline, keeping the selection on the same item ID when it still exists
func (tv *TreeView) SetItems(items []*model.Item) {
	var selectedID string
	if selected := tv.GetSelected(); selected != nil {
		selectedID = selected.ID
	}

	tv.items = items
	tv.rebuildView()

	if selectedID != "" {
		tv.SelectByID(selectedID)
	}
}

// Items returns the root-level items
func (tv *TreeView) Items() []*model.Item {
	return tv.items
}

// filtering reports whether a filter hides items
func (tv *TreeView) filtering() bool {
	return tv.nameFilter != "" || tv.bookmarkFilter
}

// SetNameFilter shows only items matching the query, plus their ancestors.
// A query that does not parse, for example while it is being typed, is
// matched fuzzily against item names as a whole.
func (tv *TreeView) SetNameFilter(query string) {
	tv.nameFilter = query
	expr, err := search.ParseQuery(query)
	if err != nil {
		expr = search.NewFuzzyExpr(query)
	}
	tv.filterExpr = expr
	tv.rebuildView()
}

// NameFilter returns the active name filter
func (tv *TreeView) NameFilter() string {
	return tv.nameFilter
}

// SetBookmarkFilter shows only bookmarked items, plus their ancestors
func (tv *TreeView) SetBookmarkFilter(on bool) {
	tv.bookmarkFilter = on
	tv.rebuildView()
}

// BookmarkFilter reports whether only bookmarked items are shown
func (tv *TreeView) BookmarkFilter() bool {
	return tv.bookmarkFilter
}

func (tv *TreeView) matches(item *model.Item) bool {
	if tv.bookmarkFilter && !item.HasBookmark() {
		return false
	}
	if tv.filterExpr != nil && !tv.filterExpr.Matches(item) {
		return false
	}
	return true
}

// applyFilter marks every item visible or hidden. An item that does not
// match itself stays visible, dimmed, when one of its members matches.
func (tv *TreeView) applyFilter(items []*model.Item) bool {
	anyVisible := false
	for _, item := range items {
		self := tv.matches(item)
		members := tv.applyFilter(item.Members)

		item.Hidden = !self && !members
		item.Opacity = 1
		if !self && members {
			item.Opacity = 0.5
		}
		if !item.Hidden {
			anyVisible = true
		}
	}
	return anyVisible
}

// rebuildView rebuilds the display list
func (tv *TreeView) rebuildView() {
	tv.applyFilter(tv.items)
	tv.view = tv.buildDisplayItems(tv.items, 0)
	if tv.selectedIdx >= len(tv.view) {
		tv.selectedIdx = len(tv.view) - 1
	}
	if tv.selectedIdx < 0 {
		tv.selectedIdx = 0
	}
}

func (tv *TreeView) buildDisplayItems(items []*model.Item, depth int) []*displayItem {
	var result []*displayItem
	for _, item := range items {
		if item.Hidden {
			continue
		}
		result = append(result, &displayItem{Item: item, Depth: depth})
		// While filtering, everything that survived the filter is shown
		if len(item.Members) > 0 && (item.Expanded || tv.filtering()) {
			result = append(result, tv.buildDisplayItems(item.Members, depth+1)...)
		}
	}
	return result
}

// Refresh rebuilds the display after items were changed outside the view
func (tv *TreeView) Refresh() {
	tv.rebuildView()
}

// SelectNext moves selection down
func (tv *TreeView) SelectNext() {
	if tv.selectedIdx < len(tv.view)-1 {
		tv.selectedIdx++
	}
}

// SelectPrev moves selection up
func (tv *TreeView) SelectPrev() {
	if tv.selectedIdx > 0 {
		tv.selectedIdx--
	}
}

// SelectFirst moves selection to the first item
func (tv *TreeView) SelectFirst() {
	tv.selectedIdx = 0
}

// SelectLast moves selection to the last item
func (tv *TreeView) SelectLast() {
	if len(tv.view) > 0 {
		tv.selectedIdx = len(tv.view) - 1
	}
}

// ScrollPageUp moves selection up by pageSize items
func (tv *TreeView) ScrollPageUp(pageSize int) {
	if pageSize <= 0 {
		pageSize = 1
	}
	tv.selectedIdx -= pageSize
	if tv.selectedIdx < 0 {
		tv.selectedIdx = 0
	}
	tv.viewportOffset = tv.selectedIdx
}

// ScrollPageDown moves selection down by pageSize items
func (tv *TreeView) ScrollPageDown(pageSize int) {
	if pageSize <= 0 {
		pageSize = 1
	}
	tv.selectedIdx += pageSize
	if maxIdx := len(tv.view) - 1; tv.selectedIdx > maxIdx {
		tv.selectedIdx = max(maxIdx, 0)
	}
	tv.viewportOffset = max(tv.selectedIdx-pageSize+1, 0)
}

// Expand expands the selected item and moves to its first member
func (tv *TreeView) Expand() {
	item := tv.GetSelected()
	if item == nil || len(item.Members) == 0 {
		return
	}
	if !item.Expanded {
		item.Expanded = true
		tv.rebuildView()
	}
	if tv.selectedIdx < len(tv.view)-1 {
		tv.selectedIdx++
	}
}

// Collapse collapses the selected item, or its parent when the item has no
// members, and selects the collapsed item
func (tv *TreeView) Collapse() {
	item := tv.GetSelected()
	if item == nil {
		return
	}

	if item.Expanded && len(item.Members) > 0 {
		item.Expanded = false
		tv.rebuildView()
		return
	}

	if item.Parent != nil {
		item.Parent.Expanded = false
		tv.rebuildView()
		tv.selectItem(item.Parent)
	}
}

// ToggleExpanded flips the expanded state of the selected container
func (tv *TreeView) ToggleExpanded() {
	item := tv.GetSelected()
	if item == nil || len(item.Members) == 0 {
		return
	}
	item.Expanded = !item.Expanded
	tv.rebuildView()
}

// SetExpanded expands or collapses the given items and everything below them
func (tv *TreeView) SetExpanded(expand bool, items []*model.Item) {
	selected := tv.GetSelected()
	model.Walk(items, func(item *model.Item) bool {
		if item.IsContainer() {
			item.Expanded = expand
		}
		return true
	})
	tv.rebuildView()

	// Collapsing can hide the selection, move it to the closest visible ancestor
	for p := selected; p != nil; p = p.Parent {
		if tv.selectItem(p) {
			break
		}
	}
}

// SelectParent moves selection to the parent of the current item
func (tv *TreeView) SelectParent() bool {
	current := tv.GetSelected()
	if current == nil || current.Parent == nil {
		return false
	}
	return tv.selectItem(current.Parent)
}

func (tv *TreeView) selectItem(item *model.Item) bool {
	for idx, dispItem := range tv.view {
		if dispItem.Item == item {
			tv.selectedIdx = idx
			return true
		}
	}
	return false
}

// SelectByID selects the item with the given ID, expanding its ancestors
func (tv *TreeView) SelectByID(id string) bool {
	item := model.FindByID(tv.items, id)
	if item == nil {
		return false
	}
	tv.ExpandParents(item)
	return tv.selectItem(item)
}

// ExpandParents expands all parent nodes of the given item so it becomes visible
func (tv *TreeView) ExpandParents(item *model.Item) {
	if item == nil {
		return
	}
	for p := item.Parent; p != nil; p = p.Parent {
		p.Expanded = true
	}
	tv.rebuildView()
}

// Highlight marks the deepest item containing the one-based line and
// selects it. Every other item loses its highlight.
func (tv *TreeView) Highlight(line int) *model.Item {
	var found *model.Item
	model.Walk(tv.items, func(item *model.Item) bool {
		item.IsHighlighted = false
		if item.Kind != model.KindNamespace && item.ContainsLine(line) {
			found = item
		}
		return true
	})
	if found == nil {
		return nil
	}

	found.IsHighlighted = true
	tv.ExpandParents(found)
	tv.selectItem(found)
	return found
}

// GetSelected returns the currently selected item
func (tv *TreeView) GetSelected() *model.Item {
	if tv.selectedIdx >= 0 && tv.selectedIdx < len(tv.view) {
		return tv.view[tv.selectedIdx].Item
	}
	return nil
}

// GetSelectedIndex returns the currently selected index
func (tv *TreeView) GetSelectedIndex() int {
	return tv.selectedIdx
}

// SelectItem selects an item by index
func (tv *TreeView) SelectItem(idx int) {
	if idx >= 0 && idx < len(tv.view) {
		tv.selectedIdx = idx
	}
}

// GetItemCount returns the number of displayed items
func (tv *TreeView) GetItemCount() int {
	return len(tv.view)
}

// ItemAtRow returns the view index of the item drawn on a screen row by the last Render
func (tv *TreeView) ItemAtRow(row, startY int) (int, bool) {
	idx := tv.viewportOffset + row - startY
	if row < startY || idx < 0 || idx >= len(tv.view) {
		return 0, false
	}
	return idx, true
}

// Render draws the outline from startY down to the line above the status bar.
// styles is the bookmark palette of the document.
func (tv *TreeView) Render(screen *Screen, startY int, styles []model.BookmarkStyle) {
	_, screenHeight := screen.Size()
	viewportHeight := max(screenHeight-startY-1, 1)

	// Keep the selected item inside the viewport
	if tv.selectedIdx < tv.viewportOffset {
		tv.viewportOffset = tv.selectedIdx
	} else if tv.selectedIdx >= tv.viewportOffset+viewportHeight {
		tv.viewportOffset = tv.selectedIdx - viewportHeight + 1
	}
	maxOffset := max(len(tv.view)-viewportHeight, 0)
	tv.viewportOffset = min(max(tv.viewportOffset, 0), maxOffset)

	y := startY
	for idx := tv.viewportOffset; idx < len(tv.view) && y < screenHeight-1; idx++ {
		tv.renderRow(screen, y, tv.view[idx], idx == tv.selectedIdx, styles)
		y++
	}

	for ; y < screenHeight-1; y++ {
		screen.FillLine(0, y, tcell.StyleDefault)
	}
}

func (tv *TreeView) renderRow(screen *Screen, y int, dispItem *displayItem, selected bool, styles []model.BookmarkStyle) {
	item := dispItem.Item
	rowStyle := tcell.StyleDefault
	if item.IsHighlighted {
		rowStyle = screen.TreeHighlightStyle()
	}
	_, rowBg, _ := rowStyle.Decompose()
	withRow := func(style tcell.Style) tcell.Style {
		if selected {
			return style
		}
		return style.Background(rowBg)
	}

	x := 0
	for i := 0; i < dispItem.Depth; i++ {
		x += screen.DrawString(x, y, "  ", rowStyle)
	}

	arrow, arrowStyle := "·", screen.TreeLeafArrowStyle()
	if len(item.Members) > 0 {
		arrow = "▶"
		if item.Expanded || tv.filtering() {
			arrow = "▼"
		}
		arrowStyle = screen.TreeExpandableArrowStyle(item.Expanded)
	}
	x += screen.DrawString(x, y, arrow+" ", withRow(arrowStyle))

	nameStyle := withRow(screen.KindStyle(item))
	if idx, ok := item.Bookmark(); ok && idx < len(styles) {
		nameStyle = theme.BookmarkStyle(styles[idx])
	}
	if item.Opacity < 1 {
		nameStyle = nameStyle.Dim(true)
	}
	if selected {
		nameStyle = screen.TreeSelectedStyle()
	}

	width := screen.GetWidth()
	x += screen.DrawStringLimited(x, y, item.Name, width-x, nameStyle)
	if item.Parameters != "" && x < width {
		x += screen.DrawStringLimited(x, y, item.Parameters, width-x, withRow(screen.ParameterStyle()))
	}
	if item.HistoryIndex > 0 && x+2 < width {
		x += screen.DrawString(x, y, " ", rowStyle)
		x += screen.DrawString(x, y, strconv.Itoa(item.HistoryIndex), withRow(screen.HistoryMarkerStyle()))
	}

	screen.FillLine(x, y, rowStyle)
}
