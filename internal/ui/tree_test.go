package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/codenav/internal/model"
	"github.com/pstuifzand/codenav/internal/theme"
)

// sampleOutline builds:
//
//	shop
//	  Cart
//	    items
//	    Add
//	    Remove
//	  NewCart
func sampleOutline(t *testing.T) []*model.Item {
	t.Helper()

	ns := model.NewNamespaceItem("shop", "shop")
	cart := model.NewClassItem("shop.Cart", "Cart", model.KindStruct)
	cart.StartLine, cart.EndLine = 3, 6

	members := []*model.Item{
		model.NewItem("shop.Cart.items", "items", model.KindField),
		model.NewItem("shop.Cart.Add", "Add", model.KindMethod),
		model.NewItem("shop.Cart.Remove", "Remove", model.KindMethod),
	}
	members[0].StartLine, members[0].EndLine = 4, 4
	members[1].StartLine, members[1].EndLine = 8, 10
	members[2].StartLine, members[2].EndLine = 12, 14
	for _, m := range members {
		if err := cart.AddMember(m); err != nil {
			t.Fatal(err)
		}
	}

	newCart := model.NewItem("shop.NewCart", "NewCart", model.KindConstructor)
	newCart.StartLine, newCart.EndLine = 16, 18

	if err := ns.AddMember(cart); err != nil {
		t.Fatal(err)
	}
	if err := ns.AddMember(newCart); err != nil {
		t.Fatal(err)
	}
	ns.StartLine, ns.EndLine = 1, 18
	return []*model.Item{ns}
}

func viewNames(tv *TreeView) []string {
	var names []string
	for _, d := range tv.view {
		names = append(names, d.Item.Name)
	}
	return names
}

func TestTreeViewShowsExpandedContainers(t *testing.T) {
	tv := NewTreeView(sampleOutline(t))

	got := strings.Join(viewNames(tv), ",")
	if got != "shop,Cart,items,Add,Remove,NewCart" {
		t.Errorf("unexpected view %q", got)
	}
}

func TestCollapseSelectsParent(t *testing.T) {
	tv := NewTreeView(sampleOutline(t))
	tv.SelectItem(3) // Add

	tv.Collapse()

	if got := tv.GetSelected().Name; got != "Cart" {
		t.Errorf("expected Cart to be selected, got %s", got)
	}
	if tv.GetItemCount() != 3 {
		t.Errorf("expected 3 visible items, got %d", tv.GetItemCount())
	}

	tv.Expand()
	if got := tv.GetSelected().Name; got != "items" {
		t.Errorf("expected first member to be selected after expand, got %s", got)
	}
}

func TestSetExpandedAll(t *testing.T) {
	items := sampleOutline(t)
	tv := NewTreeView(items)
	tv.SelectItem(3)

	tv.SetExpanded(false, items)
	if tv.GetItemCount() != 1 {
		t.Errorf("expected only the namespace after collapsing, got %v", viewNames(tv))
	}
	if tv.GetSelected().Name != "shop" {
		t.Errorf("selection should move to a visible ancestor, got %s", tv.GetSelected().Name)
	}

	tv.SetExpanded(true, items)
	if tv.GetItemCount() != 6 {
		t.Errorf("expected all items after expanding, got %v", viewNames(tv))
	}
}

func TestNameFilterKeepsAncestors(t *testing.T) {
	items := sampleOutline(t)
	tv := NewTreeView(items)

	tv.SetNameFilter("rmv")

	got := strings.Join(viewNames(tv), ",")
	if got != "shop,Cart,Remove" {
		t.Errorf("unexpected filtered view %q", got)
	}

	cart := model.FindByID(items, "shop.Cart")
	if cart.Opacity != 0.5 {
		t.Errorf("ancestor shown for a match should be dimmed, opacity %v", cart.Opacity)
	}
	if !model.FindByID(items, "shop.Cart.Add").Hidden {
		t.Error("non-matching item should be hidden")
	}

	tv.SetNameFilter("")
	if tv.GetItemCount() != 6 {
		t.Errorf("clearing the filter should show all items, got %v", viewNames(tv))
	}
}

func TestNameFilterIgnoresCollapsedState(t *testing.T) {
	items := sampleOutline(t)
	tv := NewTreeView(items)
	tv.SetExpanded(false, items)

	tv.SetNameFilter("add")

	got := strings.Join(viewNames(tv), ",")
	if got != "shop,Cart,Add" {
		t.Errorf("matches inside collapsed containers should be shown, got %q", got)
	}
}

func TestNameFilterQuery(t *testing.T) {
	tv := NewTreeView(sampleOutline(t))

	tv.SetNameFilter("k:method,constructor -remove")
	got := strings.Join(viewNames(tv), ",")
	if got != "shop,Cart,Add,NewCart" {
		t.Errorf("unexpected query view %q", got)
	}

	tv.SetNameFilter("p:cart | l:17")
	got = strings.Join(viewNames(tv), ",")
	if got != "shop,Cart,items,Add,Remove,NewCart" {
		t.Errorf("unexpected query view %q", got)
	}

	// an incomplete query is matched as a plain name
	tv.SetNameFilter("k:method -")
	if tv.GetItemCount() != 0 {
		t.Errorf("expected no items, got %v", viewNames(tv))
	}
}

func TestBookmarkFilter(t *testing.T) {
	items := sampleOutline(t)
	model.FindByID(items, "shop.NewCart").SetBookmark(2)
	tv := NewTreeView(items)

	tv.SetBookmarkFilter(true)
	got := strings.Join(viewNames(tv), ",")
	if got != "shop,NewCart" {
		t.Errorf("unexpected bookmark view %q", got)
	}

	// both filters combine
	tv.SetNameFilter("cart")
	got = strings.Join(viewNames(tv), ",")
	if got != "shop,NewCart" {
		t.Errorf("unexpected combined view %q", got)
	}
	tv.SetNameFilter("add")
	if tv.GetItemCount() != 0 {
		t.Errorf("expected no items, got %v", viewNames(tv))
	}
	if tv.GetSelected() != nil {
		t.Error("nothing should be selected in an empty view")
	}
}

func TestHighlightSelectsDeepestItem(t *testing.T) {
	items := sampleOutline(t)
	tv := NewTreeView(items)
	tv.SetExpanded(false, items)

	found := tv.Highlight(9)
	if found == nil || found.ID != "shop.Cart.Add" {
		t.Fatalf("expected Add to be highlighted, got %v", found)
	}
	if tv.GetSelected() != found {
		t.Error("highlighted item should be selected")
	}
	if !found.Parent.Expanded {
		t.Error("parents of the highlighted item should be expanded")
	}

	tv.Highlight(16)
	if found.IsHighlighted {
		t.Error("previous highlight should be cleared")
	}
	if tv.Highlight(100) != nil {
		t.Error("no item contains line 100")
	}
}

func TestSetItemsKeepsSelection(t *testing.T) {
	tv := NewTreeView(sampleOutline(t))
	tv.SelectByID("shop.Cart.Remove")

	tv.SetItems(sampleOutline(t))

	if got := tv.GetSelected().ID; got != "shop.Cart.Remove" {
		t.Errorf("expected selection to survive a reparse, got %s", got)
	}
}

func newSimScreen(t *testing.T, w, h int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenWith(sim, theme.TokyoNight())
	if err != nil {
		t.Fatal(err)
	}
	sim.SetSize(w, h)
	t.Cleanup(func() { screen.Close() })
	return screen, sim
}

func rowText(sim tcell.SimulationScreen, y int) string {
	cells, w, _ := sim.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(runes[0])
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestRenderDrawsBookmarksAndHistory(t *testing.T) {
	items := sampleOutline(t)
	add := model.FindByID(items, "shop.Cart.Add")
	add.SetBookmark(1)
	add.Parameters = "(item string)"
	model.FindByID(items, "shop.NewCart").HistoryIndex = 1

	screen, sim := newSimScreen(t, 40, 10)
	tv := NewTreeView(items)
	styles := model.DefaultBookmarkStyles()
	tv.Render(screen, 0, styles)
	screen.Show()

	if got := rowText(sim, 0); got != "▼ shop" {
		t.Errorf("row 0 = %q", got)
	}
	if got := rowText(sim, 3); got != "    · Add(item string)" {
		t.Errorf("row 3 = %q", got)
	}
	if got := rowText(sim, 5); got != "  · NewCart 1" {
		t.Errorf("row 5 = %q", got)
	}

	cells, w, _ := sim.GetContents()
	_, bg, _ := cells[3*w+6].Style.Decompose()
	if bg != theme.HexToColor(styles[1].Background) {
		t.Errorf("bookmarked name should use the style background, got %v", bg)
	}
}

func TestRenderScrollsToSelection(t *testing.T) {
	screen, sim := newSimScreen(t, 30, 4) // 3 rows for the tree
	tv := NewTreeView(sampleOutline(t))
	tv.SelectLast()

	tv.Render(screen, 0, nil)
	screen.Show()

	if got := rowText(sim, 2); !strings.HasSuffix(got, "NewCart") {
		t.Errorf("last row should show the selected item, got %q", got)
	}
	if idx, ok := tv.ItemAtRow(2, 0); !ok || idx != 5 {
		t.Errorf("ItemAtRow(2) = %d, %v", idx, ok)
	}
}
