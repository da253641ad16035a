package outline

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/pstuifzand/codenav/internal/model"
)

const (
	regionStart = "#region"
	regionEnd   = "#endregion"
)

type region struct {
	item     *model.Item
	start    int
	end      int
	children []*region
}

// regions collects the "// #region Name" ... "// #endregion" pairs of the
// file as a tree. An unterminated region runs to the end of the file and
// an unmatched #endregion is ignored.
func (b *builder) regions(file *ast.File) []*region {
	var roots []*region
	var stack []*region
	eof := token.Pos(b.file.Base() + b.file.Size())

	for _, group := range file.Comments {
		for _, c := range group.List {
			text := strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))
			switch {
			case strings.HasPrefix(text, regionEnd):
				if len(stack) == 0 {
					continue
				}
				r := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				b.closeRegion(r, c.End())
			case strings.HasPrefix(text, regionStart):
				name := strings.TrimSpace(strings.TrimPrefix(text, regionStart))
				if name == "" {
					name = "region"
				}
				item := model.NewClassItem(b.uniqueID(b.pkg+".#region."+name), name, model.KindRegion)
				item.FullName = b.pkg + ".#region." + name
				item.Tooltip = "region " + name
				b.place(item, c.Pos(), c.End())

				r := &region{item: item, start: item.Span.Start}
				if len(stack) > 0 {
					parent := stack[len(stack)-1]
					parent.children = append(parent.children, r)
				} else {
					roots = append(roots, r)
				}
				stack = append(stack, r)
			}
		}
	}

	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		b.closeRegion(r, eof)
	}
	return roots
}

func (b *builder) closeRegion(r *region, end token.Pos) {
	pos := b.fset.Position(end)
	r.item.EndLine = pos.Line
	r.item.EndLinePosition = model.LinePosition{Line: pos.Line - 1, Character: pos.Column - 1}
	r.item.Span.End = pos.Offset
	r.end = pos.Offset
}

// groupRegions moves the items that start inside a region into the region's
// container. items must be sorted by span start.
func groupRegions(items []*model.Item, regions []*region) []*model.Item {
	var out []*model.Item
	i := 0
	for _, r := range regions {
		for i < len(items) && items[i].Span.Start < r.start {
			out = append(out, items[i])
			i++
		}
		var inside []*model.Item
		for i < len(items) && items[i].Span.Start < r.end {
			inside = append(inside, items[i])
			i++
		}
		for _, item := range groupRegions(inside, r.children) {
			r.item.AddMember(item)
		}
		out = append(out, r.item)
	}
	return append(out, items[i:]...)
}
