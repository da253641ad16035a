// Package outline builds code outlines from Go source files
package outline

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/pstuifzand/codenav/internal/model"
)

// ParseFile reads and parses a Go source file into an outline
func ParseFile(path string) ([]*model.Item, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseSource(path, src)
}

// ParseSource parses Go source into an outline. The result has a single
// namespace item for the package holding types, functions, constants,
// variables and regions in source order.
func ParseSource(path string, src []byte) ([]*model.Item, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		// Files being edited rarely parse cleanly; outline what the parser
		// recovered as long as the package clause is intact
		if file == nil || file.Package == token.NoPos || file.Name == nil || file.Name.Name == "" {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		log.Printf("partial outline of %s: %v", path, err)
	}

	b := &builder{
		fset:  fset,
		file:  fset.File(file.Pos()),
		path:  path,
		pkg:   file.Name.Name,
		ids:   make(map[string]int),
		types: make(map[string]*model.Item),
		specs: make(map[*ast.TypeSpec]*model.Item),

		foreign: make(map[*model.Item]bool),
	}

	ns := model.NewNamespaceItem(b.uniqueID(b.pkg), b.pkg)
	ns.FullName = b.pkg
	ns.Tooltip = "package " + b.pkg
	b.place(ns, token.Pos(b.file.Base()), token.Pos(b.file.Base()+b.file.Size()))

	top := b.declarations(file)
	for _, item := range groupRegions(top, b.regions(file)) {
		if err := ns.AddMember(item); err != nil {
			return nil, err
		}
	}

	items := []*model.Item{ns}
	if err := model.Validate(items); err != nil {
		return nil, fmt.Errorf("invalid outline for %s: %w", path, err)
	}
	return items, nil
}

type builder struct {
	fset  *token.FileSet
	file  *token.File
	path  string
	pkg   string
	ids   map[string]int
	types map[string]*model.Item // first declaration per name, owns the methods
	specs map[*ast.TypeSpec]*model.Item

	// receiver types declared in another file of the package
	foreign map[*model.Item]bool
}

// uniqueID returns id, or id with a numeric suffix when it was already handed out
func (b *builder) uniqueID(id string) string {
	b.ids[id]++
	if n := b.ids[id]; n > 1 {
		return fmt.Sprintf("%s#%d", id, n)
	}
	return id
}

// place fills in the source location of an item
func (b *builder) place(item *model.Item, pos, end token.Pos) {
	start := b.fset.Position(pos)
	stop := b.fset.Position(end)

	item.FilePath = b.path
	item.StartLine = start.Line
	item.EndLine = stop.Line
	item.StartLinePosition = model.LinePosition{Line: start.Line - 1, Character: start.Column - 1}
	item.EndLinePosition = model.LinePosition{Line: stop.Line - 1, Character: stop.Column - 1}
	item.Span = model.Span{Start: start.Offset, End: stop.Offset}
}

func access(name string) model.Access {
	if ast.IsExported(name) {
		return model.AccessPublic
	}
	return model.AccessPrivate
}

func (b *builder) newItem(name, fullName string, kind model.Kind, node ast.Node) *model.Item {
	item := model.NewItem(b.uniqueID(fullName), name, kind)
	item.FullName = fullName
	item.Access = access(name)
	b.place(item, node.Pos(), node.End())
	return item
}

func (b *builder) newClass(name, fullName string, kind model.Kind, node ast.Node) *model.Item {
	item := model.NewClassItem(b.uniqueID(fullName), name, kind)
	item.FullName = fullName
	item.Access = access(name)
	b.place(item, node.Pos(), node.End())
	return item
}

// declarations returns the top-level items of the file in source order
func (b *builder) declarations(file *ast.File) []*model.Item {
	// Types first, so methods declared before their type still find it
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			item := b.typeItem(gen, ts)
			b.specs[ts] = item
			if _, ok := b.types[ts.Name.Name]; !ok {
				b.types[ts.Name.Name] = item
			}
		}
	}

	var top []*model.Item
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil || len(d.Recv.List) == 0 {
				top = append(top, b.funcItem(d, b.pkg))
				continue
			}
			recv := receiverName(d.Recv.List[0].Type)
			owner, ok := b.types[recv]
			if !ok {
				owner = b.newClass(recv, b.pkg+"."+recv, model.KindClass, d)
				owner.Tooltip = "type " + recv + " (declared elsewhere)"
				b.types[recv] = owner
				b.foreign[owner] = true
				top = append(top, owner)
			}
			method := b.funcItem(d, owner.FullName)
			owner.AddMember(method)
			if b.foreign[owner] && method.Span.End > owner.Span.End {
				owner.EndLine = method.EndLine
				owner.EndLinePosition = method.EndLinePosition
				owner.Span.End = method.Span.End
			}
		case *ast.GenDecl:
			switch d.Tok {
			case token.TYPE:
				for _, spec := range d.Specs {
					top = append(top, b.specs[spec.(*ast.TypeSpec)])
				}
			case token.CONST, token.VAR:
				top = append(top, b.valueItems(d)...)
			}
		}
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Span.Start < top[j].Span.Start
	})
	return top
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	case *ast.ParenExpr:
		return receiverName(t.X)
	case *ast.Ident:
		return t.Name
	}
	return types.ExprString(expr)
}

func (b *builder) typeItem(gen *ast.GenDecl, ts *ast.TypeSpec) *model.Item {
	name := ts.Name.Name
	fullName := b.pkg + "." + name

	var node ast.Node = ts
	if len(gen.Specs) == 1 {
		node = gen
	}

	kind := model.KindClass
	switch ts.Type.(type) {
	case *ast.StructType:
		kind = model.KindStruct
	case *ast.InterfaceType:
		kind = model.KindInterface
	case *ast.FuncType:
		kind = model.KindDelegate
	}

	item := b.newClass(name, fullName, kind, node)
	item.Tooltip = "type " + name + " " + summarizeType(ts.Type)
	if ts.TypeParams != nil {
		item.Parameters = "[" + fieldList(ts.TypeParams) + "]"
	}
	if doc := docLine(gen.Doc, ts.Doc); doc != "" {
		item.Tooltip += "\n" + doc
	}

	switch t := ts.Type.(type) {
	case *ast.StructType:
		for _, field := range t.Fields.List {
			for _, fieldItem := range b.fieldItems(field, fullName, model.KindField) {
				item.AddMember(fieldItem)
			}
		}
	case *ast.InterfaceType:
		for _, field := range t.Methods.List {
			if _, isFunc := field.Type.(*ast.FuncType); isFunc {
				for _, m := range b.fieldItems(field, fullName, model.KindMethod) {
					item.AddMember(m)
				}
				continue
			}
			for _, embedded := range b.fieldItems(field, fullName, model.KindImplementedInterface) {
				item.AddMember(embedded)
			}
		}
	}

	return item
}

func (b *builder) fieldItems(field *ast.Field, owner string, kind model.Kind) []*model.Item {
	typ := types.ExprString(field.Type)

	names := make([]string, 0, len(field.Names))
	for _, n := range field.Names {
		names = append(names, n.Name)
	}
	if len(names) == 0 {
		// Embedded field or interface
		names = append(names, receiverName(field.Type))
	}

	items := make([]*model.Item, 0, len(names))
	for _, name := range names {
		item := b.newItem(name, owner+"."+name, kind, field)
		if ft, ok := field.Type.(*ast.FuncType); ok {
			item.Parameters = "(" + fieldList(ft.Params) + ")"
			item.Tooltip = name + signature(ft)
		} else {
			item.Tooltip = name + " " + typ
		}
		if doc := docLine(field.Doc, field.Comment); doc != "" {
			item.Tooltip += "\n" + doc
		}
		items = append(items, item)
	}
	return items
}

func (b *builder) funcItem(fd *ast.FuncDecl, owner string) *model.Item {
	name := fd.Name.Name
	kind := model.KindMethod
	if fd.Recv == nil && strings.HasPrefix(name, "New") {
		kind = model.KindConstructor
	}

	item := b.newItem(name, owner+"."+name, kind, fd)
	item.Parameters = "(" + fieldList(fd.Type.Params) + ")"

	var sb strings.Builder
	sb.WriteString("func ")
	if fd.Recv != nil && len(fd.Recv.List) > 0 {
		sb.WriteString("(" + fieldList(fd.Recv) + ") ")
	}
	sb.WriteString(name)
	sb.WriteString(signature(fd.Type))
	item.Tooltip = sb.String()
	if doc := docLine(fd.Doc); doc != "" {
		item.Tooltip += "\n" + doc
	}
	return item
}

func (b *builder) valueItems(gen *ast.GenDecl) []*model.Item {
	kind := model.KindVariable
	keyword := "var"
	if gen.Tok == token.CONST {
		kind = model.KindConstant
		keyword = "const"
	}

	var items []*model.Item
	for _, spec := range gen.Specs {
		vs := spec.(*ast.ValueSpec)
		for _, n := range vs.Names {
			if n.Name == "_" {
				continue
			}
			item := b.newItem(n.Name, b.pkg+"."+n.Name, kind, vs)
			item.Tooltip = keyword + " " + n.Name
			if vs.Type != nil {
				item.Tooltip += " " + types.ExprString(vs.Type)
			}
			if doc := docLine(gen.Doc, vs.Doc, vs.Comment); doc != "" {
				item.Tooltip += "\n" + doc
			}
			items = append(items, item)
		}
	}
	return items
}

func signature(ft *ast.FuncType) string {
	sig := "(" + fieldList(ft.Params) + ")"
	if ft.Results == nil || len(ft.Results.List) == 0 {
		return sig
	}
	results := fieldList(ft.Results)
	if len(ft.Results.List) == 1 && len(ft.Results.List[0].Names) == 0 {
		return sig + " " + results
	}
	return sig + " (" + results + ")"
}

func fieldList(fields *ast.FieldList) string {
	if fields == nil {
		return ""
	}
	parts := make([]string, 0, len(fields.List))
	for _, f := range fields.List {
		typ := types.ExprString(f.Type)
		if len(f.Names) == 0 {
			parts = append(parts, typ)
			continue
		}
		names := make([]string, 0, len(f.Names))
		for _, n := range f.Names {
			names = append(names, n.Name)
		}
		parts = append(parts, strings.Join(names, ", ")+" "+typ)
	}
	return strings.Join(parts, ", ")
}

func summarizeType(expr ast.Expr) string {
	switch expr.(type) {
	case *ast.StructType:
		return "struct"
	case *ast.InterfaceType:
		return "interface"
	}
	return types.ExprString(expr)
}

// docLine returns the first line of the first non-empty comment group
func docLine(groups ...*ast.CommentGroup) string {
	for _, g := range groups {
		if g == nil {
			continue
		}
		text := strings.TrimSpace(g.Text())
		if text == "" {
			continue
		}
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[:i]
		}
		return text
	}
	return ""
}
