package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pstuifzand/codenav/internal/model"
)

func testOutline(t *testing.T) Outline {
	t.Helper()

	ns := model.NewNamespaceItem("shop", "shop")
	ns.StartLine, ns.EndLine = 1, 30

	cart := model.NewClassItem("shop.Cart", "Cart", model.KindStruct)
	cart.StartLine, cart.EndLine = 5, 8

	items := model.NewItem("shop.Cart.items", "items", model.KindField)
	items.Access = model.AccessPrivate
	items.StartLine, items.EndLine = 6, 6

	add := model.NewItem("shop.Cart.Add", "Add", model.KindMethod)
	add.Parameters = "(item string)"
	add.StartLine, add.EndLine = 10, 12
	add.SetBookmark(1)

	newCart := model.NewItem("shop.NewCart", "NewCart", model.KindConstructor)
	newCart.Parameters = "()"
	newCart.StartLine, newCart.EndLine = 14, 16

	for _, err := range []error{
		cart.AddMember(items),
		cart.AddMember(add),
		ns.AddMember(cart),
		ns.AddMember(newCart),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}

	return Outline{
		File:   "/src/shop/cart.go",
		Styles: model.DefaultBookmarkStyles(),
		Items:  []*model.Item{ns},
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, testOutline(t)); err != nil {
		t.Fatalf("WriteMarkdown failed: %v", err)
	}

	expected := `# cart.go

- **shop** _namespace_ ` + "`L1-30`" + `
  - **Cart** _struct_ ` + "`L5-8`" + `
    - items _field_ ` + "`L6-6`" + `
    - Add(item string) _method_ ` + "`L10-12`" + ` [Red]
  - NewCart() _constructor_ ` + "`L14-16`" + `
`
	if buf.String() != expected {
		t.Errorf("Markdown output mismatch.\nExpected:\n%s\nGot:\n%s", expected, buf.String())
	}
}

func TestWriteMarkdownBookmarkedOnly(t *testing.T) {
	outline := testOutline(t)
	outline.BookmarkedOnly = true

	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, outline); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "Add(item string)") {
		t.Errorf("bookmarked item missing:\n%s", out)
	}
	if !strings.Contains(out, "**Cart**") {
		t.Errorf("parent of bookmarked item missing:\n%s", out)
	}
	if strings.Contains(out, "NewCart") || strings.Contains(out, "items") {
		t.Errorf("unbookmarked items exported:\n%s", out)
	}
}

func TestExportToFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "cart.md")

	if err := ExportToFile(outputFile, testOutline(t)); err != nil {
		t.Fatalf("ExportToFile failed: %v", err)
	}

	content, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if !strings.HasPrefix(string(content), "# cart.go\n") {
		t.Errorf("unexpected content:\n%s", content)
	}
}

func TestExportToFileUnknownExtension(t *testing.T) {
	if err := ExportToFile(filepath.Join(t.TempDir(), "cart.txt"), testOutline(t)); err == nil {
		t.Error("expected an error for .txt")
	}
	if err := ExportToFile(filepath.Join(t.TempDir(), "cart"), testOutline(t)); err == nil {
		t.Error("expected an error without extension")
	}
}

func TestWriteMarkdownExportTime(t *testing.T) {
	outline := testOutline(t)
	outline.Exported = time.Date(2026, 10, 19, 9, 5, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, outline); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "# cart.go\n\n_Exported 2026-10-19 09:05_\n\n- **shop**") {
		t.Errorf("unexpected header:\n%s", buf.String())
	}

	outline.DateFormat = "%d/%m/%Y"
	buf.Reset()
	if err := WriteMarkdown(&buf, outline); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "_Exported 19/10/2026_") {
		t.Errorf("date format ignored:\n%s", buf.String())
	}
}
