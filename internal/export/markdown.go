package export

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/codenav/internal/model"
)

// WriteMarkdown writes the outline as a nested bullet list under a heading
// with the file name. Every bullet shows the kind and line range of the
// item and the bookmark style name when it has one.
func WriteMarkdown(w io.Writer, outline Outline) error {
	bw := bufio.NewWriter(w)

	if outline.File != "" {
		fmt.Fprintf(bw, "# %s\n\n", filepath.Base(outline.File))
	}
	if at := outline.exportedAt(); at != "" {
		fmt.Fprintf(bw, "_Exported %s_\n\n", at)
	}
	for _, item := range outline.Items {
		writeItemAsMarkdown(bw, outline, item, 0)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

// writeItemAsMarkdown writes an item and its members, 2 spaces of indent per level
func writeItemAsMarkdown(w *bufio.Writer, outline Outline, item *model.Item, depth int) {
	if item == nil || !outline.include(item) {
		return
	}

	w.WriteString(strings.Repeat("  ", depth))
	w.WriteString("- ")
	if item.IsContainer() {
		fmt.Fprintf(w, "**%s**", item.Name)
	} else {
		w.WriteString(item.Name)
	}
	w.WriteString(item.Parameters)
	fmt.Fprintf(w, " _%s_ `L%d-%d`", item.Kind, item.StartLine, item.EndLine)
	if name := outline.styleName(item); name != "" {
		fmt.Fprintf(w, " [%s]", name)
	}
	w.WriteString("\n")

	for _, member := range item.Members {
		writeItemAsMarkdown(w, outline, member, depth+1)
	}
}
