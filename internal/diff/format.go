package diff

import (
	"fmt"
	"sort"
	"strings"
)

// BuildLines converts a Result into formatted display lines
func BuildLines(result *Result, verbose bool) []Line {
	var lines []Line

	if len(result.Added) > 0 {
		lines = append(lines, Line{Type: LineAddedSection, Content: "Added:"})
		for _, id := range sortedIDs(result.Added) {
			entry := result.Added[id]
			lines = append(lines, Line{Type: LineAdded, Content: formatEntry(entry), Indent: 1})
			if verbose {
				lines = append(lines, formatPlacement(entry))
			}
		}
		lines = append(lines, Line{Type: LineBlank})
	}

	if len(result.Removed) > 0 {
		lines = append(lines, Line{Type: LineRemovedSection, Content: "Removed:"})
		for _, id := range sortedIDs(result.Removed) {
			entry := result.Removed[id]
			lines = append(lines, Line{Type: LineRemoved, Content: formatEntry(entry), Indent: 1})
			if verbose {
				lines = append(lines, formatPlacement(entry))
			}
		}
		lines = append(lines, Line{Type: LineBlank})
	}

	if len(result.Changed) > 0 {
		lines = append(lines, Line{Type: LineChangedSection, Content: "Changed:"})
		ids := make([]string, 0, len(result.Changed))
		for id := range result.Changed {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			lines = append(lines, formatChange(result.Changed[id])...)
		}
		lines = append(lines, Line{Type: LineBlank})
	}

	lines = append(lines, Line{Type: LineSummary, Content: Summary(result)})
	return lines
}

// Summary returns a one line description of the result
func Summary(result *Result) string {
	if result.Empty() {
		return "no changes"
	}
	return fmt.Sprintf("%d added, %d removed, %d changed",
		len(result.Added), len(result.Removed), len(result.Changed))
}

// Render joins lines into text, indenting two spaces per level
func Render(lines []Line) string {
	var sb strings.Builder
	for _, line := range lines {
		if line.Type == LineBlank {
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(strings.Repeat("  ", line.Indent))
		sb.WriteString(line.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatEntry(entry *Entry) string {
	return fmt.Sprintf("%s (%s, line %d)", entry.ID, entry.Kind, entry.StartLine)
}

func formatPlacement(entry *Entry) Line {
	parent := entry.ParentID
	if parent == "" {
		parent = "<root>"
	}
	return Line{
		Type:    LineDetail,
		Content: fmt.Sprintf("PARENT: %s at position %d", parent, entry.Position),
		Indent:  2,
	}
}

func formatChange(change *Change) []Line {
	lines := []Line{{Type: LineChanged, Content: formatEntry(change.Item), Indent: 1}}

	if change.Moved {
		lines = append(lines, Line{
			Type: LineDetail,
			Content: fmt.Sprintf("MOVED: %s[%d] -> %s[%d]",
				orRoot(change.OldItem.ParentID), change.OldItem.Position,
				orRoot(change.Item.ParentID), change.Item.Position),
			Indent: 2,
		})
	}
	if change.Renamed {
		lines = append(lines, Line{
			Type:    LineDetail,
			Content: fmt.Sprintf("RENAMED: %q -> %q", change.OldItem.Name, change.Item.Name),
			Indent:  2,
		})
	}
	if change.KindChanged {
		lines = append(lines, Line{
			Type:    LineDetail,
			Content: fmt.Sprintf("KIND: %s -> %s", change.OldItem.Kind, change.Item.Kind),
			Indent:  2,
		})
	}
	return lines
}

func orRoot(id string) string {
	if id == "" {
		return "<root>"
	}
	return id
}

func sortedIDs(m map[string]*Entry) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
