package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pstuifzand/codenav/internal/document"
	"github.com/pstuifzand/codenav/internal/model"
	"github.com/pstuifzand/codenav/internal/theme"
)

var mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

func newListCmd(opts *options) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list FILE",
		Short: "List the bookmarked items of a file",
		Long: `Lists the bookmarked items of a Go file with their style and line.

Examples:
  codenav-bookmarks list cart.go
  codenav-bookmarks list --all cart.go`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer s.close()

			out := cmd.OutOrStdout()
			printItems(out, s.doc, all, opts.useColor(out))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "List the whole outline")
	return cmd
}

// printItems prints one line per item: ID, kind, start line and bookmark
// style. With all, the whole outline is printed indented by depth.
func printItems(w io.Writer, doc *document.Document, all, color bool) {
	styles := doc.BookmarkStyles()
	count := 0

	model.Walk(doc.Items(), func(item *model.Item) bool {
		idx, bookmarked := item.Bookmark()
		if !all && !bookmarked {
			return true
		}
		count++

		indent := ""
		if all {
			indent = strings.Repeat("  ", item.Depth())
		}
		id := item.ID
		details := fmt.Sprintf("%s  L%d", item.Kind, item.StartLine)
		styleName := ""
		if bookmarked && idx < len(styles) {
			styleName = styles[idx].Name
			if color {
				id = lipglossFor(styles[idx]).Render(id)
			}
		}
		if color {
			details = mutedStyle.Render(details)
		}

		line := indent + id + "  " + details
		if styleName != "" {
			line += "  " + styleName
		}
		fmt.Fprintln(w, line)
		return true
	})

	if count == 0 && !all {
		fmt.Fprintln(w, "No bookmarks")
	}
}

// lipglossFor renders text the way the outline shows a bookmark style
func lipglossFor(style model.BookmarkStyle) lipgloss.Style {
	fg := style.Foreground
	if fg == "" {
		fg = theme.ContrastForeground(style.Background)
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(style.Background)).
		Foreground(lipgloss.Color(fg))
}

// resolveStyle finds a palette entry by one-based number or by name
func resolveStyle(doc *document.Document, arg string) (model.BookmarkStyle, error) {
	styles := doc.BookmarkStyles()
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(styles) {
			return model.BookmarkStyle{}, fmt.Errorf("style %d: %w", n, document.ErrStyleNotFound)
		}
		return styles[n-1], nil
	}
	for _, style := range styles {
		if strings.EqualFold(style.Name, arg) {
			return style, nil
		}
	}
	return model.BookmarkStyle{}, fmt.Errorf("style %q: %w", arg, document.ErrStyleNotFound)
}

func newAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add FILE ITEM STYLE",
		Short: "Bookmark an item",
		Long: `Bookmarks an item of a Go file. ITEM is the item ID as shown by
'list --all', STYLE is a style number (starting at 1) or name.

Examples:
  codenav-bookmarks add cart.go shop.Cart.Add 2
  codenav-bookmarks add cart.go shop.NewCart green`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			item, err := s.item(args[1])
			if err != nil {
				s.close()
				return err
			}
			style, err := resolveStyle(s.doc, args[2])
			if err != nil {
				s.close()
				return err
			}

			s.commands.For(item).Bookmark(style)
			if err := s.finish(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %s with %s\n", item.ID, style.Name)
			return nil
		},
	}
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "delete FILE ITEM",
		Aliases: []string{"rm"},
		Short:   "Remove the bookmark of an item",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			item, err := s.item(args[1])
			if err != nil {
				s.close()
				return err
			}
			if !item.HasBookmark() {
				s.close()
				fmt.Fprintf(cmd.OutOrStdout(), "%s has no bookmark\n", item.ID)
				return nil
			}

			s.commands.For(item).DeleteBookmark()
			if err := s.finish(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed bookmark of %s\n", item.ID)
			return nil
		},
	}
}

func newClearCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear FILE",
		Short: "Remove every bookmark of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			items := s.doc.Items()
			if len(items) == 0 {
				s.close()
				return nil
			}
			count := len(s.doc.Bookmarks())

			s.commands.For(items[0]).ClearBookmarks()
			if err := s.finish(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d bookmarks\n", count)
			return nil
		},
	}
}

func newHistoryCmd(opts *options) *cobra.Command {
	var clearHistory bool

	cmd := &cobra.Command{
		Use:   "history FILE",
		Short: "Show the recently visited items of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if clearHistory {
				if items := s.doc.Items(); len(items) > 0 {
					s.commands.For(items[0]).ClearHistory()
				}
				if err := s.finish(); err != nil {
					return err
				}
				fmt.Fprintln(out, "History cleared")
				return nil
			}
			defer s.close()

			for i, id := range s.doc.HistoryItems() {
				fmt.Fprintf(out, "%d  %s\n", i+1, id)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearHistory, "clear", false, "Forget the history")
	return cmd
}
