package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/codenav/internal/export"
)

func newStylesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "styles FILE",
		Short: "Show the bookmark palette of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer s.close()

			out := cmd.OutOrStdout()
			color := opts.useColor(out)
			for i, style := range s.doc.BookmarkStyles() {
				name := style.Name
				if color {
					name = lipglossFor(style).Render(" " + name + " ")
				}
				fmt.Fprintf(out, "%d  %s  %s %s\n", i+1, name, style.Background, style.Foreground)
			}
			return nil
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	var bookmarkedOnly, timestamp bool
	var format string

	cmd := &cobra.Command{
		Use:   "export FILE [OUTPUT]",
		Short: "Export the outline with its bookmarks as Markdown or YAML",
		Long: `Exports the outline of a Go file with its bookmarks. The format follows
the extension of OUTPUT (.md, .yaml or .yml). Without OUTPUT the export is
written to stdout in the format given by --format.

Examples:
  codenav-bookmarks export cart.go cart.md
  codenav-bookmarks export --bookmarked --format yaml cart.go`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer s.close()

			outline := export.FromDocument(s.doc)
			outline.BookmarkedOnly = bookmarkedOnly
			if timestamp {
				outline.Exported = time.Now()
				outline.DateFormat = s.cfg.DateFormat
			}

			if len(args) == 2 {
				if err := export.ExportToFile(args[1], outline); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[1])
				return nil
			}

			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			return export.Write(cmd.OutOrStdout(), f, outline)
		},
	}
	cmd.Flags().BoolVarP(&bookmarkedOnly, "bookmarked", "b", false, "Only export bookmarked items and their parents")
	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "Format when writing to stdout: markdown or yaml")
	cmd.Flags().BoolVarP(&timestamp, "timestamp", "t", false, "Write the export time (config date_format) below the heading")
	return cmd
}
