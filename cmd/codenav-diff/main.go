package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/pstuifzand/codenav/internal/diff"
	"github.com/pstuifzand/codenav/internal/model"
	"github.com/pstuifzand/codenav/internal/outline"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	detailStyle  = lipgloss.NewStyle().Faint(true)
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run compares the outlines named by args and returns the exit status
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("codenav-diff", flag.ContinueOnError)
	flags.SetOutput(stderr)
	verbose := flags.Bool("v", false, "Verbose output (show full details)")
	summary := flags.Bool("s", false, "Summary only (no item-level details)")
	quiet := flags.Bool("q", false, "No output, only the exit status")
	flags.Usage = func() {
		fmt.Fprintf(stderr, `Usage: codenav-diff [options] <old.go> <new.go>

Parses two versions of a Go file and reports whether their outlines differ
and which items were added, removed, moved or renamed. Use - to read one
version from stdin:

  git show HEAD:cart.go | codenav-diff - cart.go

Exit status is 0 when the outlines are equal, 1 when they differ and 2 on errors.

Options:
`)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if flags.NArg() != 2 {
		flags.Usage()
		return 2
	}

	src := &sources{stdin: stdin}
	oldItems, err := src.parse(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing %s: %v\n", flags.Arg(0), err)
		return 2
	}
	newItems, err := src.parse(flags.Arg(1))
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing %s: %v\n", flags.Arg(1), err)
		return 2
	}

	if diff.EqualSequences(oldItems, newItems) {
		if !*quiet {
			fmt.Fprintln(stdout, "Outlines are equal")
		}
		return 0
	}

	if !*quiet {
		result := diff.Compute(oldItems, newItems)
		if *summary {
			fmt.Fprintln(stdout, diff.Summary(result))
		} else {
			printLines(stdout, diff.BuildLines(result, *verbose))
		}
	}
	return 1
}

// sources parses files, or stdin for "-". Stdin is read once, so "- -"
// compares it with itself.
type sources struct {
	stdin io.Reader
	data  []byte
	read  bool
}

func (s *sources) parse(path string) ([]*model.Item, error) {
	if path != "-" {
		return outline.ParseFile(path)
	}
	if !s.read {
		data, err := io.ReadAll(s.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		s.data, s.read = data, true
	}
	return outline.ParseSource("stdin.go", s.data)
}

// printLines prints the diff, colored when w is a terminal
func printLines(w io.Writer, lines []diff.Line) {
	if !isTerminal(w) {
		fmt.Fprint(w, diff.Render(lines))
		return
	}

	for _, line := range lines {
		if line.Type == diff.LineBlank {
			fmt.Fprintln(w)
			continue
		}
		text := fmt.Sprintf("%*s%s", line.Indent*2, "", line.Content)
		fmt.Fprintln(w, styleFor(line.Type).Render(text))
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func styleFor(t diff.LineType) lipgloss.Style {
	switch t {
	case diff.LineHeader, diff.LineAddedSection, diff.LineRemovedSection, diff.LineChangedSection, diff.LineSummary:
		return headerStyle
	case diff.LineAdded:
		return addedStyle
	case diff.LineRemoved:
		return removedStyle
	case diff.LineChanged:
		return changedStyle
	}
	return detailStyle
}
