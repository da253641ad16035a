package ui

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/codenav/internal/model"
)

// EditorCommandLine builds the shell command that opens path in the editor
// with the cursor on pos. When end is given, editors that support it select
// the range from pos to end.
func EditorCommandLine(editor, path string, pos model.LinePosition, end *model.LinePosition) string {
	line, col := pos.Line+1, pos.Character+1
	quoted := shellQuote(path)

	switch filepath.Base(strings.Fields(editor + " x")[0]) {
	case "vi", "vim", "nvim", "gvim":
		if end != nil {
			return fmt.Sprintf(`%s -c "call cursor(%d,%d)" -c "normal! v" -c "call cursor(%d,%d)" %s`,
				editor, line, col, end.Line+1, max(end.Character, 1), quoted)
		}
		return fmt.Sprintf(`%s -c "call cursor(%d,%d)" %s`, editor, line, col, quoted)
	case "code", "codium", "cursor":
		return fmt.Sprintf("%s -g %s:%d:%d", editor, quoted, line, col)
	case "hx", "helix", "kak":
		return fmt.Sprintf("%s %s:%d:%d", editor, quoted, line, col)
	case "emacs", "emacsclient":
		return fmt.Sprintf("%s +%d:%d %s", editor, line, col, quoted)
	}
	return fmt.Sprintf("%s +%d %s", editor, line, quoted)
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// RunEditor suspends the screen, runs the editor command in the terminal and
// takes the terminal back once it exits
func RunEditor(ctx context.Context, screen *Screen, commandLine string) error {
	if err := screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}
	defer func() {
		screen.Resume()
		screen.Sync()
	}()

	// sh -c so editor settings like "vim --clean" work
	cmd := exec.CommandContext(ctx, "sh", "-c", commandLine)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return fmt.Errorf("failed to launch editor: %w", err)
		}
	}
	return nil
}

// PositionAt converts a byte offset into a zero-based line and character position
func PositionAt(src []byte, offset int) model.LinePosition {
	offset = min(max(offset, 0), len(src))
	var pos model.LinePosition
	lineStart := 0
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			pos.Line++
			lineStart = i + 1
		}
	}
	pos.Character = offset - lineStart
	return pos
}
