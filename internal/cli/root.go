// Package cli implements codenav-bookmarks, the command line view of the
// bookmark state stored for a workspace.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pstuifzand/codenav/internal/command"
	"github.com/pstuifzand/codenav/internal/config"
	"github.com/pstuifzand/codenav/internal/document"
	"github.com/pstuifzand/codenav/internal/model"
	"github.com/pstuifzand/codenav/internal/outline"
	"github.com/pstuifzand/codenav/internal/storage"
)

// options are the global flags
type options struct {
	backend    string
	storePath  string
	configPath string
	noColor    bool
}

// NewRootCmd creates the codenav-bookmarks command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "codenav-bookmarks",
		Short: "Manage codenav bookmarks from the command line",
		Long: `Lists and edits the bookmarks codenav keeps for the Go files of a workspace.

Bookmarks are stored next to the workspace root (the closest directory with
go.work, go.mod or .git) unless the config or --store says otherwise.`,
		SilenceUsage: true,
	}

	opts.addFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newListCmd(opts),
		newAddCmd(opts),
		newDeleteCmd(opts),
		newClearCmd(opts),
		newStylesCmd(opts),
		newHistoryCmd(opts),
		newExportCmd(opts),
	)
	return rootCmd
}

// addFlags registers the global flags on flags
func (o *options) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.backend, "backend", "", "Storage backend: json or sqlite (default from config)")
	flags.StringVar(&o.storePath, "store", "", "Path of the bookmark storage")
	flags.StringVar(&o.configPath, "config", "", "Path to config file")
	flags.BoolVar(&o.noColor, "no-color", false, "Disable colored output")
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}

// useColor reports whether output to w should be colored
func (o *options) useColor(w io.Writer) bool {
	if o.noColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// errorSink collects the failures the command layer reports
type errorSink struct {
	mu   sync.Mutex
	errs []error
}

func (s *errorSink) Log(tag string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, fmt.Errorf("%s: %w", tag, err))
}

func (s *errorSink) err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return errors.Join(s.errs...)
}

// session is one Go file opened with its stored bookmark state
type session struct {
	commands *command.Commands
	queue    *command.Queue
	store    storage.Store
	sink     *errorSink
	doc      *document.Document
	cfg      *config.Config
}

// openSession parses filePath and loads its bookmark state
func (o *options) openSession(ctx context.Context, filePath string) (*session, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", filePath, err)
	}

	var cfg *config.Config
	if o.configPath != "" {
		cfg, err = config.LoadFromFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	backend, path := cfg.Storage.Backend, cfg.Storage.Path
	if o.backend != "" {
		backend = o.backend
	}
	if o.storePath != "" {
		path = o.storePath
	}
	store, err := storage.OpenForFile(backend, path, absPath)
	if err != nil {
		return nil, err
	}

	items, err := outline.ParseFile(absPath)
	if err != nil {
		store.Close()
		return nil, err
	}

	s := &session{
		queue: command.NewQueue(8),
		store: store,
		sink:  &errorSink{},
		cfg:   cfg,
	}
	s.commands = command.New(document.NewRegistry(), store, cliHost{}, s.sink, s.queue)
	s.commands.SetMaxHistory(cfg.MaxHistory)
	s.commands.SetDefaultStyles(cfg.BookmarkStyles)

	s.doc, err = s.commands.Open(ctx, absPath, items)
	if err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

// item finds an item of the outline by ID
func (s *session) item(id string) (*model.Item, error) {
	item := model.FindByID(s.doc.Items(), id)
	if item == nil {
		return nil, fmt.Errorf("no item %q in %s", id, s.doc.FilePath())
	}
	return item, nil
}

// finish waits for the saves and returns the first failure of any command
func (s *session) finish() error {
	s.close()
	return s.sink.err()
}

func (s *session) close() {
	s.queue.Close()
	s.store.Close()
}

// cliHost is the host of commands run from the command line: there is no
// editor, and the outline is not shown
type cliHost struct{}

var errNoEditor = errors.New("not available on the command line")

func (cliHost) ScrollToLine(context.Context, string, model.LinePosition) error { return errNoEditor }
func (cliHost) SelectSpan(context.Context, string, model.Span) error           { return errNoEditor }
func (cliHost) SetClipboard(string) error                                      { return errNoEditor }
func (cliHost) EditBookmarkStyles(*document.Document) error                    { return errNoEditor }
func (cliHost) UpdateDocument(*document.Document) error                        { return nil }
func (cliHost) ToggleAll(bool, []*model.Item)                                  {}
func (cliHost) FilterBookmarks(*document.Document)                             {}
