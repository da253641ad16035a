// Package app runs the outline side panel: it owns the screen, the tree
// view and the open document, and is the host the item commands talk to.
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/codenav/internal/command"
	"github.com/pstuifzand/codenav/internal/config"
	"github.com/pstuifzand/codenav/internal/document"
	"github.com/pstuifzand/codenav/internal/model"
	"github.com/pstuifzand/codenav/internal/outline"
	"github.com/pstuifzand/codenav/internal/socket"
	"github.com/pstuifzand/codenav/internal/storage"
	"github.com/pstuifzand/codenav/internal/theme"
	"github.com/pstuifzand/codenav/internal/ui"
)

const (
	treeStartY  = 1
	renderEvery = 50 * time.Millisecond // ~20 FPS
)

// Options are the collaborators of an App. Zero values select the defaults.
type Options struct {
	Config *config.Config
	Theme  *theme.Theme
	Store  storage.Store

	// Screen replaces the terminal, tests pass a simulation screen
	Screen tcell.Screen

	// SocketDir enables the control socket in that directory
	SocketDir string

	// Parse produces the outline of a file, outline.ParseFile by default
	Parse func(path string) ([]*model.Item, error)

	// RunEditor runs an editor command line, ui.RunEditor by default
	RunEditor func(ctx context.Context, commandLine string) error
}

// App is the main application controller
type App struct {
	screen   *ui.Screen
	cfg      *config.Config
	store    storage.Store
	queue    *command.Queue
	commands *command.Commands
	doc      *document.Document
	server   *socket.Server

	tree    *ui.TreeView
	filter  *ui.Filter
	help    *ui.HelpScreen
	changes *ui.ChangesView
	cmdline *ui.CommandLine
	status  *ui.StatusLine

	keybindings        []KeyBinding
	pendingKeybindings []PendingKeyBinding
	pendingPrefix      rune // prefix key waiting for its second key, 0 when none

	parse     func(path string) ([]*model.Item, error)
	runEditor func(ctx context.Context, commandLine string) error

	events    chan tcell.Event
	done      chan struct{}
	pollOnce  sync.Once
	closeOnce sync.Once
	quit      bool
	debugMode bool
}

// NewApp parses filePath and opens it with the bookmark state saved for it
func NewApp(filePath string, opts Options) (*App, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", filePath, err)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg, err = config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	th := opts.Theme
	if th == nil {
		th = theme.LoadThemeOrDefault(cfg.Theme)
	}
	store := opts.Store
	if store == nil {
		store = storage.NewMemoryStore()
	}
	parse := opts.Parse
	if parse == nil {
		parse = outline.ParseFile
	}

	items, err := parse(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}

	var screen *ui.Screen
	if opts.Screen != nil {
		screen, err = ui.NewScreenWith(opts.Screen, th)
	} else {
		screen, err = ui.NewScreen(th)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	a := &App{
		screen:  screen,
		cfg:     cfg,
		store:   store,
		queue:   command.NewQueue(32),
		tree:    ui.NewTreeView(nil),
		filter:  ui.NewFilter(),
		cmdline: ui.NewCommandLine(),
		status:  ui.NewStatusLine(20, 3*time.Second),
		parse:   parse,
		events:  make(chan tcell.Event, 16),
		done:    make(chan struct{}),
	}
	a.runEditor = opts.RunEditor
	if a.runEditor == nil {
		a.runEditor = func(ctx context.Context, commandLine string) error {
			return ui.RunEditor(ctx, a.screen, commandLine)
		}
	}

	a.commands = command.New(document.NewRegistry(), store, a, a, a.queue)
	a.commands.SetMaxHistory(cfg.MaxHistory)
	a.commands.SetDefaultStyles(cfg.BookmarkStyles)

	a.doc, err = a.commands.Open(context.Background(), absPath, items)
	if err != nil {
		a.queue.Close()
		screen.Close()
		return nil, err
	}
	a.tree.SetItems(a.doc.Items())
	a.tree.SetBookmarkFilter(a.doc.FilterOnBookmarks())

	a.keybindings = a.InitializeKeybindings()
	a.pendingKeybindings = a.InitializePendingKeybindings()
	a.help = ui.NewHelpScreen(a.helpEntries())
	a.changes = ui.NewChangesView()

	if opts.SocketDir != "" {
		server, err := socket.NewServer(opts.SocketDir, os.Getpid())
		if err != nil {
			// The panel works without editor integration
			log.Printf("Failed to start socket server: %v", err)
		} else {
			a.server = server
			a.server.Start()
		}
	}

	screen.EnableMouse()
	a.status.Info(fmt.Sprintf("Opened %s", filepath.Base(absPath)))
	return a, nil
}

// startPolling moves terminal events onto the events channel. The style
// editor reads from the same channel while the main loop is blocked.
func (a *App) startPolling() {
	a.pollOnce.Do(func() {
		go func() {
			for {
				ev := a.screen.PollEvent()
				select {
				case a.events <- ev:
				case <-a.done:
					return
				}
				if ev == nil {
					return
				}
			}
		}()
	})
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	a.startPolling()

	var socketMessages <-chan socket.Message
	if a.server != nil {
		socketMessages = a.server.Messages()
	}

	ticker := time.NewTicker(renderEvery)
	defer ticker.Stop()

	a.render()
	for !a.quit {
		select {
		case ev := <-a.events:
			if ev == nil {
				return nil
			}
			a.handleRawEvent(ev)
		case msg := <-socketMessages:
			a.handleSocketMessage(msg)
		case <-ticker.C:
			a.render()
		}
	}

	return nil
}

// Close waits for pending saves and releases the screen and the socket
func (a *App) Close() error {
	var err error
	a.closeOnce.Do(func() {
		close(a.done)
		a.queue.Close()
		a.commands.Close(a.doc)
		if a.server != nil {
			a.server.Stop()
		}
		err = a.screen.Close()
	})
	return err
}

// Document returns the open document
func (a *App) Document() *document.Document {
	return a.doc
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.status.Info(msg)
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}

// Log reports a failed command on the status line. It is called from the
// command queue goroutine too.
func (a *App) Log(tag string, err error) {
	log.Printf("%s: %v", tag, err)
	a.status.Error(fmt.Sprintf("%s: %v", tag, err))
}

// selectedCommands returns the commands of the selected item, nil without a selection
func (a *App) selectedCommands() *command.ItemCommands {
	item := a.tree.GetSelected()
	if item == nil {
		return nil
	}
	return a.commands.For(item)
}

// rootCommands returns the commands of the first top-level item, which
// stand in for document-wide commands
func (a *App) rootCommands() *command.ItemCommands {
	items := a.doc.Items()
	if len(items) == 0 {
		return nil
	}
	return a.commands.For(items[0])
}

func (a *App) mode() string {
	switch {
	case a.cmdline.IsActive():
		return "COMMAND"
	case a.filter.IsActive():
		return "FILTER"
	case a.tree.BookmarkFilter():
		return "BOOKMARKS"
	}
	return "OUTLINE"
}

// render renders the current state to the screen
func (a *App) render() {
	a.screen.Clear()
	height := a.screen.GetHeight()

	header := " " + filepath.Base(a.doc.FilePath())
	if query := a.tree.NameFilter(); query != "" {
		header += "  /" + query
	}
	x := a.screen.DrawString(0, 0, header, a.screen.HeaderStyle())
	a.screen.FillLine(x, 0, a.screen.HeaderStyle())

	a.tree.Render(a.screen, treeStartY, a.doc.BookmarkStyles())

	switch {
	case a.cmdline.IsActive():
		a.cmdline.Render(a.screen, height-1)
	case a.filter.IsActive():
		a.filter.Render(a.screen, height-1, a.tree.GetItemCount())
	default:
		a.status.Render(a.screen, height-1, a.mode())
	}

	a.changes.Render(a.screen)
	a.help.Render(a.screen)
	a.screen.Show()
}
