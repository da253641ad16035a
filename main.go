package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"

	"github.com/pstuifzand/codenav/internal/app"
	"github.com/pstuifzand/codenav/internal/config"
	"github.com/pstuifzand/codenav/internal/outline"
	"github.com/pstuifzand/codenav/internal/socket"
	"github.com/pstuifzand/codenav/internal/storage"
	"github.com/pstuifzand/codenav/internal/theme"
)

func main() {
	logFile, err := os.Create("codenav.log")
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	debug := flag.Bool("debug", false, "Enable debug mode (shows key events in status)")
	dump := flag.Bool("dump", false, "Print the parsed outline and exit")
	refresh := flag.String("refresh", "", "Tell a running codenav instance that `file` changed")
	gotoLine := flag.Int("goto", 0, "Highlight the item at `line` in a running codenav instance")
	noSocket := flag.Bool("no-socket", false, "Do not listen for editor commands")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] FILE.go\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *refresh != "" || *gotoLine > 0 {
		if err := sendToRunning(*refresh, *gotoLine); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(2)
	}
	filePath := args[0]

	if *dump {
		items, err := outline.ParseFile(filePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		spew.Config.DisablePointerAddresses = true
		spew.Config.MaxDepth = 8
		spew.Dump(items)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.OpenForFile(cfg.Storage.Backend, cfg.Storage.Path, filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	opts := app.Options{
		Config: cfg,
		Theme:  theme.LoadThemeOrDefault(cfg.Theme),
		Store:  store,
	}
	if !*noSocket {
		opts.SocketDir = socket.Dir()
	}

	application, err := app.NewApp(filePath, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *debug {
		application.SetDebugMode(true)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}
}

// sendToRunning sends refresh and goto commands to the most recently
// started codenav instance
func sendToRunning(file string, line int) error {
	socketPath, pid, err := socket.FindRunningInstance(socket.Dir())
	if err != nil {
		return err
	}
	log.Printf("Found running instance at PID %d: %s", pid, socketPath)

	client, err := socket.NewClient(socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	if file != "" {
		response, err := client.Refresh(file)
		if err != nil {
			return fmt.Errorf("failed to send refresh: %w", err)
		}
		if !response.Success {
			return fmt.Errorf("server error: %s", response.Message)
		}
	}

	if line > 0 {
		response, err := client.Goto(file, line)
		if err != nil {
			return fmt.Errorf("failed to send goto: %w", err)
		}
		if !response.Success {
			return fmt.Errorf("server error: %s", response.Message)
		}
	}
	return nil
}
