// Command codenav-bookmarks lists and edits codenav bookmarks
package main

import (
	"os"

	"github.com/pstuifzand/codenav/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
