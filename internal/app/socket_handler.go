package app

import (
	"log"
	"path/filepath"

	"github.com/pstuifzand/codenav/internal/socket"
)

// handleSocketMessage processes messages received from the Unix socket
func (a *App) handleSocketMessage(msg socket.Message) {
	log.Printf("Received socket message: command=%s, file=%s, line=%d", msg.Command, msg.File, msg.Line)

	switch msg.Command {
	case socket.CommandRefresh:
		if !a.showsFile(msg.File) {
			log.Printf("Ignoring refresh of %s", msg.File)
			return
		}
		if ic := a.rootCommands(); ic != nil {
			ic.Refresh()
		}
	case socket.CommandGoto:
		if !a.showsFile(msg.File) {
			log.Printf("Ignoring goto in %s", msg.File)
			return
		}
		a.gotoLine(msg.Line)
	case socket.CommandStatus:
		response := &socket.Response{Success: true, Message: a.doc.FilePath()}
		if item := a.tree.GetSelected(); item != nil {
			response.Item = item.ID
		}
		msg.ResponseChan <- response
	default:
		log.Printf("Unknown socket command: %s", msg.Command)
	}
}

// showsFile reports whether path is the open file. An empty path means the open file.
func (a *App) showsFile(path string) bool {
	if path == "" {
		return true
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return abs == a.doc.FilePath()
}
