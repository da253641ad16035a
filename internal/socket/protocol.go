// Package socket is the control channel of a running codenav instance.
// Editors use it to tell the outline that a file was saved or that the
// cursor moved.
package socket

// Message represents a command sent to the running codenav instance
type Message struct {
	Command string `json:"command"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"` // one-based

	// ResponseChan is set for commands that answer with data
	ResponseChan chan *Response `json:"-"`
}

// Response represents the response from the server
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Item    string `json:"item,omitempty"`
}

// Command types
const (
	// CommandRefresh re-parses the file and updates the outline if it changed
	CommandRefresh = "refresh"
	// CommandGoto highlights the item at Line
	CommandGoto = "goto"
	// CommandStatus answers with the file and the selected item
	CommandStatus = "status"
)

// synchronous reports whether the server waits for the app to answer the command
func synchronous(command string) bool {
	return command == CommandStatus
}
