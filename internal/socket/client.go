package socket

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Client represents a Unix socket client for sending commands
type Client struct {
	socketPath string
}

// FindRunningInstance finds the socket of the most recently started instance in dir.
// Returns the socket path and PID, or an error if none is running.
func FindRunningInstance(dir string) (string, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return "", 0, fmt.Errorf("error scanning socket directory: %w", err)
	}

	var newest string
	var newestTime time.Time
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, socketPrefix) || !strings.HasSuffix(name, ".sock") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest = filepath.Join(dir, name)
			newestTime = info.ModTime()
		}
	}

	if newest == "" {
		return "", 0, fmt.Errorf("no running codenav instance found")
	}

	pidStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(newest), socketPrefix), ".sock")
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		pid = 0
	}
	return newest, pid, nil
}

// NewClient creates a new client connected to the specified socket
func NewClient(socketPath string) (*Client, error) {
	if _, err := os.Stat(socketPath); err != nil {
		return nil, fmt.Errorf("socket not found: %w", err)
	}

	return &Client{socketPath: socketPath}, nil
}

// Send sends a message to the server and returns the response
func (c *Client) Send(msg Message) (*Response, error) {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket: %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(10 * time.Second))

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	var response Response
	if err := json.NewDecoder(conn).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to receive response: %w", err)
	}

	return &response, nil
}

// Refresh asks the instance to re-parse file
func (c *Client) Refresh(file string) (*Response, error) {
	return c.Send(Message{Command: CommandRefresh, File: file})
}

// Goto asks the instance to highlight the item at the one-based line of file
func (c *Client) Goto(file string, line int) (*Response, error) {
	return c.Send(Message{Command: CommandGoto, File: file, Line: line})
}

// Status asks the instance which file and item are selected
func (c *Client) Status() (*Response, error) {
	return c.Send(Message{Command: CommandStatus})
}
