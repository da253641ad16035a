package socket

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"time"
)

const socketPrefix = "codenav-"

// Dir returns the directory sockets of running instances are created in
func Dir() string {
	if xdgRuntime := os.Getenv("XDG_RUNTIME_DIR"); xdgRuntime != "" {
		return filepath.Join(xdgRuntime, "codenav")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "codenav")
}

// Server represents a Unix socket server for accepting external commands
type Server struct {
	socketPath string
	listener   net.Listener
	msgChan    chan Message
	stopChan   chan struct{}
	timeout    time.Duration
}

// NewServer creates a Unix socket server for the process with pid in dir
func NewServer(dir string, pid int) (*Server, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}

	socketPath := filepath.Join(dir, fmt.Sprintf("%s%d.sock", socketPrefix, pid))

	// Remove a socket left behind by a crashed instance with the same pid
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on socket: %w", err)
	}

	log.Printf("Socket server listening on: %s", socketPath)

	return &Server{
		socketPath: socketPath,
		listener:   listener,
		msgChan:    make(chan Message, 10),
		stopChan:   make(chan struct{}),
		timeout:    5 * time.Second,
	}, nil
}

// Start begins accepting connections on the socket
func (s *Server) Start() {
	go s.acceptLoop()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stopChan:
				return
			default:
				log.Printf("Error accepting connection: %v", err)
				continue
			}
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)
	reply := func(r *Response) {
		if err := encoder.Encode(r); err != nil {
			log.Printf("Error writing response: %v", err)
		}
	}

	var msg Message
	if err := decoder.Decode(&msg); err != nil {
		if err != io.EOF {
			log.Printf("Error decoding message: %v", err)
		}
		reply(&Response{Message: fmt.Sprintf("Invalid message format: %v", err)})
		return
	}

	switch msg.Command {
	case CommandRefresh, CommandStatus:
	case CommandGoto:
		if msg.Line <= 0 {
			reply(&Response{Message: "goto needs a line number"})
			return
		}
	case "":
		reply(&Response{Message: "Missing command field"})
		return
	default:
		reply(&Response{Message: "Unknown command: " + msg.Command})
		return
	}

	if synchronous(msg.Command) {
		msg.ResponseChan = make(chan *Response, 1)
	}

	select {
	case s.msgChan <- msg:
	case <-s.stopChan:
		reply(&Response{Message: "Server is shutting down"})
		return
	}

	if msg.ResponseChan == nil {
		reply(&Response{Success: true, Message: "Command queued"})
		return
	}

	select {
	case response := <-msg.ResponseChan:
		reply(response)
	case <-time.After(s.timeout):
		reply(&Response{Message: "Command timed out"})
	}
}

// Messages returns the channel for receiving messages
func (s *Server) Messages() <-chan Message {
	return s.msgChan
}

// SocketPath returns the path to the Unix socket
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Stop stops the server and removes the socket file
func (s *Server) Stop() {
	close(s.stopChan)
	if s.listener != nil {
		s.listener.Close()
	}
	if s.socketPath != "" {
		os.Remove(s.socketPath)
	}
	log.Printf("Socket server stopped")
}
