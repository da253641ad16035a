package ui

import (
	"sync"
	"time"
)

// Message is a status line message
type Message struct {
	Text      string
	IsError   bool
	Timestamp time.Time
}

// StatusLine shows the latest message and keeps the last few for the message log
type StatusLine struct {
	mu       sync.Mutex
	messages []Message
	maxSize  int
	ttl      time.Duration
}

// NewStatusLine creates a status line that remembers maxSize messages and
// shows each for ttl
func NewStatusLine(maxSize int, ttl time.Duration) *StatusLine {
	return &StatusLine{
		messages: make([]Message, 0, maxSize),
		maxSize:  maxSize,
		ttl:      ttl,
	}
}

// Info shows a message
func (s *StatusLine) Info(text string) {
	s.add(text, false)
}

// Error shows an error message
func (s *StatusLine) Error(text string) {
	s.add(text, true)
}

func (s *StatusLine) add(text string, isError bool) {
	if text == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, Message{Text: text, IsError: isError, Timestamp: time.Now()})
	if len(s.messages) > s.maxSize {
		s.messages = s.messages[len(s.messages)-s.maxSize:]
	}
}

// Current returns the latest message while it has not expired
func (s *StatusLine) Current(now time.Time) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.messages) == 0 {
		return Message{}, false
	}
	last := s.messages[len(s.messages)-1]
	if s.ttl > 0 && now.Sub(last.Timestamp) > s.ttl {
		return Message{}, false
	}
	return last, true
}

// Messages returns the remembered messages, newest first
func (s *StatusLine) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Message, len(s.messages))
	for i, msg := range s.messages {
		result[len(s.messages)-1-i] = msg
	}
	return result
}

// Render draws the status line: mode on the left, then the current message
func (s *StatusLine) Render(screen *Screen, y int, mode string) {
	x := screen.DrawString(0, y, " "+mode+" ", screen.StatusModeStyle())
	x += screen.DrawString(x, y, " ", screen.StatusMessageStyle())

	if msg, ok := s.Current(time.Now()); ok {
		style := screen.StatusMessageStyle()
		if msg.IsError {
			style = screen.StatusErrorStyle()
		}
		x += screen.DrawStringLimited(x, y, msg.Text, screen.GetWidth()-x, style)
	}
	screen.FillLine(x, y, screen.StatusMessageStyle())
}
