package command

import (
	"context"
	"log"

	"github.com/pstuifzand/codenav/internal/document"
	"github.com/pstuifzand/codenav/internal/model"
)

// Host is the editor the outline is shown in. Commands call it and only
// look at the returned error to log it.
type Host interface {
	ScrollToLine(ctx context.Context, filePath string, pos model.LinePosition) error
	SelectSpan(ctx context.Context, filePath string, span model.Span) error
	SetClipboard(text string) error
	// EditBookmarkStyles shows the style editor and returns once it is closed
	EditBookmarkStyles(doc *document.Document) error
	UpdateDocument(doc *document.Document) error
	ToggleAll(expand bool, items []*model.Item)
	FilterBookmarks(doc *document.Document)
}

// LogSink receives every failure of a command, tagged with the command name
type LogSink interface {
	Log(tag string, err error)
}

// StdLogSink writes failures through a standard logger
type StdLogSink struct {
	Logger *log.Logger
}

// Log implements LogSink
func (s StdLogSink) Log(tag string, err error) {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("%s: %v", tag, err)
}
