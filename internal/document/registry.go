package document

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pstuifzand/codenav/internal/model"
)

// Registry tracks the open documents. Items reach their document through
// the registry so that a closed document is detected instead of used.
type Registry struct {
	mu   sync.RWMutex
	docs map[model.DocumentID]*Document
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{docs: make(map[model.DocumentID]*Document)}
}

// Open registers a document, replacing any document with the same path
func (r *Registry) Open(doc *Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID()] = doc
}

// Close forgets a document
func (r *Registry) Close(id model.DocumentID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, id)
}

// Get resolves a document handle
func (r *Registry) Get(id model.DocumentID) (*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrDocumentNotOpen)
	}
	return doc, nil
}

// For resolves the document an item belongs to. An item parsed for a
// document that has since been closed and reopened is rejected.
func (r *Registry) For(item *model.Item) (*Document, error) {
	doc, err := r.Get(item.Document)
	if err != nil {
		return nil, err
	}
	if doc.Generation() != item.DocumentGeneration {
		return nil, fmt.Errorf("%s was reopened: %w", item.Document, ErrDocumentNotOpen)
	}
	return doc, nil
}

// Documents returns the open documents sorted by path
func (r *Registry) Documents() []*Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := make([]*Document, 0, len(r.docs))
	for _, doc := range r.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].FilePath() < docs[j].FilePath()
	})
	return docs
}
