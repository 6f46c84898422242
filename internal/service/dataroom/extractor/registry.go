package extractor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"dataroom/internal/storage"
)

// Extractor pulls plain text out of raw content of the types it supports
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
	SupportedMimeTypes() []string
}

// Registry routes extraction by MIME type and loads bytes from the content store.
// It implements the service-level TextExtractor.
//
// Thread-safe for concurrent access.
type Registry struct {
	store      storage.ContentStore
	mu         sync.RWMutex
	extractors map[string]Extractor // key: lowercased MIME type
}

// NewRegistry creates a registry with the PDF extractor pre-registered
func NewRegistry(store storage.ContentStore) *Registry {
	r := &Registry{
		store:      store,
		extractors: make(map[string]Extractor),
	}
	r.Register(NewPDFExtractor())
	return r
}

// Register associates an extractor with each MIME type it supports
func (r *Registry) Register(e Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, mt := range e.SupportedMimeTypes() {
		r.extractors[strings.ToLower(mt)] = e
	}
}

// Get returns the extractor for mimeType, or nil
func (r *Registry) Get(mimeType string) Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.extractors[strings.ToLower(mimeType)]
}

// ExtractText loads contentRef and extracts its text. Unsupported types and
// content without text yield nil text and nil error.
func (r *Registry) ExtractText(ctx context.Context, contentRef, mimeType string) (*string, error) {
	e := r.Get(mimeType)
	if e == nil {
		return nil, nil
	}

	data, err := r.store.Get(ctx, contentRef)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	text, err := e.Extract(ctx, data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return &text, nil
}
