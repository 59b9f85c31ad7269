package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryIndex is an in-process Index, for CLI usage and tests where a
// MongoDB deployment isn't available or needed.
type MemoryIndex struct {
	mu      sync.RWMutex
	records map[string]*DocumentRecord
}

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{records: make(map[string]*DocumentRecord)}
}

// Put inserts or replaces a document record.
func (idx *MemoryIndex) Put(_ context.Context, rec *DocumentRecord) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	cp := *rec
	idx.records[rec.ID] = &cp
	return nil
}

// Get retrieves a document record by id.
func (idx *MemoryIndex) Get(_ context.Context, id string) (*DocumentRecord, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	rec, ok := idx.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

// Delete removes a document record.
func (idx *MemoryIndex) Delete(_ context.Context, id string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	delete(idx.records, id)
	return nil
}

// List returns every indexed document record, most recently indexed first.
func (idx *MemoryIndex) List(_ context.Context) ([]*DocumentRecord, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]*DocumentRecord, 0, len(idx.records))
	for _, rec := range idx.records {
		cp := *rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IndexedAt.After(out[j].IndexedAt) })
	return out, nil
}

// Close is a no-op for the in-memory index.
func (idx *MemoryIndex) Close(context.Context) error { return nil }

// Ensure MemoryIndex implements Index.
var _ Index = (*MemoryIndex)(nil)
