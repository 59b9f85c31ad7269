// Package store indexes parsed documents' metadata so a query server can
// answer "which documents/sections do I have" without re-parsing text
// format files on every request.
package store

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for index operations.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
)

// SectionSummary is the indexed metadata for one parsed section.
type SectionSummary struct {
	ID       string `bson:"id" json:"id"`
	Nodes    int    `bson:"nodes" json:"nodes"`
	Edges    int    `bson:"edges" json:"edges"`
	Paths    int    `bson:"paths" json:"paths"`
	Topology string `bson:"topology" json:"topology"`
}

// DocumentRecord is the indexed metadata for one parsed document.
type DocumentRecord struct {
	ID         string           `bson:"_id" json:"id"`
	SourcePath string           `bson:"source_path" json:"source_path"`
	Sections   []SectionSummary `bson:"sections" json:"sections"`
	IndexedAt  time.Time        `bson:"indexed_at" json:"indexed_at"`
}

// Index is the interface for document metadata storage backends.
type Index interface {
	// Put inserts or replaces a document record.
	Put(ctx context.Context, rec *DocumentRecord) error

	// Get retrieves a document record by id. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*DocumentRecord, error)

	// Delete removes a document record. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// List returns every indexed document record, most recently indexed first.
	List(ctx context.Context) ([]*DocumentRecord, error)

	// Close releases any resources held by the index.
	Close(ctx context.Context) error
}
