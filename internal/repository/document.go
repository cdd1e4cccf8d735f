package repository

import (
	"context"

	"docregistry/internal/model"
)

// DocumentRepository defines data access for document metadata using SQL
// queries only. Payload bytes live in object storage, keyed by
// Document.StoragePath; this repository stores metadata rows.
type DocumentRepository interface {
	// Create inserts a new document record.
	// The caller provides the repository-assigned ID and timestamps.
	// Returns the stored document (may include values set by the DB).
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	// Returns sql.ErrNoRows if no such document exists.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns every document in insertion order. Visibility
	// filtering is the caller's concern.
	List(ctx context.Context) ([]model.Document, error)
}
