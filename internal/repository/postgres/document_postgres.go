package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"docregistry/internal/model"
	"docregistry/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
// Tags are stored as a JSONB array so the row stays scannable through
// database/sql without driver-specific array types.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	tags, err := json.Marshal(model.NormalizeTags(doc.Tags))
	if err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO documents (id, name, description, file_type, size, owner, access_level, storage_path, created_at, updated_at, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, name, description, file_type, size, owner, access_level, storage_path, created_at, updated_at, tags
	`
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Name,
		doc.Description,
		doc.FileType,
		doc.Size,
		doc.Owner,
		doc.AccessLevel,
		doc.StoragePath,
		doc.CreatedAt,
		doc.UpdatedAt,
		tags,
	)
	out, err := scanDocument(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT id, name, description, file_type, size, owner, access_level, storage_path, created_at, updated_at, tags
		FROM documents
		WHERE id = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// List returns all documents in insertion order.
func (r *DocumentPostgres) List(ctx context.Context) ([]model.Document, error) {
	const q = `
		SELECT id, name, description, file_type, size, owner, access_level, storage_path, created_at, updated_at, tags
		FROM documents
		ORDER BY seq ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		var tags []byte
		if err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Description,
			&d.FileType,
			&d.Size,
			&d.Owner,
			&d.AccessLevel,
			&d.StoragePath,
			&d.CreatedAt,
			&d.UpdatedAt,
			&tags,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(tags, &d.Tags); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*model.Document, error) {
	var d model.Document
	var tags []byte
	if err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Description,
		&d.FileType,
		&d.Size,
		&d.Owner,
		&d.AccessLevel,
		&d.StoragePath,
		&d.CreatedAt,
		&d.UpdatedAt,
		&tags,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &d.Tags); err != nil {
		return nil, err
	}
	return &d, nil
}
