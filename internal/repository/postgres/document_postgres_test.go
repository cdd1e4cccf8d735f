package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"docregistry/internal/model"
)

var documentColumns = []string{
	"id", "name", "description", "file_type", "size", "owner",
	"access_level", "storage_path", "created_at", "updated_at", "tags",
}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		ID:          "test-uuid",
		Name:        "pitch deck",
		Description: "Q3 deck",
		FileType:    "application/pdf",
		Size:        123,
		Owner:       "alice-identity",
		AccessLevel: model.AccessInvestment,
		StoragePath: "documents/test-uuid",
		CreatedAt:   now,
		UpdatedAt:   now,
		Tags:        []string{"q3", "deck"},
	}

	rows := sqlmock.NewRows(documentColumns).
		AddRow(doc.ID, doc.Name, doc.Description, doc.FileType, doc.Size, doc.Owner,
			doc.AccessLevel, doc.StoragePath, doc.CreatedAt, doc.UpdatedAt, []byte(`["q3","deck"]`))

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.Name, doc.Description, doc.FileType, doc.Size, doc.Owner,
			doc.AccessLevel, doc.StoragePath, doc.CreatedAt, doc.UpdatedAt, []byte(`["q3","deck"]`)).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, doc.ID, result.ID)
	assert.Equal(t, []string{"q3", "deck"}, result.Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(documentColumns).
			AddRow("test-id", "report", "", "text/plain", 100, "bob-identity",
				model.AccessPublic, "documents/test-id", time.Now(), time.Now(), []byte(`[]`))

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("test-id").
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, "test-id")

		assert.NoError(t, err)
		assert.NotNil(t, doc)
		assert.Equal(t, "test-id", doc.ID)
		assert.Equal(t, model.AccessPublic, doc.AccessLevel)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")

		assert.Nil(t, doc)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(documentColumns).
		AddRow("a", "first", "", "", 1, "o1", model.AccessPublic, "documents/a", time.Now(), time.Now(), []byte(`[]`)).
		AddRow("b", "second", "", "", 2, "o2", model.AccessPrivate, "documents/b", time.Now(), time.Now(), []byte(`["x"]`))

	mock.ExpectQuery("SELECT (.+) FROM documents ORDER BY seq ASC").
		WillReturnRows(rows)

	docs, err := repo.List(ctx)

	assert.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, []string{"x"}, docs[1].Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}
