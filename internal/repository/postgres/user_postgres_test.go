package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"docregistry/internal/model"
	"docregistry/internal/repository"
)

var userColumns = []string{"identity", "role", "display_name", "email", "created_at", "updated_at"}

func TestUserPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	profile := &model.UserProfile{
		Identity:    "alice-identity",
		Role:        model.RoleAdmin,
		DisplayName: "Alice",
		Email:       "alice@example.com",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	t.Run("success", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns).
			AddRow(profile.Identity, profile.Role, profile.DisplayName, profile.Email, profile.CreatedAt, profile.UpdatedAt)

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(profile.Identity, profile.Role, profile.DisplayName, profile.Email, profile.CreatedAt, profile.UpdatedAt).
			WillReturnRows(rows)

		result, err := repo.Create(ctx, profile)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, profile.Identity, result.Identity)
		assert.Equal(t, model.RoleAdmin, result.Role)
	})

	t.Run("duplicate identity", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(profile.Identity, profile.Role, profile.DisplayName, profile.Email, profile.CreatedAt, profile.UpdatedAt).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		result, err := repo.Create(ctx, profile)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByIdentity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns).
			AddRow("bob-identity", model.RoleInvestor, "Bob", "", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM users WHERE identity = ?").
			WithArgs("bob-identity").
			WillReturnRows(rows)

		profile, err := repo.FindByIdentity(ctx, "bob-identity")

		assert.NoError(t, err)
		assert.NotNil(t, profile)
		assert.Equal(t, model.RoleInvestor, profile.Role)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE identity = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		profile, err := repo.FindByIdentity(ctx, "missing")

		assert.Nil(t, profile)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_UpdateRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(userColumns).
		AddRow("bob-identity", model.RoleBusiness, "Bob", "", time.Now(), time.Now())

	mock.ExpectQuery("UPDATE users").
		WithArgs("bob-identity", model.RoleBusiness).
		WillReturnRows(rows)

	profile, err := repo.UpdateRole(ctx, "bob-identity", model.RoleBusiness)

	assert.NoError(t, err)
	assert.NotNil(t, profile)
	assert.Equal(t, model.RoleBusiness, profile.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(userColumns).
		AddRow("first", model.RoleAdmin, "", "", time.Now(), time.Now()).
		AddRow("second", model.RoleGuest, "", "", time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY seq ASC").
		WillReturnRows(rows)

	profiles, err := repo.List(ctx)

	assert.NoError(t, err)
	assert.Len(t, profiles, 2)
	assert.Equal(t, "first", profiles[0].Identity)
	assert.Equal(t, "second", profiles[1].Identity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_Count(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.Count(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
