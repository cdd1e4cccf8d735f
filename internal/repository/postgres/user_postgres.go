package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"docregistry/internal/model"
	"docregistry/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Create inserts a new profile row. The identity primary key serializes
// concurrent registrations: the loser of a race gets ErrDuplicate.
func (r *UserPostgres) Create(ctx context.Context, profile *model.UserProfile) (*model.UserProfile, error) {
	const q = `
		INSERT INTO users (identity, role, display_name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING identity, role, display_name, email, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q,
		profile.Identity,
		profile.Role,
		profile.DisplayName,
		profile.Email,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	var out model.UserProfile
	if err := row.Scan(
		&out.Identity,
		&out.Role,
		&out.DisplayName,
		&out.Email,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return &out, nil
}

// FindByIdentity fetches a single profile by identity.
func (r *UserPostgres) FindByIdentity(ctx context.Context, identity string) (*model.UserProfile, error) {
	const q = `
		SELECT identity, role, display_name, email, created_at, updated_at
		FROM users
		WHERE identity = $1
	`
	row := r.db.QueryRowContext(ctx, q, identity)
	var p model.UserProfile
	if err := row.Scan(
		&p.Identity,
		&p.Role,
		&p.DisplayName,
		&p.Email,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateRole sets the role and updated_at in a single statement so the
// mutation is atomic per identity.
func (r *UserPostgres) UpdateRole(ctx context.Context, identity string, role model.Role) (*model.UserProfile, error) {
	const q = `
		UPDATE users
		SET role = $2, updated_at = now()
		WHERE identity = $1
		RETURNING identity, role, display_name, email, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q, identity, role)
	var p model.UserProfile
	if err := row.Scan(
		&p.Identity,
		&p.Role,
		&p.DisplayName,
		&p.Email,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all profiles in registration order (seq is assigned by a
// sequence at insert time, so the order is stable across reads).
func (r *UserPostgres) List(ctx context.Context) ([]model.UserProfile, error) {
	const q = `
		SELECT identity, role, display_name, email, created_at, updated_at
		FROM users
		ORDER BY seq ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.UserProfile, 0)
	for rows.Next() {
		var p model.UserProfile
		if err := rows.Scan(
			&p.Identity,
			&p.Role,
			&p.DisplayName,
			&p.Email,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the number of registered profiles.
func (r *UserPostgres) Count(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM users`
	var n int
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
