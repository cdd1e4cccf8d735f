package repository

import (
	"context"

	"docregistry/internal/model"
)

// UserRepository defines data access for user profiles using SQL queries only.
// No authorization logic here; callers are trusted to have passed the gate.
type UserRepository interface {
	// Create inserts a new profile. Returns ErrDuplicate if the identity
	// is already registered.
	Create(ctx context.Context, profile *model.UserProfile) (*model.UserProfile, error)

	// FindByIdentity returns the profile for an identity.
	// Returns sql.ErrNoRows if no such profile exists.
	FindByIdentity(ctx context.Context, identity string) (*model.UserProfile, error)

	// UpdateRole sets the role and bumps updated_at; other fields are
	// untouched. Returns sql.ErrNoRows if the identity is unknown.
	UpdateRole(ctx context.Context, identity string, role model.Role) (*model.UserProfile, error)

	// List returns every profile in registration order.
	List(ctx context.Context) ([]model.UserProfile, error)

	// Count returns the number of registered profiles.
	Count(ctx context.Context) (int, error)
}
