package authz

import (
	"testing"

	"docregistry/internal/model"

	"github.com/stretchr/testify/assert"
)

var allRoles = []model.Role{model.RoleAdmin, model.RoleInvestor, model.RoleBusiness, model.RoleGuest}
var allLevels = []model.AccessLevel{model.AccessPublic, model.AccessInvestment, model.AccessBusiness, model.AccessPrivate}

func TestCanUpload(t *testing.T) {
	// Full matrix, all 16 combinations.
	want := map[model.Role]map[model.AccessLevel]bool{
		model.RoleAdmin: {
			model.AccessPublic:     true,
			model.AccessInvestment: true,
			model.AccessBusiness:   true,
			model.AccessPrivate:    true,
		},
		model.RoleInvestor: {
			model.AccessPublic:     true,
			model.AccessInvestment: true,
			model.AccessBusiness:   false,
			model.AccessPrivate:    true,
		},
		model.RoleBusiness: {
			model.AccessPublic:     true,
			model.AccessInvestment: false,
			model.AccessBusiness:   true,
			model.AccessPrivate:    true,
		},
		model.RoleGuest: {
			model.AccessPublic:     true,
			model.AccessInvestment: false,
			model.AccessBusiness:   false,
			model.AccessPrivate:    false,
		},
	}

	for _, role := range allRoles {
		for _, level := range allLevels {
			got := CanUpload(role, level)
			assert.Equalf(t, want[role][level], got, "CanUpload(%s, %s)", role, level)
		}
	}
}

func TestCanAssignRole(t *testing.T) {
	for _, role := range allRoles {
		assert.Equalf(t, role == model.RoleAdmin, CanAssignRole(role), "CanAssignRole(%s)", role)
	}
}

func TestCanListUsers(t *testing.T) {
	for _, role := range allRoles {
		assert.Equalf(t, role == model.RoleAdmin, CanListUsers(role), "CanListUsers(%s)", role)
	}
}

func TestCanView_RoleClasses(t *testing.T) {
	doc := func(level model.AccessLevel) *model.Document {
		return &model.Document{ID: "doc-1", Owner: "owner-id", AccessLevel: level}
	}

	want := map[model.Role]map[model.AccessLevel]bool{
		model.RoleAdmin: {
			model.AccessPublic:     true,
			model.AccessInvestment: true,
			model.AccessBusiness:   true,
		},
		model.RoleInvestor: {
			model.AccessPublic:     true,
			model.AccessInvestment: true,
			model.AccessBusiness:   false,
		},
		model.RoleBusiness: {
			model.AccessPublic:     true,
			model.AccessInvestment: false,
			model.AccessBusiness:   true,
		},
		model.RoleGuest: {
			model.AccessPublic:     true,
			model.AccessInvestment: false,
			model.AccessBusiness:   false,
		},
	}

	for _, role := range allRoles {
		for _, level := range []model.AccessLevel{model.AccessPublic, model.AccessInvestment, model.AccessBusiness} {
			got := CanView(role, "third-party", doc(level))
			assert.Equalf(t, want[role][level], got, "CanView(%s, third-party, %s)", role, level)
		}
	}
}

func TestCanView_Private(t *testing.T) {
	doc := &model.Document{ID: "doc-1", Owner: "owner-id", AccessLevel: model.AccessPrivate}

	t.Run("owner can always view", func(t *testing.T) {
		for _, role := range []model.Role{model.RoleInvestor, model.RoleBusiness} {
			assert.Truef(t, CanView(role, "owner-id", doc), "owner with role %s", role)
		}
	})

	t.Run("admin can always view", func(t *testing.T) {
		assert.True(t, CanView(model.RoleAdmin, "someone-else", doc))
	})

	t.Run("third party denied regardless of role", func(t *testing.T) {
		for _, role := range []model.Role{model.RoleInvestor, model.RoleBusiness, model.RoleGuest} {
			assert.Falsef(t, CanView(role, "someone-else", doc), "third party with role %s", role)
		}
	})

	t.Run("guest denied even as owner", func(t *testing.T) {
		assert.False(t, CanView(model.RoleGuest, "owner-id", doc))
	})
}
