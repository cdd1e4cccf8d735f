// Package authz encodes the access matrix for the document registry.
// Every function here is a pure predicate over roles, access levels and
// identities: no state, no I/O, no errors. Callers that mutate or read
// stores must pass these gates first.
package authz

import "docregistry/internal/model"

// CanUpload reports whether a caller with the given role may create a
// document at the given access level.
//
// Admin may upload at any level. Public is open to every role. Private
// is open to every registered role except Guest. Investment and
// Business are restricted to their matching role.
func CanUpload(role model.Role, level model.AccessLevel) bool {
	if role == model.RoleAdmin {
		return true
	}
	switch level {
	case model.AccessPublic:
		return true
	case model.AccessInvestment:
		return role == model.RoleInvestor
	case model.AccessBusiness:
		return role == model.RoleBusiness
	case model.AccessPrivate:
		return role == model.RoleInvestor || role == model.RoleBusiness
	}
	return false
}

// CanAssignRole reports whether a caller with the given role may change
// another user's role.
func CanAssignRole(role model.Role) bool {
	return role == model.RoleAdmin
}

// CanListUsers reports whether a caller with the given role may
// enumerate all registered profiles.
func CanListUsers(role model.Role) bool {
	return role == model.RoleAdmin
}

// CanView reports whether the caller may see the given document. It is
// used both as the list_documents filter and as the download gate.
//
// The check is two-layered: the access level selects a role class, and
// Private additionally requires the caller to be the document's owner.
// Admin overrides every rule.
func CanView(role model.Role, callerIdentity string, doc *model.Document) bool {
	if role == model.RoleAdmin {
		return true
	}
	switch doc.AccessLevel {
	case model.AccessPublic:
		return true
	case model.AccessInvestment:
		return role == model.RoleInvestor
	case model.AccessBusiness:
		return role == model.RoleBusiness
	case model.AccessPrivate:
		return callerIdentity == doc.Owner && role != model.RoleGuest
	}
	return false
}
