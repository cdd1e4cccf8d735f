package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"

	"docregistry/internal/authz"
	"docregistry/internal/model"
	"docregistry/internal/repository"
	"docregistry/internal/storage"
)

var (
	ErrIdentityRequired  = errors.New("caller identity is required")
	ErrAlreadyRegistered = errors.New("user already registered")
	ErrNotRegistered     = errors.New("caller is not registered")
	ErrUnauthorized      = errors.New("operation not permitted")
	ErrUserNotFound      = errors.New("user not found")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrNameRequired      = errors.New("document name is required")
	ErrPayloadRequired   = errors.New("document payload is required")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidAccess     = errors.New("invalid access level")
)

// RegisterUserRequest carries the caller-declared fields of a registration.
// The role is honored as declared except for the seed-admin bootstrap;
// verifying it against an external credential is the excluded
// authentication collaborator's job.
type RegisterUserRequest struct {
	Role        model.Role
	DisplayName string
	Email       string
}

// UploadDocumentRequest carries the fields of a document upload.
type UploadDocumentRequest struct {
	Name        string
	Description string
	FileType    string
	AccessLevel model.AccessLevel
	Data        []byte
	Tags        []string
}

// RegistryService is the only externally callable surface of the core.
// Every operation takes the caller identity explicitly; there is no
// ambient caller state. Each call resolves the caller's role, consults
// the authorization rules, then performs the effect against a store.
type RegistryService interface {
	RegisterUser(ctx context.Context, caller string, req RegisterUserRequest) (*model.UserProfile, error)
	AssignRole(ctx context.Context, caller, target string, role model.Role) (*model.UserProfile, error)
	GetUserProfile(ctx context.Context, caller string) (*model.UserProfile, error)
	ListUsers(ctx context.Context, caller string) ([]model.UserProfile, error)

	UploadDocument(ctx context.Context, caller string, req UploadDocumentRequest) (*model.Document, error)
	DownloadDocument(ctx context.Context, caller, id string) ([]byte, *model.Document, error)
	GetDocument(ctx context.Context, caller, id string) (*model.Document, error)
	ListDocuments(ctx context.Context, caller string) ([]model.Document, error)
}

type registryService struct {
	users repository.UserRepository
	docs  repository.DocumentRepository
	store storage.Storage
}

// NewRegistryService constructs a new RegistryService.
func NewRegistryService(users repository.UserRepository, docs repository.DocumentRepository, store storage.Storage) RegistryService {
	return &registryService{users: users, docs: docs, store: store}
}

// resolveRole maps the caller identity to its current role. Callers
// without a profile read as Guest so public documents stay reachable;
// registered reports whether a profile exists.
func (s *registryService) resolveRole(ctx context.Context, caller string) (role model.Role, registered bool, err error) {
	profile, err := s.users.FindByIdentity(ctx, caller)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.RoleGuest, false, nil
		}
		return "", false, fmt.Errorf("resolve caller role: %w", err)
	}
	return profile.Role, true, nil
}

// RegisterUser creates the caller's profile. The very first registration
// is granted Admin regardless of the requested role so a fresh registry
// always has a superuser.
func (s *registryService) RegisterUser(ctx context.Context, caller string, req RegisterUserRequest) (*model.UserProfile, error) {
	if caller == "" {
		return nil, ErrIdentityRequired
	}
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	role := req.Role
	if count == 0 {
		role = model.RoleAdmin
	}

	now := time.Now().UTC()
	profile := &model.UserProfile{
		Identity:    caller,
		Role:        role,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	stored, err := s.users.Create(ctx, profile)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return stored, nil
}

// AssignRole changes the target identity's role. Admin only.
func (s *registryService) AssignRole(ctx context.Context, caller, target string, role model.Role) (*model.UserProfile, error) {
	if caller == "" {
		return nil, ErrIdentityRequired
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	callerRole, registered, err := s.resolveRole(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !registered || !authz.CanAssignRole(callerRole) {
		return nil, ErrUnauthorized
	}

	updated, err := s.users.UpdateRole(ctx, target, role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update role: %w", err)
	}
	return updated, nil
}

// GetUserProfile returns the caller's own profile.
func (s *registryService) GetUserProfile(ctx context.Context, caller string) (*model.UserProfile, error) {
	if caller == "" {
		return nil, ErrIdentityRequired
	}
	profile, err := s.users.FindByIdentity(ctx, caller)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return profile, nil
}

// ListUsers returns all profiles in registration order. Admin only.
func (s *registryService) ListUsers(ctx context.Context, caller string) ([]model.UserProfile, error) {
	if caller == "" {
		return nil, ErrIdentityRequired
	}
	role, registered, err := s.resolveRole(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !registered || !authz.CanListUsers(role) {
		return nil, ErrUnauthorized
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UploadDocument stores the payload in object storage, then the metadata
// row. The row insert is the visibility point: if it fails the payload
// object is rolled back, so readers never observe a half-written document.
func (s *registryService) UploadDocument(ctx context.Context, caller string, req UploadDocumentRequest) (*model.Document, error) {
	if caller == "" {
		return nil, ErrIdentityRequired
	}
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if len(req.Data) == 0 {
		return nil, ErrPayloadRequired
	}
	if !req.AccessLevel.Valid() {
		return nil, ErrInvalidAccess
	}

	role, registered, err := s.resolveRole(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !registered {
		return nil, ErrNotRegistered
	}
	if !authz.CanUpload(role, req.AccessLevel) {
		return nil, ErrUnauthorized
	}

	id := uuid.New().String()
	key := path.Join("documents", id)

	_, err = s.store.Put(ctx, key, bytes.NewReader(req.Data), storage.PutObjectOptions{
		Size:        int64(len(req.Data)),
		ContentType: req.FileType,
		Metadata: map[string]string{
			"document-name": req.Name,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	now := time.Now().UTC()
	doc := &model.Document{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		FileType:    req.FileType,
		Size:        int64(len(req.Data)),
		Owner:       caller,
		AccessLevel: req.AccessLevel,
		StoragePath: key,
		CreatedAt:   now,
		UpdatedAt:   now,
		Tags:        model.NormalizeTags(req.Tags),
	}
	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("metadata save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("metadata save failed: %w", err)
	}
	return stored, nil
}

// DownloadDocument returns the full payload bytes along with the metadata.
// The view gate is a hard failure here, unlike the list filter.
func (s *registryService) DownloadDocument(ctx context.Context, caller, id string) ([]byte, *model.Document, error) {
	doc, err := s.viewableDocument(ctx, caller, id)
	if err != nil {
		return nil, nil, err
	}

	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch payload: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, nil, fmt.Errorf("read payload: %w", err)
	}
	return data, doc, nil
}

// GetDocument returns document metadata, gated exactly like a download.
func (s *registryService) GetDocument(ctx context.Context, caller, id string) (*model.Document, error) {
	return s.viewableDocument(ctx, caller, id)
}

func (s *registryService) viewableDocument(ctx context.Context, caller, id string) (*model.Document, error) {
	if caller == "" {
		return nil, ErrIdentityRequired
	}
	if id == "" {
		return nil, ErrDocumentNotFound
	}

	role, _, err := s.resolveRole(ctx, caller)
	if err != nil {
		return nil, err
	}

	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}

	if !authz.CanView(role, caller, doc) {
		return nil, ErrUnauthorized
	}
	return doc, nil
}

// ListDocuments returns the documents visible to the caller, in insertion
// order. Filtering happens here, not in the repository.
func (s *registryService) ListDocuments(ctx context.Context, caller string) ([]model.Document, error) {
	if caller == "" {
		return nil, ErrIdentityRequired
	}
	role, _, err := s.resolveRole(ctx, caller)
	if err != nil {
		return nil, err
	}

	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	visible := make([]model.Document, 0, len(docs))
	for i := range docs {
		if authz.CanView(role, caller, &docs[i]) {
			visible = append(visible, docs[i])
		}
	}
	return visible, nil
}
