package model

import "time"

// Document represents stored document metadata.
// This is a pure domain model with no database-specific dependencies or tags.
// Owner holds the uploader's identity by value, not a live reference:
// the owner's profile may be looked up separately and may legitimately
// no longer resolve without invalidating the document.
type Document struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	FileType    string      `json:"file_type"`
	Size        int64       `json:"size"`
	Owner       string      `json:"owner"`
	AccessLevel AccessLevel `json:"access_level"`
	StoragePath string      `json:"-"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Tags        []string    `json:"tags"`
}

// NormalizeTags drops empty entries and duplicates while preserving
// first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
