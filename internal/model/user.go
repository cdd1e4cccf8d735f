package model

import "time"

// UserProfile is the per-identity record owned by the identity store.
// Identity is the opaque caller token supplied by the external
// authentication layer; it is the primary key and never changes.
type UserProfile struct {
	Identity    string    `json:"identity"`
	Role        Role      `json:"role"`
	DisplayName string    `json:"display_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
