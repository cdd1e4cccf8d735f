package model

import "fmt"

// AccessLevel is the closed set of document visibility levels.
type AccessLevel string

const (
	AccessPublic     AccessLevel = "Public"
	AccessInvestment AccessLevel = "Investment"
	AccessBusiness   AccessLevel = "Business"
	AccessPrivate    AccessLevel = "Private"
)

// ParseAccessLevel validates a wire-level access level string.
func ParseAccessLevel(s string) (AccessLevel, error) {
	switch AccessLevel(s) {
	case AccessPublic, AccessInvestment, AccessBusiness, AccessPrivate:
		return AccessLevel(s), nil
	}
	return "", fmt.Errorf("unknown access level %q", s)
}

// Valid reports whether l is one of the four defined levels.
func (l AccessLevel) Valid() bool {
	switch l {
	case AccessPublic, AccessInvestment, AccessBusiness, AccessPrivate:
		return true
	}
	return false
}

func (l AccessLevel) String() string { return string(l) }
