package domain

import "time"

// Identity is the authenticated caller resolved for a single request.
type Identity struct {
	ID   string
	Role Role

	// TokenID and ExpiresAt describe the credential the identity came from.
	TokenID   string
	ExpiresAt time.Time
}

// IsAdmin reports whether the identity carries the administrative role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// OwnerScope returns the owner id a conditional write must match, or "" when
// the caller may write any document.
func (i Identity) OwnerScope() string {
	if i.IsAdmin() {
		return ""
	}
	return i.ID
}
