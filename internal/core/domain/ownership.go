package domain

// Owned is implemented by every stored entity that records an owner.
type Owned interface {
	OwnerID() string
}

// Decision is the outcome of an access check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Err returns ErrForbidden for a Deny decision and nil otherwise.
func (d Decision) Err() error {
	if d == Allow {
		return nil
	}
	return ErrForbidden
}

// CheckOwnership allows the caller when it owns the resource or is an admin.
// An empty owner never matches.
func CheckOwnership(resource Owned, who Identity) Decision {
	if who.IsAdmin() {
		return Allow
	}
	if resource == nil {
		return Deny
	}
	owner := resource.OwnerID()
	if owner != "" && owner == who.ID {
		return Allow
	}
	return Deny
}
