package domain

import "fmt"

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleUser      Role = "user"
	RolePublisher Role = "publisher"
	RoleAdmin     Role = "admin"
)

// ParseRole converts s into a Role, rejecting anything outside the enumeration.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleUser, RolePublisher, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
}

// SelfAssignable reports whether a caller may pick this role at registration.
func (r Role) SelfAssignable() bool {
	return r == RoleUser || r == RolePublisher
}

func (r Role) String() string { return string(r) }
