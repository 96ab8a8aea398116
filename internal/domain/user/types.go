package user

import "github.com/google/uuid"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

func NewRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return r, nil
	}
	return "", ErrInvalidRole
}

func (r Role) String() string { return string(r) }

// Principal is the authenticated caller. Roles are trusted as supplied by the identity layer.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// ActsFor reports whether the caller may act on behalf of the given user.
func (p Principal) ActsFor(userID uuid.UUID) bool {
	return p.IsAdmin() || p.ID == userID
}
