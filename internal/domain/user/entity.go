package user

import (
	"time"

	"github.com/google/uuid"
)

// User is read-only inside the engine; accounts are managed by the identity service.
type User struct {
	id            uuid.UUID
	name          string
	email         Email
	role          Role
	bio           string
	averageRating float64
	isActive      bool
	createdAt     time.Time
}

func Reconstruct(id uuid.UUID, name string, email Email, role Role, bio string, averageRating float64, isActive bool, createdAt time.Time) *User {
	return &User{
		id:            id,
		name:          name,
		email:         email,
		role:          role,
		bio:           bio,
		averageRating: averageRating,
		isActive:      isActive,
		createdAt:     createdAt,
	}
}

// IsBookableStaff is true for active users holding the staff role.
func (u *User) IsBookableStaff() bool {
	return u.isActive && u.role == RoleStaff
}

func (u *User) ID() uuid.UUID          { return u.id }
func (u *User) Name() string           { return u.name }
func (u *User) Email() Email           { return u.email }
func (u *User) Role() Role             { return u.role }
func (u *User) Bio() string            { return u.bio }
func (u *User) AverageRating() float64 { return u.averageRating }
func (u *User) IsActive() bool         { return u.isActive }
func (u *User) CreatedAt() time.Time   { return u.createdAt }
