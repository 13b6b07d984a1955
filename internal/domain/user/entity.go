package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an assignee or actor. Identity and sessions are managed elsewhere;
// this holds only what custody rules need.
type User struct {
	id        uuid.UUID
	email     Email
	name      string
	role      Role
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

func NewUser(email Email, name string, role Role, now time.Time) *User {
	return &User{
		id:        uuid.New(),
		email:     email,
		name:      strings.TrimSpace(name),
		role:      role,
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}
}

func Reconstruct(id uuid.UUID, email Email, name string, role Role, isActive bool, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		email:     email,
		name:      name,
		role:      role,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u *User) Deactivate(now time.Time) {
	u.isActive = false
	u.updatedAt = now
}

// Label is how the user is referred to in audit notes.
func (u *User) Label() string {
	if u.name != "" {
		return u.name
	}
	return u.email.Value()
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) Name() string         { return u.name }
func (u *User) Role() Role           { return u.role }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
