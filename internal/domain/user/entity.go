package user

import (
	"time"

	"court-booking/internal/pkg/patch"

	"github.com/google/uuid"
)

// UpdateParams is a partial account update; nil fields keep their value.
// PasswordHash is already hashed by the caller.
type UpdateParams struct {
	Name         *Name
	Email        *Email
	PasswordHash *string
	Role         *Role
	IsActive     *bool
}

type User struct {
	id           uuid.UUID
	name         Name
	email        Email
	passwordHash string
	role         Role
	lastLogin    *time.Time
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(name Name, email Email, passwordHash string, role Role) *User {
	return &User{
		id:           uuid.New(),
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
	}
}

func ReconstructUser(
	id uuid.UUID,
	name Name,
	email Email,
	passwordHash string,
	role Role,
	lastLogin *time.Time,
	isActive bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		lastLogin:    lastLogin,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) RecordLogin(at time.Time) {
	u.lastLogin = &at
}

// Apply reports whether anything changed; updatedAt only moves when it did.
func (u *User) Apply(p UpdateParams, at time.Time) bool {
	changed := patch.Changed(p.Name, u.name) ||
		patch.Changed(p.Email, u.email) ||
		patch.Changed(p.PasswordHash, u.passwordHash) ||
		patch.Changed(p.Role, u.role) ||
		patch.Changed(p.IsActive, u.isActive)
	if !changed {
		return false
	}
	u.name = patch.Coalesce(p.Name, u.name)
	u.email = patch.Coalesce(p.Email, u.email)
	u.passwordHash = patch.Coalesce(p.PasswordHash, u.passwordHash)
	u.role = patch.Coalesce(p.Role, u.role)
	u.isActive = patch.Coalesce(p.IsActive, u.isActive)
	u.updatedAt = at
	return true
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) Name() Name            { return u.name }
func (u *User) Email() Email          { return u.email }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) Role() Role            { return u.role }
func (u *User) LastLogin() *time.Time { return u.lastLogin }
func (u *User) IsActive() bool        { return u.isActive }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }
