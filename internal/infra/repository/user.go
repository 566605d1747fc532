package repository

import (
	"context"

	"court-booking/internal/domain/user"
	"court-booking/internal/infra"
	"court-booking/internal/infra/db"
	"court-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	insertUserSQL = `
INSERT INTO users (id, name, email, password_hash, role, is_active)
VALUES ($1, $2, $3, $4, $5, $6)`

	updateUserLastLoginSQL = `
UPDATE users SET last_login = $2, updated_at = now() WHERE id = $1`

	updateUserSQL = `
UPDATE users
SET name = $2, email = $3, password_hash = $4, role = $5, is_active = $6, updated_at = now()
WHERE id = $1`

	lockUserSQL   = `SELECT id FROM users WHERE id = $1 FOR UPDATE`
	deleteUserSQL = `DELETE FROM users WHERE id = $1`

	selectUserSQL = `
SELECT id, name, email, password_hash, role, last_login, is_active, created_at, updated_at
FROM users`
	selectUserByEmailSQL = selectUserSQL + ` WHERE email = $1`
	selectUserByIDSQL    = selectUserSQL + ` WHERE id = $1`
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, insertUserSQL,
		u.ID(),
		u.Name().Value(),
		u.Email().Value(),
		u.PasswordHash(),
		u.Role().String(),
		u.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, u *user.User) error {
	tag, err := r.db.Exec(ctx, updateUserLastLoginSQL, u.ID(), pgconv.TimePtrToPgtype(u.LastLogin()))
	if err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "user not found")
	}
	return nil
}

// Update writes every mutable column; a taken email comes back as KindDuplicateKey.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	tag, err := r.db.Exec(ctx, updateUserSQL,
		u.ID(),
		u.Name().Value(),
		u.Email().Value(),
		u.PasswordHash(),
		u.Role().String(),
		u.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "user not found")
	}
	return nil
}

// Lock blocks reservation inserts for the user until the transaction ends.
func (r *UserRepository) Lock(ctx context.Context, id uuid.UUID) error {
	var locked uuid.UUID
	if err := r.db.QueryRow(ctx, lockUserSQL, id).Scan(&locked); err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock user", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteUserSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "user not found")
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	return r.findOne(ctx, selectUserByEmailSQL, email.Value())
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, selectUserByIDSQL, id)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var (
		id                   uuid.UUID
		name, mail, hash     string
		role                 string
		lastLogin            pgtype.Timestamptz
		isActive             bool
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&id, &name, &mail, &hash, &role, &lastLogin, &isActive, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}

	userName, err := user.NewName(name)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode user", err, infra.KindDBFailure)
	}
	userEmail, err := user.NewEmail(mail)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode user", err, infra.KindDBFailure)
	}
	userRole, err := user.NewRole(role)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode user", err, infra.KindDBFailure)
	}

	return user.ReconstructUser(
		id, userName, userEmail, hash, userRole,
		pgconv.TimePtrFromPgtype(lastLogin), isActive, createdAt.Time, updatedAt.Time,
	), nil
}
