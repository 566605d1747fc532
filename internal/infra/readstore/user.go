package readstore

import (
	"context"

	"court-booking/internal/infra"
	"court-booking/internal/infra/db"
	"court-booking/internal/pkg/pgconv"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	selectUserViewSQL = `
SELECT id, name, email, role, is_active, last_login
FROM users`
	findUserByIDSQL = selectUserViewSQL + ` WHERE id = $1`
	findUsersSQL    = selectUserViewSQL + ` ORDER BY created_at, email`
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var (
		v         queries.AuthorizedUserView
		lastLogin pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findUserByIDSQL, id).Scan(&v.ID, &v.Name, &v.Email, &v.Role, &v.IsActive, &lastLogin)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	v.LastLogin = pgconv.TimePtrFromPgtype(lastLogin)
	return &v, nil
}

func (r *UserReadStore) FindAll(ctx context.Context) ([]*queries.AuthorizedUserView, error) {
	rows, err := r.db.Query(ctx, findUsersSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	views, err := pgx.CollectRows(rows, scanUserView)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan users", err)
	}
	return views, nil
}

func scanUserView(row pgx.CollectableRow) (*queries.AuthorizedUserView, error) {
	var (
		v         queries.AuthorizedUserView
		lastLogin pgtype.Timestamptz
	)
	if err := row.Scan(&v.ID, &v.Name, &v.Email, &v.Role, &v.IsActive, &lastLogin); err != nil {
		return nil, err
	}
	v.LastLogin = pgconv.TimePtrFromPgtype(lastLogin)
	return &v, nil
}
