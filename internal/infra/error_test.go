//go:build unit

package infra_test

import (
	"errors"
	"testing"

	"court-booking/internal/infra"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErrClassifiesSQLState(t *testing.T) {
	tests := []struct {
		code string
		want infra.RepositoryErrorKind
	}{
		{"23505", infra.KindDuplicateKey},
		{"23503", infra.KindForeignKeyViolated},
		{"23P01", infra.KindConflict},
		{"42P01", infra.KindDBFailure},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := infra.WrapRepoErr("insert reservation", &pgconn.PgError{Code: tt.code})
			assert.True(t, infra.IsKind(err, tt.want))
		})
	}
}

func TestWrapRepoErrExplicitKind(t *testing.T) {
	err := infra.WrapRepoErr("court lookup", errors.New("no rows"), infra.KindNotFound)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
	assert.False(t, infra.IsKind(err, infra.KindDBFailure))
	assert.Contains(t, err.Error(), "NOT_FOUND: court lookup")
}

func TestNewRepoErr(t *testing.T) {
	err := infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
	assert.Equal(t, "NOT_FOUND: reservation not found", err.Error())
}
