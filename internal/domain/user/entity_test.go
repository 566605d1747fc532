//go:build unit

package user_test

import (
	"testing"
	"time"

	"court-booking/internal/domain/user"
	"court-booking/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreUnexported(user.User{}),
	cmpopts.EquateEmpty(),
}

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("default user", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)

		name, _ := user.NewName("Test User")
		email, _ := user.NewEmail("test@example.com")
		expected := user.NewUser(name, email, "hashed_password", user.RoleCustomer)

		if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
			t.Errorf("User mismatch (-want +got):\n%s", diff)
		}
		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.True(t, actual.IsActive())
		assert.Nil(t, actual.LastLogin())
		assert.Equal(t, user.RoleCustomer, actual.Role())
	})

	t.Run("email", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "valid", mutate: func(b *builder.UserBuilder) { b.WithEmail("valid@example.com") }},
			{name: "empty", mutate: func(b *builder.UserBuilder) { b.WithEmail("") }, errIs: user.ErrInvalidEmail},
			{name: "no domain", mutate: func(b *builder.UserBuilder) { b.WithEmail("invalid-email") }, errIs: user.ErrInvalidEmail},
			{name: "no at sign", mutate: func(b *builder.UserBuilder) { b.WithEmail("invalidemail.com") }, errIs: user.ErrInvalidEmail},
		})
	})

	t.Run("role", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "customer", mutate: func(b *builder.UserBuilder) { b.WithRole("customer") }},
			{name: "admin", mutate: func(b *builder.UserBuilder) { b.AsAdmin() }},
			{name: "unknown", mutate: func(b *builder.UserBuilder) { b.WithRole("operator") }, errIs: user.ErrInvalidRole},
			{name: "empty", mutate: func(b *builder.UserBuilder) { b.WithRole("") }, errIs: user.ErrInvalidRole},
		})
	})

	t.Run("name", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "blank", mutate: func(b *builder.UserBuilder) { b.WithName("  ") }, errIs: user.ErrInvalidName},
			{name: "inactive user still builds", mutate: func(b *builder.UserBuilder) { b.AsInactive() }},
		})
	})
}

func TestApply(t *testing.T) {
	at := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	newUser := func(t *testing.T) *user.User {
		u, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		return u
	}

	t.Run("partial update", func(t *testing.T) {
		u := newUser(t)
		name, err := user.NewName("Renamed")
		require.NoError(t, err)
		admin := user.RoleAdmin
		inactive := false

		changed := u.Apply(user.UpdateParams{Name: &name, Role: &admin, IsActive: &inactive}, at)

		assert.True(t, changed)
		assert.Equal(t, "Renamed", u.Name().Value())
		assert.Equal(t, "test@example.com", u.Email().Value())
		assert.Equal(t, user.RoleAdmin, u.Role())
		assert.False(t, u.IsActive())
		assert.Equal(t, at, u.UpdatedAt())
	})

	t.Run("same values are not a change", func(t *testing.T) {
		u := newUser(t)
		email := u.Email()
		hash := u.PasswordHash()

		assert.False(t, u.Apply(user.UpdateParams{Email: &email, PasswordHash: &hash}, at))
		assert.True(t, u.UpdatedAt().IsZero())
	})
}

func TestEmailIsNormalized(t *testing.T) {
	e, err := user.NewEmail("  Player@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "player@example.com", e.Value())
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
