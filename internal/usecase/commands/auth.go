package commands

//go:generate mockgen -source=auth.go -destination=../../../tests/mock/commands/auth.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"court-booking/internal/domain/auth"
	"court-booking/internal/domain/user"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/pkg/jwt"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"
)

var (
	ErrInvalidCredentials = errs.Mark(errs.New("invalid email or password"), errs.ErrUnauthenticated)
	ErrUserInactive       = errs.Mark(errs.New("user inactive"), errs.ErrUnauthenticated)
	ErrEmailTaken         = errs.Mark(auth.ErrEmailTaken, errs.ErrConflict)
	ErrTokenGeneration    = errs.New("token generation failed")
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) error
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	AccessToken string
	ExpiresIn   time.Duration
	User        *queries.AuthorizedUserView
}

type AuthCommands interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	// EnsureAdmin creates an admin account unless the email is already registered.
	EnsureAdmin(ctx context.Context, in RegisterInput) (bool, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	hasher     PasswordHasher
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, hasher PasswordHasher, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		hasher:     hasher,
		jwtService: jwtService,
		clock:      clk,
	}
}

// Register creates a customer account and signs it in.
func (a *authCommandsImpl) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	reg, err := auth.NewRegistration(in.Name, in.Email, in.Password)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	hash, err := a.hasher.Hash(reg.Credentials().Password().Value())
	if err != nil {
		return nil, errs.Wrap(err, "hash password")
	}

	u := user.NewUser(reg.Name(), reg.Credentials().Email(), hash, user.RoleCustomer)
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().Create(ctx, u); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrEmailTaken
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return a.issue(u)
}

func (a *authCommandsImpl) EnsureAdmin(ctx context.Context, in RegisterInput) (bool, error) {
	reg, err := auth.NewRegistration(in.Name, in.Email, in.Password)
	if err != nil {
		return false, errs.Mark(err, errs.ErrDomainValidation)
	}

	_, err = a.uow.CommandReads().UserByEmail(ctx, reg.Credentials().Email())
	if err == nil {
		return false, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	hash, err := a.hasher.Hash(reg.Credentials().Password().Value())
	if err != nil {
		return false, errs.Wrap(err, "hash password")
	}

	u := user.NewUser(reg.Name(), reg.Credentials().Email(), hash, user.RoleAdmin)
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, u)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return false, nil
		}
		return false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return true, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	creds, err := auth.NewCredentials(in.Email, in.Password)
	if err != nil {
		// Same answer as a wrong password so the input rules stay hidden.
		return nil, ErrInvalidCredentials
	}

	u, err := a.uow.CommandReads().UserByEmail(ctx, creds.Email())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !u.IsActive() {
		return nil, ErrUserInactive
	}
	if err := a.hasher.Compare(u.PasswordHash(), creds.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	u.RecordLogin(a.clock.Now())
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, u)
	})
	if err != nil {
		slog.Warn("failed to update last login", "user_id", u.ID(), "error", err.Error())
	}

	return a.issue(u)
}

func (a *authCommandsImpl) issue(u *user.User) (*AuthResult, error) {
	token, err := a.jwtService.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &AuthResult{
		AccessToken: token,
		ExpiresIn:   a.jwtService.TokenDuration(),
		User: &queries.AuthorizedUserView{
			ID:        u.ID(),
			Name:      u.Name().Value(),
			Email:     u.Email().Value(),
			Role:      u.Role().String(),
			IsActive:  u.IsActive(),
			LastLogin: u.LastLogin(),
		},
	}, nil
}
