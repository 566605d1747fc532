package usecase

import (
	"court-booking/internal/domain/user"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/pkg/jwt"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// TokenValidator resolves an access token to the caller it was issued to.
type TokenValidator interface {
	ValidateToken(token string) (shared.Actor, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{jwtService: jwtService}
}

func (t *tokenValidatorImpl) ValidateToken(token string) (shared.Actor, error) {
	claims, err := t.jwtService.ValidateToken(token)
	if err != nil {
		return shared.Actor{}, err
	}
	if claims.UserID == uuid.Nil {
		return shared.Actor{}, errs.Wrap(jwt.ErrInvalidToken, "token has no subject")
	}

	// tokens minted for roles that no longer exist are treated as forged
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return shared.Actor{}, errs.Wrap(jwt.ErrInvalidToken, "unknown role "+claims.Role)
	}

	return shared.Actor{UserID: claims.UserID, Role: role}, nil
}
