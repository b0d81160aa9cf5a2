package usecase

import (
	"ticket-checkout/internal/domain/user"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator resolves a bearer token to the buyer placing the order.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, user.Role, error)
}

type jwtTokenValidator struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &jwtTokenValidator{jwtService: jwtService}
}

// ValidateToken reports a role this service does not know as
// jwt.ErrInvalidToken.
func (v *jwtTokenValidator) ValidateToken(tokenString string) (uuid.UUID, user.Role, error) {
	claims, err := v.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", errs.Mark(errs.Wrapf(err, "role %q", claims.Role), jwt.ErrInvalidToken)
	}
	return claims.UserID, role, nil
}
