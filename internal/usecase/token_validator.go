package usecase

import (
	"salon-booking/internal/domain/user"
	"salon-booking/internal/pkg/jwt"
)

// TokenValidator turns a bearer token into the principal the engine acts for.
type TokenValidator interface {
	ValidateToken(tokenString string) (user.Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{jwtService: jwtService}
}

// ValidateToken trusts the role claim but still rejects values outside customer, staff and admin.
func (t *tokenValidatorImpl) ValidateToken(tokenString string) (user.Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return user.Principal{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return user.Principal{}, err
	}
	return user.Principal{ID: claims.UserID, Role: role}, nil
}
