package auth

import (
	"context"

	"github.com/SakerDakak/taxipay-dashboard/internal/domain/models"
)

type UserRepo interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

type TokenValidator interface {
	Validate(ctx context.Context, token string) (*models.SessionClaims, error)
}
