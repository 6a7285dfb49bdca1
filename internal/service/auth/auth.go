package auth

import (
	"context"
	"errors"

	"github.com/SakerDakak/taxipay-dashboard/internal/domain/models"
	"github.com/SakerDakak/taxipay-dashboard/internal/domain/types"
	"github.com/SakerDakak/taxipay-dashboard/pkg/logger"
	wrap "github.com/SakerDakak/taxipay-dashboard/pkg/logger/wrapper"
)

type AuthService struct {
	userRepo UserRepo
	tokens   TokenValidator
	log      logger.Logger
}

func NewAuthService(userRepo UserRepo, tokens TokenValidator, log logger.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log,
	}
}

// Authorize resolves the session token to an active admin.
//
// Errors: types.ErrInvalidSession for bad or expired tokens and unknown users,
// types.ErrNotAdmin for non-admins, types.ErrUserInactive for disabled admins.
// Anything else is an infrastructure failure.
func (s *AuthService) Authorize(ctx context.Context, token string) (*models.User, error) {
	ctx = wrap.WithAction(ctx, types.ActionAdminCheck)

	claims, err := s.tokens.Validate(ctx, token)
	if err != nil {
		s.log.Debug(wrap.ErrorCtx(ctx, err), "session token rejected", "reason", err.Error())
		return nil, types.ErrInvalidSession
	}
	ctx = wrap.WithUserID(ctx, claims.UserID)

	// Проверяем существует ли пользователь
	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			return nil, types.ErrInvalidSession
		}
		return nil, wrap.Error(ctx, err)
	}

	if !user.IsAdmin() {
		s.log.Warn(ctx, "non-admin user tried to open the dashboard", "role", user.Role)
		return nil, types.ErrNotAdmin
	}
	if !user.IsActive() {
		s.log.Warn(ctx, "inactive admin tried to open the dashboard", "status", user.Status)
		return nil, types.ErrUserInactive
	}

	return user, nil
}
