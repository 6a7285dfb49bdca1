package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SakerDakak/taxipay-dashboard/internal/domain/models"
	wrap "github.com/SakerDakak/taxipay-dashboard/pkg/logger/wrapper"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService validates session tokens issued by the auth backend.
// Issuing tokens is not its job.
type TokenService struct {
	secret []byte
	leeway time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, leeway time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		leeway: leeway,
		now:    time.Now,
	}
}

// Validate parses an HS256 access token. It requires typ=access, a uuid user_id and an unexpired exp.
func (s *TokenService) Validate(ctx context.Context, token string) (*models.SessionClaims, error) {
	ctx = wrap.WithAction(ctx, "validate_token")

	if token == "" {
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}

	claims := &models.SessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, wrap.Error(ctx, ErrExpToken)
		}
		return nil, wrap.Error(ctx, fmt.Errorf("%w: %v", ErrInvalidToken, err))
	}

	if claims.TokenType != models.AccessToken {
		return nil, wrap.Error(ctx, fmt.Errorf("%w: unexpected token type %q", ErrInvalidToken, claims.TokenType))
	}

	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%w: invalid or missing 'user_id' in token claims", ErrInvalidToken))
	}

	return claims, nil
}
