package middleware

import (
	"context"

	"github.com/SakerDakak/taxipay-dashboard/internal/domain/models"
	"github.com/SakerDakak/taxipay-dashboard/internal/service/gate"
	"github.com/SakerDakak/taxipay-dashboard/pkg/logger"
)

type (
	AuthService interface {
		Authorize(ctx context.Context, token string) (*models.User, error)
	}

	// SessionCookies names the two cookies whose presence makes a session.
	SessionCookies struct {
		User    string
		Profile string
	}

	Middleware struct {
		auth    AuthService
		gate    *gate.Gate
		cookies SessionCookies
		log     logger.Logger

		// apiRoutes are the registered dashboard API paths reported verbatim in metrics
		apiRoutes map[string]struct{}
	}
)

const (
	DefaultUserCookie    = "auth-user"
	DefaultProfileCookie = "auth-profile"
)

func NewMiddleware(auth AuthService, g *gate.Gate, cookies SessionCookies, log logger.Logger) *Middleware {
	if cookies.User == "" {
		cookies.User = DefaultUserCookie
	}
	if cookies.Profile == "" {
		cookies.Profile = DefaultProfileCookie
	}
	return &Middleware{
		auth:      auth,
		gate:      g,
		cookies:   cookies,
		log:       log,
		apiRoutes: make(map[string]struct{}),
	}
}

// TrackRoutes registers dashboard API paths that get their own metrics label.
// It must be called before the middleware serves requests.
func (m *Middleware) TrackRoutes(paths ...string) {
	for _, p := range paths {
		m.apiRoutes[p] = struct{}{}
	}
}
