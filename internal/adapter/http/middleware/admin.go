package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SakerDakak/taxipay-dashboard/internal/domain/models"
	"github.com/SakerDakak/taxipay-dashboard/internal/domain/types"
	wrap "github.com/SakerDakak/taxipay-dashboard/pkg/logger/wrapper"
)

// AdminCheck resolves requests marked by the gate to an active admin user.
// Unmarked requests pass through.
//
// API paths under the dashboard get a JSON 401/403; page paths are sent back to the login page.
func (m *Middleware) AdminCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderAdminCheck) != "1" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := wrap.WithAction(r.Context(), types.ActionAdminCheck)

		token := ""
		if c, err := r.Cookie(m.cookies.User); err == nil {
			token = c.Value
		}

		user, err := m.auth.Authorize(ctx, token)
		if err != nil {
			status, msg := adminCheckFailure(err)
			if status == http.StatusInternalServerError {
				m.log.Error(wrap.ErrorCtx(ctx, err), "admin check failed", err)
			}

			if status == http.StatusInternalServerError || m.isAPIPath(r.URL.Path) {
				errorResponse(w, status, msg)
				return
			}

			// dropping the cookies keeps the gate from bouncing /login back to the dashboard
			m.clearSession(w)
			w.Header().Set("Cache-Control", "no-store")
			http.Redirect(w, r, m.gate.LoginPath(), http.StatusTemporaryRedirect)
			return
		}

		ctx = models.WithUser(r.Context(), user)
		ctx = wrap.WithUserID(ctx, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) clearSession(w http.ResponseWriter) {
	for _, name := range []string{m.cookies.User, m.cookies.Profile} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (m *Middleware) isAPIPath(path string) bool {
	return strings.HasPrefix(path, m.gate.DashboardPath()+"/api/")
}

func adminCheckFailure(err error) (int, string) {
	switch {
	case errors.Is(err, types.ErrInvalidSession):
		return http.StatusUnauthorized, "invalid or expired session"
	case errors.Is(err, types.ErrNotAdmin):
		return http.StatusForbidden, "forbidden: admin role required"
	case errors.Is(err, types.ErrUserInactive):
		return http.StatusForbidden, "forbidden: account is not active"
	default:
		return http.StatusInternalServerError, "the server encountered a problem and could not process your request"
	}
}
