package middleware

import (
	"net/http"

	"github.com/SakerDakak/taxipay-dashboard/internal/domain/types"
	"github.com/SakerDakak/taxipay-dashboard/internal/service/gate"
	wrap "github.com/SakerDakak/taxipay-dashboard/pkg/logger/wrapper"
	"github.com/SakerDakak/taxipay-dashboard/pkg/metrics"
)

// HeaderAdminCheck marks a request that must pass the secondary admin check.
const HeaderAdminCheck = "X-Admin-Check"

// HasSession reports whether both session cookies are present and non-empty.
// The values are not decoded.
func (m *Middleware) HasSession(r *http.Request) bool {
	return hasCookie(r, m.cookies.User) && hasCookie(r, m.cookies.Profile)
}

func hasCookie(r *http.Request, name string) bool {
	c, err := r.Cookie(name)
	return err == nil && c.Value != ""
}

// Gate applies the access gate to root, login and dashboard paths. Other paths pass untouched.
func (m *Middleware) Gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the marker is only trusted when this middleware sets it
		r.Header.Del(HeaderAdminCheck)

		if !m.gate.Matches(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		d := m.gate.Classify(r.URL.Path, m.HasSession(r))
		metrics.GateDecisionsTotal.WithLabelValues(d.String()).Inc()

		if d.Kind == gate.Redirect {
			if d.NoCache {
				w.Header().Set("Cache-Control", "no-store")
			}
			m.log.Debug(wrap.WithAction(r.Context(), types.ActionGateRedirect), "redirecting", "path", r.URL.Path, "target", d.Target)
			http.Redirect(w, r, d.Target, http.StatusTemporaryRedirect)
			return
		}

		if d.MarkAdminCheck {
			r.Header.Set(HeaderAdminCheck, "1")
			w.Header().Set(HeaderAdminCheck, "1")
		}

		next.ServeHTTP(w, r)
	})
}
