package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/SakerDakak/taxipay-dashboard/pkg/logger"
	wrap "github.com/SakerDakak/taxipay-dashboard/pkg/logger/wrapper"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Health struct {
	serviceName string
	deps        map[string]Pinger
	log         logger.Logger
}

// NewHealth creates the health handler. deps are checked on every call; nil entries are skipped.
func NewHealth(serviceName string, deps map[string]Pinger, log logger.Logger) *Health {
	return &Health{
		serviceName: serviceName,
		deps:        deps,
		log:         log,
	}
}

// HealthCheck godoc
// @Summary      Health Check
// @Description  Returns the health status of the gateway and its dependencies
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      503  {object}  map[string]any
// @Router       /health [get]
func (a *Health) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "health_check")

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status, code := "available", http.StatusOK
	checks := make(map[string]string, len(a.deps))
	for name, dep := range a.deps {
		if dep == nil {
			continue
		}
		if err := dep.Ping(pingCtx); err != nil {
			a.log.Warn(ctx, "dependency is unhealthy", "dependency", name, "error", err.Error())
			checks[name] = "unavailable"
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	response := envelope{
		"status": status,
		"system_info": map[string]string{
			"service-name": a.serviceName,
		},
		"checks": checks,
	}

	if err := writeJSON(w, code, response, nil); err != nil {
		a.log.Error(ctx, "healthcheck", err)
		return
	}
}
