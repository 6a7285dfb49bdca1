package server

import (
	"time"

	"github.com/SakerDakak/taxipay-dashboard/docs"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

const defaultShutdownTimeout = 5 * time.Second

// setupRoutes - setups http routes
func (a *API) setupRoutes() {
	// System Health
	a.mux.HandleFunc("GET /health", a.routes.health.HealthCheck)

	a.setupMetricsRoute()
	if a.cfg.HTTP.SwaggerEnabled {
		a.setupSwaggerRoutes()
	}

	api := a.gate.DashboardPath() + "/api"
	a.mux.HandleFunc("GET "+api+"/drivers/top", a.routes.activity.TopDrivers) // Most active drivers
	a.mux.HandleFunc("GET "+api+"/drivers/top/ws", a.routes.activity.Feed)    // Live feed of the same report
	a.m.TrackRoutes(api+"/drivers/top", api+"/drivers/top/ws")

	// Everything else is a dashboard page rendered by the UI
	a.mux.Handle("/", a.routes.ui)
}

// setupSwaggerRoutes configures Swagger UI endpoints
func (a *API) setupSwaggerRoutes() {
	a.mux.HandleFunc("/swagger/", httpSwagger.Handler(httpSwagger.InstanceName(docs.InstanceName)))
}

// setupMetricsRoute configures the Prometheus metrics endpoint
func (a *API) setupMetricsRoute() {
	a.mux.Handle("GET /metrics", promhttp.Handler())
}
