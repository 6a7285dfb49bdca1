package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/SakerDakak/taxipay-dashboard/config"
	"github.com/SakerDakak/taxipay-dashboard/internal/adapter/http/handler"
	"github.com/SakerDakak/taxipay-dashboard/internal/adapter/http/handler/dto"
	"github.com/SakerDakak/taxipay-dashboard/internal/adapter/http/middleware"
	"github.com/SakerDakak/taxipay-dashboard/internal/domain/types"
	"github.com/SakerDakak/taxipay-dashboard/internal/service/gate"
	"github.com/SakerDakak/taxipay-dashboard/pkg/logger"
	wrap "github.com/SakerDakak/taxipay-dashboard/pkg/logger/wrapper"
	ws "github.com/SakerDakak/taxipay-dashboard/pkg/wsHub"
)

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Activity  handler.ActivityService
	Publisher handler.ReportPublisher
	Auth      middleware.AuthService
	Hub       *ws.ConnectionHub
	Health    map[string]handler.Pinger
}

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers // routes/handlers
	m      *middleware.Middleware
	gate   *gate.Gate

	addr string
	cfg  config.Config
	log  logger.Logger
}

type handlers struct {
	health   *handler.Health
	activity *handler.Activity
	ui       http.Handler
}

func New(cfg config.Config, deps Deps, logger logger.Logger) (*API, error) {
	if deps.Activity == nil {
		return nil, errors.New("activity service is required")
	}
	if deps.Auth == nil {
		return nil, errors.New("auth service is required")
	}
	if deps.Hub == nil {
		deps.Hub = ws.NewConnHub(logger)
	}

	ui, err := handler.NewUIProxy(cfg.UI.UpstreamURL, logger)
	if err != nil {
		return nil, err
	}

	g := gate.New(gate.Config{
		RootPath:      cfg.Gate.RootPath,
		LoginPath:     cfg.Gate.LoginPath,
		DashboardPath: cfg.Gate.DashboardPath,
		InfraPrefixes: cfg.Gate.InfraPrefixes,
		InfraExact:    cfg.Gate.InfraExact,
	})

	bounds := dto.TopDriversBounds{
		DefaultLimit:    cfg.Aggregator.DefaultLimit,
		MaxLimit:        cfg.Aggregator.MaxLimit,
		DefaultInterval: cfg.Aggregator.FeedInterval,
		MinInterval:     cfg.Aggregator.MinFeedInterval,
	}

	routes := &handlers{
		health:   handler.NewHealth(types.ServiceName, deps.Health, logger),
		activity: handler.NewActivity(deps.Activity, deps.Publisher, deps.Hub, bounds, logger),
		ui:       ui,
	}

	mid := middleware.NewMiddleware(deps.Auth, g, middleware.SessionCookies{
		User:    cfg.Auth.UserCookie,
		Profile: cfg.Auth.ProfileCookie,
	}, logger)

	api := &API{
		mux:    http.NewServeMux(),
		routes: routes,
		m:      mid,
		gate:   g,
		addr:   net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port),
		cfg:    cfg,
		log:    logger,
	}

	api.setupRoutes()

	api.server = &http.Server{
		Addr:              api.addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}

	return api, nil
}

// Handler returns the routed mux wrapped in the full middleware chain.
func (a *API) Handler() http.Handler {
	return a.m.Recover(
		a.m.RequestID(
			a.m.Logging(
				a.m.Metrics(types.ServiceName)(
					a.m.Gate(
						a.m.AdminCheck(a.mux),
					),
				),
			),
		),
	)
}

func (a *API) Stop(ctx context.Context) error {
	timeout := a.cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ctx = wrap.WithAction(ctx, types.ActionHTTPServerStop)

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, types.ActionHTTPServerStart)
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}
