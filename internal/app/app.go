package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/SakerDakak/taxipay-dashboard/config"
	"github.com/SakerDakak/taxipay-dashboard/internal/adapter/http/handler"
	"github.com/SakerDakak/taxipay-dashboard/internal/adapter/http/server"
	repo "github.com/SakerDakak/taxipay-dashboard/internal/adapter/postgres"
	rabbitAdapter "github.com/SakerDakak/taxipay-dashboard/internal/adapter/rabbit"
	"github.com/SakerDakak/taxipay-dashboard/internal/adapter/terminal"
	"github.com/SakerDakak/taxipay-dashboard/internal/domain/types"
	"github.com/SakerDakak/taxipay-dashboard/internal/service/activity"
	"github.com/SakerDakak/taxipay-dashboard/internal/service/auth"
	"github.com/SakerDakak/taxipay-dashboard/pkg/logger"
	wrap "github.com/SakerDakak/taxipay-dashboard/pkg/logger/wrapper"
	"github.com/SakerDakak/taxipay-dashboard/pkg/postgres"
	"github.com/SakerDakak/taxipay-dashboard/pkg/rabbit"
	ws "github.com/SakerDakak/taxipay-dashboard/pkg/wsHub"
)

type App struct {
	postgresDB *postgres.PostgreDB
	rabbitMQ   *rabbit.RabbitMQ
	hub        *ws.ConnectionHub
	httpServer *server.API

	cfg config.Config
	log logger.Logger
}

// NewApplication connects to the infrastructure and wires the gateway.
func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	ctx = wrap.WithAction(ctx, types.ActionServiceStart)
	a := &App{cfg: cfg, log: log}

	postgresDB, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		log.Error(ctx, "Failed to setup database", err)
		return nil, err
	}
	a.postgresDB = postgresDB

	health := map[string]handler.Pinger{"postgres": postgresDB}

	var publisher handler.ReportPublisher = rabbitAdapter.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := rabbit.New(ctx, cfg.RabbitMQ.GetDSN(), log)
		if err != nil {
			log.Error(ctx, "Failed to setup rabbitmq", err)
			a.close(ctx)
			return nil, err
		}
		a.rabbitMQ = rabbitMQ

		if err := rabbitMQ.DeclareExchange(cfg.RabbitMQ.Exchange, "topic"); err != nil {
			log.Error(ctx, "Failed to declare activity exchange", err)
			a.close(ctx)
			return nil, err
		}
		publisher = rabbitAdapter.NewActivityProducer(rabbitMQ, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey)
		health["rabbitmq"] = rabbitMQ
	}

	driverRepo := repo.NewDriverRepo(postgresDB.Pool)
	userRepo := repo.NewUserRepo(postgresDB.Pool)

	terminalClient := terminal.New(cfg.Terminal.BaseURL, cfg.Terminal.APIKey, cfg.Terminal.Timeout)
	activityService := activity.NewService(driverRepo, terminalClient, log, activity.WithPageSize(cfg.Terminal.PageSize))

	tokenService := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Leeway)
	authService := auth.NewAuthService(userRepo, tokenService, log)

	a.hub = ws.NewConnHub(log)

	httpServer, err := server.New(cfg, server.Deps{
		Activity:  activityService,
		Publisher: publisher,
		Auth:      authService,
		Hub:       a.hub,
		Health:    health,
	}, log)
	if err != nil {
		log.Error(ctx, "Failed to setup http server", err)
		a.close(ctx)
		return nil, err
	}
	a.httpServer = httpServer

	return a, nil
}

// Run serves until SIGINT/SIGTERM or a server failure, then releases everything.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.httpServer.Run(ctx, errCh)
	defer func() {
		a.close(ctx)
		a.log.Info(wrap.WithAction(ctx, types.ActionServiceStop), "dashboard gateway closed")
	}()

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	a.log.Info(ctx, "dashboard gateway has been started")

	select {
	case errRun := <-errCh:
		return fmt.Errorf("http server: %w", errRun)
	case sig := <-shutdownCh:
		a.log.Info(ctx, "shuting down application", "signal", sig.String())
		return nil
	case <-ctx.Done():
		return nil
	}
}

func (a *App) close(ctx context.Context) {
	ctx = wrap.WithAction(ctx, types.ActionServiceStop)

	// Shutdown does not track hijacked websocket connections
	if a.hub != nil {
		a.hub.Close()
	}

	if a.httpServer != nil {
		if err := a.httpServer.Stop(ctx); err != nil {
			a.log.Warn(ctx, "Failed to gracefully close http server", "error", err.Error())
		}
	}

	if a.rabbitMQ != nil {
		if err := a.rabbitMQ.Close(ctx); err != nil {
			a.log.Warn(ctx, "Failed to close rabbitmq connection", "error", err.Error())
		}
	}

	a.postgresDB.Close()
}
