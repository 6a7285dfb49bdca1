package main

import (
	"context"
	"flag"
	"os"

	"github.com/SakerDakak/taxipay-dashboard/config"
	"github.com/SakerDakak/taxipay-dashboard/internal/app"
	"github.com/SakerDakak/taxipay-dashboard/internal/domain/types"
	"github.com/SakerDakak/taxipay-dashboard/pkg/logger"
)

var (
	helpFlag   = flag.Bool("help", false, "Show help message")
	configPath = flag.String("config-path", "config.yaml", "Path to the config yaml file")
)

// @title        TaxiPay Dashboard Gateway
// @version      1.0
// @description  Access gate and driver activity aggregation for the TaxiPay admin dashboard.
// @BasePath     /
func main() {
	flag.Parse()
	if *helpFlag {
		config.PrintHelp()
		return
	}

	ctx := context.Background()
	log := logger.InitLogger(types.ServiceName, logger.LevelDebug)

	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		log.Error(ctx, "failed to configure application", err)
		config.PrintHelp()
		os.Exit(1)
	}

	// Printing configuration
	config.PrintConfig(cfg)

	if cfg.Log.Level != "" {
		if !logger.ValidateLogLevel(cfg.Log.Level) {
			log.Warn(ctx, "unknown log level, using DEBUG", "level", cfg.Log.Level)
		}
		log = logger.InitLogger(types.ServiceName, cfg.Log.Level)
	}

	// Creating application
	application, err := app.NewApplication(ctx, *cfg, log)
	if err != nil {
		log.Error(ctx, "failed to init application", err)
		os.Exit(1)
	}

	// Running the application
	if err = application.Run(ctx); err != nil {
		log.Error(ctx, "failed to run application", err)
		os.Exit(1)
	}
}
