package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

const HelpMessage = `TaxiPay dashboard gateway

Usage:
  dashboard [-config-path config.yaml] [-help]

Every key of the YAML file can be overridden by its environment variable,
e.g. terminal.base_url -> TERMINAL_BASE_URL. A .env file in the working
directory is loaded first.

Required:
  TERMINAL_BASE_URL   payment terminal API base url
  AUTH_JWT_SECRET     HS256 secret shared with the auth backend

Flags:
`

func PrintHelp() {
	fmt.Print(HelpMessage)
	flag.PrintDefaults()
}

// PrintConfig prints the effective configuration with secrets masked.
func PrintConfig(cfg *Config) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	rows := [][2]string{
		{"http.address", cfg.HTTP.Host + ":" + cfg.HTTP.Port},
		{"http.swagger_enabled", fmt.Sprint(cfg.HTTP.SwaggerEnabled)},
		{"database.host", cfg.Database.Host + ":" + cfg.Database.Port},
		{"database.name", cfg.Database.Database},
		{"rabbitmq.enabled", fmt.Sprint(cfg.RabbitMQ.Enabled)},
		{"rabbitmq.exchange", cfg.RabbitMQ.Exchange},
		{"terminal.base_url", cfg.Terminal.BaseURL},
		{"terminal.api_key", mask(cfg.Terminal.APIKey)},
		{"terminal.page_size", fmt.Sprint(cfg.Terminal.PageSize)},
		{"gate.login_path", cfg.Gate.LoginPath},
		{"gate.dashboard_path", cfg.Gate.DashboardPath},
		{"gate.infra_prefixes", strings.Join(cfg.Gate.InfraPrefixes, ",")},
		{"auth.jwt_secret", mask(cfg.Auth.JWTSecret)},
		{"aggregator.default_limit", fmt.Sprint(cfg.Aggregator.DefaultLimit)},
		{"ui.upstream_url", cfg.UI.UpstreamURL},
		{"log.level", cfg.Log.Level},
	}

	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\n", r[0], r[1])
	}
}

func mask(s string) string {
	if s == "" {
		return "<empty>"
	}
	return "********"
}
