package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseConfig_GetDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "admin", Password: "p@ss/word", Database: "taxipay", SSLMode: "disable"}
	assert.Equal(t, "postgres://admin:p%40ss%2Fword@db:5432/taxipay?sslmode=disable", c.GetDSN())
}

func TestRabbitMQConfig_GetDSN(t *testing.T) {
	c := RabbitMQConfig{Host: "mq", Port: "5672", User: "guest", Password: "guest"}
	assert.Equal(t, "amqp://guest:guest@mq:5672/", c.GetDSN())
}

func TestNewConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	for _, k := range []string{"HTTP_PORT", "TERMINAL_BASE_URL", "TERMINAL_PAGE_SIZE", "AUTH_JWT_SECRET", "GATE_INFRA_PREFIXES", "AGGREGATOR_FEED_INTERVAL", "RABBITMQ_ENABLED"} {
		t.Setenv(k, "")
	}
	t.Setenv("AUTH_JWT_SECRET", "secret")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: 9000
terminal:
  base_url: https://terminal.example.com
  page_size: 50
gate:
  infra_prefixes: [/_next/, /api/]
aggregator:
  feed_interval: 1m
`), 0o600))

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTP.Port)
	assert.Equal(t, "https://terminal.example.com", cfg.Terminal.BaseURL)
	assert.Equal(t, 50, cfg.Terminal.PageSize)
	assert.Equal(t, 10*time.Second, cfg.Terminal.Timeout)
	assert.Equal(t, []string{"/_next/", "/api/"}, cfg.Gate.InfraPrefixes)
	assert.Equal(t, []string{"/favicon.ico"}, cfg.Gate.InfraExact)
	assert.Equal(t, time.Minute, cfg.Aggregator.FeedInterval)
	assert.Equal(t, "auth-user", cfg.Auth.UserCookie)
	assert.False(t, cfg.RabbitMQ.Enabled)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Terminal:   TerminalConfig{BaseURL: "http://t"},
		Auth:       Auth{JWTSecret: "s"},
		Aggregator: AggregatorConfig{DefaultLimit: 5, MaxLimit: 100},
	}
	assert.NoError(t, valid.validate())

	noURL := valid
	noURL.Terminal.BaseURL = ""
	assert.ErrorIs(t, noURL.validate(), ErrTerminalURLNotProvided)

	noSecret := valid
	noSecret.Auth.JWTSecret = ""
	assert.ErrorIs(t, noSecret.validate(), ErrJWTSecretNotProvided)

	badLimit := valid
	badLimit.Aggregator.DefaultLimit = 500
	assert.Error(t, badLimit.validate())
}
