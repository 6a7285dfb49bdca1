package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/SakerDakak/taxipay-dashboard/pkg/configparser"
)

// Errors
var (
	ErrTerminalURLNotProvided = errors.New("terminal base url not provided")
	ErrJWTSecretNotProvided   = errors.New("jwt secret not provided")
)

// Config contains all configuration variables of the application
type (
	Config struct {
		HTTP       HTTPConfig
		Database   DatabaseConfig
		RabbitMQ   RabbitMQConfig
		Terminal   TerminalConfig
		Gate       GateConfig
		Auth       Auth
		Aggregator AggregatorConfig
		UI         UIConfig
		Log        LogConfig
	}

	HTTPConfig struct {
		Host            string        `env:"HTTP_HOST" default:"0.0.0.0"`
		Port            string        `env:"HTTP_PORT" default:"8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" default:"15s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" default:"0s"` // 0: long aggregations and websockets
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
		SwaggerEnabled  bool          `env:"HTTP_SWAGGER_ENABLED" default:"true"`
	}

	DatabaseConfig struct {
		Host     string `env:"DATABASE_HOST" default:"localhost"`
		Port     string `env:"DATABASE_PORT" default:"5432"`
		User     string `env:"DATABASE_USER" default:"taxipay"`
		Password string `env:"DATABASE_PASSWORD" default:"taxipay"`
		Database string `env:"DATABASE_DATABASE" default:"taxipay"`
		SSLMode  string `env:"DATABASE_SSLMODE" default:"disable"`

		MaxConns       int32         `env:"DATABASE_MAXCONNS" default:"10"` // максимум открытых соединений
		ConnectTimeout time.Duration `env:"DATABASE_CONNECT_TIMEOUT" default:"5s"`
	}

	RabbitMQConfig struct {
		Enabled    bool   `env:"RABBITMQ_ENABLED" default:"false"`
		Host       string `env:"RABBITMQ_HOST" default:"localhost"`
		Port       string `env:"RABBITMQ_PORT" default:"5672"`
		User       string `env:"RABBITMQ_USER" default:"guest"`
		Password   string `env:"RABBITMQ_PASSWORD" default:"guest"`
		Exchange   string `env:"RABBITMQ_EXCHANGE" default:"driver_activity"`
		RoutingKey string `env:"RABBITMQ_ROUTING_KEY" default:"activity.top_drivers"`
	}

	TerminalConfig struct {
		BaseURL  string        `env:"TERMINAL_BASE_URL"`
		APIKey   string        `env:"TERMINAL_API_KEY"`
		Timeout  time.Duration `env:"TERMINAL_TIMEOUT" default:"10s"`
		PageSize int           `env:"TERMINAL_PAGE_SIZE" default:"100"`
	}

	GateConfig struct {
		RootPath      string   `env:"GATE_ROOT_PATH" default:"/"`
		LoginPath     string   `env:"GATE_LOGIN_PATH" default:"/login"`
		DashboardPath string   `env:"GATE_DASHBOARD_PATH" default:"/dashboard"`
		InfraPrefixes []string `env:"GATE_INFRA_PREFIXES" default:"/_next/,/static/,/assets/,/api/"`
		InfraExact    []string `env:"GATE_INFRA_EXACT" default:"/favicon.ico"`
	}

	Auth struct {
		JWTSecret     string        `env:"AUTH_JWT_SECRET"`
		Leeway        time.Duration `env:"AUTH_LEEWAY" default:"30s"`
		UserCookie    string        `env:"AUTH_USER_COOKIE" default:"auth-user"`
		ProfileCookie string        `env:"AUTH_PROFILE_COOKIE" default:"auth-profile"`
	}

	AggregatorConfig struct {
		DefaultLimit    int           `env:"AGGREGATOR_DEFAULT_LIMIT" default:"5"`
		MaxLimit        int           `env:"AGGREGATOR_MAX_LIMIT" default:"100"`
		FeedInterval    time.Duration `env:"AGGREGATOR_FEED_INTERVAL" default:"30s"`
		MinFeedInterval time.Duration `env:"AGGREGATOR_MIN_FEED_INTERVAL" default:"5s"`
	}

	UIConfig struct {
		UpstreamURL string `env:"UI_UPSTREAM_URL" default:"http://localhost:3000"`
	}

	LogConfig struct {
		Level string `env:"LOG_LEVEL" default:"INFO"`
	}
)

func (c DatabaseConfig) GetDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     c.Database,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

func (c DatabaseConfig) GetMaxConns() int32 { return c.MaxConns }

func (c DatabaseConfig) GetConnectTimeout() time.Duration { return c.ConnectTimeout }

func (c RabbitMQConfig) GetDSN() string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + c.Port,
		Path:   "/",
	}
	return u.String()
}

// NewConfig loads .env (if present) and the YAML file into the environment and parses it.
func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	if err := configparser.LoadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	// Loading enviromental variables and parsing to config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Terminal.BaseURL == "" {
		return ErrTerminalURLNotProvided
	}
	if c.Auth.JWTSecret == "" {
		return ErrJWTSecretNotProvided
	}
	if c.Aggregator.DefaultLimit < 0 || c.Aggregator.DefaultLimit > c.Aggregator.MaxLimit {
		return fmt.Errorf("aggregator default limit %d is outside 0..%d", c.Aggregator.DefaultLimit, c.Aggregator.MaxLimit)
	}
	return nil
}
