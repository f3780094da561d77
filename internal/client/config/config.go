package config

import (
	"time"

	"github.com/dmitrijs2005/ideaboard/internal/client/delivery"
)

// Config holds runtime settings for the Ignite client.
//
// Durations are time.Duration values; JSON accepts "10s" style strings and
// the environment accepts anything time.ParseDuration does.
type Config struct {
	StorePath         string `env:"STORE_PATH"`
	APIBaseURL        string `env:"API_BASE_URL"`
	FormSubmissionURL string `env:"FORM_URL"`
	HealthAddr        string `env:"HEALTH_ADDR"`
	FeedFile          string `env:"FEED_FILE"`

	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL"`
	CodeTTL       time.Duration `env:"CODE_TTL"`

	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"ONLINE_CHECK_INTERVAL"`

	LogLevel string `env:"LOG_LEVEL"`

	SMTP delivery.SMTPConfig `envPrefix:"SMTP_"`
}

// LoadDefaults populates c with demo-friendly defaults.
func (c *Config) LoadDefaults() {
	c.StorePath = "ignite.db"
	c.APIBaseURL = "http://127.0.0.1:5000"
	c.HealthAddr = "127.0.0.1:50051"
	c.SessionSecret = "ignite-demo-secret"
	c.SessionTTL = 24 * time.Hour
	c.CodeTTL = 10 * time.Minute
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "info"
	c.SMTP.Port = 587
}

// LoadConfig applies defaults, then JSON (if -c/-config is given), then
// IGNITE_* environment variables, then command-line flags. Later sources
// take precedence. Any malformed source panics.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
