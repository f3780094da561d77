package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/ideaboard/internal/client/delivery"
	"github.com/dmitrijs2005/ideaboard/internal/flagx"
	"github.com/dmitrijs2005/ideaboard/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so they can be "3s" strings or integer nanoseconds.
type JsonConfig struct {
	StorePath           string              `json:"store_path"`
	APIBaseURL          string              `json:"api_base_url"`
	FormSubmissionURL   string              `json:"form_url"`
	HealthAddr          string              `json:"health_addr"`
	FeedFile            string              `json:"feed_file"`
	SessionSecret       string              `json:"session_secret"`
	SessionTTL          timex.Duration      `json:"session_ttl"`
	CodeTTL             timex.Duration      `json:"code_ttl"`
	RequestTimeout      timex.Duration      `json:"request_timeout"`
	OnlineCheckInterval timex.Duration      `json:"online_check_interval"`
	LogLevel            string              `json:"log_level"`
	SMTP                delivery.SMTPConfig `json:"smtp"`
}

// parseJson overlays cfg with the JSON file named by -c/-config. Only the
// keys present (non-zero) in the file override earlier values. Read or
// decode errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.StorePath, jc.StorePath)
	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.FormSubmissionURL, jc.FormSubmissionURL)
	setString(&cfg.HealthAddr, jc.HealthAddr)
	setString(&cfg.FeedFile, jc.FeedFile)
	setString(&cfg.SessionSecret, jc.SessionSecret)
	setString(&cfg.LogLevel, jc.LogLevel)

	setDuration(&cfg.SessionTTL, jc.SessionTTL)
	setDuration(&cfg.CodeTTL, jc.CodeTTL)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)

	if jc.SMTP.Enabled() {
		port := cfg.SMTP.Port
		cfg.SMTP = jc.SMTP
		if cfg.SMTP.Port == 0 {
			cfg.SMTP.Port = port
		}
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
