package config

import "github.com/caarlos0/env/v11"

// EnvPrefix prefixes every environment variable the client reads.
const EnvPrefix = "IGNITE_"

// parseEnv overlays cfg with IGNITE_* variables. Unset variables leave the
// field untouched.
func parseEnv(cfg *Config) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
