package config

import "github.com/caarlos0/env/v11"

// EnvPrefix prefixes every environment variable the server reads.
const EnvPrefix = "IGNITE_SERVER_"

func parseEnv(cfg *Config) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
