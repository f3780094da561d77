package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/ideaboard/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   ideas API base URL ("" runs offline)
//	-d string   local store path
//	-g string   gRPC health address
//	-f string   alternate feed JSON file
//	-i int      online check interval in seconds
//	-l string   log level
//
// Only the flags defined here are parsed, so -c/-config and unknown flags
// do not break parsing.
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "ideas API base URL")
	fs.StringVar(&cfg.StorePath, "d", cfg.StorePath, "local store path")
	fs.StringVar(&cfg.HealthAddr, "g", cfg.HealthAddr, "gRPC health address")
	fs.StringVar(&cfg.FeedFile, "f", cfg.FeedFile, "alternate feed JSON file")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := flagx.ParseKnown(fs, os.Args[1:]); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
