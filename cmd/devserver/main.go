package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/me/unishop/internal/config"
	"github.com/me/unishop/internal/logging"
	"github.com/me/unishop/internal/server"
)

func main() {
	cfg := config.LoadDevServer()

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json)")
	flag.Float64Var(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Requests per second (0 disables limiting)")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")
	flag.Parse()

	if *debug {
		cfg.LogLevel = "debug"
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	srv := server.New(cfg, logger)
	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
