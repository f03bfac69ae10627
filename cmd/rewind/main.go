package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	replaycmd "github.com/rzbill/rewind/internal/cmd/replay"
	cfgpkg "github.com/rzbill/rewind/internal/config"
	"github.com/rzbill/rewind/pkg/id"
	logpkg "github.com/rzbill/rewind/pkg/log"
)

func main() {
	cfg := cfgpkg.Default()
	if path := os.Getenv("REWIND_CONFIG"); path != "" {
		loaded, err := cfgpkg.Load(path)
		if err != nil {
			os.Stderr.WriteString("rewind: " + err.Error() + "\n")
			os.Exit(1)
		}
		cfg = loaded
	}
	cfgpkg.FromEnv(&cfg)

	level, err := logpkg.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logpkg.InfoLevel
	}
	var formatter logpkg.Formatter = &logpkg.TextFormatter{}
	if cfg.LogFormat == "json" {
		formatter = &logpkg.JSONFormatter{}
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(level),
		logpkg.WithFormatter(formatter),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)
	logger = logger.With(logpkg.Str("session", id.NewGenerator().Next().String()))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := replaycmd.NewRoot(cfg, logger)
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
