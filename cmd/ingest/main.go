package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/fantasy-badminton/internal/app"
	"github.com/riskibarqy/fantasy-badminton/internal/config"
	"github.com/riskibarqy/fantasy-badminton/internal/interfaces/cli"
	"github.com/riskibarqy/fantasy-badminton/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context) (cli.Application, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}

		logger := logging.NewJSON(cfg.LogLevel)
		if cfg.AppEnv == config.EnvDev {
			logger = logging.NewConsole(cfg.LogLevel)
		}
		logger = logger.With("service", cfg.ServiceName, "version", cfg.ServiceVersion)
		logging.SetDefault(logger)

		return app.New(ctx, cfg, logger)
	}

	code := cli.Execute(ctx, factory, os.Args[1:], os.Stdout, os.Stderr)
	_ = logging.Default().Sync()
	stop()
	os.Exit(code)
}
