package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/nsmo-public/LiveMeetingNotes-sub000/config"
	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/app"
	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/cli"
	"github.com/nsmo-public/LiveMeetingNotes-sub000/internal/output"
)

func main() {
	if err := run(); err != nil {
		formatter := output.NewFormatter(os.Stderr)
		formatter.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local overrides; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("initializing app: %w", err)
	}

	deps := &cli.Dependencies{
		App:    application,
		Config: cfg,
	}

	return cli.NewRootCmd(deps).Execute()
}
