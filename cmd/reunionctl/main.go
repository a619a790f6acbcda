package main

import (
	"fmt"
	"os"

	"github.com/example/reunionpro/config"
	"github.com/example/reunionpro/internal/app"
	"github.com/example/reunionpro/internal/cli"
	"github.com/example/reunionpro/internal/output"
)

func main() {
	if err := run(); err != nil {
		formatter := output.NewFormatter(os.Stderr)
		formatter.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	deps := &cli.Dependencies{
		App:    app.New(cfg),
		Config: cfg,
	}

	return cli.NewRootCmd(deps).Execute()
}
