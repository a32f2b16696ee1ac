package commands

import (
	"github.com/spf13/cobra"

	"github.com/izvod-dev/izvod/internal/convert"
	"github.com/izvod-dev/izvod/internal/logger"
	"github.com/izvod-dev/izvod/internal/parse"
	"github.com/izvod-dev/izvod/internal/server"
)

func newServeCommand() *cobra.Command {
	var addr string
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, configPath)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default izvod.yaml)")

	return cmd
}

func runServe(addr, configPath string) error {
	log := logger.New()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	parser := &parse.Gemini{Model: cfg.Model.Name, MaxRetries: cfg.Model.MaxRetries}
	conv := convert.New(parser, cfg)

	srv := server.New(conv, cfg.Workers, log)
	log.Info().Str("addr", addr).Msg("listening")
	return srv.App().Listen(addr)
}
