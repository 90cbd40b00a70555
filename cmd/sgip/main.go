// Package main provides the sgip binary: a thin console over the parish
// registry for initialization, inspection, and reporting.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"sgip/internal/parish"
	"sgip/internal/platform/config"
	"sgip/internal/platform/logger"
	"sgip/internal/store/sqlite"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var verbose bool

	root := &cobra.Command{
		Use:           "sgip",
		Short:         "Parish registry console",
		Long:          "sgip manages a parish registry: members, communities, sacrament registers, finances, mass intentions, and projects.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default "+config.ConfigFile+")")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	newApp := func(ctx context.Context) (*app, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		log := logger.New(level)

		st, err := sqlite.New(cfg.StorePath)
		if err != nil {
			return nil, err
		}
		svc, err := parish.New(ctx, st, parish.WithLogger(log))
		if err != nil {
			_ = st.Close()
			return nil, err
		}
		return &app{cfg: cfg, logger: log, store: st, parish: svc}, nil
	}

	root.AddCommand(
		newInitCmd(newApp),
		newStatusCmd(newApp),
		newReportCmd(newApp),
		newAuditCmd(newApp),
	)
	return root
}
