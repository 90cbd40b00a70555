package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"sgip/internal/domain"
	"sgip/internal/insight"
	"sgip/internal/parish"
	"sgip/internal/platform/config"
	"sgip/internal/session"
	"sgip/internal/store/sqlite"
)

// app bundles the wired components behind each subcommand.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	store  *sqlite.Store
	parish *parish.Service
}

func (a *app) close(ctx context.Context) {
	if err := a.parish.Close(ctx); err != nil {
		a.logger.Error("close failed", "error", err)
	}
}

type appFactory func(ctx context.Context) (*app, error)

func newInitCmd(newApp appFactory) *cobra.Command {
	var settings domain.ParishSettings

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the parish and create the first admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			mgr := session.NewManager(a.parish, a.store, a.cfg.SessionSigningKey, session.WithLogger(a.logger))
			admin, err := mgr.Setup(ctx, settings)
			if err != nil {
				return err
			}
			fmt.Printf("Parish %q initialized.\n", settings.Name)
			fmt.Printf("Admin account %q created; the provisioning secret must be changed on first login.\n", admin.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&settings.Name, "name", "", "parish name (required)")
	cmd.Flags().StringVar(&settings.Diocese, "diocese", "", "diocese (required)")
	cmd.Flags().StringVar(&settings.Address, "address", "", "postal address")
	cmd.Flags().StringVar(&settings.Phone, "phone", "", "contact phone")
	cmd.Flags().StringVar(&settings.Email, "email", "", "contact email")
	cmd.Flags().StringVar(&settings.CureName, "cure", "", "name of the parish priest")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("diocese")
	return cmd
}

func newStatusCmd(newApp appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show parish identity and registry counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			settings, ok := a.parish.Settings()
			if !ok {
				fmt.Println("Parish is not initialized. Run 'sgip init' first.")
				return nil
			}
			stats := a.parish.Stats()
			fmt.Printf("Parish:        %s (%s)\n", settings.Name, settings.Diocese)
			fmt.Printf("Curé:          %s\n", settings.CureName)
			fmt.Printf("Parishioners:  %d\n", stats.Parishioners)
			fmt.Printf("CEVs:          %d\n", stats.CEVs)
			fmt.Printf("Intentions:    %d\n", stats.Intentions)
			fmt.Printf("Balance:       %d FCFA\n", stats.Balance)
			return nil
		},
	}
}

func newReportCmd(newApp appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print registry statistics with pastoral advisory text",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			stats := a.parish.Stats()
			fmt.Printf("Fidèles: %d  |  Trésorerie: %d FCFA  |  Intentions: %d  |  CEVs: %d\n\n",
				stats.Parishioners, stats.Balance, stats.Intentions, stats.CEVs)

			client := insight.New(a.cfg.Insight.Endpoint, a.cfg.Insight.APIKey, insight.WithLogger(a.logger))
			fmt.Println(client.PastoralInsights(ctx, insight.StatsPayload{
				Fideles:    stats.Parishioners,
				Finances:   stats.Balance,
				Intentions: stats.Intentions,
				CEVs:       stats.CEVs,
				Context:    "Cameroun",
			}))
			return nil
		},
	}
}

func newAuditCmd(newApp appFactory) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List the audit trail, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			logs := a.parish.AuditLogs()
			if limit > 0 && len(logs) > limit {
				logs = logs[:limit]
			}
			for _, entry := range logs {
				fmt.Printf("%s  %-14s %-10s %s (%s)\n",
					entry.Timestamp.Format("2006-01-02 15:04:05"),
					entry.Action, entry.Module, entry.Details, entry.UserName)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum entries to print")
	return cmd
}
