package main

import (
	"fmt"
	"os"

	"github.com/aescanero/dago-prompt-dashboard/internal/config"
	"github.com/aescanero/dago-prompt-dashboard/internal/dashboard"
	"github.com/aescanero/dago-prompt-dashboard/internal/prompt"
	"github.com/aescanero/dago-prompt-dashboard/internal/publish"
	"github.com/aescanero/dago-prompt-dashboard/internal/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type renderOptions struct {
	csvPath     string
	dashboard   string
	template    string
	custom      string
	filterValue string
	out         string
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a prompt from a CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return render(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.csvPath, "csv", "", "CSV file to render")
	flags.StringVar(&opts.dashboard, "dashboard", "", "dashboard definition (defaults to DASHBOARD_FILE)")
	flags.StringVar(&opts.template, "template", "", "template name (defaults to the first template)")
	flags.StringVar(&opts.custom, "custom", "", "custom prompt for freeform templates")
	flags.StringVar(&opts.filterValue, "filter", "", "keep rows whose filter column equals this value")
	flags.StringVar(&opts.out, "out", "", "write the prompt to this file instead of stdout")
	_ = cmd.MarkFlagRequired("csv")

	return cmd
}

func render(cmd *cobra.Command, opts *renderOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := initLogger(cfg.LogLevel, "stderr")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	path := opts.dashboard
	if path == "" {
		path = cfg.DashboardFile
	}
	pipeline, err := loadPipeline(cfg, path, logger)
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	f, err := os.Open(opts.csvPath)
	if err != nil {
		return err
	}
	defer f.Close()

	tbl, err := table.ParseCSV(f)
	if err != nil {
		return err
	}

	v, err := pipeline.Build(cmd.Context(), tbl, dashboard.Request{
		Request:     prompt.Request{Template: opts.template, Custom: opts.custom},
		FilterValue: opts.filterValue,
	})
	if err != nil {
		return err
	}

	for _, advisory := range v.Advisories {
		logger.Warn("advisory", zap.String("message", advisory))
	}

	if opts.out == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), v.Prompt.Text)
		return err
	}

	if err := publish.WriteFile(opts.out, v.Prompt.Text); err != nil {
		return err
	}
	logger.Info("prompt written",
		zap.String("path", opts.out),
		zap.String("template", v.Prompt.Template),
		zap.Int("rows", v.Rows),
	)
	return nil
}
