package main

import (
	"fmt"
	"os"

	"github.com/aescanero/dago-prompt-dashboard/internal/chart"
	"github.com/aescanero/dago-prompt-dashboard/internal/config"
	"github.com/aescanero/dago-prompt-dashboard/internal/dashboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set at build time
	Version = "dev"
	// BuildTime is set at build time
	BuildTime = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "prompt-dashboard",
		Short:         "Turn CSV uploads into LLM prompts",
		Version:       fmt.Sprintf("%s (built %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newRenderCmd())
	return root
}

// initLogger initializes the logger
func initLogger(level string, output string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

// loadPipeline builds the dashboard pipeline from the configured definition
func loadPipeline(cfg *config.Config, path string, logger *zap.Logger) (*dashboard.Pipeline, error) {
	def := dashboard.Default()
	if path != "" {
		loaded, err := dashboard.LoadFile(path)
		if err != nil {
			return nil, err
		}
		def = loaded
		logger.Info("dashboard definition loaded", zap.String("path", path))
	}

	renderer := chart.NewRenderer(cfg.ChartWidth, cfg.ChartHeight)
	return dashboard.NewPipeline(def, renderer, logger)
}
