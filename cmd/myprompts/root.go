package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/myprompts/internal/config"
	"github.com/jackzampolin/myprompts/internal/home"
	"github.com/jackzampolin/myprompts/internal/output"
	"github.com/jackzampolin/myprompts/internal/providers"
	"github.com/jackzampolin/myprompts/internal/svcctx"
	"github.com/jackzampolin/myprompts/version"
)

// skipServices marks commands that run without loading configuration.
const skipServices = "skip-services"

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "myprompts",
	Short: "Run your own prompt commands against source code",
	Long: `myprompts runs named prompt commands against a selection of a source file
using a language model, and splices the model's code back into the file.

Prompt commands are merged from up to eight layers:
  - workspace folder (.myprompts.yaml), with per-language overrides
  - workspace (.myprompts/config.yaml), with per-language overrides
  - global (~/.myprompts/config.yaml), with per-language overrides
  - built-in defaults, with per-language overrides

On a title collision the least specific layer wins.`,
	Version:           version.GitRelease,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "global config file (default: ~/.myprompts/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "myprompts home directory (default: ~/.myprompts)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "warn", "log level: debug, info, warn, error",
	)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(actionsCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(configCmd)
}

// setupServices builds the logger, config manager and provider registry and
// attaches them to the command context.
func setupServices(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	output.SetFormat(format)

	if cmd.Annotations[skipServices] == "true" {
		return nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	h, err := home.New(homeDir)
	if err != nil {
		return err
	}

	path := cfgFile
	if path == "" {
		path = h.ConfigPath()
	}
	mgr, err := config.NewManager(path)
	if err != nil {
		return err
	}
	mgr.SetLogger(logger)

	registry := providers.NewRegistry()
	registry.SetLogger(logger)
	registry.Reload(mgr.Get().ToProviderRegistryConfig())
	mgr.OnChange(func(cfg *config.Config) {
		registry.Reload(cfg.ToProviderRegistryConfig())
	})

	logger.Debug("services ready",
		"home", h.Path(),
		"config", mgr.ConfigFile(),
		"providers", registry.List(),
	)

	cmd.SetContext(svcctx.WithServices(cmd.Context(), &svcctx.Services{
		Config:   mgr,
		Registry: registry,
		Logger:   logger,
		Home:     h,
	}))
	return nil
}
