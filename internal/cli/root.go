// Package cli implements the command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/tablink/internal/config"
	"github.com/aidanlsb/tablink/internal/logging"
	"github.com/aidanlsb/tablink/internal/ui"
)

var (
	// Global flags
	configPath   string
	verbose      bool
	logLevelFlag string

	// Resolved values
	resolvedConfigPath string
	cfg                *config.Config
	logger             = logging.Nop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tablink",
	Short: "tablink - grab the link you are looking at",
	Long: `tablink finds the URL of the page in front of you.

It asks the browser extension bridge first, then (on macOS) the frontmost
browser through AppleScript, and finally falls back to the clipboard.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that must work with a broken config
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "config" && cmd.Name() != "show" {
			resolvedConfigPath = config.ResolveConfigPath(configPath)
			return nil
		}

		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Run 'tablink config path' to locate the file")
		}
		ui.ConfigureTheme(cfg.UI.Accent)

		logger, err = buildLogger(cfg)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Use one of debug, info, warn, error")
		}
		return nil
	},
}

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, os.Args[1:])
}

func execute(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	_ = logger.Sync()
	if err != nil {
		reportError(err, os.Stderr)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for script use)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log every resolution step")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// getConfigPath returns the resolved global config path.
func getConfigPath() string {
	return resolvedConfigPath
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	resolvedPath := config.ResolveConfigPath(configPath)

	if configPath == "" {
		loaded, err := config.Load()
		return loaded, resolvedPath, err
	}
	if _, err := os.Stat(resolvedPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, resolvedPath, fmt.Errorf("config file not found: %s", resolvedPath)
		}
		return nil, resolvedPath, err
	}
	loaded, err := config.LoadFrom(resolvedPath)
	return loaded, resolvedPath, err
}

// buildLogger applies --verbose and --log-level over the configured level.
// JSON mode stays silent unless logging was asked for explicitly.
func buildLogger(c *config.Config) (*zap.Logger, error) {
	level := c.LogLevel
	switch {
	case verbose:
		level = "debug"
	case logLevelFlag != "":
		level = logLevelFlag
	case jsonOutput:
		return logging.Nop(), nil
	}
	return logging.New(logging.Options{Level: level, Format: c.LogFormat})
}

// commandContext returns the command's context, or Background when a command
// runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
