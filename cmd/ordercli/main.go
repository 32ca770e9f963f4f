package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"order-console/internal/app"
	"order-console/internal/core/apierror"
	"order-console/internal/core/config"
	"order-console/internal/core/logger"

	"github.com/spf13/cobra"
)

// cli carries the wired application between the root command and its subcommands.
type cli struct {
	configPath string
	logLevel   string
	jsonOutput bool

	app *app.App
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:           "ordercli",
		Short:         "Command line client for the order management API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			defer logger.Sync()
			if c.app == nil {
				return nil
			}
			return c.app.Close()
		},
	}

	cmd.PersistentFlags().StringVar(&c.configPath, "config", ".", "Directory holding the .env file")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "Print views as JSON")

	cmd.AddCommand(ordersCmd(c), recommendationsCmd(c))
	return cmd
}

func (c *cli) init(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	// The CLI never serves /metrics.
	cfg.MetricsEnabled = false

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	c.app = a
	return nil
}

// printError prints err, adding the canonical code and correlation id when the API produced it.
func printError(w io.Writer, err error) {
	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(w, "Error: %s\n", apierror.FormatForDisplay(apiErr.Canonical))
	fmt.Fprintf(w, "  code: %s\n", apiErr.Canonical.Code)
	if apiErr.Canonical.CorrelationID != "" {
		fmt.Fprintf(w, "  correlation id: %s\n", apiErr.Canonical.CorrelationID)
	}
}
