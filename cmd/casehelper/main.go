package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/comigor/casehelper-go/internal/config"
	"github.com/comigor/casehelper-go/internal/logger"
)

var version = "dev"

var (
	// Global flags
	verbose bool
	cfgPath string

	cfg     *config.Config
	current *app
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "casehelper",
	Short: "Personal assistant for a Florida dependency case",
	Long: `casehelper keeps a conversation with an AI assistant, a timeline of case
events and a case profile on this device, and exports them as text or PDF.

Run without arguments to start the interactive chat.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgPath != "" {
			os.Setenv("CONFIG_PATH", cfgPath)
		}
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// stdout carries command output; serve keeps the JSON log on stdout
		if cmd.Name() != serveCmd.Name() {
			logger.SetOutput(os.Stderr)
		}
		logger.SetLevel(cfg.LogLevel)
		if verbose {
			logger.SetLevel("debug")
		}

		current, err = newApp(cmd.Context(), cfg)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if current != nil {
			if err := current.Close(); err != nil {
				logger.L.Warn("storage close error", "error", err)
			}
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context(), current, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ./config.yaml)")

	rootCmd.AddCommand(chatCmd, askCmd, quickCmd, timelineCmd, profileCmd, exportCmd, attachCmd, dumpCmd, serveCmd, mcpCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
