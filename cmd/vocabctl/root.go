package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/app"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/config"
)

var (
	configPath string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vocabctl",
	Short: "Operator tool for the vocabulary service",
	Long: `vocabctl works directly against the configured store and lexicon
dataset. It reads the same YAML file and environment as the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}
		c, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		cfg = c
		logger = app.NewLogger(cfg.Log)
		return nil
	},
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CONFIG_PATH"), "path to the YAML config file")

	rootCmd.AddCommand(
		lookupCommand(),
		browseCommand(),
		importCommand(),
		migrateCommand(),
		versionCommand(),
	)
}
