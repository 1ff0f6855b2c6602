package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/bankocr/internal/cli"
	"github.com/aretw0/bankocr/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfg    = config.Default()
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bankocr",
	Short: "bankocr decodes account numbers printed by the scanning machine",
	Long: `bankocr reads scanner files of seven-segment style account numbers
(three rows of pipes and underscores per entry), decodes them into
9-digit numbers and validates their checksum.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded

		debug, _ := cmd.Flags().GetBool("debug")
		logger = cli.NewLogger(cfg, debug)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the bankocr YAML config")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}
