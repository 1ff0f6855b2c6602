package main

import (
	"fmt"
	"os"

	"github.com/aretw0/bankocr"
	"github.com/aretw0/bankocr/internal/cli"
	"github.com/aretw0/bankocr/internal/presentation/tui"
	"github.com/aretw0/bankocr/pkg/domain"
	"github.com/aretw0/bankocr/pkg/report"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [files...]",
	Short: "Decode scanner files into account numbers",
	Long: `Decodes every entry of the given scanner files (or stdin when none, or "-")
and prints one result per entry. Files ending in .gz are decompressed.

With --watch DIR, files landing in DIR are decoded as they arrive.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("format") {
			cfg.Format, _ = cmd.Flags().GetString("format")
		}
		if cmd.Flags().Changed("pad") {
			cfg.PadRows, _ = cmd.Flags().GetBool("pad")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		watchDir, _ := cmd.Flags().GetString("watch")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		engine, deps, err := cli.NewEngine(ctx, cfg, logger, prometheus.NewRegistry())
		if err != nil {
			return err
		}
		defer deps.Close()

		out := cmd.OutOrStdout()
		tty := out == os.Stdout && cli.IsTerminal(os.Stdout)
		printBatch := func(b domain.Batch) {
			if err := cli.WriteReport(out, cfg.Format, b.Entries, tty); err != nil {
				logger.Error("Report failed", "error", err, "batch_id", b.ID)
			}
		}

		if watchDir != "" {
			return watch(ctx, engine, watchDir, printBatch)
		}

		if len(args) == 0 {
			args = []string{"-"}
		}
		for _, path := range args {
			batch, err := engine.DecodeFile(ctx, path)
			if err != nil {
				return err
			}
			printBatch(batch)
		}
		return nil
	},
}

func watch(ctx *cli.SignalContext, engine *bankocr.Engine, dir string, onBatch func(domain.Batch)) error {
	w, err := cli.NewWatcher(dir, engine,
		cli.WithPattern(cfg.Watch.Pattern),
		cli.WithDebounce(cfg.Watch.Debounce),
		cli.WithWatchLogger(logger),
		cli.OnBatch(onBatch),
	)
	if err != nil {
		return err
	}

	if cli.IsTerminal(os.Stderr) {
		tui.PrintBanner(os.Stderr, bankocr.Version)
	}
	cli.PrintSystemMessage(os.Stderr, "Watching '%s' for %s files.", dir, cfg.Watch.Pattern)

	if err := w.Run(ctx); err != nil {
		return err
	}
	if sig := ctx.Signal(); sig != nil {
		cli.PrintSystemMessage(os.Stderr, "Stopped (%v).", sig)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringP("format", "f", "text", fmt.Sprintf("Report format: %v", report.Formats()))
	decodeCmd.Flags().Bool("pad", false, "Right-pad short rows with spaces")
	decodeCmd.Flags().StringP("watch", "w", "", "Watch a directory and decode files as they arrive")
}
