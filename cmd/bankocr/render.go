package main

import (
	"fmt"

	"github.com/aretw0/bankocr/pkg/ocr"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render DIGITS",
	Short: "Print an account number the way the scanner does",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		line, err := ocr.Encode(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), line.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
