package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/bankocr"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of bankocr",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bankocr version %s\n", strings.TrimSpace(bankocr.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
