package main

import (
	"fmt"

	"github.com/aretw0/bankocr/pkg/domain"
	"github.com/aretw0/bankocr/pkg/ocr"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check DIGITS",
	Short: "Validate the checksum of an account number",
	Long:  `Prints the account number followed by OK or ERR. Exits non-zero on ERR.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		digits := args[0]
		valid, err := ocr.Checksum(digits)
		if err != nil {
			return err
		}
		if !valid {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", digits, domain.StatusError)
			return fmt.Errorf("checksum mismatch for %s", digits)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", digits, domain.StatusOK)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
