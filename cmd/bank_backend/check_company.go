package main

import (
	"fmt"

	"github.com/SscSPs/bank_demo_app/internal/platform/config"
	"github.com/spf13/cobra"
)

func newCheckCompanyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check-company <nip>",
		Short: "Look up a tax number in the VAT registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return checkCompany(cmd.Context(), cfg, cmd.OutOrStdout(), args[0])
		},
	}
}
