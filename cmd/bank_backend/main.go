package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// @title Bank Demo API
// @version 1.0
// @description In-memory registry of personal and business bank accounts.

// @host localhost:8080
// @BasePath /api
func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bank_backend",
		Short: "Bank account registry service",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newCheckCompanyCommand())

	return rootCmd
}
