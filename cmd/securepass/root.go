package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the SecurePass CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "securepass",
		Short: "SecurePass - a personal credential vault",
		Long: `SecurePass stores labeled secrets per account behind JWT
authentication and offers password strength checking and generation.
Configuration is read from environment variables.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
