package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "account-service",
	Short:        "Account lifecycle service",
	Long:         `Creates accounts and moves them through the ACTIVE, SUSPENDED and CLOSED states.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
