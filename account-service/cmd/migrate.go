package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/eaglebank/accounts/account-service/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations and exit",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Printf("Memory store has no schema, nothing to migrate")
		return nil
	}

	// Opening a store applies its embedded migrations.
	_, closeStore, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	log.Printf("Migrations applied for %s store", cfg.StoreDriver)
	return nil
}
