package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KOMKZ/go-dealdesk/config"
	"github.com/KOMKZ/go-dealdesk/store"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Database.DSN == "" {
				return fmt.Errorf("database.dsn is required")
			}

			// Open runs AutoMigrate as part of connection setup
			db, err := store.Open(cfg.Database)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}

			fmt.Println("migration complete")
			return nil
		},
	}
}
