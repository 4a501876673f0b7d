package main

import (
	"github.com/spf13/cobra"
)

var (
	version = "dev"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:     "dealdesk",
		Short:   "dealdesk business record API server",
		Version: version,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "dealdesk.yaml", "path to the configuration file")

	root.AddCommand(
		newServeCmd(&configPath),
		newMigrateCmd(&configPath),
	)
	return root
}
