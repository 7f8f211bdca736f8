package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskgate/taskgate/pkg/catalog"
	"github.com/taskgate/taskgate/pkg/db"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the operation catalog",
	Long:  `Manage the declared operation catalog.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'catalog' requires a subcommand (sync, list)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// catalogSyncCmd represents the catalog sync command
var catalogSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the declared operation catalog into the database",
	Long: `Sync the declared operation catalog into the database.

Operations are upserted by their (controller, action) natural key. Existing
operations keep their ids; only descriptions are refreshed. Operations no
longer declared are left in place so that existing rules keep resolving.

Example:
  taskgatectl catalog sync`,
	Run: func(cmd *cobra.Command, args []string) {
		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
			os.Exit(1)
		}

		if err := catalog.Sync(database); err != nil {
			fmt.Fprintf(os.Stderr, "Catalog sync failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Synced %d operations\n", len(catalog.Definitions()))
	},
}

// catalogListCmd represents the catalog list command
var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the declared operation catalog",
	Long:  `List the operations declared in this build, without touching the database.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, def := range catalog.Definitions() {
			fmt.Printf("%-24s %s\n", def.Key(), def.Description)
		}
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogSyncCmd)
	catalogCmd.AddCommand(catalogListCmd)
}
