package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taskgatectl",
	Short: "TaskGate server and administration tool",
	Long: `taskgatectl runs the TaskGate application server and manages its
database, operation catalog, users and configuration.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
