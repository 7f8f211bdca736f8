package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taskgate/taskgate/pkg/catalog"
	"github.com/taskgate/taskgate/pkg/config"
	"github.com/taskgate/taskgate/pkg/db"
	"github.com/taskgate/taskgate/pkg/server"
	"github.com/taskgate/taskgate/pkg/server/endpoints"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the TaskGate application server",
	Long: `Run the TaskGate application server

To run the server requires the environment variable DATABASE_URL, along with
auth and invite token secrets in the configuration file or TASKGATE_* envs.

By default, database migrations and a catalog sync are run on startup.
Use --no-migrate to skip both.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Println("Unable to connect to DB:", err)
			os.Exit(1)
		}

		// A partial catalog under-provisions every membership created after
		// startup, so a sync failure is fatal.
		if !noMigrate {
			if err := catalog.Sync(database); err != nil {
				fmt.Fprintf(os.Stderr, "Catalog sync failed: %v\n", err)
				os.Exit(1)
			}
		}

		logger, err := newLogger()
		if err != nil {
			fmt.Println("Unable to initialize logger:", err)
			os.Exit(1)
		}
		defer func() { _ = logger.Sync() }()

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(database, cfg, logger, host, port)

		endpoints.RegisterAll(s)

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func newLogger() (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if level, err := zap.ParseAtomicLevel(os.Getenv("TASKGATE_LOG_LEVEL")); err == nil {
		zapCfg.Level = level
	}
	return zapCfg.Build()
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
