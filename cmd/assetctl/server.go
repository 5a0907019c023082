package main

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgepoint/assetd/pkg/audit"
	"github.com/ledgepoint/assetd/pkg/config"
	"github.com/ledgepoint/assetd/pkg/db"
	"github.com/ledgepoint/assetd/pkg/server"
	"github.com/ledgepoint/assetd/pkg/server/endpoints"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the assetd application server",
	Long: `Run the assetd application server.

Requires the environment variables ASSETD_TOKEN_KEY and DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		tokenKeyB64, ok := os.LookupEnv("ASSETD_TOKEN_KEY")
		if !ok {
			fmt.Fprintln(os.Stderr, "ASSETD_TOKEN_KEY environment variable is required")
			os.Exit(1)
		}

		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		tokenKey, err := base64.StdEncoding.DecodeString(tokenKeyB64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Bad ASSETD_TOKEN_KEY:", err)
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
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		cfg := config.Get()
		if host, _ := cmd.Flags().GetString("bind-address"); host != "" {
			cfg.BindAddress = host
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}

		auditStore, err := audit.NewStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to open audit database:", err)
			os.Exit(1)
		}
		audit.DefaultStore = auditStore

		s := server.NewServer(database, tokenKey, cfg)

		if cfg.ConsolidationMapFile != "" {
			if err := s.Consolidation.LoadFile(cfg.ConsolidationMapFile); err != nil {
				fmt.Fprintln(os.Stderr, "Unable to load consolidation map:", err)
				os.Exit(1)
			}
			if cfg.WatchConsolidationMap {
				if err := s.Consolidation.Watch(cfg.ConsolidationMapFile, make(chan struct{})); err != nil {
					fmt.Fprintln(os.Stderr, "Unable to watch consolidation map:", err)
					os.Exit(1)
				}
			}
		}

		endpoints.RegisterAll(s)

		log.Printf("Running server at http://%s:%s...\n", cfg.BindAddress, cfg.Port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().String("bind-address", "", "Address to bind to (overrides config)")
	serverCmd.Flags().String("port", "", "Port to listen on (overrides config)")
	serverCmd.Flags().Bool("no-migrate", false, "Skip database migrations on startup")
}
