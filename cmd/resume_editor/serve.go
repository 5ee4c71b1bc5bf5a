package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-editor/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that stores, edits, and renders each user's resume. Requires DATABASE_URL and JWT_SECRET.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default $PORT or 8080)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Create missing tables before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	jwtConfig, err := cfg.Tokens()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	if serveMigrate {
		if err := migrate(context.Background(), cfg.DatabaseURL); err != nil {
			return err
		}
	}

	srv, err := server.Open(context.Background(), cfg, jwtConfig)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
