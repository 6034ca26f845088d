package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/deckgen/internal/config"
	"github.com/jackzampolin/deckgen/internal/home"
	"github.com/jackzampolin/deckgen/internal/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the deckgen server",
	Long: `Start the deckgen HTTP API server.

The server provides:
  - POST /api/generate                      - Generate a presentation (optional template upload)
  - POST /api/presentations/{id}/refine     - Apply an edit instruction
  - GET  /api/presentations/{id}            - Fetch the document
  - GET  /api/download/{id}                 - Download the .pptx
  - GET  /api/preview/{id}/{n}              - Slide preview image
  - POST /api/scan                          - Extract design tokens from a .pptx

Examples:
  deckgen serve                    # Start on default port 8080
  deckgen serve --port 3000        # Start on custom port
  deckgen serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		// Load config with hot-reload support
		file := cfgFile
		if file == "" && h.ConfigExists() {
			file = h.ConfigPath()
		}
		mgr, err := config.NewManager(file)
		if err != nil {
			return err
		}
		mgr.WatchConfig()

		c := mgr.Get()
		host := serveHost
		if !cmd.Flags().Changed("host") && c.Server.Host != "" {
			host = c.Server.Host
		}
		port := servePort
		if !cmd.Flags().Changed("port") && c.Server.Port != 0 {
			port = c.Server.Port
		}

		// Honor a configured output directory override.
		if c.Output.Dir != "" {
			if h, err = home.New(c.Output.Dir); err != nil {
				return err
			}
			if err := h.EnsureExists(); err != nil {
				return err
			}
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			Home:          h,
			ConfigManager: mgr,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}
