package main

import (
	"log"

	"github.com/spf13/cobra"

	"career-coach/internal/bootstrap"
	"career-coach/internal/shared/server"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (default: PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if servePort != "" {
		cfg.Port = servePort
	}

	app, err := bootstrap.Build(cfg, bootstrap.Options{Console: cmd.OutOrStdout()})
	if err != nil {
		return err
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)
	return app.Router.Run(addr)
}
