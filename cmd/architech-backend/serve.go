package main

import (
	"fmt"

	"github.com/futig/architech-backend/internal/builder"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := builder.Build(environment)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	return app.Run()
}
