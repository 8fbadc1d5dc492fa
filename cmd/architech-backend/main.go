package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var environment string

var rootCmd = &cobra.Command{
	Use:   "architech-backend",
	Short: "ArchiTech API server",
	Long:  "ArchiTech interviews a user about a project idea, proposes ideas and blueprints, and generates implementation guides.",
	// Running without a sub-command serves the API.
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&environment, "env", "local", "Environment name; selects the .env.<env> file")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
