// Package main provides the entry point for the FrameMe CV wizard.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "frameme",
	Short: "FrameMe CV wizard server",
	Long:  "FrameMe guides first-time job seekers through building a one-page CV step by step, with optional AI help for phrasing, and exports the result as a PDF.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
