// Package main provides the entry point for the Smart Resume Reviewer.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_reviewer",
	Short: "Smart Resume Reviewer",
	Long:  "Smart Resume Reviewer generates AI feedback on a resume for a target job role, rewrites the resume, and exports it as TXT or PDF.",
}

var (
	flagDebug   bool
	flagLogJSON bool
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Log in JSON format")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
