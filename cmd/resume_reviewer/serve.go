package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-reviewer/internal/config"
	"github.com/jonathan/resume-reviewer/internal/feedback"
	"github.com/jonathan/resume-reviewer/internal/llm"
	"github.com/jonathan/resume-reviewer/internal/logger"
	"github.com/jonathan/resume-reviewer/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the resume reviewer web server",
	Long:  `Start an HTTP server that serves the review UI and the JSON API.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	log, err := logger.New(flagLogJSON, flagDebug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	var client llm.Client
	if cfg.LiveEnabled() {
		client, err = llm.NewClient(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
		}
		defer func() { _ = client.Close() }()
		log.Info("live feedback enabled", zap.String("provider", cfg.Provider))
	} else {
		log.Warn("no API key configured or mock mode forced; serving mock feedback only")
	}

	reviewer := feedback.NewReviewer(cfg, client, log)
	srv := server.New(server.Config{
		Port:     cfg.Port,
		Reviewer: reviewer,
		Logger:   log,
	})

	return srv.Start()
}
