package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-reviewer/internal/config"
	"github.com/jonathan/resume-reviewer/internal/extract"
	"github.com/jonathan/resume-reviewer/internal/feedback"
	"github.com/jonathan/resume-reviewer/internal/llm"
	"github.com/jonathan/resume-reviewer/internal/logger"
	"github.com/jonathan/resume-reviewer/internal/rendering"
)

var (
	reviewResume string
	reviewRole   string
	reviewDesc   string
	reviewMock   bool
	reviewOut    string
	reviewRaw    bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review a resume from the command line",
	Long: `Run one review without the web UI: read a resume from a PDF or text file,
generate feedback, and write the results next to the --out base path as
<out>.json, <out>.txt and <out>.pdf.`,
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().StringVar(&reviewResume, "resume", "", "Path to the resume (.pdf or plain text) (required)")
	reviewCmd.Flags().StringVar(&reviewRole, "role", "", "Target job role (required)")
	reviewCmd.Flags().StringVar(&reviewDesc, "desc", "", "Job description text, or @path to read it from a file")
	reviewCmd.Flags().BoolVar(&reviewMock, "mock", false, "Use mock feedback instead of calling the provider")
	reviewCmd.Flags().StringVar(&reviewOut, "out", "improved_resume", "Base path for output files")
	reviewCmd.Flags().BoolVar(&reviewRaw, "raw", false, "Print the raw model reply")
	_ = reviewCmd.MarkFlagRequired("resume")
	_ = reviewCmd.MarkFlagRequired("role")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(flagLogJSON, flagDebug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	resumeText, err := readResume(reviewResume)
	if err != nil {
		return err
	}
	if strings.TrimSpace(resumeText) == "" {
		return fmt.Errorf("no text could be extracted from %s", reviewResume)
	}

	jobDesc, err := readDesc(reviewDesc)
	if err != nil {
		return err
	}

	var client llm.Client
	if !reviewMock && cfg.LiveEnabled() {
		client, err = llm.NewClient(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
		}
		defer func() { _ = client.Close() }()
	}

	reviewer := feedback.NewReviewer(cfg, client, log)
	resp := reviewer.Review(cmd.Context(), feedback.Request{
		ResumeText: resumeText,
		JobRole:    reviewRole,
		JobDesc:    jobDesc,
		Mock:       reviewMock,
	})

	if resp.Notice != "" {
		fmt.Fprintln(os.Stderr, resp.Notice)
	}
	if reviewRaw && resp.Raw != "" {
		fmt.Fprintln(os.Stderr, resp.Raw)
	}

	printSummary(resp)

	if err := writeOutputs(resp, reviewOut, reviewRole); err != nil {
		return err
	}
	fmt.Printf("Wrote %s.json, %s.txt and %s.pdf\n", reviewOut, reviewOut, reviewOut)
	return nil
}

// readResume loads the resume text, extracting from PDF when needed.
func readResume(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return extract.FromBytes(data)
	}
	return string(data), nil
}

// readDesc resolves the --desc value; an @-prefixed value names a file.
func readDesc(desc string) (string, error) {
	if !strings.HasPrefix(desc, "@") {
		return desc, nil
	}
	data, err := os.ReadFile(strings.TrimPrefix(desc, "@"))
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return string(data), nil
}

func printSummary(resp *feedback.Response) {
	r := resp.Result
	fmt.Printf("Skills:       %s\n", strings.Join(r.Skills, ", "))
	fmt.Println("Improvements:")
	for _, s := range r.Improvements {
		fmt.Printf("  - %s\n", s)
	}
	fmt.Println("Tailored examples:")
	for _, s := range r.TailoredExamples {
		fmt.Printf("  - %s\n", s)
	}
	fmt.Printf("Scores:       relevance %.0f/10, clarity %.0f/10, format %.0f/10, overall %.0f/10\n",
		r.Scoring.Relevance, r.Scoring.Clarity, r.Scoring.Format, r.Scoring.Overall)
	fmt.Printf("Highlights:   %s\n", strings.Join(r.Highlights, ", "))
}

func writeOutputs(resp *feedback.Response, out, role string) error {
	data, err := json.MarshalIndent(resp.Result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode feedback: %w", err)
	}
	if err := os.WriteFile(out+".json", data, 0o644); err != nil {
		return fmt.Errorf("failed to write feedback JSON: %w", err)
	}

	if err := os.WriteFile(out+".txt", []byte(resp.Result.ImprovedResume), 0o644); err != nil {
		return fmt.Errorf("failed to write TXT: %w", err)
	}

	pdfData, err := rendering.ResumePDF(resp.Result.ImprovedResume, "Improved Resume - "+role)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out+".pdf", pdfData, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
