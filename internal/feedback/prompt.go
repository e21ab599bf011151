package feedback

import (
	"github.com/jonathan/resume-reviewer/internal/prompts"
)

// BuildPrompt renders the review instruction template with the user's inputs.
// The inputs are embedded verbatim; an absent job description renders
// literally as "None". No truncation is applied here.
func BuildPrompt(resumeText, jobRole, jobDesc string) string {
	if jobDesc == "" {
		jobDesc = "None"
	}

	template := prompts.MustGet("review.json", "resume_review")
	return prompts.Format(template, map[string]string{
		"Role":           jobRole,
		"JobDescription": jobDesc,
		"ResumeText":     resumeText,
	})
}
