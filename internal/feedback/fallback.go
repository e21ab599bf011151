package feedback

// Mock returns the static feedback payload used in mock mode and whenever the
// live path fails. The content is fixed; only highlights echoes the job role.
func Mock(jobRole string) *Result {
	return &Result{
		Skills: []string{"communication", "teamwork", "problem solving"},
		Improvements: []string{
			"Quantify achievements.",
			"Use active verbs.",
			"Move education below experience if experienced.",
		},
		TailoredExamples: []string{
			"Led a 3-person team to build a recommendation engine.",
			"Improved ETL pipeline latency by 40%.",
			"Designed A/B tests increasing activation by 8%.",
		},
		Scoring: Scoring{
			Relevance: 7,
			Clarity:   7,
			Format:    6,
			Overall:   7,
		},
		ImprovedResume: "Header: Name | Email\nSummary: Data-focused...\nExperience: ...\nSkills: Python, SQL, ML",
		Highlights:     []string{"Python", "SQL", "ML", jobRole},
	}
}
