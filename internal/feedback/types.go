// Package feedback turns a resume and a target role into structured review
// feedback: prompt construction, model reply parsing, the static fallback, and
// the orchestration between them.
package feedback

// Result is the feedback payload shown to the user. It is all-or-nothing: a
// model reply either yields a complete Result or is discarded in favor of the
// fallback.
type Result struct {
	Skills           []string `json:"skills"`
	Improvements     []string `json:"improvements"`
	TailoredExamples []string `json:"tailored_examples"`
	Scoring          Scoring  `json:"scoring"`
	ImprovedResume   string   `json:"improved_resume"`
	Highlights       []string `json:"highlights"`
}

// Scoring holds the four review scores, each in [0,10].
type Scoring struct {
	Relevance float64 `json:"relevance"`
	Clarity   float64 `json:"clarity"`
	Format    float64 `json:"format"`
	Overall   float64 `json:"overall"`
}
