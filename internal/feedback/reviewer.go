package feedback

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/resume-reviewer/internal/config"
	"github.com/jonathan/resume-reviewer/internal/llm"
	"github.com/jonathan/resume-reviewer/internal/logger"
)

// Source identifies which path produced a Result.
type Source string

// Result sources.
const (
	SourceModel    Source = "model"
	SourceMock     Source = "mock"
	SourceFallback Source = "fallback"
)

// Request carries one review invocation's inputs. Mock forces the static
// feedback path for this request regardless of configuration.
type Request struct {
	ResumeText string
	JobRole    string
	JobDesc    string
	Mock       bool
}

// Response is what the reviewer hands back. There is always a Result; failures
// along the live path degrade to the static fallback instead of erroring.
type Response struct {
	Result *Result `json:"result"`
	Source Source  `json:"source"`
	Raw    string  `json:"raw,omitempty"`
	Notice string  `json:"notice,omitempty"`
}

// Reviewer wires the prompt builder, the provider, the parser, and the
// fallback into one call.
type Reviewer struct {
	cfg    *config.Config
	client llm.Client
	log    *zap.Logger
}

// NewReviewer creates a reviewer. client may be nil when the configuration
// only permits mock mode.
func NewReviewer(cfg *config.Config, client llm.Client, log *zap.Logger) *Reviewer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reviewer{cfg: cfg, client: client, log: log}
}

// Review runs one feedback generation. It never returns an error: the live
// path degrades to the static fallback on provider or parse failure, so the
// caller always has something to render.
func (r *Reviewer) Review(ctx context.Context, req Request) *Response {
	if req.Mock {
		return &Response{
			Result: Mock(req.JobRole),
			Source: SourceMock,
			Notice: "Using mock feedback mode.",
		}
	}
	if !r.cfg.LiveEnabled() || r.client == nil {
		return &Response{
			Result: Mock(req.JobRole),
			Source: SourceMock,
			Notice: "No API key configured; using mock feedback mode.",
		}
	}

	prompt := BuildPrompt(req.ResumeText, req.JobRole, req.JobDesc)

	raw, err := r.client.Complete(ctx, prompt)
	if err != nil {
		r.log.Warn("provider call failed, falling back",
			zap.String("provider", r.cfg.Provider),
			zap.Error(err))
		return &Response{
			Result: Mock(req.JobRole),
			Source: SourceFallback,
			Notice: "Provider error: " + err.Error(),
		}
	}

	cleaned := llm.CleanJSONBlock(raw)

	result, ok := ParseReply(cleaned)
	if !ok {
		r.log.Warn("model reply had no decodable JSON object, falling back",
			zap.String("reply", logger.Truncate(raw, 200)))
		return &Response{Result: Mock(req.JobRole), Source: SourceFallback, Raw: raw}
	}

	// All-or-nothing: a structurally incomplete payload is discarded whole.
	if obj, _ := ExtractObject(cleaned); !validShape(obj) {
		r.log.Warn("model reply failed shape validation, falling back",
			zap.String("reply", logger.Truncate(raw, 200)))
		return &Response{Result: Mock(req.JobRole), Source: SourceFallback, Raw: raw}
	}

	return &Response{Result: result, Source: SourceModel, Raw: raw}
}
