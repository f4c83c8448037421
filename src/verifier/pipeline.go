package verifier

import (
	"context"
	"html"
	"log"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/veritylabs/verityai/src/api/types"
)

const (
	minContentLen = 10
	maxContentLen = 10000

	// Audit rows keep at most this much of the submitted content.
	storedContentLen = 5000

	defaultHistoryLimit = 10
	maxHistoryLimit     = 50
)

// AuditStore persists verification records. Writes are best-effort from
// the pipeline's point of view.
type AuditStore interface {
	Append(ctx context.Context, rec *types.AnalysisLog) error
	Recent(ctx context.Context, limit int) ([]types.AnalysisLog, error)
}

// Analysis is the caller-facing outcome of one verification request.
type Analysis struct {
	TextResult
	AnalyzedAt time.Time `json:"analyzedAt"`
}

// Pipeline runs validation, invokes the model gateway, and records an
// audit trail. A degraded gateway result is a valid outcome, not a
// pipeline failure.
type Pipeline struct {
	gw        *Gateway
	store     AuditStore
	sanitizer *bluemonday.Policy
}

func NewPipeline(gw *Gateway, store AuditStore) *Pipeline {
	return &Pipeline{
		gw:        gw,
		store:     store,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Analyze fact-checks content of the given input type ("url" or "text").
// It returns a *ValidationError for bad input and otherwise always
// succeeds: upstream failures were already absorbed by the gateway.
func (p *Pipeline) Analyze(ctx context.Context, inputType, content string) (*Analysis, error) {
	if inputType != "url" && inputType != "text" {
		return nil, &ValidationError{Msg: "Please provide either a URL or text to analyze"}
	}
	// Bounds count characters, not bytes: multibyte submissions must not
	// hit the cap early.
	if err := checkLength(content); err != nil {
		return nil, err
	}

	// Strip any embedded markup before it reaches the provider. The
	// sanitizer entity-escapes what survives, so unescape to keep plain
	// text (AT&T, not AT&amp;T) flowing to the model and the audit log.
	content = html.UnescapeString(p.sanitizer.Sanitize(content))
	if err := checkLength(content); err != nil {
		return nil, err
	}

	result := p.gw.InvokeText(ctx, content)

	// Best-effort audit write. The pipeline's job is to answer the
	// analysis question, not to guarantee durability of the trail.
	stored := content
	if utf8.RuneCountInString(stored) > storedContentLen {
		runes := []rune(stored)
		stored = string(runes[:storedContentLen])
	}
	rec := &types.AnalysisLog{
		InputType: inputType,
		Content:   stored,
		Score:     result.Score,
		Verdict:   result.Verdict,
		Reasoning: result.Reasoning,
		CreatedAt: time.Now().UTC(),
	}
	if err := p.store.Append(ctx, rec); err != nil {
		log.Printf("[verifier] failed to log analysis: %v", err)
	}

	return &Analysis{TextResult: result, AnalyzedAt: time.Now().UTC()}, nil
}

func checkLength(content string) error {
	n := utf8.RuneCountInString(content)
	if n < minContentLen {
		return &ValidationError{Msg: "Content is too short. Please provide more text to analyze."}
	}
	if n > maxContentLen {
		return &ValidationError{Msg: "Content is too long. Please limit to 10,000 characters."}
	}
	return nil
}

// ListRecent returns up to limit audit records, newest first. The content
// column is loaded but never serialized (json:"-").
func (p *Pipeline) ListRecent(ctx context.Context, limit int) ([]types.AnalysisLog, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return p.store.Recent(ctx, limit)
}
