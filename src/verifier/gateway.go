package verifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/veritylabs/verityai/src/ai/core"
)

// Text verdict labels.
const (
	VerdictReal         = "Real"
	VerdictFake         = "Fake"
	VerdictInconclusive = "Inconclusive"
)

// Neutral fallback reasoning strings for the text path.
const (
	reasonNotConfigured = "Analysis unavailable: AI service not configured."
	reasonServiceError  = "Analysis unavailable due to service error. Please try again later."
	reasonUnparseable   = "Unable to complete analysis. Please try again with different content."
)

// TextResult is a normalized fact-check outcome.
type TextResult struct {
	Score     int    `json:"score"`
	Verdict   string `json:"verdict"`
	Reasoning string `json:"reasoning"`
}

// MediaResult is a normalized deepfake-screening outcome.
type MediaResult struct {
	Score      int    `json:"score"`
	Verdict    string `json:"verdict"`
	Confidence string `json:"confidence"`
	Analysis   string `json:"analysis"`
}

// Gateway translates verification requests into provider calls and parses
// the unstructured replies into strict result shapes.
//
// The two paths have deliberately asymmetric failure policies: a wrong
// "Inconclusive" text verdict is a benign default, so InvokeText absorbs
// every upstream failure into a neutral fallback. Silently asserting an
// authenticity score for media that was never analyzed would be
// misleading, so InvokeVision fails loud instead.
type Gateway struct {
	text   core.Client
	vision core.Client
}

// NewGateway wires the text and vision providers. Either may be nil when
// the corresponding credential is not configured.
func NewGateway(text, vision core.Client) *Gateway {
	return &Gateway{text: text, vision: vision}
}

// InvokeText fact-checks content. It never returns an error: upstream
// failures degrade to the neutral {50, Inconclusive} result.
func (g *Gateway) InvokeText(ctx context.Context, content string) TextResult {
	if g.text == nil {
		log.Printf("[verifier] text provider not configured, returning fallback")
		return TextResult{Score: 50, Verdict: VerdictInconclusive, Reasoning: reasonNotConfigured}
	}

	reply, err := g.text.Respond(ctx, factCheckUserPrompt(content), core.Options{
		SystemPrompt: factCheckSystemPrompt,
	})
	if err != nil {
		log.Printf("[verifier] text provider error: %v", err)
		return TextResult{Score: 50, Verdict: VerdictInconclusive, Reasoning: reasonServiceError}
	}

	result, err := parseTextResult(reply)
	if err != nil {
		log.Printf("[verifier] %v", err)
		return TextResult{Score: 50, Verdict: VerdictInconclusive, Reasoning: reasonUnparseable}
	}
	return *result
}

// InvokeVision screens media for manipulation. mediaB64 is the raw base64
// payload without a data-URL prefix.
func (g *Gateway) InvokeVision(ctx context.Context, mediaB64, mimeType string, isVideo bool) (*MediaResult, error) {
	if g.vision == nil {
		return nil, &DetectionFailedError{Err: fmt.Errorf("vision provider not configured")}
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, mediaB64)
	reply, err := g.vision.RespondVision(ctx, deepfakePrompt(isVideo), dataURL, core.Options{
		Temperature:         0.2,
		MaxCompletionTokens: 300,
	})
	if err != nil {
		return nil, &DetectionFailedError{Err: err}
	}

	result, err := parseMediaResult(reply)
	if err != nil {
		return nil, &DetectionFailedError{Err: err}
	}
	return result, nil
}

// Summarize condenses an article into at most three bullet lines. An
// unusable reply degrades to static placeholder bullets; a transport
// failure is surfaced.
func (g *Gateway) Summarize(ctx context.Context, title, content string) ([]string, error) {
	if g.vision == nil {
		return nil, fmt.Errorf("summary provider not configured")
	}

	reply, err := g.vision.Respond(ctx, summaryPrompt(title, content), core.Options{
		Temperature:         0.3,
		MaxCompletionTokens: 300,
	})
	if err != nil {
		return nil, err
	}

	bullets := parseBullets(reply)
	if len(bullets) == 0 {
		bullets = []string{"• Analysis unavailable", "• Try again later", "• Check original source"}
	}
	return bullets, nil
}

// stripCodeFence removes an optional leading ```json / ``` marker and a
// trailing ``` marker that models sometimes wrap JSON replies in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}

func parseTextResult(reply string) (*TextResult, error) {
	var raw struct {
		Score     *float64 `json:"score"`
		Verdict   *string  `json:"verdict"`
		Reasoning *string  `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if raw.Score == nil || raw.Verdict == nil || raw.Reasoning == nil {
		return nil, fmt.Errorf("%w: missing field", ErrMalformedResponse)
	}
	switch *raw.Verdict {
	case VerdictReal, VerdictFake, VerdictInconclusive:
	default:
		return nil, fmt.Errorf("%w: unknown verdict %q", ErrMalformedResponse, *raw.Verdict)
	}
	return &TextResult{
		Score:     clampScore(*raw.Score),
		Verdict:   *raw.Verdict,
		Reasoning: *raw.Reasoning,
	}, nil
}

func parseMediaResult(reply string) (*MediaResult, error) {
	var raw struct {
		Score      *float64 `json:"score"`
		Verdict    *string  `json:"verdict"`
		Confidence *string  `json:"confidence"`
		Analysis   *string  `json:"analysis"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if raw.Score == nil || raw.Verdict == nil || raw.Confidence == nil || raw.Analysis == nil {
		return nil, fmt.Errorf("%w: missing field", ErrMalformedResponse)
	}
	switch *raw.Verdict {
	case "Likely Real", "Uncertain", "Likely Fake":
	default:
		return nil, fmt.Errorf("%w: unknown verdict %q", ErrMalformedResponse, *raw.Verdict)
	}
	switch *raw.Confidence {
	case "High", "Medium", "Low":
	default:
		return nil, fmt.Errorf("%w: unknown confidence %q", ErrMalformedResponse, *raw.Confidence)
	}
	return &MediaResult{
		Score:      clampScore(*raw.Score),
		Verdict:    *raw.Verdict,
		Confidence: *raw.Confidence,
		Analysis:   *raw.Analysis,
	}, nil
}

func parseBullets(reply string) []string {
	var bullets []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "•") {
			bullets = append(bullets, line)
		}
		if len(bullets) == 3 {
			break
		}
	}
	return bullets
}

func clampScore(v float64) int {
	return int(math.Max(0, math.Min(100, math.Round(v))))
}
