package sambanova

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/veritylabs/verityai/src/ai/core"
	"github.com/veritylabs/verityai/src/webclient"
)

const (
	defaultEndpoint  = "https://api.sambanova.ai/v1/chat/completions"
	defaultModel     = "Meta-Llama-3.1-8B-Instruct"
	defaultMaxTokens = 500
)

type client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	defaults   core.Options
}

// NewClient constructs a SambaNova-backed implementation of core.Client.
// SambaNova exposes an OpenAI-compatible chat completions API; only the
// text path is supported.
func NewClient(cfg core.FactoryConfig) (core.Client, error) {
	if cfg.SambaNovaKey == "" {
		return nil, fmt.Errorf("sambanova: API key not configured")
	}

	endpoint := defaultEndpoint
	if cfg.Extra != nil && cfg.Extra["base_url"] != "" {
		endpoint = strings.TrimRight(cfg.Extra["base_url"], "/") + "/v1/chat/completions"
	}

	return &client{
		apiKey:     cfg.SambaNovaKey,
		endpoint:   endpoint,
		httpClient: webclient.NewDefault(30 * time.Second),
		defaults: core.Options{
			Model:               valueOrDefault(cfg.Model, defaultModel),
			Temperature:         orFloat(cfg.Temperature, 0.1),
			MaxCompletionTokens: orInt(cfg.MaxCompletionTokens, defaultMaxTokens),
			SystemPrompt:        cfg.SystemPrompt,
		},
	}, nil
}

func (c *client) Respond(ctx context.Context, input string, opts core.Options) (string, error) {
	merged := c.merge(opts)

	messages := []map[string]string{}
	if merged.SystemPrompt != "" {
		messages = append(messages, map[string]string{"role": "system", "content": merged.SystemPrompt})
	}
	messages = append(messages, map[string]string{"role": "user", "content": input})

	body := map[string]interface{}{
		"model":       merged.Model,
		"messages":    messages,
		"temperature": merged.Temperature,
		"max_tokens":  merged.MaxCompletionTokens,
	}

	resp, err := c.post(ctx, body)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("sambanova: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *client) RespondVision(ctx context.Context, input string, imageDataURL string, opts core.Options) (string, error) {
	return "", fmt.Errorf("sambanova: vision input not supported")
}

func (c *client) post(ctx context.Context, payload map[string]interface{}) (*chatResponse, error) {
	bodyBytes, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sambanova API error: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sambanova API error: status %d", resp.StatusCode)
	}

	var result chatResponse
	if err := json.Unmarshal(b, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *client) merge(opts core.Options) core.Options {
	out := c.defaults
	if opts.Model != "" {
		out.Model = opts.Model
	}
	if opts.Temperature != 0 {
		out.Temperature = opts.Temperature
	}
	if opts.MaxCompletionTokens != 0 {
		out.MaxCompletionTokens = opts.MaxCompletionTokens
	}
	if opts.SystemPrompt != "" {
		out.SystemPrompt = opts.SystemPrompt
	}
	return out
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func valueOrDefault(val, def string) string {
	if strings.TrimSpace(val) != "" {
		return val
	}
	return def
}

func orInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func orFloat(v, def float64) float64 {
	if v != 0 {
		return v
	}
	return def
}
