package openrouter

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
	defaultEndpoint  = "https://openrouter.ai/api/v1/chat/completions"
	defaultModel     = "google/gemini-2.0-flash-001"
	defaultMaxTokens = 300
)

type client struct {
	apiKey     string
	endpoint   string
	referer    string
	title      string
	httpClient *http.Client
	defaults   core.Options
}

// NewClient constructs an OpenRouter-backed implementation of core.Client.
// OpenRouter proxies multimodal models, so both the text and vision paths
// are supported.
func NewClient(cfg core.FactoryConfig) (core.Client, error) {
	if cfg.OpenRouterKey == "" {
		return nil, fmt.Errorf("openrouter: API key not configured")
	}

	endpoint := defaultEndpoint
	referer := "http://localhost:5173"
	title := "VerityAI"
	if cfg.Extra != nil {
		if cfg.Extra["base_url"] != "" {
			endpoint = strings.TrimRight(cfg.Extra["base_url"], "/") + "/api/v1/chat/completions"
		}
		if cfg.Extra["referer"] != "" {
			referer = cfg.Extra["referer"]
		}
		if cfg.Extra["title"] != "" {
			title = cfg.Extra["title"]
		}
	}

	return &client{
		apiKey:     cfg.OpenRouterKey,
		endpoint:   endpoint,
		referer:    referer,
		title:      title,
		httpClient: webclient.NewDefault(30 * time.Second),
		defaults: core.Options{
			Model:               valueOrDefault(cfg.Model, defaultModel),
			Temperature:         orFloat(cfg.Temperature, 0.2),
			MaxCompletionTokens: orInt(cfg.MaxCompletionTokens, defaultMaxTokens),
			SystemPrompt:        cfg.SystemPrompt,
		},
	}, nil
}

func (c *client) Respond(ctx context.Context, input string, opts core.Options) (string, error) {
	merged := c.merge(opts)

	messages := []map[string]interface{}{}
	if merged.SystemPrompt != "" {
		messages = append(messages, map[string]interface{}{"role": "system", "content": merged.SystemPrompt})
	}
	messages = append(messages, map[string]interface{}{"role": "user", "content": input})

	return c.invoke(ctx, merged, messages)
}

func (c *client) RespondVision(ctx context.Context, input string, imageDataURL string, opts core.Options) (string, error) {
	merged := c.merge(opts)

	messages := []map[string]interface{}{
		{
			"role": "user",
			"content": []map[string]interface{}{
				{"type": "text", "text": input},
				{"type": "image_url", "image_url": map[string]string{"url": imageDataURL}},
			},
		},
	}

	return c.invoke(ctx, merged, messages)
}

func (c *client) invoke(ctx context.Context, opts core.Options, messages []map[string]interface{}) (string, error) {
	body := map[string]interface{}{
		"model":       opts.Model,
		"messages":    messages,
		"temperature": opts.Temperature,
		"max_tokens":  opts.MaxCompletionTokens,
	}

	resp, err := c.post(ctx, body)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("openrouter: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *client) post(ctx context.Context, payload map[string]interface{}) (*chatResponse, error) {
	bodyBytes, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", c.referer)
	req.Header.Set("X-Title", c.title)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openrouter API error: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openrouter API error: status %d", resp.StatusCode)
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
