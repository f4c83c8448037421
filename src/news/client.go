package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/veritylabs/verityai/src/webclient"
)

const defaultBaseURL = "https://newsapi.org"

// Query captures the caller-supplied feed parameters.
type Query struct {
	Q        string
	Category string
	PageSize int
	Page     int
	SortBy   string
	Language string
}

// RawArticle mirrors the NewsAPI article shape.
type RawArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

type apiResponse struct {
	Status       string       `json:"status"`
	Message      string       `json:"message"`
	TotalResults int          `json:"totalResults"`
	Articles     []RawArticle `json:"articles"`
}

// UpstreamError is a NewsAPI-level rejection (bad query, exhausted quota).
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string { return e.Message }

// Client fetches article listings from NewsAPI.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: webclient.NewDefault(15 * time.Second),
	}
}

// Fetch queries the everything endpoint, or top-headlines when a category
// is given. The call is an idempotent GET so transient upstream failures
// are retried once.
func (c *Client) Fetch(ctx context.Context, q Query) (*apiResponse, error) {
	endpoint := c.buildURL(q)

	status, body, err := webclient.DoWithRetry(ctx, 2, time.Second, func() (int, []byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return 0, nil, err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return 0, nil, err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return resp.StatusCode, nil, err
		}
		return resp.StatusCode, b, nil
	})
	if err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}

	var out apiResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("newsapi: decoding response: %w", err)
	}
	if out.Status != "ok" {
		msg := out.Message
		if msg == "" {
			msg = fmt.Sprintf("Failed to fetch news (status %d)", status)
		}
		return nil, &UpstreamError{Message: msg}
	}
	return &out, nil
}

func (c *Client) buildURL(q Query) string {
	v := url.Values{}
	v.Set("pageSize", strconv.Itoa(q.PageSize))
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("language", q.Language)
	v.Set("apiKey", c.apiKey)

	if q.Category != "" {
		v.Set("category", q.Category)
		return c.baseURL + "/v2/top-headlines?" + v.Encode()
	}

	v.Set("q", q.Q)
	v.Set("sortBy", q.SortBy)
	return c.baseURL + "/v2/everything?" + v.Encode()
}
