package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cacheTTL = 60 * time.Second

// Article is a feed entry annotated with trust fields. Annotations are
// ephemeral: they are computed per request and never persisted.
type Article struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author     string `json:"author"`
	TrustScore int    `json:"trustScore"`
	TrustTier  string `json:"trustTier"`
	IsTrusted  bool   `json:"isTrusted"`
	IsTabloid  bool   `json:"isTabloid"`
}

// FeedPage is one page of annotated articles.
type FeedPage struct {
	Articles     []Article `json:"articles"`
	TotalResults int       `json:"totalResults"`
	Page         int       `json:"page"`
	PageSize     int       `json:"pageSize"`
	HasMore      bool      `json:"hasMore"`
}

// Service fetches listings and applies the trust classifier. Pages are
// cached briefly in Redis; a nil Redis client disables caching.
type Service struct {
	client     *Client
	classifier *Classifier
	rdb        *redis.Client
}

func NewService(client *Client, classifier *Classifier, rdb *redis.Client) *Service {
	return &Service{client: client, classifier: classifier, rdb: rdb}
}

// Fetch returns an annotated feed page for the query.
func (s *Service) Fetch(ctx context.Context, q Query) (*FeedPage, error) {
	key := cacheKey(q)
	if page := s.cachedPage(ctx, key); page != nil {
		return page, nil
	}

	resp, err := s.client.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	articles := make([]Article, 0, len(resp.Articles))
	for _, raw := range resp.Articles {
		// NewsAPI replaces withdrawn entries with a "[Removed]" stub.
		if raw.Title == "" || raw.Title == "[Removed]" {
			continue
		}

		score := s.classifier.Score(raw.Source.Name)

		a := Article{
			ID:          articleID(raw.Source.ID),
			Title:       raw.Title,
			Description: raw.Description,
			Content:     raw.Content,
			URL:         raw.URL,
			URLToImage:  raw.URLToImage,
			PublishedAt: raw.PublishedAt,
			Author:      raw.Author,
			TrustScore:  score,
			TrustTier:   TierLabel(score),
			IsTrusted:   score >= 70,
			IsTabloid:   score < 40,
		}
		a.Source.ID = raw.Source.ID
		a.Source.Name = raw.Source.Name
		articles = append(articles, a)
	}

	page := &FeedPage{
		Articles:     articles,
		TotalResults: resp.TotalResults,
		Page:         q.Page,
		PageSize:     q.PageSize,
		HasMore:      q.Page*q.PageSize < resp.TotalResults,
	}

	s.cachePage(ctx, key, page)
	return page, nil
}

func (s *Service) cachedPage(ctx context.Context, key string) *FeedPage {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var page FeedPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil
	}
	return &page
}

func (s *Service) cachePage(ctx context.Context, key string, page *FeedPage) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(page)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		log.Printf("[news] failed to cache feed page: %v", err)
	}
}

func cacheKey(q Query) string {
	return fmt.Sprintf("feed:%s:%s:%d:%d:%s:%s", q.Q, q.Category, q.PageSize, q.Page, q.SortBy, q.Language)
}

func articleID(sourceID string) string {
	if sourceID == "" {
		sourceID = "unknown"
	}
	return sourceID + "-" + uuid.NewString()
}
