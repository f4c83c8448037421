package news

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedServer(t *testing.T, payload map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.URL.Query().Get("apiKey"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}))
}

func testService(rawBase string) *Service {
	return NewService(NewClient("test-key", rawBase), NewClassifier(rand.New(rand.NewSource(1))), nil)
}

func TestFetchAnnotatesArticles(t *testing.T) {
	srv := feedServer(t, map[string]interface{}{
		"status":       "ok",
		"totalResults": 42,
		"articles": []map[string]interface{}{
			{"title": "Markets rally", "source": map[string]string{"id": "reuters", "name": "Reuters"}},
			{"title": "[Removed]", "source": map[string]string{"name": "Reuters"}},
			{"title": "Celebrity shock", "source": map[string]string{"name": "Daily Mail"}},
		},
	})
	defer srv.Close()

	page, err := testService(srv.URL).Fetch(context.Background(), Query{
		Q: "markets", PageSize: 20, Page: 1, SortBy: "publishedAt", Language: "en",
	})

	require.NoError(t, err)
	require.Len(t, page.Articles, 2, "withdrawn stubs are dropped")

	trusted := page.Articles[0]
	assert.Equal(t, TierVerified, trusted.TrustTier)
	assert.True(t, trusted.IsTrusted)
	assert.False(t, trusted.IsTabloid)
	assert.NotEmpty(t, trusted.ID)

	tabloid := page.Articles[1]
	assert.Equal(t, TierCaution, tabloid.TrustTier)
	assert.True(t, tabloid.IsTabloid)

	assert.Equal(t, 42, page.TotalResults)
	assert.True(t, page.HasMore, "1*20 < 42")
}

func TestFetchLastPageHasNoMore(t *testing.T) {
	srv := feedServer(t, map[string]interface{}{
		"status":       "ok",
		"totalResults": 30,
		"articles":     []map[string]interface{}{},
	})
	defer srv.Close()

	page, err := testService(srv.URL).Fetch(context.Background(), Query{
		Q: "x", PageSize: 20, Page: 2, SortBy: "publishedAt", Language: "en",
	})

	require.NoError(t, err)
	assert.False(t, page.HasMore, "2*20 >= 30")
}

func TestFetchUpstreamError(t *testing.T) {
	srv := feedServer(t, map[string]interface{}{
		"status":  "error",
		"message": "apiKey invalid",
	})
	defer srv.Close()

	_, err := testService(srv.URL).Fetch(context.Background(), Query{
		Q: "x", PageSize: 20, Page: 1, SortBy: "publishedAt", Language: "en",
	})

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "apiKey invalid", ue.Message)
}

func TestBuildURLUsesTopHeadlinesForCategory(t *testing.T) {
	c := NewClient("k", "https://newsapi.example")

	everything := c.buildURL(Query{Q: "ai", PageSize: 10, Page: 1, SortBy: "relevancy", Language: "en"})
	assert.Contains(t, everything, "/v2/everything?")
	assert.Contains(t, everything, "q=ai")

	headlines := c.buildURL(Query{Category: "science", PageSize: 10, Page: 1, Language: "en"})
	assert.Contains(t, headlines, "/v2/top-headlines?")
	assert.Contains(t, headlines, "category=science")
}
