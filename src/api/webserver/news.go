package webserver

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/veritylabs/verityai/src/news"
	"github.com/veritylabs/verityai/src/verifier"
)

type News struct {
	feed       *news.Service
	gw         *verifier.Gateway
	configured bool
}

func NewNews(feed *news.Service, gw *verifier.Gateway, configured bool) News {
	return News{feed: feed, gw: gw, configured: configured}
}

func (h News) Feed(c *gin.Context) {
	if !h.configured {
		respondErr(c, http.StatusInternalServerError, "News API key not configured")
		return
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	q := news.Query{
		Q:        c.DefaultQuery("q", "technology OR world news"),
		Category: c.Query("category"),
		PageSize: pageSize,
		Page:     page,
		SortBy:   c.DefaultQuery("sortBy", "publishedAt"),
		Language: c.DefaultQuery("language", "en"),
	}

	pageData, err := h.feed.Fetch(c.Request.Context(), q)
	if err != nil {
		var ue *news.UpstreamError
		if errors.As(err, &ue) {
			respondErr(c, http.StatusBadRequest, ue.Message)
			return
		}
		log.Printf("[news] feed fetch failed: %v", err)
		respondErr(c, http.StatusInternalServerError, "Failed to fetch news feed")
		return
	}

	respondOK(c, http.StatusOK, pageData)
}

func (h News) Summarize(c *gin.Context) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		URL     string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || (req.Title == "" && req.Content == "") {
		respondErr(c, http.StatusBadRequest, "Please provide article title or content")
		return
	}

	bullets, err := h.gw.Summarize(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		log.Printf("[news] summarize failed: %v", err)
		respondErr(c, http.StatusInternalServerError, "Failed to generate summary")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"summary":    bullets,
		"analyzedAt": time.Now().UTC().Format(time.RFC3339),
	})
}
