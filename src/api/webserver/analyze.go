package webserver

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/veritylabs/verityai/src/verifier"
)

type Analyze struct {
	pipe *verifier.Pipeline
	gw   *verifier.Gateway
}

func NewAnalyze(pipe *verifier.Pipeline, gw *verifier.Gateway) Analyze {
	return Analyze{pipe: pipe, gw: gw}
}

// Analyze fact-checks a URL or text snippet. A degraded provider still
// yields 200 with the neutral fallback; only bad input is rejected.
func (h Analyze) Analyze(c *gin.Context) {
	var req struct {
		URL  string `json:"url"`
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "Please provide either a URL or text to analyze")
		return
	}

	inputType, content := "text", req.Text
	if req.URL != "" {
		inputType, content = "url", req.URL
	}
	if content == "" {
		respondErr(c, http.StatusBadRequest, "Please provide either a URL or text to analyze")
		return
	}

	result, err := h.pipe.Analyze(c.Request.Context(), inputType, content)
	if err != nil {
		var ve *verifier.ValidationError
		if errors.As(err, &ve) {
			respondErr(c, http.StatusBadRequest, ve.Msg)
			return
		}
		log.Printf("[analyze] unexpected pipeline error: %v", err)
		respondErr(c, http.StatusInternalServerError, "Failed to analyze content. Please try again.")
		return
	}

	respondOK(c, http.StatusOK, result)
}

func (h Analyze) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	logs, err := h.pipe.ListRecent(c.Request.Context(), limit)
	if err != nil {
		log.Printf("[analyze] history fetch failed: %v", err)
		respondErr(c, http.StatusInternalServerError, "Failed to fetch history")
		return
	}

	respondOK(c, http.StatusOK, logs)
}

// Deepfake screens an uploaded image or video frame. Unlike the text
// path, provider failures surface as opaque 500s: there is no safe
// default authenticity score.
func (h Analyze) Deepfake(c *gin.Context) {
	var req struct {
		Media     string `json:"media"`
		MediaType string `json:"mediaType"`
		FileName  string `json:"fileName"`
		IsVideo   bool   `json:"isVideo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Media == "" {
		respondErr(c, http.StatusBadRequest, "Please provide media to analyze")
		return
	}

	log.Printf("[analyze] deepfake check: %s (%s)", req.FileName, req.MediaType)

	result, err := h.gw.InvokeVision(c.Request.Context(), req.Media, req.MediaType, req.IsVideo)
	if err != nil {
		log.Printf("[analyze] deepfake detection failed: %v", err)
		respondErr(c, http.StatusInternalServerError, "Failed to analyze media. Please try again.")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"score":      result.Score,
		"verdict":    result.Verdict,
		"confidence": result.Confidence,
		"analysis":   result.Analysis,
		"analyzedAt": time.Now().UTC().Format(time.RFC3339),
	})
}
