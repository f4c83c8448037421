package webserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/veritylabs/verityai/src/api/config"
	"github.com/veritylabs/verityai/src/api/types"
)

// testRouter spins up the full route table against a throwaway sqlite
// database with no provider credentials configured, so the text path
// exercises the degraded fallback and news/deepfake report unconfigured.
func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&types.User{}, &types.AnalysisLog{}))

	cfg := config.Config{
		JWTSecret:      "test-secret",
		AllowedOrigins: []string{"http://localhost:5173"},
	}
	return New(cfg, db, nil)
}

func doJSON(r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHealth(t *testing.T) {
	r := testRouter(t)
	w := doJSON(r, http.MethodGet, "/api/health", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"online"`)
	assert.Contains(t, w.Body.String(), `"service":"VerityAI"`)
}

func TestUnknownEndpoint(t *testing.T) {
	r := testRouter(t)
	w := doJSON(r, http.MethodGet, "/api/nope", nil, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
}

func TestRegisterLoginMeFlow(t *testing.T) {
	r := testRouter(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"name": "A", "email": "a@x.com", "password": "secret1",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var reg struct {
		Token string `json:"token"`
		User  struct {
			ID    uint   `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	env := decode(t, w)
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, &reg))
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "a@x.com", reg.User.Email)
	assert.NotContains(t, string(env.Data), "password")

	// Duplicate registration conflicts.
	w = doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"name": "A", "email": "a@x.com", "password": "secret1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Error, "already registered")

	// Login succeeds with the right password.
	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{
		"email": "a@x.com", "password": "secret1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env = decode(t, w)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)

	// And fails generically with the wrong one.
	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{
		"email": "a@x.com", "password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decode(t, w).Error)

	// Unknown email yields the identical message.
	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{
		"email": "nobody@x.com", "password": "secret1",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decode(t, w).Error)

	// The issued token opens the profile endpoint.
	w = doJSON(r, http.MethodGet, "/api/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + login.Token,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"a@x.com"`)
	assert.Contains(t, w.Body.String(), "createdAt")
}

func TestRegisterValidation(t *testing.T) {
	r := testRouter(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"name": "A", "email": "a@x.com",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"name": "A", "email": "a@x.com", "password": "short",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Error, "at least 6 characters")
}

func TestMeRequiresToken(t *testing.T) {
	r := testRouter(t)

	w := doJSON(r, http.MethodGet, "/api/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/api/auth/me", nil, map[string]string{
		"Authorization": "Bearer garbage",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAnalyzeUnconfiguredReturnsNeutralFallback(t *testing.T) {
	r := testRouter(t)

	w := doJSON(r, http.MethodPost, "/api/analyze", gin.H{
		"text": "The moon landing happened in 1969 according to NASA records.",
	}, nil)

	// Provider outage or absence is a degraded outcome, never a 500.
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	require.True(t, env.Success)

	var result struct {
		Score      int    `json:"score"`
		Verdict    string `json:"verdict"`
		AnalyzedAt string `json:"analyzedAt"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 50, result.Score)
	assert.Equal(t, "Inconclusive", result.Verdict)
	assert.NotEmpty(t, result.AnalyzedAt)
}

func TestAnalyzeRejectsBadContent(t *testing.T) {
	r := testRouter(t)

	w := doJSON(r, http.MethodPost, "/api/analyze", gin.H{"text": "short"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/analyze", gin.H{"text": strings.Repeat("a", 10001)}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/analyze", gin.H{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistoryOmitsContent(t *testing.T) {
	r := testRouter(t)

	for i := 0; i < 7; i++ {
		w := doJSON(r, http.MethodPost, "/api/analyze", gin.H{
			"text": fmt.Sprintf("claim number %d with enough length to pass validation", i),
		}, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(r, http.MethodGet, "/api/analyze/history?limit=5", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &records))
	assert.Len(t, records, 5)
	for _, rec := range records {
		assert.NotContains(t, rec, "content")
		assert.Contains(t, rec, "verdict")
		assert.Contains(t, rec, "createdAt")
	}
}

func TestDeepfakeUnconfiguredFailsLoud(t *testing.T) {
	r := testRouter(t)

	w := doJSON(r, http.MethodPost, "/api/analyze/deepfake", gin.H{
		"media": "aGVsbG8=", "mediaType": "image/png", "fileName": "face.png",
	}, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, decode(t, w).Success)
}

func TestDeepfakeRequiresMedia(t *testing.T) {
	r := testRouter(t)

	w := doJSON(r, http.MethodPost, "/api/analyze/deepfake", gin.H{
		"mediaType": "image/png",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNewsUnconfigured(t *testing.T) {
	r := testRouter(t)

	w := doJSON(r, http.MethodGet, "/api/news", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decode(t, w).Error, "not configured")
}

func TestSummarizeRequiresInput(t *testing.T) {
	r := testRouter(t)

	w := doJSON(r, http.MethodPost, "/api/news/summarize", gin.H{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
