package webserver

import (
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	aicore "github.com/veritylabs/verityai/src/ai/core"
	_ "github.com/veritylabs/verityai/src/ai/providers"
	"github.com/veritylabs/verityai/src/api/config"
	"github.com/veritylabs/verityai/src/api/middleware"
	"github.com/veritylabs/verityai/src/news"
	"github.com/veritylabs/verityai/src/verifier"
)

const serviceVersion = "1.0.0"

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	gw := buildGateway(cfg)
	pipe := verifier.NewPipeline(gw, verifier.NewGormStore(db))

	classifier := news.NewClassifier(rand.New(rand.NewSource(time.Now().UnixNano())))
	feed := news.NewService(news.NewClient(cfg.NewsAPIKey, ""), classifier, rdb)

	authH := NewAuth(db, []byte(cfg.JWTSecret))
	analyzeH := NewAnalyze(pipe, gw)
	newsH := NewNews(feed, gw, cfg.NewsAPIKey != "")

	api := r.Group("/api")
	{
		api.GET("/health", health)

		api.POST("/auth/register", authH.Register)
		api.POST("/auth/login", authH.Login)
		api.GET("/auth/me", middleware.JWT([]byte(cfg.JWTSecret)), authH.Me)

		api.POST("/analyze", analyzeH.Analyze)
		api.GET("/analyze/history", analyzeH.History)
		api.POST("/analyze/deepfake", analyzeH.Deepfake)

		api.GET("/news", newsH.Feed)
		api.POST("/news/summarize", newsH.Summarize)
	}

	r.NoRoute(func(c *gin.Context) {
		respondErr(c, http.StatusNotFound, "Endpoint not found")
	})
}

// buildGateway constructs provider clients for whichever credentials are
// configured. Missing credentials leave the corresponding slot nil: the
// text path then degrades gracefully, the vision path fails loud.
func buildGateway(cfg config.Config) *verifier.Gateway {
	var text, vision aicore.Client

	if cfg.SambaNovaKey != "" {
		c, err := aicore.NewClient(aicore.FactoryConfig{
			Provider:     "sambanova",
			SambaNovaKey: cfg.SambaNovaKey,
		})
		if err != nil {
			log.Printf("[api] sambanova client unavailable: %v", err)
		} else {
			text = c
		}
	} else {
		log.Printf("[api] SAMBANOVA_API_KEY not set; text verification will return neutral fallbacks")
	}

	if cfg.OpenRouterKey != "" {
		c, err := aicore.NewClient(aicore.FactoryConfig{
			Provider:      "openrouter",
			OpenRouterKey: cfg.OpenRouterKey,
			Extra:         map[string]string{"referer": cfg.FrontendURL},
		})
		if err != nil {
			log.Printf("[api] openrouter client unavailable: %v", err)
		} else {
			vision = c
		}
	} else {
		log.Printf("[api] OPENROUTER_API_KEY not set; deepfake detection and summaries disabled")
	}

	return verifier.NewGateway(text, vision)
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"service":   "VerityAI",
		"version":   serviceVersion,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
