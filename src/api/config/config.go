package config

import (
	"os"
	"strings"
)

// Config is built once at process start and passed by reference into each
// service; business logic never reads the environment directly.
type Config struct {
	Port     string
	MySQLDSN string
	RedisURL string

	JWTSecret string

	SambaNovaKey  string
	OpenRouterKey string
	NewsAPIKey    string

	FrontendURL    string
	AllowedOrigins []string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() Config {
	frontend := getenv("FRONTEND_URL", "http://localhost:5173")

	origins := []string{"http://localhost:5173", "http://localhost:3000", "http://127.0.0.1:5173"}
	if extra := os.Getenv("ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	} else if frontend != "" {
		origins = append(origins, frontend)
	}

	return Config{
		Port:           getenv("PORT", "5000"),
		MySQLDSN:       getenv("MYSQL_DSN", "verity:verity@tcp(localhost:3306)/verityai?parseTime=true"),
		RedisURL:       os.Getenv("REDIS_URL"),
		JWTSecret:      getenv("JWT_SECRET", "newslens_super_secret_key_2026"),
		SambaNovaKey:   os.Getenv("SAMBANOVA_API_KEY"),
		OpenRouterKey:  os.Getenv("OPENROUTER_API_KEY"),
		NewsAPIKey:     os.Getenv("NEWS_API_KEY"),
		FrontendURL:    frontend,
		AllowedOrigins: origins,
	}
}
