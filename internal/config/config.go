package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	AllowedOrigins []string
	DraftBaseURL   string
}

// Load reads an optional .env file, then the environment. Every field has a
// local-dev default so the server starts with no configuration at all.
func Load() Config {
	_ = godotenv.Load() // .env is optional

	cfg := Config{
		Addr: getenv("OVERLAY_ADDR", ":4000"),
		AllowedOrigins: splitOrigins(getenv("OVERLAY_ALLOWED_ORIGINS",
			"http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173,http://127.0.0.1:3000")),
		DraftBaseURL: getenv("AOE2CM_BASE_URL", ""),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
