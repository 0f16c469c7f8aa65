package config

import (
	"fmt"
	"log"
	"os"
	"time"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env             string
	HTTPPort        string
	JWTIssuer       string
	JWTSigningKey   string
	SessionTTL      time.Duration
	GeminiBaseURL   string
	GeminiModel     string
	GeminiAPIKey    string
	GeminiTimeout   time.Duration
	GeminiSkip      bool
	NotifyBackend   string
	NotifyTTL       time.Duration
	RedisAddr       string
	RateLimitPerMin int
}

// Load returns application config populated from environment variables with
// sensible defaults. GEMINI_API_KEY may be absent; the insights call is still
// attempted and fails through the normal gateway error path.
func Load() App {
	return App{
		Env:             getEnv("APP_ENV", "dev"),
		HTTPPort:        getEnv("HTTP_PORT", "8082"),
		JWTIssuer:       getEnv("JWT_ISSUER", "library-desk"),
		JWTSigningKey:   getEnv("JWT_SIGNING_KEY", "dev-signing-secret-change"),
		SessionTTL:      durationEnv("SESSION_TTL", 12*time.Hour),
		GeminiBaseURL:   getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiTimeout:   durationEnv("GEMINI_TIMEOUT", 30*time.Second),
		GeminiSkip:      boolEnv("GEMINI_SKIP", false),
		NotifyBackend:   getEnv("NOTIFY_BACKEND", "memory"),
		NotifyTTL:       durationEnv("NOTIFY_TTL", 3*time.Second),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RateLimitPerMin: intEnv("RATE_LIMIT_PER_MIN", 120),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func boolEnv(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if val == "1" || val == "true" || val == "TRUE" {
			return true
		}
		if val == "0" || val == "false" || val == "FALSE" {
			return false
		}
		log.Printf("invalid bool for %s, using fallback %v", key, fallback)
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}
