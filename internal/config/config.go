package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration for the server. Everything comes
// from the environment; nothing in the pipeline reads ambient globals.
type Config struct {
	ProjectID      string
	VertexAIRegion string
	GeminiModel    string
	MediaBucket    string
	JWTSecret      string
	Port           string
	EventSinkURL   string
	MaxUploadBytes int64
	CORSOrigins    []string
}

// GetEnv is a helper to read an environment variable or return a default value.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Load reads and validates all necessary environment variables.
func Load() (*Config, error) {
	projectID := GetEnv("PROJECT_ID", "")
	if projectID == "" {
		return nil, fmt.Errorf("PROJECT_ID environment variable must be set")
	}
	mediaBucket := GetEnv("MEDIA_BUCKET", "")
	if mediaBucket == "" {
		return nil, fmt.Errorf("MEDIA_BUCKET environment variable must be set")
	}
	jwtSecret := GetEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable must be set")
	}

	maxUpload := int64(50 << 20)
	if raw := GetEnv("MAX_UPLOAD_BYTES", ""); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be a positive integer, got %q", raw)
		}
		maxUpload = parsed
	}

	return &Config{
		ProjectID:      projectID,
		VertexAIRegion: GetEnv("VERTEX_AI_REGION", "us-central1"),
		GeminiModel:    GetEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		MediaBucket:    mediaBucket,
		JWTSecret:      jwtSecret,
		Port:           GetEnv("PORT", "8080"),
		EventSinkURL:   GetEnv("EVENT_SINK_URL", ""),
		MaxUploadBytes: maxUpload,
		CORSOrigins:    strings.Split(GetEnv("CORS_ORIGINS", "*"), ","),
	}, nil
}
