package config

import (
	"os"
	"strconv"
)

// Config holds the environment-driven settings. Values are read once at
// startup, after godotenv has loaded any .env file.
type Config struct {
	Port        string
	MaxUploadMB int
	UploadDir   string

	Provider      string
	Model         string
	FallbackModel string
}

const (
	DefaultPort          = "8787"
	DefaultMaxUploadMB   = 16
	DefaultUploadDir     = "uploads"
	DefaultProvider      = "huggingface"
	DefaultModel         = "umm-maybe/AI-image-detector"
	DefaultFallbackModel = "Organika/sdxl-detector"
)

// Load reads configuration from the environment, falling back to
// defaults for anything unset.
func Load() *Config {
	cfg := &Config{
		Port:          getEnv("IMAGESLEUTH_PORT", DefaultPort),
		MaxUploadMB:   getEnvInt("IMAGESLEUTH_MAX_UPLOAD_MB", DefaultMaxUploadMB),
		UploadDir:     getEnv("IMAGESLEUTH_UPLOAD_DIR", DefaultUploadDir),
		Provider:      getEnv("DETECTOR_PROVIDER", DefaultProvider),
		Model:         getEnv("DETECTOR_MODEL", DefaultModel),
		FallbackModel: getEnv("DETECTOR_FALLBACK_MODEL", DefaultFallbackModel),
	}
	return cfg
}

// MaxUploadBytes returns the upload cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1024 * 1024
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
