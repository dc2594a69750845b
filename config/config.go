package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries every runtime setting for the service. Values are read from
// the environment once at startup and handed to constructors explicitly; a
// missing variable falls back to the documented default.
type Config struct {
	Port string

	// TempDir is the parent directory for per-request workspaces; empty
	// means the OS temp directory.
	TempDir string

	DownloadTimeout time.Duration
	MaxVideoBytes   int64

	FFmpegBin string

	WhisperBin       string
	WhisperModelSize string
	ModelCacheDir    string

	// AccentEndpoint overrides the hosted inference URL; empty keeps the
	// default model endpoint.
	AccentEndpoint string
	AccentToken    string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:             envOr("PORT", "8080"),
		TempDir:          os.Getenv("TEMP_DIR"),
		FFmpegBin:        envOr("FFMPEG_BIN", "ffmpeg"),
		WhisperBin:       envOr("WHISPER_BIN", "whisper-cli"),
		WhisperModelSize: envOr("WHISPER_MODEL_SIZE", "base"),
		ModelCacheDir:    envOr("MODEL_CACHE_DIR", "model_cache"),
		AccentEndpoint:   os.Getenv("ACCENT_ENDPOINT"),
		AccentToken:      os.Getenv("HF_API_TOKEN"),
	}

	timeoutSec, err := envPositiveInt("DOWNLOAD_TIMEOUT_SECONDS", 60)
	if err != nil {
		return nil, err
	}
	cfg.DownloadTimeout = time.Duration(timeoutSec) * time.Second

	maxMB, err := envPositiveInt("MAX_VIDEO_MB", 512)
	if err != nil {
		return nil, err
	}
	cfg.MaxVideoBytes = int64(maxMB) << 20

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envPositiveInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, n)
	}
	return n, nil
}
