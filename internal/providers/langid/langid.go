package langid

import (
	"context"

	"github.com/WadiaaTouhami/EngAccent-detection/internal/models"
)

// Provider identifies the spoken language of a prepared mono 16 kHz WAV file.
type Provider interface {
	// EnsureReady makes the provider usable, downloading model weights if
	// they are not cached yet. Safe to call concurrently; only one caller
	// performs the download while the rest wait.
	EnsureReady(ctx context.Context) error
	Identify(ctx context.Context, audioPath string) (models.LanguageResult, error)
	Close() error
}
