package accent

import (
	"context"

	"github.com/WadiaaTouhami/EngAccent-detection/internal/models"
)

// Provider classifies the English accent spoken in a prepared WAV file.
// Callers gate on language identification first; feeding non-English audio in
// produces meaningless labels.
type Provider interface {
	EnsureReady(ctx context.Context) error
	Classify(ctx context.Context, audioPath string) (models.AccentResult, error)
	Close() error
}
