package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfidencePercentage(t *testing.T) {
	tests := []struct {
		confidence float64
		want       float64
	}{
		{0.0, 0.0},
		{0.873, 87.3},
		{0.98, 98.0},
		{0.33333, 33.3},
		{1.0, 100.0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, ConfidencePercentage(tt.confidence), 0.0001,
			"confidence %v", tt.confidence)
	}
}

func TestLanguageResultIsEnglish(t *testing.T) {
	assert.True(t, LanguageResult{Code: "en", Confidence: 0.98}.IsEnglish(0.5))
	assert.True(t, LanguageResult{Code: "en", Confidence: 0.5}.IsEnglish(0.5))
	assert.False(t, LanguageResult{Code: "en", Confidence: 0.42}.IsEnglish(0.5))
	assert.False(t, LanguageResult{Code: "es", Confidence: 0.99}.IsEnglish(0.5))
}

func TestAccentResultPercentage(t *testing.T) {
	a := AccentResult{Label: "American", Confidence: 0.8734}
	assert.InDelta(t, 87.3, a.Percentage(), 0.0001)
}

func TestProcessingResultJSONShape(t *testing.T) {
	res := ProcessingResult{
		Status:                     StatusSuccess,
		VideoURL:                   "https://example.com/clip.mp4",
		Language:                   "en",
		LanguageConfidence:         0.98,
		Accent:                     "American",
		AccentConfidence:           0.873,
		AccentConfidencePercentage: 87.3,
		Summary:                    "Detected American accent with 87.3% confidence",
		Message:                    "Processing completed successfully",
	}

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "success", doc["status"])
	assert.Equal(t, "https://example.com/clip.mp4", doc["video_url"])
	assert.Equal(t, "en", doc["language"])
	assert.Equal(t, "American", doc["accent"])
	assert.InDelta(t, 87.3, doc["accent_confidence_percentage"].(float64), 0.0001)
	assert.Contains(t, doc["summary"], "American")
}

func TestProcessingResultJSONOmitsUnsetStages(t *testing.T) {
	res := ProcessingResult{
		Status:   StatusFailure,
		VideoURL: "https://example.com/clip.mp4",
		Message:  "video download failed",
	}

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.NotContains(t, doc, "language")
	assert.NotContains(t, doc, "accent")
	assert.NotContains(t, doc, "accent_confidence_percentage")
	assert.NotContains(t, doc, "summary")
}

func TestIsAccentLabel(t *testing.T) {
	for _, label := range AccentLabels {
		assert.True(t, IsAccentLabel(label), "label %q", label)
	}
	assert.Len(t, AccentLabels, 16)
	assert.False(t, IsAccentLabel("Martian"))
	assert.False(t, IsAccentLabel("american"))
}
