package models

import "math"

// Status is the terminal outcome of one processing request.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// ProcessingRequest is the body of a processing call. One request drives one
// full pipeline run; nothing about it is persisted.
type ProcessingRequest struct {
	VideoURL string `json:"video_url" binding:"required"`
}

// LanguageResult is the spoken-language identification outcome for one clip.
type LanguageResult struct {
	Code       string  // ISO 639-1, ex: "en"
	Confidence float64 // 0.0–1.0
}

// IsEnglish reports whether the clip passes the accent gate: English speech
// identified with confidence of at least threshold.
func (l LanguageResult) IsEnglish(threshold float64) bool {
	return l.Code == "en" && l.Confidence >= threshold
}

// AccentResult is the accent classification outcome for one English clip.
type AccentResult struct {
	Label      string  // one of the sixteen display labels
	Confidence float64 // 0.0–1.0
}

// Percentage is the user-facing confidence, rounded to one decimal place.
func (a AccentResult) Percentage() float64 {
	return ConfidencePercentage(a.Confidence)
}

// ProcessingResult is the flat outcome document for one request. It is built
// once by the processing service and returned to the caller as-is; on failure
// only the fields relevant to the failure stage are populated.
type ProcessingResult struct {
	Status                     Status  `json:"status"`
	VideoURL                   string  `json:"video_url"`
	Language                   string  `json:"language,omitempty"`
	LanguageConfidence         float64 `json:"language_confidence,omitempty"`
	Accent                     string  `json:"accent,omitempty"`
	AccentConfidence           float64 `json:"accent_confidence,omitempty"`
	AccentConfidencePercentage float64 `json:"accent_confidence_percentage,omitempty"`
	Summary                    string  `json:"summary,omitempty"`
	Message                    string  `json:"message,omitempty"`
}

// ConfidencePercentage converts a raw 0.0–1.0 confidence into a percentage
// rounded to one decimal place, matching what the summary line reports.
func ConfidencePercentage(confidence float64) float64 {
	return math.Round(confidence*1000) / 10
}
