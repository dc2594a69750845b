package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/WadiaaTouhami/EngAccent-detection/internal/models"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/utils"
)

// FailureResponse is the JSON body for every non-200 API response.
type FailureResponse struct {
	Status             models.Status `json:"status"`
	Code               utils.Code    `json:"code"`
	Error              string        `json:"error"`
	VideoURL           string        `json:"video_url,omitempty"`
	Language           string        `json:"language,omitempty"`
	LanguageConfidence float64       `json:"language_confidence,omitempty"`
	Summary            string        `json:"summary,omitempty"`
}

// writeError responds with a failure body for errors raised before the
// pipeline ran, ex: malformed request bodies.
func writeError(c *gin.Context, err error) {
	writeFailure(c, err, nil)
}

// writeFailure maps the error taxonomy onto an HTTP status and serializes the
// failure body. Fields from a partial result are carried through when present,
// so a language mismatch still reports what language was heard.
func writeFailure(c *gin.Context, err error, result *models.ProcessingResult) {
	body := FailureResponse{
		Status: models.StatusFailure,
		Code:   utils.ErrCode(err),
		Error:  utils.ErrMessage(err),
	}
	if result != nil {
		body.VideoURL = result.VideoURL
		body.Language = result.Language
		body.LanguageConfidence = result.LanguageConfidence
		body.Summary = result.Summary
	}
	c.JSON(utils.HTTPStatus(err), body)
}
