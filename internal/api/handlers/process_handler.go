package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WadiaaTouhami/EngAccent-detection/internal/models"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/services"
	"github.com/WadiaaTouhami/EngAccent-detection/internal/utils"
)

type ProcessHandler struct {
	svc services.ProcessService
}

func NewProcessHandler(svc services.ProcessService) *ProcessHandler {
	return &ProcessHandler{svc: svc}
}

// Process runs the full pipeline for the posted video URL and returns the
// result document, or a failure body with the matching HTTP status.
func (h *ProcessHandler) Process(c *gin.Context) {
	var req models.ProcessingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProcessHandler.Process", "video_url is required", err))
		return
	}

	result, err := h.svc.Process(c.Request.Context(), req.VideoURL)
	if err != nil {
		writeFailure(c, err, result)
		return
	}

	c.JSON(http.StatusOK, result)
}
