// Package handlers contains the gin handlers for the public and
// administrative API surface.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loreforge/internal/application/generation"
	"loreforge/internal/shared/logger"
	"loreforge/internal/shared/utils"
)

// GenerationHandler serves the generation endpoint.
type GenerationHandler struct {
	service *generation.Service
	logger  logger.Interface
}

func NewGenerationHandler(service *generation.Service, log logger.Interface) *GenerationHandler {
	return &GenerationHandler{
		service: service,
		logger:  log,
	}
}

// Generate runs one generation request. The pipeline is synchronous; the
// response carries the persisted record.
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req generation.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Type == "" {
		req.Type = generation.TypeCombined
	}

	record, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		h.logger.Warnw("generation request failed", "type", req.Type, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"id":                 record.ID(),
		"title":              record.Title(),
		"content":            record.FictionContent(),
		"word_count":         record.WordCount(),
		"status":             record.Status(),
		"has_image":          record.HasImage(),
		"generation_time_ms": record.GenerationTimeMS(),
		"metadata":           record.Metadata(),
	}, "Generation completed")
}
