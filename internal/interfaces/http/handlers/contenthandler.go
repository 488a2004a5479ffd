package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	contentApp "loreforge/internal/application/content"
	"loreforge/internal/shared/logger"
	"loreforge/internal/shared/utils"
)

// ContentHandler serves stored generation records.
type ContentHandler struct {
	service *contentApp.Service
	logger  logger.Interface
}

func NewContentHandler(service *contentApp.Service, log logger.Interface) *ContentHandler {
	return &ContentHandler{
		service: service,
		logger:  log,
	}
}

// List returns record summaries, newest first.
func (h *ContentHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	status := c.Query("status")

	items, total, err := h.service.List(c.Request.Context(), status, page, pageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, items, total, page, pageSize)
}

// Get returns one record without its image blobs.
func (h *ContentHandler) Get(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", record)
}

// GetHTML returns the record's prose rendered as sanitized HTML.
func (h *ContentHandler) GetHTML(c *gin.Context) {
	rendered, err := h.service.RenderHTML(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(rendered))
}

// GetImage serves the full-size stored image blob.
func (h *ContentHandler) GetImage(c *gin.Context) {
	payload, err := h.service.GetImage(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, payload.ContentType, payload.Data)
}

// GetThumbnail serves the stored 150x150 thumbnail.
func (h *ContentHandler) GetThumbnail(c *gin.Context) {
	payload, err := h.service.GetThumbnail(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, payload.ContentType, payload.Data)
}
