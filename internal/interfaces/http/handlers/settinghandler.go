package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	settingApp "loreforge/internal/application/setting"
	"loreforge/internal/shared/logger"
	"loreforge/internal/shared/utils"
)

// SettingHandler serves the administrative settings endpoints.
type SettingHandler struct {
	service *settingApp.Service
	logger  logger.Interface
}

func NewSettingHandler(service *settingApp.Service, log logger.Interface) *SettingHandler {
	return &SettingHandler{
		service: service,
		logger:  log,
	}
}

// List returns every stored setting with decoded values.
func (h *SettingHandler) List(c *gin.Context) {
	settings, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", settings)
}

// Get returns one setting by key.
func (h *SettingHandler) Get(c *gin.Context) {
	entry, err := h.service.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", entry)
}

// Update upserts one setting.
func (h *SettingHandler) Update(c *gin.Context) {
	var req settingApp.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	entry, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Setting updated", entry)
}
