package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogApp "loreforge/internal/application/catalog"
	"loreforge/internal/shared/logger"
	"loreforge/internal/shared/utils"
)

// CatalogHandler serves the public catalog and the administrative CRUD over
// categories and parameters.
type CatalogHandler struct {
	service *catalogApp.Service
	logger  logger.Interface
}

func NewCatalogHandler(service *catalogApp.Service, log logger.Interface) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  log,
	}
}

// GetCatalog returns the visible categories with their parameters.
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	catalog, err := h.service.GetCatalog(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", catalog)
}

// ListCategories returns every category, hidden ones included.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", categories)
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, err := h.service.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", category)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req catalogApp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var req catalogApp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	category, err := h.service.UpdateCategory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Category updated", category)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.service.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// ListParameters returns a category's parameters.
func (h *CatalogHandler) ListParameters(c *gin.Context) {
	parameters, err := h.service.ListParameters(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", parameters)
}

func (h *CatalogHandler) GetParameter(c *gin.Context) {
	parameter, err := h.service.GetParameter(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", parameter)
}

func (h *CatalogHandler) CreateParameter(c *gin.Context) {
	var req catalogApp.CreateParameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	parameter, err := h.service.CreateParameter(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, parameter)
}

func (h *CatalogHandler) UpdateParameter(c *gin.Context) {
	var req catalogApp.UpdateParameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	parameter, err := h.service.UpdateParameter(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Parameter updated", parameter)
}

func (h *CatalogHandler) DeleteParameter(c *gin.Context) {
	if err := h.service.DeleteParameter(c.Request.Context(), c.Param("id")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
