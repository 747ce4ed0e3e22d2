package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"menfem/internal/models/request_models"
	"menfem/internal/services"
	"menfem/pkg/utils"
)

type TaxonomyController struct {
	taxonomyService services.TaxonomyServiceInterface
}

func NewTaxonomyController(taxonomyService services.TaxonomyServiceInterface) *TaxonomyController {
	return &TaxonomyController{taxonomyService: taxonomyService}
}

// ListCategories godoc
// @Summary List categories
// @Tags Taxonomy
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /categories [get]
func (t *TaxonomyController) ListCategories(c *gin.Context) {
	categories, err := t.taxonomyService.ListCategories(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, categories, "Categories fetched successfully")
}

// CreateCategory godoc
// @Summary Create a category
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.CreateCategoryRequest true "Category payload"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/categories [post]
func (t *TaxonomyController) CreateCategory(c *gin.Context) {
	var req request_models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	id, err := t.taxonomyService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"id": id}, "Category created successfully")
}

// DeleteCategory godoc
// @Summary Delete a category
// @Tags Admin
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/categories/{id} [delete]
func (t *TaxonomyController) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if err := t.taxonomyService.DeleteCategory(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Category deleted successfully")
}

// ListTags godoc
// @Summary List tags
// @Tags Taxonomy
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Items per page"
// @Success 200 {object} utils.APIResponse
// @Router /tags [get]
func (t *TaxonomyController) ListTags(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "50"))

	tags, err := t.taxonomyService.ListTags(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, tags, "Tags fetched successfully")
}

// CreateTag godoc
// @Summary Create a tag
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.CreateTagRequest true "Tag payload"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/tags [post]
func (t *TaxonomyController) CreateTag(c *gin.Context) {
	var req request_models.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	id, err := t.taxonomyService.CreateTag(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"id": id}, "Tag created successfully")
}

// DeleteTag godoc
// @Summary Delete a tag
// @Tags Admin
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/tags/{id} [delete]
func (t *TaxonomyController) DeleteTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid tag ID")
		return
	}

	if err := t.taxonomyService.DeleteTag(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Tag deleted successfully")
}
