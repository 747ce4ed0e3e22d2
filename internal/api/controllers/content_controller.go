package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"menfem/internal/models/request_models"
	"menfem/internal/services"
	"menfem/pkg/utils"
)

type ContentController struct {
	contentService services.ContentServiceInterface
	accessService  services.AccessServiceInterface
}

func NewContentController(
	contentService services.ContentServiceInterface,
	accessService services.AccessServiceInterface,
) *ContentController {
	return &ContentController{
		contentService: contentService,
		accessService:  accessService,
	}
}

// viewer resolves the optional authenticated account on public routes.
// Anonymous requests get an empty viewer, never an error.
func (cc *ContentController) viewer(c *gin.Context) (*services.Viewer, error) {
	var accountID *uuid.UUID
	if raw := c.GetString("user_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			accountID = &id
		}
	}
	return cc.accessService.ResolveViewer(c.Request.Context(), accountID)
}

// ListContent godoc
// @Summary List published content
// @Description Paginated, filterable list of published items. Premium items appear with locked=true for viewers without access.
// @Tags Content
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Items per page (max 100)"
// @Param kind query string false "article | video | course | product"
// @Param category query string false "Category slug"
// @Param tag query string false "Tag slug"
// @Param search query string false "Matches title and summary"
// @Param orderBy query string false "createdAt | publishedAt | viewCount | title"
// @Param orderDirection query string false "asc | desc"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /content [get]
func (cc *ContentController) ListContent(c *gin.Context) {
	var q request_models.ContentListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	q.PublishedOnly = true

	viewer, err := cc.viewer(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	page, err := cc.contentService.ListContent(c.Request.Context(), q, viewer)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, page, "Content fetched successfully")
}

// GetContentBySlug godoc
// @Summary Get one content item by slug
// @Description Full item for viewers with access; premium items return a locked teaser without the body otherwise.
// @Tags Content
// @Produce json
// @Param slug path string true "Content slug"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /content/{slug} [get]
func (cc *ContentController) GetContentBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		utils.RespondError(c, http.StatusBadRequest, "Slug is required")
		return
	}

	viewer, err := cc.viewer(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	detail, err := cc.contentService.GetContentBySlug(c.Request.Context(), slug, viewer)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, detail, "Content fetched successfully")
}

// CreateContent godoc
// @Summary Create a content item
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.CreateContentRequest true "Content payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/content [post]
func (cc *ContentController) CreateContent(c *gin.Context) {
	var req request_models.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	id, err := cc.contentService.CreateContent(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": id}, "Content created successfully")
}

// UpdateContent godoc
// @Summary Update a content item
// @Description Slug changes are rejected once the item is published.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.UpdateContentRequest true "Content payload"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/content [put]
func (cc *ContentController) UpdateContent(c *gin.Context) {
	var req request_models.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := cc.contentService.UpdateContent(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Content updated successfully")
}

// PublishContent godoc
// @Summary Publish a content item
// @Tags Admin
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/content/{id}/publish [post]
func (cc *ContentController) PublishContent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid content ID")
		return
	}

	if err := cc.contentService.PublishContent(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Content published successfully")
}

// DeleteContent godoc
// @Summary Delete a content item
// @Description Items referenced by completed purchases cannot be deleted.
// @Tags Admin
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/content/{id} [delete]
func (cc *ContentController) DeleteContent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid content ID")
		return
	}

	if err := cc.contentService.DeleteContent(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Content deleted successfully")
}
