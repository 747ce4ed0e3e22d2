package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"menfem/internal/models/request_models"
	"menfem/internal/services"
	"menfem/pkg/utils"
)

type NewsletterController struct {
	newsletterService services.NewsletterServiceInterface
}

func NewNewsletterController(newsletterService services.NewsletterServiceInterface) *NewsletterController {
	return &NewsletterController{newsletterService: newsletterService}
}

// Subscribe godoc
// @Summary Subscribe to the newsletter
// @Description Sends a confirmation email; the subscription activates on confirm
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param request body request_models.SubscribeRequest true "Subscription payload"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /newsletter/subscribe [post]
func (n *NewsletterController) Subscribe(c *gin.Context) {
	var req request_models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := n.newsletterService.Subscribe(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Confirmation email sent")
}

// ConfirmSubscription godoc
// @Summary Confirm a newsletter subscription
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param request body request_models.ConfirmSubscriptionRequest true "Confirmation payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /newsletter/confirm [post]
func (n *NewsletterController) ConfirmSubscription(c *gin.Context) {
	var req request_models.ConfirmSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := n.newsletterService.ConfirmSubscription(c.Request.Context(), req.Token); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Subscription confirmed")
}

// Unsubscribe godoc
// @Summary Unsubscribe from the newsletter
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param request body request_models.UnsubscribeRequest true "Unsubscribe payload"
// @Success 200 {object} utils.APIResponse
// @Router /newsletter/unsubscribe [post]
func (n *NewsletterController) Unsubscribe(c *gin.Context) {
	var req request_models.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := n.newsletterService.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Unsubscribed successfully")
}

// PreviewDigest godoc
// @Summary Preview the next digest issue
// @Description Selection only; nothing is sent or recorded
// @Tags Admin
// @Produce json
// @Param reference_date query string false "RFC3339 reference date, defaults to now"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/newsletter/digest/preview [get]
func (n *NewsletterController) PreviewDigest(c *gin.Context) {
	ref, ok := parseReferenceDate(c, c.Query("reference_date"))
	if !ok {
		return
	}

	digest, err := n.newsletterService.SelectDigest(c.Request.Context(), ref)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, digest, "Digest selected successfully")
}

// SendDigest godoc
// @Summary Send the next digest issue
// @Description Selects, renders and delivers one issue, then records the items sent
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.SendDigestRequest true "Send payload"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/newsletter/digest/send [post]
func (n *NewsletterController) SendDigest(c *gin.Context) {
	var req request_models.SendDigestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	ref, ok := parseReferenceDate(c, req.ReferenceDate)
	if !ok {
		return
	}

	report, err := n.newsletterService.SendDigest(c.Request.Context(), ref)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Digest sent successfully")
}

func parseReferenceDate(c *gin.Context, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Now().UTC(), true
	}
	ref, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "reference_date must be RFC3339")
		return time.Time{}, false
	}
	return ref, true
}
