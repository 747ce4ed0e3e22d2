package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"menfem/internal/models/request_models"
	"menfem/internal/services"
	"menfem/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentService
}

func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// ListPlans godoc
// @Summary List active subscription plans
// @Tags Payments
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /plans [get]
func (p *PaymentController) ListPlans(c *gin.Context) {
	plans, err := p.paymentService.ListPlans(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}

// CreatePlanCheckout godoc
// @Summary Start a subscription checkout
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreatePlanCheckoutRequest true "Plan checkout payload"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/checkout/plan [post]
func (p *PaymentController) CreatePlanCheckout(c *gin.Context) {
	var req request_models.CreatePlanCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	accountID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	resp, err := p.paymentService.CreateCheckoutForPlan(c.Request.Context(), accountID, req.PlanCode)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Checkout created successfully")
}

// CreateContentCheckout godoc
// @Summary Start a one-off purchase of a premium item
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreateContentCheckoutRequest true "Content checkout payload"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/checkout/content [post]
func (p *PaymentController) CreateContentCheckout(c *gin.Context) {
	var req request_models.CreateContentCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	accountID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	contentID, err := uuid.Parse(req.ContentID)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid content ID")
		return
	}

	resp, err := p.paymentService.CreateCheckoutForContent(c.Request.Context(), accountID, contentID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Checkout created successfully")
}

// HandleWebhook godoc
// @Summary Payment provider webhook
// @Description Verified and idempotent; retries of a processed order are acknowledged without side effects
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /payments/webhook [post]
func (p *PaymentController) HandleWebhook(c *gin.Context) {
	p.paymentService.HandleWebhook(c)
}
