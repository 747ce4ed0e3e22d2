package request_models

type CreatePlanCheckoutRequest struct {
	PlanCode string `json:"plan_code" binding:"required"`
}

type CreateContentCheckoutRequest struct {
	ContentID string `json:"content_id" binding:"required"`
}
