package request_models

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ConfirmSubscriptionRequest struct {
	Token string `json:"token" binding:"required"`
}

type UnsubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendDigestRequest triggers a digest send. ReferenceDate is RFC3339 and
// defaults to now when empty.
type SendDigestRequest struct {
	ReferenceDate string `json:"reference_date"`
}
