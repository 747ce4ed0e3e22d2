package response_models

type SubscriptionResponse struct {
	Status   string `json:"status"`
	PlanCode string `json:"plan_code,omitempty"`
	StartsAt int64  `json:"starts_at"`
	EndsAt   int64  `json:"ends_at"`
}

// AccessResponse answers "does this account have blanket premium access".
type AccessResponse struct {
	HasAccess    bool                  `json:"has_access"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
}
