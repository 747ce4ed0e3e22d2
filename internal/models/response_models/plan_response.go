package response_models

type PlanResponse struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Period     string `json:"period"` // month | year
	PriceMinor int64  `json:"price_minor"`
	Currency   string `json:"currency"`
	TrialDays  int32  `json:"trial_days"`
}
