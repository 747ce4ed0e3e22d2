package response_models

type LoginResponse struct {
	Token      string `json:"token"`
	HasPremium bool   `json:"has_premium"`
}

type AccountResponse struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	Username      *string `json:"username,omitempty"`
	Name          string  `json:"name,omitempty"`
	EmailVerified bool    `json:"email_verified"`
	Role          string  `json:"role"`
}
