package response_models

type EventResponse struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	StartsAt    int64  `json:"starts_at"`
	EndsAt      *int64 `json:"ends_at,omitempty"`
	Capacity    int    `json:"capacity"`
	RSVPCount   int64  `json:"rsvp_count"`
	SpotsLeft   *int64 `json:"spots_left,omitempty"` // nil when capacity is unlimited
}
