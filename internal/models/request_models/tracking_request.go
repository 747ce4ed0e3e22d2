package request_models

// TrackEvent is one view event. The tracking endpoint accepts either a single
// object or a JSON array of them.
type TrackEvent struct {
	Slug string `json:"slug" binding:"required"`
}
