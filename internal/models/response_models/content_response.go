package response_models

type CategoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Position int    `json:"position"`
}

type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ContentResponse is the flat list-item DTO. Locked is true when the item is
// premium and the viewer has no subscription or purchase covering it.
type ContentResponse struct {
	ID          string            `json:"id"`
	Kind        string            `json:"kind"`
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	Summary     string            `json:"summary,omitempty"`
	CoverImage  string            `json:"cover_image,omitempty"`
	IsPremium   bool              `json:"is_premium"`
	Locked      bool              `json:"locked"`
	PublishedAt int64             `json:"published_at,omitempty"`
	ViewCount   int64             `json:"view_count"`
	PriceMinor  int64             `json:"price_minor,omitempty"`
	Currency    string            `json:"currency,omitempty"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Tags        []TagResponse     `json:"tags,omitempty"`
}

// ContentDetailResponse adds the body. Body is empty when Locked: the paywall
// teaser keeps the metadata and drops the content.
type ContentDetailResponse struct {
	ContentResponse
	Body string `json:"body,omitempty"`
}

type ContentPage struct {
	Items      []ContentResponse `json:"items"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	HasNext    bool              `json:"has_next"`
	HasPrev    bool              `json:"has_prev"`
}
