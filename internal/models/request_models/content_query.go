package request_models

// ContentListQuery is the generic list contract shared by every content kind.
// Filters combine with AND. OrderBy is matched against an allow-list in the
// repository; anything unknown falls back to publishedAt. Callers must not
// rely on that fallback for validation.
type ContentListQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`

	Search       string `form:"search"`
	Kind         string `form:"kind"`
	CategorySlug string `form:"category"`
	TagSlug      string `form:"tag"`

	OrderBy        string `form:"orderBy"`        // createdAt | publishedAt | viewCount | title
	OrderDirection string `form:"orderDirection"` // asc | desc

	PublishedOnly bool
}

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// WithDefaults fills unset paging fields. Validation of out-of-bounds values
// stays in the service so malformed input never reaches the repository.
func (q ContentListQuery) WithDefaults() ContentListQuery {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	if q.OrderDirection == "" {
		q.OrderDirection = "desc"
	}
	return q
}
