package request_models

import "github.com/google/uuid"

type CreateContentRequest struct {
	Kind       string   `json:"kind" binding:"required"`
	Slug       string   `json:"slug"`
	Title      string   `json:"title" binding:"required"`
	Summary    string   `json:"summary"`
	Body       string   `json:"body"`
	CoverImage string   `json:"cover_image"`
	IsPremium  bool     `json:"is_premium"`
	PriceMinor int64    `json:"price_minor"`
	Currency   string   `json:"currency"`
	CategoryID *string  `json:"category_id"`
	TagSlugs   []string `json:"tag_slugs"`
}

type UpdateContentRequest struct {
	ID         uuid.UUID `json:"id" binding:"required"`
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	Body       string    `json:"body"`
	CoverImage string    `json:"cover_image"`
	IsPremium  bool      `json:"is_premium"`
	PriceMinor int64     `json:"price_minor"`
	Currency   string    `json:"currency"`
	CategoryID *string   `json:"category_id"`
	TagSlugs   []string  `json:"tag_slugs"`
}

type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	Position int    `json:"position"`
}

type CreateTagRequest struct {
	Name string `json:"name" binding:"required"`
}
