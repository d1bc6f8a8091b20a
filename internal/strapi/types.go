package strapi

import "github.com/bunnybot/storefront-api/pkg/types"

// Record shapes follow the content service's flattened v5 responses. The
// service historically also emitted nested attribute envelopes; the client
// normalizes to these canonical shapes so nothing downstream branches on
// schema version.

type Response[T any] struct {
	Data T    `json:"data"`
	Meta Meta `json:"meta"`
}

type Meta struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination is the shared page-window shape; the storefront re-emits it
// in its own list responses unchanged.
type Pagination = types.Pagination

type MediaItem struct {
	ID              int     `json:"id"`
	DocumentID      string  `json:"documentId,omitempty"`
	URL             string  `json:"url"`
	Width           int     `json:"width,omitempty"`
	Height          int     `json:"height,omitempty"`
	AlternativeText *string `json:"alternativeText,omitempty"`
}

type Category struct {
	ID         int         `json:"id"`
	DocumentID string      `json:"documentId,omitempty"`
	Name       string      `json:"name"`
	Slug       string      `json:"slug"`
	Icon       []MediaItem `json:"icon,omitempty"`
	Parent     *Category   `json:"parent,omitempty"`
	Sort       int         `json:"sort"`
}

type Product struct {
	ID              int               `json:"id"`
	DocumentID      string            `json:"documentId,omitempty"`
	Name            string            `json:"name"`
	Slug            string            `json:"slug"`
	Description     string            `json:"description"`
	Images          []MediaItem       `json:"images,omitempty"`
	Category        *Category         `json:"category,omitempty"`
	MedusaProductID string            `json:"medusa_product_id,omitempty"`
	Specs           map[string]string `json:"specs,omitempty"`
	SEOTitle        *string           `json:"seo_title,omitempty"`
	SEODescription  *string           `json:"seo_description,omitempty"`
	Featured        bool              `json:"featured"`
	CreatedAt       string            `json:"createdAt,omitempty"`
	UpdatedAt       string            `json:"updatedAt,omitempty"`
}

type Banner struct {
	ID     int         `json:"id"`
	Title  string      `json:"title"`
	Image  []MediaItem `json:"image,omitempty"`
	Link   *string     `json:"link,omitempty"`
	Sort   int         `json:"sort"`
	Active bool        `json:"active"`
}

// NewsCategory is one of "company", "industry" or "product".
type NewsCategory = string

type News struct {
	ID          int          `json:"id"`
	DocumentID  string       `json:"documentId,omitempty"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Content     string       `json:"content"`
	Cover       []MediaItem  `json:"cover,omitempty"`
	PublishDate string       `json:"publishDate"`
	Category    NewsCategory `json:"category"`
}

type Page struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	Slug           string  `json:"slug"`
	Content        string  `json:"content"`
	SEOTitle       *string `json:"seo_title,omitempty"`
	SEODescription *string `json:"seo_description,omitempty"`
}

// ContactPayload is the shape persisted by the content service for a
// storefront contact submission.
type ContactPayload struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Email   string  `json:"email"`
	Company *string `json:"company,omitempty"`
	Message string  `json:"message"`
}

// ProductQuery narrows the product listing.
type ProductQuery struct {
	Category string
	Featured bool
	Page     int
	PageSize int
}

// NewsQuery narrows the news listing.
type NewsQuery struct {
	Category string
	Page     int
	PageSize int
}
