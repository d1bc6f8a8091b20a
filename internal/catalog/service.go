package catalog

import (
	"context"
	"fmt"

	"github.com/bunnybot/storefront-api/internal/medusa"
	"github.com/bunnybot/storefront-api/internal/strapi"
	pkgerrors "github.com/bunnybot/storefront-api/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// DefaultCurrency is the storefront's display currency.
const DefaultCurrency = "cny"

// commerceLookups caps concurrent commerce-service fetches per listing.
const commerceLookups = 4

type contentLoader interface {
	GetProducts(ctx context.Context, params strapi.ProductQuery) ([]strapi.Product, strapi.Pagination, error)
	GetProductBySlug(ctx context.Context, slug string) (*strapi.Product, error)
	GetCategories(ctx context.Context) ([]strapi.Category, error)
	ResolveMediaURL(raw string) string
}

type commerceLoader interface {
	GetProductByID(ctx context.Context, id string) (*medusa.Product, error)
}

// CombinedProduct joins the content record with commerce-derived pricing
// and availability.
type CombinedProduct struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Images      []string          `json:"images"`
	Category    *CategoryRef      `json:"category"`
	Specs       map[string]string `json:"specs,omitempty"`
	Featured    bool              `json:"featured"`

	MedusaID         string           `json:"medusaId,omitempty"`
	Price            *int64           `json:"price"`
	InStock          bool             `json:"inStock"`
	DefaultVariantID string           `json:"defaultVariantId,omitempty"`
	Variants         []medusa.Variant `json:"variants,omitempty"`
}

type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProductCard is the compact listing shape.
type ProductCard struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Image    string `json:"image,omitempty"`
	Category string `json:"category,omitempty"`
	Price    *int64 `json:"price"`
	InStock  bool   `json:"inStock"`
}

// ProductList is one page of product cards.
type ProductList struct {
	Products   []ProductCard     `json:"products"`
	Pagination strapi.Pagination `json:"pagination"`
}

// Service assembles storefront product views from the two backends.
type Service interface {
	ListProducts(ctx context.Context, params strapi.ProductQuery) (*ProductList, error)
	GetProduct(ctx context.Context, slug string) (*CombinedProduct, error)
	ListCategories(ctx context.Context) ([]strapi.Category, error)
}

type service struct {
	content  contentLoader
	commerce commerceLoader
}

// NewService builds a catalog service over the two backend clients.
func NewService(content contentLoader, commerce commerceLoader) (Service, error) {
	if content == nil {
		return nil, fmt.Errorf("content client required")
	}
	if commerce == nil {
		return nil, fmt.Errorf("commerce client required")
	}
	return &service{content: content, commerce: commerce}, nil
}

// ListProducts returns one listing page. Commerce lookups run concurrently;
// a product whose commerce record is missing still lists, shown without a
// price and assumed in stock (the detail page settles it).
func (s *service) ListProducts(ctx context.Context, params strapi.ProductQuery) (*ProductList, error) {
	products, pagination, err := s.content.GetProducts(ctx, params)
	if err != nil {
		return nil, err
	}

	cards := make([]ProductCard, len(products))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(commerceLookups)

	for i := range products {
		i := i
		group.Go(func() error {
			cards[i] = s.buildCard(groupCtx, products[i])
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return &ProductList{Products: cards, Pagination: pagination}, nil
}

// GetProduct returns the combined detail view for one product slug.
func (s *service) GetProduct(ctx context.Context, slug string) (*CombinedProduct, error) {
	record, err := s.content.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	combined := &CombinedProduct{
		ID:          record.ID,
		Name:        record.Name,
		Slug:        record.Slug,
		Description: record.Description,
		Images:      s.resolveImages(record.Images),
		Specs:       record.Specs,
		Featured:    record.Featured,
		InStock:     true,
	}
	if record.Category != nil {
		combined.Category = &CategoryRef{
			ID:   record.Category.ID,
			Name: record.Category.Name,
			Slug: record.Category.Slug,
		}
	}

	if record.MedusaProductID == "" {
		return combined, nil
	}
	combined.MedusaID = record.MedusaProductID

	commerce, err := s.commerce.GetProductByID(ctx, record.MedusaProductID)
	if err != nil {
		// A dangling commerce reference degrades the view instead of
		// failing the page; a dead backend still surfaces.
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return combined, nil
		}
		return nil, err
	}

	combined.InStock = InStock(*commerce)
	if amount, ok := LowestPrice(*commerce, DefaultCurrency); ok {
		combined.Price = &amount
	}
	combined.Variants = commerce.Variants
	if len(commerce.Variants) > 0 {
		combined.DefaultVariantID = commerce.Variants[0].ID
	}
	return combined, nil
}

// ListCategories passes the content service's category tree through.
func (s *service) ListCategories(ctx context.Context) ([]strapi.Category, error) {
	return s.content.GetCategories(ctx)
}

func (s *service) buildCard(ctx context.Context, record strapi.Product) ProductCard {
	card := ProductCard{
		ID:      record.ID,
		Name:    record.Name,
		Slug:    record.Slug,
		InStock: true,
	}
	if len(record.Images) > 0 {
		card.Image = s.content.ResolveMediaURL(record.Images[0].URL)
	}
	if record.Category != nil {
		card.Category = record.Category.Name
	}
	if record.MedusaProductID == "" {
		return card
	}

	commerce, err := s.commerce.GetProductByID(ctx, record.MedusaProductID)
	if err != nil || commerce == nil {
		return card
	}
	card.InStock = InStock(*commerce)
	if amount, ok := LowestPrice(*commerce, DefaultCurrency); ok {
		card.Price = &amount
	}
	return card
}

func (s *service) resolveImages(items []strapi.MediaItem) []string {
	urls := make([]string, 0, len(items))
	for _, item := range items {
		if resolved := s.content.ResolveMediaURL(item.URL); resolved != "" {
			urls = append(urls, resolved)
		}
	}
	return urls
}
