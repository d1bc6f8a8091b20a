package catalog

import (
	"context"
	"testing"

	"github.com/bunnybot/storefront-api/internal/medusa"
	"github.com/bunnybot/storefront-api/internal/strapi"
	pkgerrors "github.com/bunnybot/storefront-api/pkg/errors"
)

type stubContent struct {
	products   []strapi.Product
	pagination strapi.Pagination
	bySlug     map[string]*strapi.Product
	categories []strapi.Category
	err        error
}

func (s *stubContent) GetProducts(ctx context.Context, params strapi.ProductQuery) ([]strapi.Product, strapi.Pagination, error) {
	if s.err != nil {
		return nil, strapi.Pagination{}, s.err
	}
	return s.products, s.pagination, nil
}

func (s *stubContent) GetProductBySlug(ctx context.Context, slug string) (*strapi.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	if product, ok := s.bySlug[slug]; ok {
		return product, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *stubContent) GetCategories(ctx context.Context) ([]strapi.Category, error) {
	return s.categories, s.err
}

func (s *stubContent) ResolveMediaURL(raw string) string {
	if raw == "" {
		return ""
	}
	return "https://cdn.test" + raw
}

type stubCommerce struct {
	byID map[string]*medusa.Product
	err  error
}

func (s *stubCommerce) GetProductByID(ctx context.Context, id string) (*medusa.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	if product, ok := s.byID[id]; ok {
		return product, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "commerce resource not found")
}

func TestGetProductCombinesBothBackends(t *testing.T) {
	t.Parallel()

	content := &stubContent{bySlug: map[string]*strapi.Product{
		"drill-x1": {
			ID:              7,
			Name:            "冲击钻 X1",
			Slug:            "drill-x1",
			Description:     "工业级冲击钻",
			Images:          []strapi.MediaItem{{URL: "/uploads/drill.jpg"}},
			Category:        &strapi.Category{ID: 2, Name: "电动工具", Slug: "power-tools"},
			MedusaProductID: "prod_01",
			Featured:        true,
		},
	}}
	commerce := &stubCommerce{byID: map[string]*medusa.Product{
		"prod_01": {
			ID: "prod_01",
			Variants: []medusa.Variant{
				{ID: "variant_01", InventoryQuantity: 3, Prices: []medusa.Price{{CurrencyCode: "cny", Amount: 19900}}},
				{ID: "variant_02", InventoryQuantity: 0, Prices: []medusa.Price{{CurrencyCode: "cny", Amount: 17900}}},
			},
		},
	}}

	svc, err := NewService(content, commerce)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	combined, err := svc.GetProduct(context.Background(), "drill-x1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if combined.Name != "冲击钻 X1" || !combined.Featured {
		t.Fatalf("content fields lost: %+v", combined)
	}
	if combined.Price == nil || *combined.Price != 17900 {
		t.Fatalf("expected lowest price 17900, got %v", combined.Price)
	}
	if !combined.InStock {
		t.Fatal("expected in stock")
	}
	if combined.DefaultVariantID != "variant_01" {
		t.Fatalf("expected first variant as default, got %q", combined.DefaultVariantID)
	}
	if len(combined.Images) != 1 || combined.Images[0] != "https://cdn.test/uploads/drill.jpg" {
		t.Fatalf("image urls not resolved: %v", combined.Images)
	}
}

func TestGetProductDanglingCommerceReferenceDegrades(t *testing.T) {
	t.Parallel()

	content := &stubContent{bySlug: map[string]*strapi.Product{
		"saw-s2": {ID: 8, Name: "手锯 S2", Slug: "saw-s2", MedusaProductID: "prod_gone"},
	}}
	svc, _ := NewService(content, &stubCommerce{})

	combined, err := svc.GetProduct(context.Background(), "saw-s2")
	if err != nil {
		t.Fatalf("missing commerce record should not fail the page: %v", err)
	}
	if combined.Price != nil {
		t.Fatalf("expected no price, got %v", *combined.Price)
	}
	if !combined.InStock {
		t.Fatal("unpriced product defaults to available")
	}
}

func TestGetProductWithoutCommerceLink(t *testing.T) {
	t.Parallel()

	content := &stubContent{bySlug: map[string]*strapi.Product{
		"catalog-only": {ID: 9, Name: "目录商品", Slug: "catalog-only"},
	}}
	commerce := &stubCommerce{err: pkgerrors.New(pkgerrors.CodeDependency, "should not be called")}
	svc, _ := NewService(content, commerce)

	combined, err := svc.GetProduct(context.Background(), "catalog-only")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if combined.MedusaID != "" || combined.Price != nil {
		t.Fatalf("unexpected commerce fields: %+v", combined)
	}
}

func TestListProductsBuildsCards(t *testing.T) {
	t.Parallel()

	content := &stubContent{
		products: []strapi.Product{
			{ID: 1, Name: "A", Slug: "a", MedusaProductID: "prod_a", Images: []strapi.MediaItem{{URL: "/uploads/a.jpg"}}},
			{ID: 2, Name: "B", Slug: "b"},
			{ID: 3, Name: "C", Slug: "c", MedusaProductID: "prod_missing"},
		},
		pagination: strapi.Pagination{Page: 1, PageCount: 1, Total: 3},
	}
	commerce := &stubCommerce{byID: map[string]*medusa.Product{
		"prod_a": {Variants: []medusa.Variant{
			{ID: "v1", InventoryQuantity: 0, Prices: []medusa.Price{{CurrencyCode: "cny", Amount: 5000}}},
		}},
	}}
	svc, _ := NewService(content, commerce)

	list, err := svc.ListProducts(context.Background(), strapi.ProductQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Products) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(list.Products))
	}

	first := list.Products[0]
	if first.Price == nil || *first.Price != 5000 {
		t.Fatalf("expected priced card, got %+v", first)
	}
	if first.InStock {
		t.Fatal("expected sold-out card when all variants empty")
	}
	if first.Image != "https://cdn.test/uploads/a.jpg" {
		t.Fatalf("image not resolved on card: %q", first.Image)
	}

	// Cards keep listing order regardless of concurrent assembly.
	if list.Products[0].ID != 1 || list.Products[1].ID != 2 || list.Products[2].ID != 3 {
		t.Fatalf("card order broken: %+v", list.Products)
	}
	if list.Products[2].Price != nil {
		t.Fatal("card with dangling commerce reference must be unpriced")
	}
}
