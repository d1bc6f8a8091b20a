package catalog

import "github.com/bunnybot/storefront-api/internal/strapi"

// FilterProductsByCategory returns the products whose category slug equals
// the target, preserving input order. An unknown slug yields an empty set.
func FilterProductsByCategory(products []strapi.Product, categorySlug string) []strapi.Product {
	filtered := make([]strapi.Product, 0, len(products))
	for _, product := range products {
		if product.Category != nil && product.Category.Slug == categorySlug {
			filtered = append(filtered, product)
		}
	}
	return filtered
}
