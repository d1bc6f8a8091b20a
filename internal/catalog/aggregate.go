package catalog

import (
	"strings"

	"github.com/bunnybot/storefront-api/internal/medusa"
)

// InStock reports whether any variant has inventory available.
// A product with no variants is never in stock.
func InStock(product medusa.Product) bool {
	for _, variant := range product.Variants {
		if variant.InventoryQuantity > 0 {
			return true
		}
	}
	return false
}

// LowestPrice returns the lowest price for the requested currency across the
// product's variants, in minor units. Within a variant only the FIRST price
// entry matching the currency is eligible; later duplicates in the same
// currency are ignored. Variants without a matching entry do not participate.
// ok is false when no variant carries the currency at all.
func LowestPrice(product medusa.Product, currency string) (amount int64, ok bool) {
	currency = strings.ToLower(strings.TrimSpace(currency))
	for _, variant := range product.Variants {
		candidate, found := firstPriceIn(variant, currency)
		if !found {
			continue
		}
		if !ok || candidate < amount {
			amount = candidate
			ok = true
		}
	}
	return amount, ok
}

func firstPriceIn(variant medusa.Variant, currency string) (int64, bool) {
	for _, price := range variant.Prices {
		if strings.ToLower(price.CurrencyCode) == currency {
			return price.Amount, true
		}
	}
	return 0, false
}
