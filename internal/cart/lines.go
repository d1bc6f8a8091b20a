package cart

import (
	"fmt"

	pkgerrors "github.com/bunnybot/storefront-api/pkg/errors"
)

// Line is one cart entry. Subtotal is derived state: every operation in this
// package re-establishes Subtotal == int64(Quantity) * UnitPrice.
type Line struct {
	ID           string `json:"id"`
	VariantID    string `json:"variantId"`
	ProductName  string `json:"productName"`
	VariantTitle string `json:"variantTitle"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	Quantity     int    `json:"quantity"`
	UnitPrice    int64  `json:"unitPrice"`
	Subtotal     int64  `json:"subtotal"`
}

// ItemCount returns the summed quantity across lines.
func ItemCount(lines []Line) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}

// Total returns the summed line totals in minor units. Integer arithmetic
// only; no floating point anywhere in cart math.
func Total(lines []Line) int64 {
	var total int64
	for _, line := range lines {
		total += line.UnitPrice * int64(line.Quantity)
	}
	return total
}

// AddItem merges the new line into an existing line with the same variant,
// or appends it. On merge the existing line's unit price is authoritative;
// the incoming price is discarded. The input slice is never mutated and
// untouched lines keep their positions.
func AddItem(lines []Line, newLine Line) []Line {
	result := make([]Line, len(lines))
	copy(result, lines)

	for i, line := range result {
		if line.VariantID == newLine.VariantID {
			line.Quantity += newLine.Quantity
			line.Subtotal = int64(line.Quantity) * line.UnitPrice
			result[i] = line
			return result
		}
	}

	newLine.Subtotal = int64(newLine.Quantity) * newLine.UnitPrice
	return append(result, newLine)
}

// UpdateQuantity replaces the quantity of the targeted line and recomputes
// its subtotal. A quantity below one is a caller error: removal is
// RemoveItem, never a zero-quantity update.
func UpdateQuantity(lines []Line, lineID string, quantity int) ([]Line, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	result := make([]Line, len(lines))
	copy(result, lines)

	for i, line := range result {
		if line.ID == lineID {
			line.Quantity = quantity
			line.Subtotal = int64(quantity) * line.UnitPrice
			result[i] = line
			return result, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("cart line %s not found", lineID))
}

// RemoveItem drops the targeted line, preserving the order of the rest.
// Removing an absent line is a no-op.
func RemoveItem(lines []Line, lineID string) []Line {
	result := make([]Line, 0, len(lines))
	for _, line := range lines {
		if line.ID != lineID {
			result = append(result, line)
		}
	}
	return result
}
