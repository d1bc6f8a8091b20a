// Package money formats minor-unit integer amounts for display.
// All arithmetic in the storefront stays in minor units; decimals only
// appear at the rendering edge.
package money

import "github.com/shopspring/decimal"

const minorUnitsPerYuan = 100

// FormatCNY renders a minor-unit amount as a yuan string, e.g. 1250 -> "¥12.50".
func FormatCNY(amount int64) string {
	return "¥" + decimal.NewFromInt(amount).
		Div(decimal.NewFromInt(minorUnitsPerYuan)).
		StringFixed(2)
}

// FormatMinor renders a minor-unit amount in the given currency's major unit
// with two decimal places and no symbol.
func FormatMinor(amount int64) string {
	return decimal.NewFromInt(amount).
		Div(decimal.NewFromInt(minorUnitsPerYuan)).
		StringFixed(2)
}
