package utils

import "github.com/shopspring/decimal"

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "£"

// FormatMoney renders an amount with two decimals, e.g. £129.99.
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + CurrencySymbol + d.Neg().StringFixed(2)
	}
	return CurrencySymbol + d.StringFixed(2)
}
