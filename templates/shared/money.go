package shared

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatMoney formats amount with two decimals and the currency symbol.
func FormatMoney(currency string, amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	switch currency {
	case "EUR":
		return "€" + s
	case "TRY":
		return "₺" + s
	case "USD":
		if amount.IsNegative() {
			return "-$" + amount.Abs().StringFixed(2)
		}
		return "$" + s
	default:
		return fmt.Sprintf("%s %s", s, currency)
	}
}
