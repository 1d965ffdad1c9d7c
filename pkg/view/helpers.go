package view

import (
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"pehlione.com/admin/templates/shared"
)

const (
	DateTimeLayout = "2006-01-02 15:04"
	Currency       = "USD"
)

// Money formats an amount in the store currency, e.g. 12.5 -> "$12.50".
func Money(d decimal.Decimal) string {
	return shared.FormatMoney(Currency, d)
}

func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateTimeLayout)
}

// ListURL builds an /admin/orders link that keeps the list position. Empty
// values are left out.
func ListURL(page int, status, q string, extra ...string) string {
	v := url.Values{}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if status != "" && status != "all" {
		v.Set("status", status)
	}
	if q != "" {
		v.Set("q", q)
	}
	for i := 0; i+1 < len(extra); i += 2 {
		if extra[i+1] != "" {
			v.Set(extra[i], extra[i+1])
		}
	}
	if len(v) == 0 {
		return "/admin/orders"
	}
	return "/admin/orders?" + v.Encode()
}
