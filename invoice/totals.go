package invoice

import "github.com/shopspring/decimal"

// Total sums quantity*price across the item sequence. Empty yields zero.
// Pure, no rounding: presentation layers round to 2 decimal places for
// display, the computed value itself stays exact.
func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount())
	}
	return total
}
