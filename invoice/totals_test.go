package invoice_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/felixlvh/invoice/invoice"
)

func item(qty, price float64) invoice.LineItem {
	return invoice.LineItem{
		Description: "item",
		Quantity:    decimal.NewFromFloat(qty),
		Price:       decimal.NewFromFloat(price),
	}
}

func TestTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []invoice.LineItem
		want  string
	}{
		{
			name:  "empty sequence yields zero",
			items: nil,
			want:  "0",
		},
		{
			name:  "single item",
			items: []invoice.LineItem{item(1, 100)},
			want:  "100",
		},
		{
			name:  "fractional price",
			items: []invoice.LineItem{item(2, 10.5), item(1, 5)},
			want:  "26",
		},
		{
			name:  "fractional quantity",
			items: []invoice.LineItem{item(1.5, 80)},
			want:  "120",
		},
		{
			name:  "exact decimal arithmetic, no float drift",
			items: []invoice.LineItem{item(3, 0.1)},
			want:  "0.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := invoice.Total(tt.items)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"expected %s, got %s", tt.want, got)
		})
	}
}

func TestLineItem_Amount(t *testing.T) {
	li := item(2, 10.5)
	assert.True(t, li.Amount().Equal(decimal.NewFromInt(21)))
}
