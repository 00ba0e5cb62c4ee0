package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestItemsTotal(t *testing.T) {
	tests := []struct {
		name     string
		lines    []Line
		expected decimal.Decimal
	}{
		{
			name:     "given no lines should return zero",
			lines:    nil,
			expected: decimal.Zero,
		},
		{
			name: "given single line should return unit price times quantity",
			lines: []Line{
				{UnitPrice: decimal.NewFromInt(500), Quantity: 2},
			},
			expected: decimal.NewFromInt(1000),
		},
		{
			name: "given multiple lines should return sum over lines",
			lines: []Line{
				{UnitPrice: decimal.NewFromFloat(19.99), Quantity: 3},
				{UnitPrice: decimal.NewFromInt(5), Quantity: 1},
			},
			expected: decimal.NewFromFloat(64.97),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(ItemsTotal(tt.lines)))
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name             string
		itemsPrice       decimal.Decimal
		expectedTax      decimal.Decimal
		expectedShipping decimal.Decimal
		expectedTotal    decimal.Decimal
	}{
		{
			name:             "given subtotal at the threshold should still pay flat shipping",
			itemsPrice:       decimal.NewFromInt(1000),
			expectedTax:      decimal.NewFromInt(150),
			expectedShipping: decimal.NewFromInt(100),
			expectedTotal:    decimal.NewFromInt(1250),
		},
		{
			name:             "given subtotal above the threshold should ship free",
			itemsPrice:       decimal.NewFromInt(1200),
			expectedTax:      decimal.NewFromInt(180),
			expectedShipping: decimal.Zero,
			expectedTotal:    decimal.NewFromInt(1380),
		},
		{
			name:             "given fractional subtotal should round tax to cents",
			itemsPrice:       decimal.NewFromFloat(33.33),
			expectedTax:      decimal.NewFromFloat(5.00),
			expectedShipping: decimal.NewFromInt(100),
			expectedTotal:    decimal.NewFromFloat(138.33),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, shipping, total := Quote(tt.itemsPrice)
			assert.True(t, tt.expectedTax.Equal(tax), "tax: expected %s got %s", tt.expectedTax, tax)
			assert.True(t, tt.expectedShipping.Equal(shipping), "shipping: expected %s got %s", tt.expectedShipping, shipping)
			assert.True(t, tt.expectedTotal.Equal(total), "total: expected %s got %s", tt.expectedTotal, total)
		})
	}
}
