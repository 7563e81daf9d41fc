package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockroomhq/stockroom-backend/pkg/enums"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name      string
		quantity  int
		threshold int
		want      enums.StockStatus
	}{
		{name: "zero threshold is unknown", quantity: 10, threshold: 0, want: enums.StockStatusUnknown},
		{name: "negative threshold is unknown", quantity: 10, threshold: -1, want: enums.StockStatusUnknown},
		{name: "zero quantity is out of stock", quantity: 0, threshold: 5, want: enums.StockStatusOutOfStock},
		{name: "below threshold is low", quantity: 3, threshold: 5, want: enums.StockStatusLowStock},
		{name: "exactly at threshold is low", quantity: 5, threshold: 5, want: enums.StockStatusLowStock},
		{name: "one above threshold is in stock", quantity: 6, threshold: 5, want: enums.StockStatusInStock},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Evaluate(tc.quantity, tc.threshold))
		})
	}
}

func TestEvaluateZeroQuantityZeroThreshold(t *testing.T) {
	// The threshold guard wins over the quantity check.
	assert.Equal(t, enums.StockStatusUnknown, Evaluate(0, 0))
}
