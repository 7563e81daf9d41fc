package inventory

import "github.com/stockroomhq/stockroom-backend/pkg/enums"

// Evaluate derives the stock status for a quantity/threshold pair.
//
// A non-positive threshold means the item has never been configured for
// alerting, so no judgement is made about its stock level. The threshold
// check is inclusive: an item sitting exactly on its threshold is low.
func Evaluate(quantity, threshold int) enums.StockStatus {
	if threshold <= 0 {
		return enums.StockStatusUnknown
	}
	if quantity == 0 {
		return enums.StockStatusOutOfStock
	}
	if quantity <= threshold {
		return enums.StockStatusLowStock
	}
	return enums.StockStatusInStock
}
