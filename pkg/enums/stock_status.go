package enums

import "fmt"

// StockStatus classifies an inventory item relative to its low-stock
// threshold. Values are stable wire codes consumed by clients.
type StockStatus int

const (
	StockStatusUnknown    StockStatus = 0
	StockStatusOutOfStock StockStatus = 1
	StockStatusLowStock   StockStatus = 2
	StockStatusInStock    StockStatus = 3
)

var stockStatusLabels = map[StockStatus]string{
	StockStatusUnknown:    "Unknown",
	StockStatusOutOfStock: "Out-of-Stock",
	StockStatusLowStock:   "Low-Stock",
	StockStatusInStock:    "In-Stock",
}

// Label returns the human-readable status text.
func (s StockStatus) Label() string {
	if label, ok := stockStatusLabels[s]; ok {
		return label
	}
	return stockStatusLabels[StockStatusUnknown]
}

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return s.Label()
}

// IsValid reports whether the value is a known StockStatus.
func (s StockStatus) IsValid() bool {
	_, ok := stockStatusLabels[s]
	return ok
}

// ParseStockStatus converts a raw code into a StockStatus.
func ParseStockStatus(value int) (StockStatus, error) {
	status := StockStatus(value)
	if !status.IsValid() {
		return StockStatusUnknown, fmt.Errorf("invalid stock status %d", value)
	}
	return status, nil
}
