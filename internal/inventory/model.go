package inventory

import "fmt"

// Item is one stock-ledger row. Rows are keyed by display name in the
// "{product name} - {size}" form, e.g. "Barangay Ginebra Home Jersey - M".
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description,omitempty"`
}

// Key builds the ledger key for a product/size pair.
func Key(productName, size string) string {
	return fmt.Sprintf("%s - %s", productName, size)
}

// Need is a required decrement against one ledger key.
type Need struct {
	Key string
	Qty int
}

// Shortage reports a ledger row that could not satisfy its need.
type Shortage struct {
	Key       string `json:"key"`
	Required  int    `json:"required"`
	Available int    `json:"available"`
}

// Report is the outcome of an all-or-nothing decrement.
type Report struct {
	// Applied is true when every tracked key had sufficient stock and
	// all decrements were committed.
	Applied bool
	// Shortages lists the keys that blocked the batch. Non-empty implies
	// Applied == false and no row was changed.
	Shortages []Shortage
	// Missing lists keys with no ledger row at all. These are skipped
	// with a warning, never treated as failures.
	Missing []string
}
