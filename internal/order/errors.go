package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/worksteamwear/storefront/internal/inventory"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotCancellable    = errors.New("order can only be cancelled while pending")
	ErrNoBulkCancel      = errors.New("orders must be cancelled one at a time")
	ErrNoItems           = errors.New("order has no items")
)

// InsufficientStockError aborts a delivery finalization. It carries the
// itemized shortages so callers can report exactly which products blocked
// the operation.
type InsufficientStockError struct {
	Shortages []inventory.Shortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (need %d, have %d)", s.Key, s.Required, s.Available))
	}
	return "insufficient inventory for " + strings.Join(parts, ", ")
}
