package inventory

import "context"

// SizeStock resolves per-size availability for a product. Sizes with a ledger
// row use the ledger quantity; the product's own size falls back to its base
// catalog quantity when untracked.
func SizeStock(ctx context.Context, s Store, productName, baseSize string, baseQty int, sizes []string) (map[string]int, error) {
	stock := make(map[string]int, len(sizes))
	for _, size := range sizes {
		stock[size] = 0
		it, err := s.Get(ctx, Key(productName, size))
		switch {
		case err == nil:
			stock[size] = it.Quantity
		case size == baseSize:
			stock[size] = baseQty
		}
	}
	return stock, nil
}
