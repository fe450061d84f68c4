package order

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// TotalAmount sums unit price x quantity over all items. Totals are derived
// on demand, never stored on the order row.
func TotalAmount(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// VATBreakdown splits a VAT-inclusive total into its tax and net components
// and adds the delivery fee on top.
type VATBreakdown struct {
	Total       decimal.Decimal `json:"total"`
	VATAmount   decimal.Decimal `json:"vat_amount"`
	NetSubtotal decimal.Decimal `json:"net_subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

// Breakdown back-calculates VAT from a VAT-inclusive total:
// vat = total * rate / (100 + rate). For the 12% rate that is total*12/112.
func Breakdown(total, deliveryFee, ratePercent decimal.Decimal) VATBreakdown {
	vat := total.Mul(ratePercent).Div(oneHundred.Add(ratePercent)).Round(2)
	return VATBreakdown{
		Total:       total,
		VATAmount:   vat,
		NetSubtotal: total.Sub(vat),
		DeliveryFee: deliveryFee,
		GrandTotal:  total.Add(deliveryFee),
	}
}
