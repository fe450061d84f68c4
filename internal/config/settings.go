package config

import "github.com/shopspring/decimal"

// Settings holds business constants shared by the cart, checkout and shipping
// code. It is built once at startup and passed by value; nothing mutates it.
type Settings struct {
	// VATRatePercent is the VAT rate contained in displayed prices.
	// Prices are VAT-inclusive, so the tax share of a total T is
	// T * rate / (100 + rate).
	VATRatePercent decimal.Decimal

	// DefaultShippingFee applies when no shipping-fee row matches.
	DefaultShippingFee decimal.Decimal

	// OriginRegion is where parcels ship from.
	OriginRegion string

	// DefaultParcelWeightKg is assumed for fee lookups at checkout.
	DefaultParcelWeightKg float64

	// RegionLabels maps customer-facing region codes to the canonical
	// labels used by the shipping-fee table, e.g. "R4A" -> "Region IV-A".
	RegionLabels map[string]string
}

func DefaultSettings() Settings {
	return Settings{
		VATRatePercent:        decimal.NewFromInt(12),
		DefaultShippingFee:    decimal.RequireFromString("50.00"),
		OriginRegion:          "NCR",
		DefaultParcelWeightKg: 0.5,
		RegionLabels: map[string]string{
			"R1":    "Region I",
			"R2":    "Region II",
			"R3":    "Region III",
			"R4A":   "Region IV-A",
			"R4B":   "Region IV-B",
			"R5":    "Region V",
			"R6":    "Region VI",
			"R7":    "Region VII",
			"R8":    "Region VIII",
			"R9":    "Region IX",
			"R10":   "Region X",
			"R11":   "Region XI",
			"R12":   "Region XII",
			"R13":   "Region XIII",
			"NCR":   "NCR",
			"CAR":   "CAR",
			"BARMM": "BARMM",
		},
	}
}
