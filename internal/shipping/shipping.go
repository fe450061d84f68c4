// Package shipping resolves delivery fees from the courier rate table.
package shipping

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/worksteamwear/storefront/internal/config"
)

// StandardCourier is the only courier the rate table is seeded with.
const StandardCourier = "Standard"

type Service struct {
	store    Store
	settings config.Settings
	log      *zap.Logger
}

func NewService(store Store, settings config.Settings, log *zap.Logger) *Service {
	return &Service{store: store, settings: settings, log: log}
}

// CanonicalRegion maps a customer-facing region code ("R4A" or "Region R4A")
// to the display label the rate table is keyed by ("Region IV-A"). Unknown
// codes pass through unchanged.
func (s *Service) CanonicalRegion(code string) string {
	trimmed := strings.TrimPrefix(code, "Region ")
	if label, ok := s.settings.RegionLabels[trimmed]; ok {
		return label
	}
	return code
}

// Fee returns the price of the smallest weight tier that can carry weightKg
// for an exact (origin, destination, Standard) match, or the default fee when
// no row matches.
func (s *Service) Fee(ctx context.Context, originRegion, destinationRegion string, weightKg float64) decimal.Decimal {
	origin := s.CanonicalRegion(originRegion)
	destination := s.CanonicalRegion(destinationRegion)

	price, found, err := s.store.FindFee(ctx, StandardCourier, origin, destination, decimal.NewFromFloat(weightKg))
	if err != nil {
		s.log.Warn("shipping fee lookup failed, using default",
			zap.String("origin", origin),
			zap.String("destination", destination),
			zap.Error(err))
		return s.settings.DefaultShippingFee
	}
	if !found {
		return s.settings.DefaultShippingFee
	}
	return price
}

// CheckoutFee is the fee for a standard checkout parcel shipped from the
// configured origin to the customer's region.
func (s *Service) CheckoutFee(ctx context.Context, destinationRegion string) decimal.Decimal {
	if destinationRegion == "" {
		destinationRegion = s.settings.OriginRegion
	}
	return s.Fee(ctx, s.settings.OriginRegion, destinationRegion, s.settings.DefaultParcelWeightKg)
}
