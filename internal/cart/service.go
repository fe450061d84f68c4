package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/worksteamwear/storefront/internal/config"
	"github.com/worksteamwear/storefront/internal/order"
	"github.com/worksteamwear/storefront/internal/shipping"
)

type Service struct {
	store    Store
	shipping *shipping.Service
	settings config.Settings
}

func NewService(store Store, ship *shipping.Service, settings config.Settings) *Service {
	return &Service{store: store, shipping: ship, settings: settings}
}

func (s *Service) Store() Store { return s.store }

// Summary is the priced cart shown before checkout.
type Summary struct {
	Lines []Line `json:"lines"`
	order.VATBreakdown
}

// Totals prices the customer's cart for delivery to region, using the same
// VAT back-calculation and shipping-fee lookup checkout applies.
func (s *Service) Totals(ctx context.Context, customerID, region string) (*Summary, error) {
	lines, err := s.store.List(ctx, customerID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, ln := range lines {
		total = total.Add(ln.LineTotal)
	}
	fee := s.shipping.CheckoutFee(ctx, region)
	return &Summary{
		Lines:        lines,
		VATBreakdown: order.Breakdown(total, fee, s.settings.VATRatePercent),
	}, nil
}
