package shipping

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/worksteamwear/storefront/internal/config"
)

// tableStore serves rates from a slice using the same smallest-tier rule as
// the SQL implementation.
type tableStore struct {
	rates []Rate
	err   error
}

func (s *tableStore) FindFee(_ context.Context, courier, origin, destination string, weightKg decimal.Decimal) (decimal.Decimal, bool, error) {
	if s.err != nil {
		return decimal.Zero, false, s.err
	}
	var best *Rate
	for i := range s.rates {
		r := &s.rates[i]
		if r.Courier != courier || r.OriginRegion != origin || r.DestinationRegion != destination {
			continue
		}
		if r.WeightKg.LessThan(weightKg) {
			continue
		}
		if best == nil || r.WeightKg.LessThan(best.WeightKg) {
			best = r
		}
	}
	if best == nil {
		return decimal.Zero, false, nil
	}
	return best.PricePHP, true, nil
}

func (s *tableStore) List(context.Context) ([]Rate, error) { return s.rates, nil }
func (s *tableStore) Upsert(context.Context, *Rate) error  { return nil }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestService(store Store) *Service {
	return NewService(store, config.DefaultSettings(), zap.NewNop())
}

func TestCanonicalRegion(t *testing.T) {
	svc := newTestService(&tableStore{})

	assert.Equal(t, "Region IV-A", svc.CanonicalRegion("R4A"))
	assert.Equal(t, "Region IV-A", svc.CanonicalRegion("Region R4A"))
	assert.Equal(t, "Region I", svc.CanonicalRegion("R1"))
	assert.Equal(t, "NCR", svc.CanonicalRegion("NCR"))
	assert.Equal(t, "BARMM", svc.CanonicalRegion("BARMM"))
	// Unknown codes pass through untouched.
	assert.Equal(t, "Atlantis", svc.CanonicalRegion("Atlantis"))
}

func TestFee_SmallestSufficientTier(t *testing.T) {
	store := &tableStore{rates: []Rate{
		{Courier: StandardCourier, OriginRegion: "NCR", DestinationRegion: "Region IV-A", WeightKg: d("0.5"), PricePHP: d("85.00")},
		{Courier: StandardCourier, OriginRegion: "NCR", DestinationRegion: "Region IV-A", WeightKg: d("1"), PricePHP: d("120.00")},
		{Courier: StandardCourier, OriginRegion: "NCR", DestinationRegion: "Region IV-A", WeightKg: d("3"), PricePHP: d("250.00")},
	}}
	svc := newTestService(store)

	// 0.8kg fits the 1kg tier, not the 3kg one.
	fee := svc.Fee(context.Background(), "NCR", "R4A", 0.8)
	assert.True(t, fee.Equal(d("120.00")), "fee=%s", fee)

	// Exact tier match.
	fee = svc.Fee(context.Background(), "NCR", "R4A", 0.5)
	assert.True(t, fee.Equal(d("85.00")), "fee=%s", fee)

	// Heavier than every tier falls back to the default.
	fee = svc.Fee(context.Background(), "NCR", "R4A", 5)
	assert.True(t, fee.Equal(d("50.00")), "fee=%s", fee)
}

func TestFee_NoRouteUsesDefault(t *testing.T) {
	svc := newTestService(&tableStore{})
	fee := svc.Fee(context.Background(), "NCR", "R7", 1)
	assert.True(t, fee.Equal(d("50.00")))
}

func TestFee_LookupErrorUsesDefault(t *testing.T) {
	svc := newTestService(&tableStore{err: assert.AnError})
	fee := svc.Fee(context.Background(), "NCR", "NCR", 1)
	assert.True(t, fee.Equal(d("50.00")))
}

func TestCheckoutFee(t *testing.T) {
	store := &tableStore{rates: []Rate{
		{Courier: StandardCourier, OriginRegion: "NCR", DestinationRegion: "NCR", WeightKg: d("0.5"), PricePHP: d("60.00")},
	}}
	svc := newTestService(store)

	fee := svc.CheckoutFee(context.Background(), "NCR")
	assert.True(t, fee.Equal(d("60.00")))

	// Empty destination defaults to the origin region.
	fee = svc.CheckoutFee(context.Background(), "")
	assert.True(t, fee.Equal(d("60.00")))
}
