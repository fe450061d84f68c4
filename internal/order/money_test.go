package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTotalAmount(t *testing.T) {
	items := []Item{
		{Price: d("899.00"), Quantity: 2},
		{Price: d("150.50"), Quantity: 1},
	}
	assert.True(t, TotalAmount(items).Equal(d("1948.50")))
	assert.True(t, TotalAmount(nil).Equal(decimal.Zero))
}

func TestBreakdown_VATInclusive(t *testing.T) {
	// A VAT-inclusive 112.00 at 12% contains exactly 12.00 of VAT.
	b := Breakdown(d("112.00"), d("50.00"), d("12"))
	assert.True(t, b.VATAmount.Equal(d("12.00")), "vat=%s", b.VATAmount)
	assert.True(t, b.NetSubtotal.Equal(d("100.00")), "net=%s", b.NetSubtotal)
	assert.True(t, b.GrandTotal.Equal(d("162.00")), "grand=%s", b.GrandTotal)
}

func TestBreakdown_Rounding(t *testing.T) {
	b := Breakdown(d("999.00"), d("0"), d("12"))
	// 999 * 12 / 112 = 107.0357... -> 107.04
	assert.True(t, b.VATAmount.Equal(d("107.04")), "vat=%s", b.VATAmount)
	assert.True(t, b.NetSubtotal.Equal(d("891.96")))
	// Net + VAT always reassembles the total.
	assert.True(t, b.NetSubtotal.Add(b.VATAmount).Equal(b.Total))
}

func TestNewRef(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		ref := NewRef()
		assert.Len(t, ref, RefLength)
		for _, ch := range ref {
			assert.Contains(t, refAlphabet, string(ch))
		}
		assert.False(t, seen[ref], "duplicate ref %s", ref)
		seen[ref] = true
	}
}
