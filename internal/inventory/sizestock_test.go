package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore struct {
	qty map[string]int
}

func (m *mapStore) Get(_ context.Context, key string) (*Item, error) {
	q, ok := m.qty[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &Item{Name: key, Quantity: q}, nil
}

func (m *mapStore) List(context.Context) ([]Item, error)          { return nil, nil }
func (m *mapStore) Create(context.Context, *Item) error           { return nil }
func (m *mapStore) SetQuantity(context.Context, int64, int) error { return nil }
func (m *mapStore) Delete(context.Context, int64) (bool, error)   { return false, nil }
func (m *mapStore) DecrementAll(context.Context, []Need) (*Report, error) {
	return &Report{Applied: true}, nil
}
func (m *mapStore) Restock(context.Context, string, int) error { return nil }

func TestKey(t *testing.T) {
	assert.Equal(t, "Home Jersey - M", Key("Home Jersey", "M"))
}

func TestSizeStock(t *testing.T) {
	store := &mapStore{qty: map[string]int{
		"Home Jersey - S": 5,
		"Home Jersey - L": 1,
	}}
	sizes := []string{"XS", "S", "M", "L", "XL"}

	stock, err := SizeStock(context.Background(), store, "Home Jersey", "M", 9, sizes)
	require.NoError(t, err)

	assert.Equal(t, 5, stock["S"], "tracked size uses ledger quantity")
	assert.Equal(t, 1, stock["L"])
	assert.Equal(t, 9, stock["M"], "base size falls back to catalog quantity")
	assert.Equal(t, 0, stock["XS"])
	assert.Equal(t, 0, stock["XL"])
}

func TestSizeStock_LedgerOverridesBase(t *testing.T) {
	store := &mapStore{qty: map[string]int{"Home Jersey - M": 2}}
	stock, err := SizeStock(context.Background(), store, "Home Jersey", "M", 9, []string{"M"})
	require.NoError(t, err)
	assert.Equal(t, 2, stock["M"], "ledger row wins over the catalog fallback")
}
