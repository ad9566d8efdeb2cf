package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func thaiTea() LineItem {
	return LineItem{
		ProductID: 4,
		Product: ProductSnapshot{
			ID:         4,
			Name:       "Thai Tea",
			Price:      15000,
			CategoryID: 10,
			MinOrder:   1,
			CreatedAt:  1698392482,
		},
		Amounts:  1,
		SubTotal: 15000,
	}
}

func esJeruk() LineItem {
	return LineItem{
		ProductID: 3,
		Product: ProductSnapshot{
			ID:         3,
			Name:       "Es Jeruk Kelapa",
			Price:      18000,
			CategoryID: 10,
			MinOrder:   1,
			CreatedAt:  1693537970,
		},
		Amounts:  1,
		SubTotal: 18000,
	}
}

// assertTotalsConsistent checks that the running totals equal the sums over
// the current lines. Called after every single mutation in these tests.
func assertTotalsConsistent(t *testing.T, s *Store) {
	t.Helper()

	state := s.State()
	wantAmounts, wantPrice := RecomputeTotals(state)
	assert.Equal(t, wantAmounts, state.TotalAmounts)
	assert.Equal(t, wantPrice, state.SubTotalProductPrice)
}

func TestStore_Add_NewItem(t *testing.T) {
	s := NewStore()

	s.Add(thaiTea())
	assertTotalsConsistent(t, s)

	state := s.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, uint(4), state.Items[0].ProductID)
	assert.Equal(t, 1, state.Items[0].Amounts)
	assert.Equal(t, int64(15000), state.Items[0].SubTotal)
	assert.Equal(t, 1, state.TotalAmounts)
	assert.Equal(t, int64(15000), state.SubTotalProductPrice)
}

func TestStore_Add_SameProductMerges(t *testing.T) {
	s := NewStore()

	s.Add(thaiTea())
	assertTotalsConsistent(t, s)
	s.Add(thaiTea())
	assertTotalsConsistent(t, s)

	state := s.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, 2, state.Items[0].Amounts)
	assert.Equal(t, int64(30000), state.Items[0].SubTotal)
	assert.Equal(t, 2, state.TotalAmounts)
	assert.Equal(t, int64(30000), state.SubTotalProductPrice)
}

func TestStore_Add_PreservesInsertionOrder(t *testing.T) {
	s := NewStore()

	s.Add(thaiTea())
	s.Add(esJeruk())
	s.Add(thaiTea())

	state := s.State()
	require.Len(t, state.Items, 2)
	assert.Equal(t, uint(4), state.Items[0].ProductID)
	assert.Equal(t, uint(3), state.Items[1].ProductID)
	assert.Equal(t, 3, state.TotalAmounts)
	assert.Equal(t, int64(48000), state.SubTotalProductPrice)
}

func TestStore_Increment(t *testing.T) {
	s := NewStore()
	s.Add(thaiTea())

	ok := s.Increment(4, 15000)
	assert.True(t, ok)
	assertTotalsConsistent(t, s)

	state := s.State()
	assert.Equal(t, 2, state.Items[0].Amounts)
	assert.Equal(t, int64(30000), state.Items[0].SubTotal)
	assert.Equal(t, 2, state.TotalAmounts)
	assert.Equal(t, int64(30000), state.SubTotalProductPrice)
}

func TestStore_Increment_StaleIDLeavesTotalsUntouched(t *testing.T) {
	s := NewStore()
	s.Add(thaiTea())
	before := s.State()

	// The original reducer adjusted cart totals even when no line matched,
	// silently corrupting them. A stale id must be a full no-op here.
	ok := s.Increment(999, 15000)
	assert.False(t, ok)
	assertTotalsConsistent(t, s)
	assert.Equal(t, before, s.State())

	ok = s.Decrement(999, 15000)
	assert.False(t, ok)
	assert.Equal(t, before, s.State())
}

func TestStore_Decrement(t *testing.T) {
	s := NewStore()
	s.Add(thaiTea())
	s.Add(thaiTea())

	ok := s.Decrement(4, 15000)
	assert.True(t, ok)
	assertTotalsConsistent(t, s)

	state := s.State()
	assert.Equal(t, 1, state.Items[0].Amounts)
	assert.Equal(t, int64(15000), state.Items[0].SubTotal)
	assert.Equal(t, 1, state.TotalAmounts)
	assert.Equal(t, int64(15000), state.SubTotalProductPrice)
}

func TestStore_Decrement_ClampsAtOne(t *testing.T) {
	s := NewStore()
	s.Add(thaiTea())

	ok := s.Decrement(4, 15000)
	assert.False(t, ok)
	assertTotalsConsistent(t, s)

	state := s.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, 1, state.Items[0].Amounts)
	assert.Equal(t, int64(15000), state.Items[0].SubTotal)
	assert.Equal(t, 1, state.TotalAmounts)
	assert.Equal(t, int64(15000), state.SubTotalProductPrice)
}

func TestStore_Remove_DerivesDeltaFromOwnLine(t *testing.T) {
	s := NewStore()
	s.Add(thaiTea())
	s.Add(thaiTea())
	s.Add(esJeruk())

	// The caller supplies only the id; the amounts/subTotal removed from the
	// totals come from the store's own line, so stale caller copies cannot
	// drift the totals.
	removed, ok := s.Remove(4)
	assert.True(t, ok)
	assert.Equal(t, 2, removed.Amounts)
	assert.Equal(t, int64(30000), removed.SubTotal)
	assertTotalsConsistent(t, s)

	state := s.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, uint(3), state.Items[0].ProductID)
	assert.Equal(t, 1, state.TotalAmounts)
	assert.Equal(t, int64(18000), state.SubTotalProductPrice)
}

func TestStore_Remove_MissingID(t *testing.T) {
	s := NewStore()
	s.Add(thaiTea())

	_, ok := s.Remove(999)
	assert.False(t, ok)
	assertTotalsConsistent(t, s)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	s.Add(thaiTea())
	s.Add(esJeruk())
	s.Increment(4, 15000)

	s.Clear()

	state := s.State()
	assert.Empty(t, state.Items)
	assert.Equal(t, 0, state.TotalAmounts)
	assert.Equal(t, int64(0), state.SubTotalProductPrice)

	// Clear on an already empty cart stays empty
	s.Clear()
	state = s.State()
	assert.Empty(t, state.Items)
	assert.Equal(t, 0, state.TotalAmounts)
	assert.Equal(t, int64(0), state.SubTotalProductPrice)
}

func TestStore_FullSaleScenario(t *testing.T) {
	s := NewStore()

	// addItem {productId:4, subTotal:15000, amounts:1}
	s.Add(thaiTea())
	state := s.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, 1, state.Items[0].Amounts)
	assert.Equal(t, int64(15000), state.Items[0].SubTotal)
	assert.Equal(t, 1, state.TotalAmounts)
	assert.Equal(t, int64(15000), state.SubTotalProductPrice)

	// second addItem with the same product merges
	s.Add(thaiTea())
	state = s.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, 2, state.Items[0].Amounts)
	assert.Equal(t, int64(30000), state.Items[0].SubTotal)
	assert.Equal(t, 2, state.TotalAmounts)
	assert.Equal(t, int64(30000), state.SubTotalProductPrice)

	// onDecrement {id:4, price:15000}
	require.True(t, s.Decrement(4, 15000))
	state = s.State()
	assert.Equal(t, 1, state.Items[0].Amounts)
	assert.Equal(t, int64(15000), state.Items[0].SubTotal)
	assert.Equal(t, 1, state.TotalAmounts)
	assert.Equal(t, int64(15000), state.SubTotalProductPrice)

	// removeItem {id:4}
	_, ok := s.Remove(4)
	require.True(t, ok)
	state = s.State()
	assert.Empty(t, state.Items)
	assert.Equal(t, 0, state.TotalAmounts)
	assert.Equal(t, int64(0), state.SubTotalProductPrice)
}

func TestStore_InvariantUnderMixedSequence(t *testing.T) {
	s := NewStore()

	ops := []func(){
		func() { s.Add(thaiTea()) },
		func() { s.Add(esJeruk()) },
		func() { s.Increment(4, 15000) },
		func() { s.Increment(3, 18000) },
		func() { s.Add(thaiTea()) },
		func() { s.Decrement(3, 18000) },
		func() { s.Decrement(3, 18000) }, // clamped, no-op
		func() { s.Increment(42, 9999) }, // stale, no-op
		func() { s.Remove(4) },
		func() { s.Add(thaiTea()) },
		func() { s.Clear() },
		func() { s.Add(esJeruk()) },
	}

	for i, op := range ops {
		op()
		state := s.State()
		wantAmounts, wantPrice := RecomputeTotals(state)
		require.Equal(t, wantAmounts, state.TotalAmounts, "op %d", i)
		require.Equal(t, wantPrice, state.SubTotalProductPrice, "op %d", i)
	}

	state := s.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, uint(3), state.Items[0].ProductID)
}

func TestStore_StateIsACopy(t *testing.T) {
	s := NewStore()
	s.Add(thaiTea())

	state := s.State()
	state.Items[0].Amounts = 99

	assert.Equal(t, 1, s.State().Items[0].Amounts)
}

func TestRecomputeTotals(t *testing.T) {
	state := State{
		Items: []LineItem{
			{ProductID: 4, Amounts: 2, SubTotal: 30000},
			{ProductID: 3, Amounts: 1, SubTotal: 18000},
		},
	}

	amounts, price := RecomputeTotals(state)
	assert.Equal(t, 3, amounts)
	assert.Equal(t, int64(48000), price)
}
