// Package cart holds the in-flight sale of a POS register: an ordered set
// of line items keyed by product, with running totals maintained
// incrementally on every mutation. The cart lives in memory only; a
// register restart starts from an empty sale.
package cart

import (
	"sync"
)

// ProductSnapshot is the product record captured when a line is added.
// It is authoritative for the rest of the sale; catalog edits made while
// the sale is open do not retroactively change the cart.
type ProductSnapshot struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	SKU        string `json:"sku"`
	Price      int64  `json:"price"`
	Image      string `json:"image"`
	CategoryID uint   `json:"categoryId"`
	MinOrder   int    `json:"minOrder"`
	CreatedAt  int64  `json:"createdAt"`
}

type LineItem struct {
	ProductID uint            `json:"productId"`
	Product   ProductSnapshot `json:"product"`
	Amounts   int             `json:"amounts"`
	SubTotal  int64           `json:"subTotal"`
}

// State is a value snapshot of the cart. Items are ordered by insertion
// and unique by ProductID.
type State struct {
	Items                []LineItem `json:"items"`
	TotalAmounts         int        `json:"totalAmounts"`
	SubTotalProductPrice int64      `json:"subTotalProductPrice"`
}

// Store is an explicitly owned cart instance. Construct one per register
// session and pass it by reference; it is safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	items []LineItem
	total int
	price int64
}

func NewStore() *Store {
	return &Store{}
}

// Add appends a candidate line item, or merges it into an existing line
// with the same product: the existing line gains one unit and the
// candidate's SubTotal (the unit price). Totals move by exactly the same
// delta as the line that changed.
func (s *Store) Add(item LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.Amounts < 1 {
		item.Amounts = 1
	}

	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Amounts++
			s.items[i].SubTotal += item.SubTotal
			s.total++
			s.price += item.SubTotal
			return
		}
	}

	s.items = append(s.items, item)
	s.total += item.Amounts
	s.price += item.SubTotal
}

// Increment raises the matching line's quantity by one and its subtotal by
// unitPrice. A stale id is a no-op: totals are untouched unless a line
// actually changed, and the return value reports whether one did.
func (s *Store) Increment(productID uint, unitPrice int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Amounts++
			s.items[i].SubTotal += unitPrice
			s.total++
			s.price += unitPrice
			return true
		}
	}
	return false
}

// Decrement is the inverse of Increment, clamped at one unit: a line never
// drops below Amounts == 1 even if the UI control failed to disable.
func (s *Store) Decrement(productID uint, unitPrice int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			if s.items[i].Amounts <= 1 {
				return false
			}
			s.items[i].Amounts--
			s.items[i].SubTotal -= unitPrice
			s.total--
			s.price -= unitPrice
			return true
		}
	}
	return false
}

// Remove deletes the line for productID. The totals delta is derived from
// the store's own record of the line, never from caller-supplied values,
// so a caller holding a stale copy cannot corrupt the totals.
func (s *Store) Remove(productID uint) (LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			removed := s.items[i]
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.total -= removed.Amounts
			s.price -= removed.SubTotal
			return removed, true
		}
	}
	return LineItem{}, false
}

// Clear resets the cart to the empty state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.total = 0
	s.price = 0
}

// State returns a value copy of the current cart state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]LineItem, len(s.items))
	copy(items, s.items)

	return State{
		Items:                items,
		TotalAmounts:         s.total,
		SubTotalProductPrice: s.price,
	}
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// RecomputeTotals sums a state's lines from scratch. Checkout uses it to
// cross-check the incrementally maintained totals before the sale is
// persisted.
func RecomputeTotals(state State) (totalAmounts int, subTotalProductPrice int64) {
	for _, item := range state.Items {
		totalAmounts += item.Amounts
		subTotalProductPrice += item.SubTotal
	}
	return totalAmounts, subTotalProductPrice
}
