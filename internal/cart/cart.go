package cart

import (
	"sync"

	"github.com/vasiliy-maslov/storefront/internal/catalog"
)

// LineItem — позиция в корзине: товар плюс количество.
// Инвариант: не более одной позиции на product id, quantity >= 1.
type LineItem struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart holds the line items of a single session. All mutations go
// through its methods under one mutex, so a reader never observes a
// half-applied change. Totals are always recomputed from the items,
// never cached.
type Cart struct {
	mu    sync.Mutex
	items []LineItem
}

func New() *Cart {
	return &Cart{items: make([]LineItem, 0)}
}

// AddItem merges the product into the cart: an existing line gets its
// quantity incremented by one, otherwise a new line with quantity 1 is
// appended. Insertion order is first-added order.
func (c *Cart) AddItem(p catalog.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, LineItem{Product: p, Quantity: 1})
}

// SetQuantity replaces the quantity of the matching line in place.
// A quantity of zero or less removes the line. No-op if the product is
// not in the cart.
func (c *Cart) SetQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem deletes the matching line if present.
func (c *Cart) RemoveItem(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = c.items[:0]
}

// Items returns a copy of the current line items in insertion order.
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyItems()
}

// ItemCount is the sum of quantities over all lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return countOf(c.items)
}

// Total is the sum of quantity times unit price over all lines.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalOf(c.items)
}

// Snapshot returns the items, item count and total as one consistent
// view taken under a single lock.
func (c *Cart) Snapshot() (items []LineItem, count int, total float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyItems(), countOf(c.items), totalOf(c.items)
}

func (c *Cart) copyItems() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func countOf(items []LineItem) int {
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return count
}

func totalOf(items []LineItem) float64 {
	total := 0.0
	for _, it := range items {
		total += float64(it.Quantity) * it.Product.Price
	}
	return total
}
