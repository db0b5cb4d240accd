package cart

import (
	"sync"

	"storefront-service/internal/models"
	"storefront-service/internal/pricing"
)

// Cart keeps at most one line per product, in the order products were first added.
// Quantities stay within [1, stock]; out-of-range requests are clamped without an error.
// Carts live in memory only and are gone after a restart.
type Cart struct {
	mu    sync.RWMutex
	items []models.CartItem
}

func New() *Cart { return &Cart{} }

func (c *Cart) indexOf(productID string) int {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// AddItem adds qty units of p. qty below 1 counts as 1. Nothing happens when p is out of stock.
func (c *Cart) AddItem(p models.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	if p.Stock <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(p.ID); i >= 0 {
		c.items[i].Product = p.Clone()
		c.items[i].Quantity = min(c.items[i].Quantity+qty, p.Stock)
		return
	}
	c.items = append(c.items, models.CartItem{Product: p.Clone(), Quantity: min(qty, p.Stock)})
}

// SetQuantity clamps qty to the current stock of p and refreshes the line's
// product; a result below 1 removes the line. Products not in the cart are ignored.
func (c *Cart) SetQuantity(p models.Product, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(p.ID)
	if i < 0 {
		return
	}
	q := min(qty, p.Stock)
	if q < 1 {
		c.removeAt(i)
		return
	}
	c.items[i].Product = p.Clone()
	c.items[i].Quantity = q
}

func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(productID); i >= 0 {
		c.removeAt(i)
	}
}

func (c *Cart) removeAt(i int) {
	c.items = append(c.items[:i], c.items[i+1:]...)
	if len(c.items) == 0 {
		c.items = nil
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

// Items returns a copy of the lines.
func (c *Cart) Items() []models.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.CartItem, len(c.items))
	for i, it := range c.items {
		out[i] = models.CartItem{Product: it.Product.Clone(), Quantity: it.Quantity}
	}
	return out
}

// RemoveLines takes the given quantities out of the cart. Units added after
// the lines were read stay in the cart.
func (c *Cart) RemoveLines(lines []models.CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range lines {
		i := c.indexOf(l.Product.ID)
		if i < 0 {
			continue
		}
		if c.items[i].Quantity <= l.Quantity {
			c.removeAt(i)
			continue
		}
		c.items[i].Quantity -= l.Quantity
	}
}

// Subtotal sums price*quantity separately in every currency.
func (c *Cart) Subtotal() pricing.Amount {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var sum pricing.Amount
	for _, it := range c.items {
		sum = sum.Add(it.Product.Price.Mul(int64(it.Quantity)))
	}
	return sum
}

// ItemCount is the total number of units, not the number of lines.
func (c *Cart) ItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items) == 0
}
