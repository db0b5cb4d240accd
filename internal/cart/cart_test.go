package cart_test

import (
	"sync"
	"testing"
	"time"

	"storefront-service/internal/cart"
	"storefront-service/internal/i18n"
	"storefront-service/internal/models"
	"storefront-service/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, dzd int64, stock int) models.Product {
	return models.Product{
		ID:    id,
		Name:  i18n.Text{AR: "منتج " + id, FR: "Produit " + id, EN: "Product " + id},
		Price: pricing.Amount{DZD: dzd, EUR: dzd / 150 * 100, USD: dzd / 140 * 100},
		Stock: stock,
	}
}

func TestAddRemoveRoundTrip(t *testing.T) {
	c := cart.New()
	c.AddItem(product("a", 1000, 10), 2)
	before := c.Items()

	p := product("b", 500, 5)
	for _, qty := range []int{1, 3, 99} {
		c.AddItem(p, qty)
		c.RemoveItem(p.ID)
		assert.Equal(t, before, c.Items(), "qty=%d", qty)
	}
}

func TestAddItem_MergesAndClamps(t *testing.T) {
	c := cart.New()
	p := product("a", 1000, 5)

	c.AddItem(p, 3)
	c.AddItem(p, 4)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func quantity(c *cart.Cart, productID string) int {
	for _, it := range c.Items() {
		if it.Product.ID == productID {
			return it.Quantity
		}
	}
	return 0
}

func TestAddItem_NewLineClampedToStock(t *testing.T) {
	c := cart.New()
	c.AddItem(product("a", 1000, 2), 7)
	assert.Equal(t, 2, quantity(c, "a"))
}

func TestAddItem_DefaultsToOne(t *testing.T) {
	c := cart.New()
	c.AddItem(product("a", 1000, 2), 0)
	assert.Equal(t, 1, quantity(c, "a"))
}

func TestAddItem_OutOfStockIsNoop(t *testing.T) {
	c := cart.New()
	c.AddItem(product("a", 1000, 0), 1)
	assert.True(t, c.IsEmpty())
}

func TestItemCount_SumsQuantities(t *testing.T) {
	c := cart.New()
	c.AddItem(product("a", 1000, 10), 3)
	c.AddItem(product("b", 1000, 10), 1)
	c.AddItem(product("c", 1000, 10), 2)

	assert.Equal(t, 6, c.ItemCount())
	assert.Len(t, c.Items(), 3)
}

func TestSetQuantity(t *testing.T) {
	c := cart.New()
	p := product("a", 1000, 4)
	c.AddItem(p, 1)

	c.SetQuantity(p, 100)
	assert.Equal(t, 4, quantity(c, "a"))

	c.SetQuantity(p, 2)
	assert.Equal(t, 2, quantity(c, "a"))

	c.SetQuantity(p, 0)
	assert.Equal(t, 0, quantity(c, "a"))
	assert.True(t, c.IsEmpty())

	c.SetQuantity(product("missing", 1000, 5), 3)
	assert.True(t, c.IsEmpty())
}

func TestSetQuantity_UsesCurrentStock(t *testing.T) {
	c := cart.New()
	c.AddItem(product("a", 1000, 2), 2)

	restocked := product("a", 1000, 10)
	c.SetQuantity(restocked, 7)
	assert.Equal(t, 7, quantity(c, "a"))
	assert.Equal(t, 10, c.Items()[0].Product.Stock)
}

func TestSetQuantity_NegativeRemoves(t *testing.T) {
	c := cart.New()
	c.AddItem(product("a", 1000, 4), 2)
	c.SetQuantity(product("a", 1000, 4), -1)
	assert.True(t, c.IsEmpty())
}

func TestSubtotal_PerCurrency(t *testing.T) {
	c := cart.New()
	c.AddItem(models.Product{ID: "a", Price: pricing.Amount{DZD: 15000, EUR: 9900, USD: 10900}, Stock: 10}, 1)
	c.AddItem(models.Product{ID: "b", Price: pricing.Amount{DZD: 8000, EUR: 5300, USD: 5900}, Stock: 10}, 2)

	assert.Equal(t, pricing.Amount{DZD: 31000, EUR: 20500, USD: 22700}, c.Subtotal())
}

func TestItemsPreserveInsertionOrder(t *testing.T) {
	c := cart.New()
	for _, id := range []string{"c", "a", "b"} {
		c.AddItem(product(id, 100, 3), 1)
	}
	c.AddItem(product("a", 100, 3), 1)

	var ids []string
	for _, it := range c.Items() {
		ids = append(ids, it.Product.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestItemsAreSnapshots(t *testing.T) {
	c := cart.New()
	p := product("a", 100, 3)
	p.Images = []string{"one.jpg"}
	c.AddItem(p, 1)

	items := c.Items()
	items[0].Product.Images[0] = "changed.jpg"
	items[0].Quantity = 3

	again := c.Items()
	assert.Equal(t, "one.jpg", again[0].Product.Images[0])
	assert.Equal(t, 1, again[0].Quantity)
}

func TestClear(t *testing.T) {
	c := cart.New()
	c.AddItem(product("a", 100, 3), 1)
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, pricing.Amount{}, c.Subtotal())
}

func TestRegistry(t *testing.T) {
	r := cart.NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Get("s1").AddItem(product("a", 100, 100), 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, r.Get("s1").ItemCount())
	assert.True(t, r.Get("s2").IsEmpty())
}

func TestRegistry_ExpireIdle(t *testing.T) {
	r := cart.NewRegistry()
	r.Get("s1").AddItem(product("a", 100, 5), 2)

	assert.Empty(t, r.Expire(time.Hour))
	assert.Equal(t, 2, r.Get("s1").ItemCount())

	assert.Equal(t, []string{"s1"}, r.Expire(0))
	assert.True(t, r.Get("s1").IsEmpty())
}

func TestRemoveLines_KeepsLaterAdditions(t *testing.T) {
	c := cart.New()
	c.AddItem(product("a", 100, 10), 2)
	c.AddItem(product("b", 100, 10), 1)
	taken := c.Items()

	c.AddItem(product("a", 100, 10), 3)
	c.AddItem(product("c", 100, 10), 1)
	c.RemoveLines(taken)

	assert.Equal(t, 3, quantity(c, "a"))
	assert.Equal(t, 0, quantity(c, "b"))
	assert.Equal(t, 1, quantity(c, "c"))
	assert.Len(t, c.Items(), 2)
}
