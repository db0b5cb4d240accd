package repository_test

import (
	"context"
	"testing"
	"time"

	"storefront-service/internal/i18n"
	"storefront-service/internal/migrate"
	"storefront-service/internal/models"
	"storefront-service/internal/pricing"
	"storefront-service/internal/repository"
	"storefront-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupPostgres(t *testing.T) *repository.Repository {
	t.Helper()
	db := testutil.SetupTestPostgres(t)
	if err := migrate.MigrateStoreDB(context.Background(), db, zap.NewNop(), migrate.DefaultMigrateOptions()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.New(db)
}

func seeded(t *testing.T, r *repository.Repository) *repository.Repository {
	t.Helper()
	require.NoError(t, repository.Seed(context.Background(), r, time.Now()))
	return r
}

func backends(t *testing.T) map[string]func(t *testing.T) *repository.Repository {
	return map[string]func(t *testing.T) *repository.Repository{
		"memory":   func(t *testing.T) *repository.Repository { return repository.NewMemory(true) },
		"postgres": func(t *testing.T) *repository.Repository { return seeded(t, setupPostgres(t)) },
	}
}

func TestProductRepo(t *testing.T) {
	for name, build := range backends(t) {
		t.Run(name, func(t *testing.T) {
			r := build(t)
			ctx := context.Background()

			n, err := r.Products.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(6), n)

			all, err := r.Products.List(ctx, repository.ProductFilter{Category: repository.CategoryAll})
			require.NoError(t, err)
			require.Len(t, all, 6)
			assert.Equal(t, "1", all[0].ID)

			gaming, err := r.Products.List(ctx, repository.ProductFilter{Category: "gaming"})
			require.NoError(t, err)
			assert.Len(t, gaming, 2)

			found, err := r.Products.List(ctx, repository.ProductFilter{Query: "montre", Lang: i18n.FR})
			require.NoError(t, err)
			require.Len(t, found, 1)
			assert.Equal(t, "2", found[0].ID)

			none, err := r.Products.List(ctx, repository.ProductFilter{Query: "montre", Lang: i18n.EN})
			require.NoError(t, err)
			assert.Empty(t, none)

			byDesc, err := r.Products.List(ctx, repository.ProductFilter{Query: "uv400", Lang: i18n.EN})
			require.NoError(t, err)
			require.Len(t, byDesc, 1)
			assert.Equal(t, "4", byDesc[0].ID)

			p, err := r.Products.GetByID(ctx, "3")
			require.NoError(t, err)
			require.NotNil(t, p)
			assert.Equal(t, "Elegant Leather Bag", p.Name.EN)
			assert.Equal(t, pricing.Amount{DZD: 18000, EUR: 11900, USD: 12900}, p.Price)
			assert.Len(t, p.Images, 1)

			missing, err := r.Products.GetByID(ctx, "nope")
			require.NoError(t, err)
			assert.Nil(t, missing)

			p.Stock = 3
			p.Images = append(p.Images, "https://example.com/second.jpg")
			require.NoError(t, r.Products.Save(ctx, p))
			p2, err := r.Products.GetByID(ctx, "3")
			require.NoError(t, err)
			assert.Equal(t, 3, p2.Stock)
			assert.Len(t, p2.Images, 2)

			cats, err := r.Products.Categories(ctx)
			require.NoError(t, err)
			assert.Equal(t, []repository.CategoryCount{
				{Category: "electronics", Count: 2},
				{Category: "fashion", Count: 2},
				{Category: "gaming", Count: 2},
			}, cats)

			ok, err := r.Products.Delete(ctx, "6")
			require.NoError(t, err)
			assert.True(t, ok)
			ok, err = r.Products.Delete(ctx, "6")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestOrderRepo(t *testing.T) {
	for name, build := range backends(t) {
		t.Run(name, func(t *testing.T) {
			r := build(t)
			ctx := context.Background()

			sum, err := r.Orders.Summary(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(3), sum.Count)
			assert.Equal(t, int64(3), sum.Customers)
			assert.Equal(t, pricing.Amount{DZD: 100000, EUR: 66100, USD: 72100}, sum.Revenue)

			list, total, err := r.Orders.List(ctx, repository.OrderListFilter{Limit: 2})
			require.NoError(t, err)
			assert.Equal(t, int64(3), total)
			require.Len(t, list, 2)
			assert.Equal(t, "ORD-001", list[0].ID)
			assert.Equal(t, "ORD-002", list[1].ID)

			o, err := r.Orders.GetByID(ctx, "ORD-003")
			require.NoError(t, err)
			require.NotNil(t, o)
			require.Len(t, o.Items, 2)
			assert.Equal(t, models.OrderStatusDelivered, o.Status)
			assert.Equal(t, models.DeliveryPickup, o.Customer.DeliveryType)

			ord := &models.Order{
				ID: "ORD-TEST",
				Customer: models.CustomerInfo{
					FullName: "Test", Phone: "0555123456", State: "وهران", Address: "x",
					DeliveryType: models.DeliveryHome,
				},
				Items: []models.OrderItem{
					repository.SnapshotItem(models.Product{ID: "1", Name: i18n.Text{AR: "a", FR: "b", EN: "c"}, Price: pricing.Amount{DZD: 100, EUR: 1, USD: 1}}, 2),
				},
				Total:         pricing.Amount{DZD: 700, EUR: 502, USD: 602},
				Status:        models.OrderStatusPending,
				PaymentMethod: models.PaymentCOD,
				CreatedAt:     time.Now().Add(time.Hour),
			}
			require.NoError(t, r.Orders.Create(ctx, ord))

			sum, err = r.Orders.Summary(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(4), sum.Count)
			assert.Equal(t, int64(3), sum.Customers, "repeat phone is not a new customer")

			ok, err := r.Orders.UpdateStatus(ctx, "ORD-TEST", models.OrderStatusPending, models.OrderStatusProcessing, time.Now())
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = r.Orders.UpdateStatus(ctx, "ORD-TEST", models.OrderStatusPending, models.OrderStatusCancelled, time.Now())
			require.NoError(t, err)
			assert.False(t, ok, "stale from-status must not apply")

			pending := models.OrderStatusProcessing
			list, total, err = r.Orders.List(ctx, repository.OrderListFilter{Status: &pending})
			require.NoError(t, err)
			assert.Equal(t, int64(2), total)
			assert.Equal(t, "ORD-TEST", list[0].ID)
			require.Len(t, list[0].Items, 1)
			assert.Equal(t, int64(200), list[0].Items[0].LineTotal.DZD)
		})
	}
}

func TestSettingsAndReviews(t *testing.T) {
	for name, build := range backends(t) {
		t.Run(name, func(t *testing.T) {
			r := build(t)
			ctx := context.Background()

			s, err := r.Settings.Get(ctx)
			require.NoError(t, err)
			require.NotNil(t, s)
			assert.Equal(t, "ROlPIN", s.Name.EN)
			assert.Equal(t, []string{"ccp", "cod"}, []string(s.PaymentMethods))

			s.Contact.Email = "shop@example.com"
			require.NoError(t, r.Settings.Save(ctx, s))
			s2, err := r.Settings.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, "shop@example.com", s2.Contact.Email)

			require.NoError(t, r.Reviews.Create(ctx, &models.Review{ProductID: "1", UserName: "Amine", Rating: 5, Comment: "ممتاز"}))
			require.NoError(t, r.Reviews.Create(ctx, &models.Review{ProductID: "2", UserName: "Lina", Rating: 4}))

			all, err := r.Reviews.List(ctx, "")
			require.NoError(t, err)
			assert.Len(t, all, 2)

			one, err := r.Reviews.List(ctx, "1")
			require.NoError(t, err)
			require.Len(t, one, 1)
			assert.Equal(t, "Amine", one[0].UserName)
		})
	}
}

func TestMemoryStoresReturnCopies(t *testing.T) {
	r := repository.NewMemory(true)
	ctx := context.Background()

	p, err := r.Products.GetByID(ctx, "1")
	require.NoError(t, err)
	p.Name.EN = "changed"
	p.Images[0] = "changed.jpg"

	again, err := r.Products.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Premium Wireless Earbuds", again.Name.EN)
	assert.NotEqual(t, "changed.jpg", again.Images[0])

	o, err := r.Orders.GetByID(ctx, "ORD-001")
	require.NoError(t, err)
	o.Items[0].Quantity = 99

	o2, err := r.Orders.GetByID(ctx, "ORD-001")
	require.NoError(t, err)
	assert.Equal(t, 1, o2.Items[0].Quantity)
}

func TestMemoryNoSeed(t *testing.T) {
	r := repository.NewMemory(false)
	n, err := r.Products.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	s, err := r.Settings.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestDeleteProductDropsReviews(t *testing.T) {
	for name, build := range backends(t) {
		t.Run(name, func(t *testing.T) {
			r := build(t)
			ctx := context.Background()

			require.NoError(t, r.Reviews.Create(ctx, &models.Review{ProductID: "1", UserName: "Amine", Rating: 5}))
			require.NoError(t, r.Reviews.Create(ctx, &models.Review{ProductID: "2", UserName: "Lina", Rating: 4}))

			ok, err := r.Products.Delete(ctx, "1")
			require.NoError(t, err)
			assert.True(t, ok)

			gone, err := r.Reviews.List(ctx, "1")
			require.NoError(t, err)
			assert.Empty(t, gone)

			kept, err := r.Reviews.List(ctx, "2")
			require.NoError(t, err)
			assert.Len(t, kept, 1)
		})
	}
}
