package service_test

import (
	"context"
	"testing"

	"storefront-service/internal/cart"
	"storefront-service/internal/i18n"
	"storefront-service/internal/models"
	"storefront-service/internal/pricing"
	"storefront-service/internal/repository"
	"storefront-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductInput() service.ProductInput {
	return service.ProductInput{
		Name:        i18n.Text{AR: "مصباح", FR: "Lampe", EN: "Lamp"},
		Description: i18n.Text{EN: "Desk lamp"},
		Price:       pricing.Amount{DZD: 4500, EUR: 3000, USD: 3300},
		Images:      []string{" https://example.com/lamp.jpg ", ""},
		Category:    "home",
		Stock:       12,
		Rating:      4,
	}
}

func TestAdmin_RequiresAdminFlag(t *testing.T) {
	svc := service.NewAdminService(repository.NewMemory(true), nil)

	_, err := svc.Stats(context.Background())
	require.ErrorIs(t, err, service.ErrUnauthorized)
	_, err = svc.CreateProduct(sessionCtx("s1"), newProductInput())
	require.ErrorIs(t, err, service.ErrForbidden)
	require.ErrorIs(t, svc.DeleteProduct(sessionCtx("s1"), "1"), service.ErrForbidden)
}

func TestAdmin_ProductCRUD(t *testing.T) {
	repo := repository.NewMemory(true)
	svc := service.NewAdminService(repo, nil)
	ctx := adminCtx()

	p, err := svc.CreateProduct(ctx, newProductInput())
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, []string{"https://example.com/lamp.jpg"}, []string(p.Images))

	n, _ := repo.Products.Count(ctx)
	assert.Equal(t, int64(7), n)

	stock := 0
	name := i18n.Text{AR: "مصباح", FR: "Lampe", EN: "Desk Lamp"}
	upd, err := svc.UpdateProduct(ctx, p.ID, service.ProductPatch{Stock: &stock, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, 0, upd.Stock)
	assert.Equal(t, "Desk Lamp", upd.Name.EN)
	assert.Equal(t, int64(4500), upd.Price.DZD)

	stored, _ := repo.Products.GetByID(ctx, p.ID)
	assert.Equal(t, 0, stored.Stock)

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))
	require.ErrorIs(t, svc.DeleteProduct(ctx, p.ID), service.ErrProductNotFound)

	_, err = svc.UpdateProduct(ctx, "missing", service.ProductPatch{Stock: &stock})
	require.ErrorIs(t, err, service.ErrProductNotFound)
}

func TestAdmin_ProductValidation(t *testing.T) {
	svc := service.NewAdminService(repository.NewMemory(false), nil)
	ctx := adminCtx()

	cases := map[string]func(*service.ProductInput){
		"missing fr name":  func(in *service.ProductInput) { in.Name.FR = "" },
		"negative price":   func(in *service.ProductInput) { in.Price.USD = -1 },
		"negative stock":   func(in *service.ProductInput) { in.Stock = -3 },
		"rating too high":  func(in *service.ProductInput) { in.Rating = 5.5 },
		"missing category": func(in *service.ProductInput) { in.Category = "  " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := newProductInput()
			mutate(&in)
			_, err := svc.CreateProduct(ctx, in)
			require.ErrorIs(t, err, service.ErrInvalidProduct)
		})
	}

	rating := -1.0
	_, err := svc.UpdateProduct(ctx, "1", service.ProductPatch{Rating: &rating})
	require.ErrorIs(t, err, service.ErrProductNotFound)
}

func TestAdmin_DeletedProductKeepsOrderSnapshot(t *testing.T) {
	repo := repository.NewMemory(true)
	svc := service.NewAdminService(repo, nil)
	ctx := adminCtx()

	require.NoError(t, svc.DeleteProduct(ctx, "1"))
	o, err := repo.Orders.GetByID(ctx, "ORD-001")
	require.NoError(t, err)
	assert.Equal(t, "1", o.Items[0].ProductID)
	assert.NotEmpty(t, o.Items[0].Name.EN)
}

func TestAdmin_Stats(t *testing.T) {
	repo := repository.NewMemory(true)
	svc := service.NewAdminService(repo, nil)
	ctx := adminCtx()

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalOrders)
	assert.Equal(t, pricing.Amount{DZD: 100000, EUR: 66100, USD: 72100}, st.TotalRevenue)
	assert.Equal(t, 6, st.TotalProducts)
	assert.Equal(t, 3, st.TotalCustomers)
	require.Len(t, st.RecentOrders, 3)
	assert.Equal(t, "ORD-001", st.RecentOrders[0].ID)
	assert.Len(t, st.Sales.Labels, 6)
	assert.Len(t, st.Sales.Data, 6)

	// производные значения пересчитываются после нового заказа
	orders := service.NewOrderService(repo, nil, nil)
	c := cart.New()
	p, _ := repo.Products.GetByID(ctx, "5")
	c.AddItem(*p, 1)
	d := draft
	d.Customer.Phone = "0777345678" // тот же покупатель, что у ORD-003
	_, err = orders.PlaceOrder(ctx, d, c)
	require.NoError(t, err)

	st, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, st.TotalOrders)
	assert.Equal(t, int64(100000+6000+500), st.TotalRevenue.DZD)
	assert.Equal(t, 3, st.TotalCustomers)
	assert.Len(t, st.RecentOrders, 4)
}

func TestAdmin_Settings(t *testing.T) {
	svc := service.NewAdminService(repository.NewMemory(false), nil)
	ctx := adminCtx()

	st, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ROlPIN", st.Name.EN)

	logo := "/new-logo.svg"
	methods := []string{string(models.PaymentCOD)}
	st, err = svc.UpdateSettings(ctx, service.SettingsPatch{Logo: &logo, PaymentMethods: &methods})
	require.NoError(t, err)
	assert.Equal(t, "/new-logo.svg", st.Logo)
	assert.Equal(t, []string{"cod"}, []string(st.PaymentMethods))

	again, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/new-logo.svg", again.Logo)

	bad := []string{"paypal"}
	_, err = svc.UpdateSettings(ctx, service.SettingsPatch{PaymentMethods: &bad})
	require.ErrorIs(t, err, service.ErrInvalidSettings)
	_, err = svc.UpdateSettings(ctx, service.SettingsPatch{ShippingMethods: &bad})
	require.ErrorIs(t, err, service.ErrInvalidSettings)
	name := i18n.Text{EN: "Only English"}
	_, err = svc.UpdateSettings(ctx, service.SettingsPatch{Name: &name})
	require.ErrorIs(t, err, service.ErrInvalidSettings)
}

func TestAdmin_ListReviews(t *testing.T) {
	repo := repository.NewMemory(true)
	ctx := adminCtx()
	require.NoError(t, repo.Reviews.Create(ctx, &models.Review{ProductID: "1", UserName: "Sara", Rating: 5, Comment: "Top"}))
	require.NoError(t, repo.Reviews.Create(ctx, &models.Review{ProductID: "2", UserName: "Yacine", Rating: 3}))

	svc := service.NewAdminService(repo, nil)
	all, err := svc.ListReviews(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := svc.ListReviews(ctx, "1")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "Sara", one[0].UserName)
}
