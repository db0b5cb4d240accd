package service_test

import (
	"context"
	"testing"

	"storefront-service/internal/i18n"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
	"storefront-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ListProducts(t *testing.T) {
	svc := service.NewCatalogService(repository.NewMemory(true), nil)
	ctx := context.Background()

	all, err := svc.ListProducts(ctx, service.ProductQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 6)

	el, err := svc.ListProducts(ctx, service.ProductQuery{Category: "electronics"})
	require.NoError(t, err)
	for _, p := range el {
		assert.Equal(t, "electronics", p.Category)
	}

	found, err := svc.ListProducts(ctx, service.ProductQuery{Query: "MONTRE", Lang: i18n.FR})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "2", found[0].ID)

	none, err := svc.ListProducts(ctx, service.ProductQuery{Query: "montre", Lang: i18n.EN})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCatalog_GetProductWithReviews(t *testing.T) {
	repo := repository.NewMemory(true)
	ctx := context.Background()
	require.NoError(t, repo.Reviews.Create(ctx, &models.Review{ProductID: "3", UserName: "Nadia", Rating: 4}))
	svc := service.NewCatalogService(repo, nil)

	p, err := svc.GetProduct(ctx, "3")
	require.NoError(t, err)
	require.Len(t, p.Reviews, 1)
	assert.Equal(t, "Nadia", p.Reviews[0].UserName)

	_, err = svc.GetProduct(ctx, "404")
	require.ErrorIs(t, err, service.ErrProductNotFound)
}

func TestCatalog_Categories(t *testing.T) {
	svc := service.NewCatalogService(repository.NewMemory(true), nil)

	cats, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, cats)

	var total int64
	for _, c := range cats {
		total += c.Count
		assert.NotEmpty(t, c.Name.EN)
	}
	assert.Equal(t, int64(6), total)
}

func TestCatalog_SettingsFallback(t *testing.T) {
	svc := service.NewCatalogService(repository.NewMemory(false), nil)
	st, err := svc.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repository.DefaultSettings().Contact, st.Contact)
}
