package service

import (
	"context"
	"fmt"

	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

// Статичный ряд продаж для графика на дашборде, реальной истории продаж нет.
var salesSeries = models.SalesSeries{
	Labels: []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"},
	Data:   []int64{12000, 19000, 15000, 25000, 22000, 30000},
}

// computeStats derives the dashboard figures from the stores on every call.
func computeStats(ctx context.Context, repo *repository.Repository) (*models.DashboardStats, error) {
	sum, err := repo.Orders.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("order summary: %w", err)
	}
	products, err := repo.Products.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	recent, _, err := repo.Orders.List(ctx, repository.OrderListFilter{Limit: recentOrdersLimit})
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}

	return &models.DashboardStats{
		TotalOrders:    int(sum.Count),
		TotalRevenue:   sum.Revenue,
		TotalProducts:  int(products),
		TotalCustomers: int(sum.Customers),
		RecentOrders:   recent,
		Sales: models.SalesSeries{
			Labels: append([]string(nil), salesSeries.Labels...),
			Data:   append([]int64(nil), salesSeries.Data...),
		},
	}, nil
}
