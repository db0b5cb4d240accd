package repository

import (
	"context"
	"errors"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/pricing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderListFilter struct {
	Status *models.OrderStatus
	Limit  int
	Offset int
}

// OrderSummary aggregates every stored order.
type OrderSummary struct {
	Count     int64
	Revenue   pricing.Amount
	Customers int64 // уникальные номера телефонов
}

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// UpdateStatus applies the change only while the order is still in status from.
	UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus, at time.Time) (bool, error)
	List(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error)
	Summary(ctx context.Context) (OrderSummary, error)
}

// SnapshotItem copies the product fields an order keeps.
func SnapshotItem(p models.Product, qty int) models.OrderItem {
	img := ""
	if len(p.Images) > 0 {
		img = p.Images[0]
	}
	return models.OrderItem{
		ID:        uuid.New(),
		ProductID: p.ID,
		Name:      p.Name,
		Image:     img,
		UnitPrice: p.Price,
		Quantity:  qty,
		LineTotal: p.Price.Mul(int64(qty)),
	}
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := o.Items
		if err := tx.Omit("Items").Create(o).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = o.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		o.Items = items
		return nil
	})
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": at})
	return res.RowsAffected > 0, res.Error
}

func (r *orderRepo) List(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})

	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	f = normalizeList(f)

	var list []*models.Order
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Preload("Items").Find(&list).Error
	return list, total, err
}

func (r *orderRepo) Summary(ctx context.Context) (OrderSummary, error) {
	var row struct {
		Count     int64
		DZD       int64
		EUR       int64
		USD       int64
		Customers int64
	}
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select(`count(*) AS count,
  coalesce(sum(total_dzd), 0) AS dzd,
  coalesce(sum(total_eur), 0) AS eur,
  coalesce(sum(total_usd), 0) AS usd,
  count(DISTINCT customer_phone) AS customers`).
		Scan(&row).Error
	if err != nil {
		return OrderSummary{}, err
	}
	return OrderSummary{
		Count:     row.Count,
		Revenue:   pricing.Amount{DZD: row.DZD, EUR: row.EUR, USD: row.USD},
		Customers: row.Customers,
	}, nil
}

func normalizeList(f OrderListFilter) OrderListFilter {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
