package repository

import (
	"context"

	"storefront-service/internal/models"

	"gorm.io/gorm"
)

type ReviewRepo interface {
	Create(ctx context.Context, rv *models.Review) error
	// List returns reviews of one product, or of all products when productID is empty.
	List(ctx context.Context, productID string) ([]*models.Review, error)
}

type reviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) ReviewRepo { return &reviewRepo{db: db} }

func (r *reviewRepo) Create(ctx context.Context, rv *models.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *reviewRepo) List(ctx context.Context, productID string) ([]*models.Review, error) {
	q := r.db.WithContext(ctx).Model(&models.Review{})
	if productID != "" {
		q = q.Where("product_id = ?", productID)
	}
	var list []*models.Review
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}
