package repository

import (
	"context"
	"errors"

	"storefront-service/internal/models"

	"gorm.io/gorm"
)

const settingsRowID = 1

type SettingsRepo interface {
	Get(ctx context.Context) (*models.StoreSettings, error)
	Save(ctx context.Context, s *models.StoreSettings) error
}

type settingsRepo struct{ db *gorm.DB }

func NewSettingsRepo(db *gorm.DB) SettingsRepo { return &settingsRepo{db: db} }

func (r *settingsRepo) Get(ctx context.Context) (*models.StoreSettings, error) {
	var s models.StoreSettings
	err := r.db.WithContext(ctx).First(&s, "id = ?", settingsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *settingsRepo) Save(ctx context.Context, s *models.StoreSettings) error {
	s.ID = settingsRowID
	return r.db.WithContext(ctx).Save(s).Error
}
