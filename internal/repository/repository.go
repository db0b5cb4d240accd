package repository

import "gorm.io/gorm"

type Repository struct {
	DB       *gorm.DB
	Products ProductRepo
	Orders   OrderRepo
	Reviews  ReviewRepo
	Settings SettingsRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:       db,
		Products: NewProductRepo(db),
		Orders:   NewOrderRepo(db),
		Reviews:  NewReviewRepo(db),
		Settings: NewSettingsRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }

// NewMemory builds process-local stores; nothing survives a restart.
// With seed set they start with the demo catalog, orders and settings.
func NewMemory(seed bool) *Repository {
	reviews := newMemoryReviewRepo()
	r := &Repository{
		Products: newMemoryProductRepo(reviews),
		Orders:   newMemoryOrderRepo(),
		Reviews:  reviews,
		Settings: newMemorySettingsRepo(),
	}
	if seed {
		mustSeed(r)
	}
	return r
}
