package service

import (
	"context"
	"fmt"

	"storefront-service/internal/i18n"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"

	"go.uber.org/zap"
)

type ProductQuery struct {
	Category string
	Query    string
	Lang     i18n.Lang
}

type Category struct {
	ID    string
	Name  i18n.Text
	Count int64
}

type CatalogService interface {
	ListProducts(ctx context.Context, q ProductQuery) ([]*models.Product, error)
	// GetProduct returns the product with its reviews attached.
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	Categories(ctx context.Context) ([]Category, error)
	Settings(ctx context.Context) (*models.StoreSettings, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &catalogService{repo: repo, log: log}
}

func (s *catalogService) ListProducts(ctx context.Context, q ProductQuery) ([]*models.Product, error) {
	if q.Lang == "" {
		q.Lang = i18n.DefaultLang
	}
	return s.repo.Products.List(ctx, repository.ProductFilter{
		Category: q.Category,
		Query:    q.Query,
		Lang:     q.Lang,
	})
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	reviews, err := s.repo.Reviews.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	p.Reviews = make([]models.Review, 0, len(reviews))
	for _, rv := range reviews {
		p.Reviews = append(p.Reviews, *rv)
	}
	return p, nil
}

func (s *catalogService) Categories(ctx context.Context) ([]Category, error) {
	counts, err := s.repo.Products.Categories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Category, 0, len(counts))
	for _, c := range counts {
		out = append(out, Category{ID: c.Category, Name: i18n.CategoryName(c.Category), Count: c.Count})
	}
	return out, nil
}

func (s *catalogService) Settings(ctx context.Context) (*models.StoreSettings, error) {
	return loadSettings(ctx, s.repo)
}

// loadSettings falls back to the defaults when nothing is stored yet.
func loadSettings(ctx context.Context, repo *repository.Repository) (*models.StoreSettings, error) {
	st, err := repo.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if st == nil {
		def := repository.DefaultSettings()
		return &def, nil
	}
	return st, nil
}
