package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront-service/internal/i18n"
	"storefront-service/internal/models"
	"storefront-service/internal/pricing"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const recentOrdersLimit = 5

type ProductInput struct {
	Name        i18n.Text
	Description i18n.Text
	Price       pricing.Amount
	Images      []string
	Category    string
	Stock       int
	Rating      float64
}

// ProductPatch changes only the non-nil fields.
type ProductPatch struct {
	Name        *i18n.Text
	Description *i18n.Text
	Price       *pricing.Amount
	Images      *[]string
	Category    *string
	Stock       *int
	Rating      *float64
}

type SettingsPatch struct {
	Name            *i18n.Text
	Logo            *string
	PaymentMethods  *[]string
	ShippingMethods *[]string
	Contact         *models.ContactInfo
}

type AdminService interface {
	CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, p ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	Stats(ctx context.Context) (*models.DashboardStats, error)
	GetSettings(ctx context.Context) (*models.StoreSettings, error)
	UpdateSettings(ctx context.Context, p SettingsPatch) (*models.StoreSettings, error)
	ListReviews(ctx context.Context, productID string) ([]*models.Review, error)
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	if log == nil {
		log = zap.NewNop()
	}
	return &adminService{repo: repo, log: log, now: time.Now}
}

func invalidProduct(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidProduct, reason)
}

func validateProduct(p *models.Product) error {
	if !p.Name.Complete() {
		return invalidProduct("name required in ar, fr and en")
	}
	if p.Price.IsNegative() {
		return invalidProduct("price must not be negative")
	}
	if p.Stock < 0 {
		return invalidProduct("stock must not be negative")
	}
	if p.Rating < 0 || p.Rating > 5 {
		return invalidProduct("rating must be within 0..5")
	}
	if strings.TrimSpace(p.Category) == "" {
		return invalidProduct("category required")
	}
	return nil
}

func cleanImages(in []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (s *adminService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	now := s.now()
	p := &models.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Images:      cleanImages(in.Images),
		Category:    strings.TrimSpace(in.Category),
		Stock:       in.Stock,
		Rating:      in.Rating,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if err := s.repo.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("product created", zap.String("product_id", p.ID))
	return p, nil
}

func (s *adminService) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*models.Product, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Images != nil {
		p.Images = cleanImages(*patch.Images)
	}
	if patch.Category != nil {
		p.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Rating != nil {
		p.Rating = *patch.Rating
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Products.Save(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("product updated", zap.String("product_id", id))
	return p, nil
}

// DeleteProduct removes the product; orders keep their snapshots.
func (s *adminService) DeleteProduct(ctx context.Context, id string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	ok, err := s.repo.Products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	s.log.Info("product deleted", zap.String("product_id", id))
	return nil
}

func (s *adminService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return computeStats(ctx, s.repo)
}

func (s *adminService) GetSettings(ctx context.Context) (*models.StoreSettings, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return loadSettings(ctx, s.repo)
}

func invalidSettings(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidSettings, reason)
}

func (s *adminService) UpdateSettings(ctx context.Context, patch SettingsPatch) (*models.StoreSettings, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	st, err := loadSettings(ctx, s.repo)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if !patch.Name.Complete() {
			return nil, invalidSettings("store name required in ar, fr and en")
		}
		st.Name = *patch.Name
	}
	if patch.Logo != nil {
		st.Logo = strings.TrimSpace(*patch.Logo)
	}
	if patch.PaymentMethods != nil {
		for _, m := range *patch.PaymentMethods {
			if !models.PaymentMethod(m).Valid() {
				return nil, invalidSettings("unknown payment method " + m)
			}
		}
		st.PaymentMethods = append(pq.StringArray(nil), *patch.PaymentMethods...)
	}
	if patch.ShippingMethods != nil {
		for _, m := range *patch.ShippingMethods {
			if !models.DeliveryType(m).Valid() {
				return nil, invalidSettings("unknown shipping method " + m)
			}
		}
		st.ShippingMethods = append(pq.StringArray(nil), *patch.ShippingMethods...)
	}
	if patch.Contact != nil {
		st.Contact = *patch.Contact
	}
	st.UpdatedAt = s.now()

	if err := s.repo.Settings.Save(ctx, st); err != nil {
		return nil, err
	}
	s.log.Info("store settings updated")
	return st, nil
}

func (s *adminService) ListReviews(ctx context.Context, productID string) ([]*models.Review, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.repo.Reviews.List(ctx, productID)
}
