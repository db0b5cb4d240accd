package repository

import (
	"context"
	"errors"
	"strings"

	"storefront-service/internal/i18n"
	"storefront-service/internal/models"

	"gorm.io/gorm"
)

// CategoryAll matches every category.
const CategoryAll = "all"

type ProductFilter struct {
	Category string
	Query    string // ищем по названию и описанию на языке Lang
	Lang     i18n.Lang
}

type CategoryCount struct {
	Category string
	Count    int64
}

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Save(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f ProductFilter) ([]*models.Product, error)
	Count(ctx context.Context) (int64, error)
	Categories(ctx context.Context) ([]CategoryCount, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) ProductRepo { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Omit("Reviews").Create(p).Error
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) Save(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Omit("Reviews").Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *productRepo) List(ctx context.Context, f ProductFilter) ([]*models.Product, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})

	if f.Category != "" && f.Category != CategoryAll {
		q = q.Where("category = ?", f.Category)
	}
	if query := strings.TrimSpace(f.Query); query != "" {
		col := langColumn(f.Lang)
		like := "%" + escapeLike(query) + "%"
		q = q.Where("name_"+col+" ILIKE ? OR description_"+col+" ILIKE ?", like, like)
	}

	var list []*models.Product
	err := q.Order("created_at ASC").Order("id ASC").Find(&list).Error
	return list, err
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&n).Error
	return n, err
}

func (r *productRepo) Categories(ctx context.Context) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Select("category, count(*) AS count").
		Group("category").
		Order("category").
		Scan(&rows).Error
	return rows, err
}

// langColumn maps a language to its column suffix; only known values reach SQL.
func langColumn(l i18n.Lang) string {
	switch l {
	case i18n.FR:
		return "fr"
	case i18n.EN:
		return "en"
	default:
		return "ar"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
