package repository

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront-service/internal/models"

	"github.com/google/uuid"
)

// In-memory stores. Each method works on copies, callers never alias stored data.

type memoryProductRepo struct {
	mu      sync.RWMutex
	order   []string
	byID    map[string]models.Product
	reviews *memoryReviewRepo
}

// reviews of a deleted product go with it, as ON DELETE CASCADE does in postgres
func newMemoryProductRepo(reviews *memoryReviewRepo) *memoryProductRepo {
	return &memoryProductRepo{byID: make(map[string]models.Product), reviews: reviews}
}

func (r *memoryProductRepo) Create(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, exists := r.byID[p.ID]; exists {
		return ErrDuplicateID
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	stored := p.Clone()
	stored.Reviews = nil
	r.byID[p.ID] = stored
	r.order = append(r.order, p.ID)
	return nil
}

func (r *memoryProductRepo) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	out := p.Clone()
	return &out, nil
}

func (r *memoryProductRepo) Save(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := p.Clone()
	stored.Reviews = nil
	if _, exists := r.byID[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.byID[p.ID] = stored
	return nil
}

func (r *memoryProductRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.reviews != nil {
		r.reviews.deleteByProduct(id)
	}
	return true, nil
}

func (r *memoryProductRepo) List(_ context.Context, f ProductFilter) ([]*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := strings.TrimSpace(f.Query)
	out := make([]*models.Product, 0, len(r.order))
	for _, id := range r.order {
		p := r.byID[id]
		if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
			continue
		}
		if query != "" && !p.Name.Contains(f.Lang, query) && !p.Description.Contains(f.Lang, query) {
			continue
		}
		c := p.Clone()
		out = append(out, &c)
	}
	return out, nil
}

func (r *memoryProductRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byID)), nil
}

func (r *memoryProductRepo) Categories(_ context.Context) ([]CategoryCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int64)
	for _, p := range r.byID {
		counts[p.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

type memoryOrderRepo struct {
	mu     sync.RWMutex
	orders []models.Order
}

func newMemoryOrderRepo() *memoryOrderRepo { return &memoryOrderRepo{} }

func (r *memoryOrderRepo) Create(_ context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.orders {
		if existing.ID == o.ID {
			return ErrDuplicateID
		}
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = o.CreatedAt
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
	}
	r.orders = append(r.orders, o.Clone())
	return nil
}

func (r *memoryOrderRepo) GetByID(_ context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			out := o.Clone()
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memoryOrderRepo) UpdateStatus(_ context.Context, id string, from, to models.OrderStatus, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID != id {
			continue
		}
		if r.orders[i].Status != from {
			return false, nil
		}
		r.orders[i].Status = to
		r.orders[i].UpdatedAt = at
		return true, nil
	}
	return false, nil
}

func (r *memoryOrderRepo) List(_ context.Context, f OrderListFilter) ([]*models.Order, int64, error) {
	r.mu.RLock()
	matched := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		matched = append(matched, o.Clone())
	}
	r.mu.RUnlock()

	// новые заказы первыми; при равном времени позже добавленный идёт раньше
	slices.Reverse(matched)
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	f = normalizeList(f)
	if f.Offset >= len(matched) {
		return []*models.Order{}, total, nil
	}
	end := min(f.Offset+f.Limit, len(matched))

	out := make([]*models.Order, 0, end-f.Offset)
	for i := f.Offset; i < end; i++ {
		out = append(out, &matched[i])
	}
	return out, total, nil
}

func (r *memoryOrderRepo) Summary(_ context.Context) (OrderSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s OrderSummary
	phones := make(map[string]struct{}, len(r.orders))
	for _, o := range r.orders {
		s.Count++
		s.Revenue = s.Revenue.Add(o.Total)
		phones[o.Customer.Phone] = struct{}{}
	}
	s.Customers = int64(len(phones))
	return s, nil
}

type memoryReviewRepo struct {
	mu      sync.RWMutex
	reviews []models.Review
}

func newMemoryReviewRepo() *memoryReviewRepo { return &memoryReviewRepo{} }

func (r *memoryReviewRepo) Create(_ context.Context, rv *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rv.ID == uuid.Nil {
		rv.ID = uuid.New()
	}
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = time.Now()
	}
	r.reviews = append(r.reviews, *rv)
	return nil
}

func (r *memoryReviewRepo) deleteByProduct(productID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = slices.DeleteFunc(r.reviews, func(rv models.Review) bool { return rv.ProductID == productID })
}

func (r *memoryReviewRepo) List(_ context.Context, productID string) ([]*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Review, 0)
	for i := len(r.reviews) - 1; i >= 0; i-- {
		rv := r.reviews[i]
		if productID != "" && rv.ProductID != productID {
			continue
		}
		out = append(out, &rv)
	}
	return out, nil
}

type memorySettingsRepo struct {
	mu sync.RWMutex
	s  *models.StoreSettings
}

func newMemorySettingsRepo() *memorySettingsRepo { return &memorySettingsRepo{} }

func (r *memorySettingsRepo) Get(_ context.Context) (*models.StoreSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.s == nil {
		return nil, nil
	}
	out := r.s.Clone()
	return &out, nil
}

func (r *memorySettingsRepo) Save(_ context.Context, s *models.StoreSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = settingsRowID
	c := s.Clone()
	r.s = &c
	return nil
}
