package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront-service/internal/cart"
	"storefront-service/internal/checkout"
	"storefront-service/internal/models"
	"storefront-service/internal/pricing"
	"storefront-service/internal/repository"

	"github.com/nanorand/nanorand"
	"go.uber.org/zap"
)

type OrderFilter struct {
	Status *models.OrderStatus
	Limit  int
	Offset int
}

type OrderService interface {
	checkout.Placer
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context, f OrderFilter) ([]*models.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, id string, to models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	repo   *repository.Repository
	events EventBus
	log    *zap.Logger
	now    func() time.Time
	newID  func() (string, error)
}

func NewOrderService(repo *repository.Repository, events EventBus, log *zap.Logger) OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &orderService{repo: repo, events: events, log: log, now: time.Now, newID: newOrderID}
}

const orderCodeLen = 8

// newOrderID returns ORD- followed by an upper-cased random code.
func newOrderID() (string, error) {
	code, err := nanorand.Gen(orderCodeLen)
	if err != nil {
		return "", err
	}
	return "ORD-" + strings.ToUpper(code), nil
}

func transient(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, checkout.ErrTransient, err)
}

// PlaceOrder records a pending order from the cart lines and removes those lines from the cart.
// Storage failures are reported as checkout.ErrTransient so the wizard retries them.
func (s *orderService) PlaceOrder(ctx context.Context, d checkout.Draft, c *cart.Cart) (*models.Order, error) {
	items := c.Items()
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}
	if !d.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	if d.PaymentMethod.RequiresProof() && d.Proof == nil {
		return nil, ErrPaymentProofRequired
	}

	var subtotal pricing.Amount
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		p, err := s.repo.Products.GetByID(ctx, it.Product.ID)
		if err != nil {
			return nil, transient("get product", err)
		}
		if p == nil {
			return nil, fmt.Errorf("%w: product %s was removed", ErrCartOutdated, it.Product.ID)
		}
		if it.Quantity > p.Stock {
			return nil, fmt.Errorf("%w: only %d of product %s left", ErrCartOutdated, p.Stock, p.ID)
		}
		line := repository.SnapshotItem(it.Product, it.Quantity)
		subtotal = subtotal.Add(line.LineTotal)
		orderItems = append(orderItems, line)
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generate order id: %w", err)
	}
	now := s.now()
	order := &models.Order{
		ID:            id,
		Customer:      d.Customer,
		Total:         subtotal.Add(pricing.ShippingFee),
		Status:        models.OrderStatusPending,
		PaymentMethod: d.PaymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
		Items:         orderItems,
	}
	if d.Proof != nil {
		ref := d.Proof.Ref
		order.PaymentProof = &ref
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}

	if err := s.repo.Orders.Create(ctx, order); err != nil {
		return nil, transient("create order", err)
	}
	// только те позиции, что попали в заказ
	c.RemoveLines(items)

	s.log.Info("order placed",
		zap.String("order_id", order.ID),
		zap.Int("items", len(order.Items)),
		zap.Int64("total_dzd", order.Total.DZD),
	)
	if s.events != nil {
		if err := s.events.PublishOrderCreated(ctx, orderCreatedEvent(order)); err != nil {
			s.log.Warn("publish order.created failed", zap.String("order_id", order.ID), zap.Error(err))
		}
	}
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	o, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *orderService) ListOrders(ctx context.Context, f OrderFilter) ([]*models.Order, int64, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, 0, err
	}
	if f.Status != nil && !f.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.repo.Orders.List(ctx, repository.OrderListFilter{
		Status: f.Status,
		Limit:  f.Limit,
		Offset: f.Offset,
	})
}

// UpdateOrderStatus moves the order along the status graph.
// The store applies the change only if nobody changed the status in between.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id string, to models.OrderStatus) (*models.Order, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if !to.Valid() {
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	from := o.Status
	if !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, from, to)
	}

	now := s.now()
	ok, err := s.repo.Orders.UpdateStatus(ctx, id, from, to, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// статус успели поменять параллельно
		return nil, fmt.Errorf("%w: order %s is no longer %s", ErrInvalidStatusTransition, id, from)
	}

	o, err = s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	s.log.Info("order status changed",
		zap.String("order_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	if s.events != nil {
		ev := OrderStatusChangedEvent{OrderID: id, From: from, To: to, ChangedAt: now}
		if err := s.events.PublishOrderStatusChanged(ctx, ev); err != nil {
			s.log.Warn("publish order.status_changed failed", zap.String("order_id", id), zap.Error(err))
		}
	}
	return o, nil
}
