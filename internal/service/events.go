package service

import (
	"context"
	"errors"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/pricing"
)

type OrderItemEvent struct {
	ProductID string         `json:"product_id"`
	Name      string         `json:"name"`
	Quantity  int            `json:"quantity"`
	UnitPrice pricing.Amount `json:"unit_price"`
	LineTotal pricing.Amount `json:"line_total"`
}

type OrderCreatedEvent struct {
	OrderID       string               `json:"order_id"`
	CustomerName  string               `json:"customer_name"`
	Phone         string               `json:"phone"`
	State         string               `json:"state"`
	DeliveryType  models.DeliveryType  `json:"delivery_type"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	Items         []OrderItemEvent     `json:"items"`
	Total         pricing.Amount       `json:"total"`
	CreatedAt     time.Time            `json:"created_at"`
}

type OrderStatusChangedEvent struct {
	OrderID   string             `json:"order_id"`
	From      models.OrderStatus `json:"from"`
	To        models.OrderStatus `json:"to"`
	ChangedAt time.Time          `json:"changed_at"`
}

type EventBus interface {
	PublishOrderCreated(ctx context.Context, e OrderCreatedEvent) error
	PublishOrderStatusChanged(ctx context.Context, e OrderStatusChangedEvent) error
}

// EventBuses publishes to every bus and joins their errors.
type EventBuses []EventBus

func (bs EventBuses) PublishOrderCreated(ctx context.Context, e OrderCreatedEvent) error {
	var errs []error
	for _, b := range bs {
		if err := b.PublishOrderCreated(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (bs EventBuses) PublishOrderStatusChanged(ctx context.Context, e OrderStatusChangedEvent) error {
	var errs []error
	for _, b := range bs {
		if err := b.PublishOrderStatusChanged(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func orderCreatedEvent(o *models.Order) OrderCreatedEvent {
	items := make([]OrderItemEvent, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemEvent{
			ProductID: it.ProductID,
			Name:      it.Name.EN,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		})
	}
	return OrderCreatedEvent{
		OrderID:       o.ID,
		CustomerName:  o.Customer.FullName,
		Phone:         o.Customer.Phone,
		State:         o.Customer.State,
		DeliveryType:  o.Customer.DeliveryType,
		PaymentMethod: o.PaymentMethod,
		Items:         items,
		Total:         o.Total,
		CreatedAt:     o.CreatedAt,
	}
}
