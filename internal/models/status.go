package models

import "storefront-service/internal/i18n"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var AllOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// pending -> processing -> shipped -> delivered; cancelled from any non-terminal state.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
}

func (s OrderStatus) Valid() bool {
	for _, v := range AllOrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// NextStatuses lists the statuses s may move to.
func (s OrderStatus) NextStatuses() []OrderStatus {
	next := orderTransitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, v := range orderTransitions[s] {
		if v == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) Label() i18n.Key {
	switch s {
	case OrderStatusProcessing:
		return i18n.StatusProcessing
	case OrderStatusShipped:
		return i18n.StatusShipped
	case OrderStatusDelivered:
		return i18n.StatusDelivered
	case OrderStatusCancelled:
		return i18n.StatusCancelled
	default:
		return i18n.StatusPending
	}
}

type PaymentMethod string

const (
	PaymentCCP PaymentMethod = "ccp" // перевод CCP с подтверждением
	PaymentCOD PaymentMethod = "cod" // оплата при получении
)

func (m PaymentMethod) Valid() bool { return m == PaymentCCP || m == PaymentCOD }

func (m PaymentMethod) RequiresProof() bool { return m == PaymentCCP }

func (m PaymentMethod) Label() i18n.Key {
	if m == PaymentCCP {
		return i18n.PaymentCCP
	}
	return i18n.PaymentCOD
}

type DeliveryType string

const (
	DeliveryHome   DeliveryType = "home"
	DeliveryOffice DeliveryType = "office"
	DeliveryPickup DeliveryType = "pickup"
)

func (d DeliveryType) Valid() bool {
	return d == DeliveryHome || d == DeliveryOffice || d == DeliveryPickup
}

func (d DeliveryType) Label() i18n.Key {
	switch d {
	case DeliveryOffice:
		return i18n.DeliveryOffice
	case DeliveryPickup:
		return i18n.DeliveryPickup
	default:
		return i18n.DeliveryHome
	}
}
