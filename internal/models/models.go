package models

import (
	"time"

	"storefront-service/internal/i18n"
	"storefront-service/internal/pricing"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	ID          string         `gorm:"type:text;primaryKey"`
	Name        i18n.Text      `gorm:"embedded;embeddedPrefix:name_"`
	Description i18n.Text      `gorm:"embedded;embeddedPrefix:description_"`
	Price       pricing.Amount `gorm:"embedded;embeddedPrefix:price_"` // минорные единицы
	Images      pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	Category    string         `gorm:"type:text;not null;index"`
	Stock       int            `gorm:"not null;default:0"` // CHECK добавим в миграции
	Rating      float64        `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Reviews []Review `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (Product) TableName() string { return "products" }

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID string    `gorm:"type:text;not null;index"`
	UserName  string    `gorm:"type:text;not null"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
}

func (Review) TableName() string { return "reviews" }

// CartItem is a product snapshot with the chosen quantity.
type CartItem struct {
	Product  Product
	Quantity int
}

type CustomerInfo struct {
	FullName     string       `gorm:"type:text;not null"`
	Phone        string       `gorm:"type:text;not null;index"`
	State        string       `gorm:"type:text;not null"`
	Address      string       `gorm:"type:text;not null"`
	DeliveryType DeliveryType `gorm:"type:text;not null"`
}

type Order struct {
	ID            string         `gorm:"type:text;primaryKey"`
	Customer      CustomerInfo   `gorm:"embedded;embeddedPrefix:customer_"`
	Total         pricing.Amount `gorm:"embedded;embeddedPrefix:total_"`
	Status        OrderStatus    `gorm:"type:text;not null;default:'pending';index"`
	PaymentMethod PaymentMethod  `gorm:"type:text;not null"`
	PaymentProof  *string        `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"` // каскад на позиции
}

func (Order) TableName() string { return "orders" }

// OrderItem копирует товар на момент оформления, правки каталога на него не влияют.
type OrderItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   string         `gorm:"type:text;not null;index;uniqueIndex:ux_order_items_order_product"`
	ProductID string         `gorm:"type:text;not null;uniqueIndex:ux_order_items_order_product"`
	Name      i18n.Text      `gorm:"embedded;embeddedPrefix:name_"`
	Image     string         `gorm:"type:text"`
	UnitPrice pricing.Amount `gorm:"embedded;embeddedPrefix:unit_price_"`
	Quantity  int            `gorm:"type:int;not null"`
	LineTotal pricing.Amount `gorm:"embedded;embeddedPrefix:line_total_"`
}

func (OrderItem) TableName() string { return "order_items" }

type ContactInfo struct {
	Phone   string `gorm:"type:text"`
	Email   string `gorm:"type:text"`
	Address string `gorm:"type:text"`
}

// StoreSettings is a single row with ID 1.
type StoreSettings struct {
	ID              int            `gorm:"primaryKey"`
	Name            i18n.Text      `gorm:"embedded;embeddedPrefix:name_"`
	Logo            string         `gorm:"type:text"`
	PaymentMethods  pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	ShippingMethods pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	Contact         ContactInfo    `gorm:"embedded;embeddedPrefix:contact_"`

	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (StoreSettings) TableName() string { return "store_settings" }

type SalesSeries struct {
	Labels []string
	Data   []int64
}

// DashboardStats вычисляется при каждом чтении и нигде не хранится.
type DashboardStats struct {
	TotalOrders    int
	TotalRevenue   pricing.Amount
	TotalProducts  int
	TotalCustomers int
	RecentOrders   []*Order
	Sales          SalesSeries
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	out := p
	out.Images = append(pq.StringArray(nil), p.Images...)
	if p.Reviews != nil {
		out.Reviews = append([]Review(nil), p.Reviews...)
	}
	return out
}

func (o Order) Clone() Order {
	out := o
	out.Items = append([]OrderItem(nil), o.Items...)
	if o.PaymentProof != nil {
		ref := *o.PaymentProof
		out.PaymentProof = &ref
	}
	return out
}

func (s StoreSettings) Clone() StoreSettings {
	out := s
	out.PaymentMethods = append(pq.StringArray(nil), s.PaymentMethods...)
	out.ShippingMethods = append(pq.StringArray(nil), s.ShippingMethods...)
	return out
}
