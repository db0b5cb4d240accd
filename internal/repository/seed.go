package repository

import (
	"context"
	"fmt"
	"time"

	"storefront-service/internal/i18n"
	"storefront-service/internal/models"
	"storefront-service/internal/pricing"

	"github.com/lib/pq"
)

// DefaultSettings is the store configuration used until an admin changes it.
func DefaultSettings() models.StoreSettings {
	return models.StoreSettings{
		ID:              settingsRowID,
		Name:            i18n.Text{AR: "ROlPIN", FR: "ROlPIN", EN: "ROlPIN"},
		Logo:            "/logo.png",
		PaymentMethods:  pq.StringArray{string(models.PaymentCCP), string(models.PaymentCOD)},
		ShippingMethods: pq.StringArray{string(models.DeliveryHome), string(models.DeliveryOffice), string(models.DeliveryPickup)},
		Contact: models.ContactInfo{
			Phone:   "+213 555 123 456",
			Email:   "contact@rolpin.com",
			Address: "Algiers, Algeria",
		},
	}
}

func unsplash(photo string) pq.StringArray {
	return pq.StringArray{"https://images.unsplash.com/" + photo + "?w=500&h=500&fit=crop"}
}

// DemoProducts returns the demo catalog; later entries are newer.
func DemoProducts(now time.Time) []models.Product {
	list := []models.Product{
		{
			ID:          "1",
			Name:        i18n.Text{AR: "سماعات لاسلكية فاخرة", FR: "Écouteurs sans fil premium", EN: "Premium Wireless Earbuds"},
			Description: i18n.Text{AR: "سماعات عالية الجودة مع إلغاء الضوضاء النشط", FR: "Écouteurs haute qualité avec réduction active du bruit", EN: "High-quality earbuds with active noise cancellation"},
			Price:       pricing.Amount{DZD: 15000, EUR: 9900, USD: 10900},
			Images:      unsplash("photo-1590658268037-6bf12165a8df"),
			Category:    "electronics",
			Stock:       50,
			Rating:      4.5,
		},
		{
			ID:          "2",
			Name:        i18n.Text{AR: "ساعة ذكية متطورة", FR: "Montre connectée avancée", EN: "Advanced Smartwatch"},
			Description: i18n.Text{AR: "ساعة ذكية مع تتبع اللياقة البدنية ومراقبة الصحة", FR: "Montre connectée avec suivi fitness et surveillance de la santé", EN: "Smartwatch with fitness tracking and health monitoring"},
			Price:       pricing.Amount{DZD: 25000, EUR: 16500, USD: 17900},
			Images:      unsplash("photo-1546868871-7041f2a55e12"),
			Category:    "electronics",
			Stock:       30,
			Rating:      4.8,
		},
		{
			ID:          "3",
			Name:        i18n.Text{AR: "حقيبة جلدية أنيقة", FR: "Sac en cuir élégant", EN: "Elegant Leather Bag"},
			Description: i18n.Text{AR: "حقيبة يد فاخرة مصنوعة من الجلد الطبيعي", FR: "Sac à main luxueux en cuir véritable", EN: "Luxury handbag made from genuine leather"},
			Price:       pricing.Amount{DZD: 18000, EUR: 11900, USD: 12900},
			Images:      unsplash("photo-1548036328-c9fa89d128fa"),
			Category:    "fashion",
			Stock:       25,
			Rating:      4.3,
		},
		{
			ID:          "4",
			Name:        i18n.Text{AR: "نظارات شمسية فاخرة", FR: "Lunettes de soleil luxueuses", EN: "Luxury Sunglasses"},
			Description: i18n.Text{AR: "نظارات شمسية عصرية مع حماية UV400", FR: "Lunettes de soleil tendance avec protection UV400", EN: "Trendy sunglasses with UV400 protection"},
			Price:       pricing.Amount{DZD: 8000, EUR: 5300, USD: 5900},
			Images:      unsplash("photo-1572635196237-14b3f281503f"),
			Category:    "fashion",
			Stock:       40,
			Rating:      4.6,
		},
		{
			ID:          "5",
			Name:        i18n.Text{AR: "ماوس ألعاب احترافي", FR: "Souris gaming professionnelle", EN: "Pro Gaming Mouse"},
			Description: i18n.Text{AR: "ماوس ألعاب مع مستشعر عالي الدقة وإضاءة RGB", FR: "Souris gaming avec capteur haute précision et éclairage RGB", EN: "Gaming mouse with high-precision sensor and RGB lighting"},
			Price:       pricing.Amount{DZD: 6000, EUR: 4000, USD: 4400},
			Images:      unsplash("photo-1527864550417-7fd91fc51a46"),
			Category:    "gaming",
			Stock:       60,
			Rating:      4.7,
		},
		{
			ID:          "6",
			Name:        i18n.Text{AR: "كيبورد ميكانيكي", FR: "Clavier mécanique", EN: "Mechanical Keyboard"},
			Description: i18n.Text{AR: "كيبورد ميكانيكي مع مفاتيح زرقاء وإضاءة خلفية", FR: "Clavier mécanique avec switches bleus et rétroéclairage", EN: "Mechanical keyboard with blue switches and backlighting"},
			Price:       pricing.Amount{DZD: 12000, EUR: 7900, USD: 8700},
			Images:      unsplash("photo-1511467687858-23d96c32e4ae"),
			Category:    "gaming",
			Stock:       35,
			Rating:      4.9,
		},
	}
	for i := range list {
		ts := now.Add(time.Duration(i-len(list)) * time.Minute)
		list[i].CreatedAt = ts
		list[i].UpdatedAt = ts
	}
	return list
}

// DemoOrders returns three orders over products; ORD-001 is the newest.
func DemoOrders(products []models.Product, now time.Time) []models.Order {
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	item := func(id string, qty int) models.OrderItem { return SnapshotItem(byID[id], qty) }

	orders := []models.Order{
		{
			ID: "ORD-001",
			Customer: models.CustomerInfo{
				FullName: "أحمد محمد", Phone: "0555123456", State: "الجزائر العاصمة",
				Address: "حي حسين داي، شارع 1 ماي", DeliveryType: models.DeliveryHome,
			},
			Items:         []models.OrderItem{item("1", 1), item("3", 2)},
			Total:         pricing.Amount{DZD: 51000, EUR: 33700, USD: 36700},
			Status:        models.OrderStatusPending,
			PaymentMethod: models.PaymentCCP,
		},
		{
			ID: "ORD-002",
			Customer: models.CustomerInfo{
				FullName: "فاطمة الزهراء", Phone: "0666789012", State: "وهران",
				Address: "حي سانتا كروز، شارع محمد خيضر", DeliveryType: models.DeliveryOffice,
			},
			Items:         []models.OrderItem{item("2", 1)},
			Total:         pricing.Amount{DZD: 25000, EUR: 16500, USD: 17900},
			Status:        models.OrderStatusProcessing,
			PaymentMethod: models.PaymentCOD,
		},
		{
			ID: "ORD-003",
			Customer: models.CustomerInfo{
				FullName: "كريم بن علي", Phone: "0777345678", State: "قسنطينة",
				Address: "حي الزياتين، شارع أحمد باي", DeliveryType: models.DeliveryPickup,
			},
			Items:         []models.OrderItem{item("5", 2), item("6", 1)},
			Total:         pricing.Amount{DZD: 24000, EUR: 15900, USD: 17500},
			Status:        models.OrderStatusDelivered,
			PaymentMethod: models.PaymentCOD,
		},
	}
	for i := range orders {
		ts := now.Add(-time.Duration(i+1) * time.Hour)
		orders[i].CreatedAt = ts
		orders[i].UpdatedAt = ts
		for j := range orders[i].Items {
			orders[i].Items[j].OrderID = orders[i].ID
		}
	}
	return orders
}

// Seed fills empty stores with the demo data. Stores that already hold products are left alone.
func Seed(ctx context.Context, r *Repository, now time.Time) error {
	n, err := r.Products.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		return nil
	}

	products := DemoProducts(now)
	for i := range products {
		if err := r.Products.Create(ctx, &products[i]); err != nil {
			return fmt.Errorf("seed product %s: %w", products[i].ID, err)
		}
	}
	for _, o := range DemoOrders(products, now) {
		if err := r.Orders.Create(ctx, &o); err != nil {
			return fmt.Errorf("seed order %s: %w", o.ID, err)
		}
	}

	s, err := r.Settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("get settings: %w", err)
	}
	if s == nil {
		def := DefaultSettings()
		def.UpdatedAt = now
		if err := r.Settings.Save(ctx, &def); err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
	}
	return nil
}

func mustSeed(r *Repository) {
	if err := Seed(context.Background(), r, time.Now()); err != nil {
		panic(err)
	}
}
