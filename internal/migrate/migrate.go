package migrate

import (
	"context"

	"storefront-service/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto, pg_trgm
	CreateChecks           bool // CHECK-constraint для целостности
	CreateIndexes          bool // индексы для поиска и выборок
	CreateFKsViaSQL        bool // FK через SQL (поверх GORM-constraint)
	CreateUpdatedAtTrigger bool // триггер обновления updated_at
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
	}
}

type step struct {
	name string
	sql  string
}

func exec(db *gorm.DB, log *zap.Logger, steps []step) error {
	for _, s := range steps {
		if err := db.Exec(s.sql).Error; err != nil {
			log.Error("Не удалось выполнить шаг миграции", zap.String("step", s.name), zap.Error(err))
			return err
		}
	}
	return nil
}

func MigrateStoreDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных магазина")
	db = db.WithContext(ctx)

	// Расширения
	if opt.CreateExtensions {
		log.Info("Создание расширений PostgreSQL")
		if err := exec(db, log, []step{
			{"pgcrypto", `CREATE EXTENSION IF NOT EXISTS pgcrypto`},
			{"pg_trgm", `CREATE EXTENSION IF NOT EXISTS pg_trgm`},
		}); err != nil {
			return err
		}
		log.Info("Расширения PostgreSQL успешно созданы")
	}

	// Таблицы
	log.Info("Создание таблиц products, reviews, orders, order_items, store_settings")
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
		&models.StoreSettings{},
	); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}
	log.Info("Таблицы успешно созданы")

	if opt.CreateUpdatedAtTrigger {
		log.Info("Создание триггеров updated_at")
		steps := []step{{"set_updated_at", `
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;`}}
		for _, table := range []string{"products", "orders", "store_settings"} {
			steps = append(steps, step{"trg_" + table + "_updated", `
DROP TRIGGER IF EXISTS trg_` + table + `_updated ON ` + table + `;
CREATE TRIGGER trg_` + table + `_updated
BEFORE UPDATE ON ` + table + `
FOR EACH ROW EXECUTE FUNCTION set_updated_at();`})
		}
		if err := exec(db, log, steps); err != nil {
			return err
		}
		log.Info("Триггеры updated_at успешно созданы")
	}

	// CHECK-constraint
	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")
		if err := exec(db, log, []step{
			{"chk_orders_status_allowed", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('pending','processing','shipped','delivered','cancelled'));`},
			{"chk_orders_payment_method_allowed", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_payment_method_allowed;
ALTER TABLE orders ADD CONSTRAINT chk_orders_payment_method_allowed
  CHECK (payment_method IN ('ccp','cod'));`},
			{"chk_orders_delivery_type_allowed", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_delivery_type_allowed;
ALTER TABLE orders ADD CONSTRAINT chk_orders_delivery_type_allowed
  CHECK (customer_delivery_type IN ('home','office','pickup'));`},
			{"chk_orders_total_non_negative", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_total_non_negative;
ALTER TABLE orders ADD CONSTRAINT chk_orders_total_non_negative
  CHECK (total_dzd >= 0 AND total_eur >= 0 AND total_usd >= 0);`},
			{"chk_order_items_quantity_gt_zero", `
ALTER TABLE order_items DROP CONSTRAINT IF EXISTS chk_order_items_quantity_gt_zero;
ALTER TABLE order_items ADD CONSTRAINT chk_order_items_quantity_gt_zero
  CHECK (quantity > 0);`},
			{"chk_products_stock_non_negative", `
ALTER TABLE products DROP CONSTRAINT IF EXISTS chk_products_stock_non_negative;
ALTER TABLE products ADD CONSTRAINT chk_products_stock_non_negative
  CHECK (stock >= 0);`},
			{"chk_products_rating_range", `
ALTER TABLE products DROP CONSTRAINT IF EXISTS chk_products_rating_range;
ALTER TABLE products ADD CONSTRAINT chk_products_rating_range
  CHECK (rating >= 0 AND rating <= 5);`},
			{"chk_products_price_non_negative", `
ALTER TABLE products DROP CONSTRAINT IF EXISTS chk_products_price_non_negative;
ALTER TABLE products ADD CONSTRAINT chk_products_price_non_negative
  CHECK (price_dzd >= 0 AND price_eur >= 0 AND price_usd >= 0);`},
			{"chk_reviews_rating_range", `
ALTER TABLE reviews DROP CONSTRAINT IF EXISTS chk_reviews_rating_range;
ALTER TABLE reviews ADD CONSTRAINT chk_reviews_rating_range
  CHECK (rating BETWEEN 1 AND 5);`},
		}); err != nil {
			return err
		}
		log.Info("CHECK-ограничения успешно созданы")
	}

	// Индексы
	if opt.CreateIndexes {
		log.Info("Создание индексов")
		steps := []step{
			{"ix_orders_status_created", `
CREATE INDEX IF NOT EXISTS ix_orders_status_created
ON orders (status, created_at DESC);`},
		}
		// триграммы нужны для ILIKE-поиска по каталогу
		if opt.CreateExtensions {
			for _, lang := range []string{"ar", "fr", "en"} {
				steps = append(steps, step{"ix_products_name_" + lang + "_trgm", `
CREATE INDEX IF NOT EXISTS ix_products_name_` + lang + `_trgm
ON products USING gin (name_` + lang + ` gin_trgm_ops);`})
			}
		}
		if err := exec(db, log, steps); err != nil {
			return err
		}
		log.Info("Индексы успешно созданы")
	}

	// Внешние ключи
	if opt.CreateFKsViaSQL {
		log.Info("Создание внешних ключей")
		if err := exec(db, log, []step{
			{"fk_order_items_order", `
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_order,
  ADD CONSTRAINT fk_order_items_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;`},
			{"fk_reviews_product", `
ALTER TABLE reviews
  DROP CONSTRAINT IF EXISTS fk_reviews_product,
  ADD CONSTRAINT fk_reviews_product
    FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE;`},
		}); err != nil {
			return err
		}
		log.Info("Внешние ключи успешно созданы")
	}

	log.Info("Миграция базы данных магазина успешно завершена")
	return nil
}
