package main

import (
	"context"
	"os"
	"time"

	"storefront-service/config"
	"storefront-service/internal/database"
	"storefront-service/internal/logger"
	"storefront-service/internal/migrate"
	"storefront-service/internal/repository"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	// миграции имеют смысл только для postgres
	_ = os.Setenv("STORAGE_DRIVER", "postgres")
	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	ctx := context.Background()
	opts := migrate.DefaultMigrateOptions()

	if err := migrate.MigrateStoreDB(ctx, db, log, opts); err != nil {
		log.Fatal("Ошибка при выполнении миграции", zap.Error(err))
	}
	log.Info("Миграция успешно завершена")

	if cfg.Storage.SeedDemo {
		if err := repository.Seed(ctx, repository.New(db), time.Now()); err != nil {
			log.Fatal("Ошибка при заполнении демо-данных", zap.Error(err))
		}
		log.Info("Демо-данные загружены")
	}
}
