package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/config"
	_ "storefront-service/docs"
	"storefront-service/internal/cache"
	"storefront-service/internal/cart"
	"storefront-service/internal/checkout"
	"storefront-service/internal/cleanup"
	"storefront-service/internal/consumer"
	"storefront-service/internal/database"
	"storefront-service/internal/hashing"
	"storefront-service/internal/i18n"
	"storefront-service/internal/logger"
	"storefront-service/internal/notify"
	"storefront-service/internal/prefs"
	"storefront-service/internal/producer"
	"storefront-service/internal/proof"
	"storefront-service/internal/repository"
	"storefront-service/internal/router"
	"storefront-service/internal/service"
	"storefront-service/internal/token"
	gtransport "storefront-service/internal/transport/grpc"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @Title ROlPIN Storefront API
// @Version 1.0
// @Description Витрина магазина: каталог, корзина, оформление заказа и панель администратора
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	if !isDev {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := i18n.Validate(); err != nil {
		log.Fatal("Неполный словарь сообщений", zap.Error(err))
	}

	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	var repo *repository.Repository
	switch cfg.Storage.Driver {
	case "postgres":
		db := database.ConnectDB(&cfg.DB.Config, log)
		defer database.CloseDB(db, log)
		repo = repository.New(db)
		if cfg.Storage.SeedDemo {
			if err := repository.Seed(bgCtx, repo, time.Now()); err != nil {
				log.Fatal("Не удалось заполнить демо-данные", zap.Error(err))
			}
		}
	default:
		repo = repository.NewMemory(cfg.Storage.SeedDemo)
		log.Info("Используется хранилище в памяти", zap.Bool("seed", cfg.Storage.SeedDemo))
	}

	var kv prefs.KV
	if cfg.Prefs.Driver == "redis" {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal("failed to create redis client", zap.Error(err))
		}
		defer redisClient.Close()
		kv = prefs.NewRedisStore(redisClient, cfg.Prefs.TTL)
		log.Info("Preferences stored in redis")
	} else {
		kv = prefs.NewMemoryStore()
		log.Info("Preferences stored in memory")
	}
	prefsSvc := prefs.NewService(kv)

	hasher := hashing.NewBcrypt(0)
	adminHash, err := hasher.Hash(cfg.Admin.Password)
	if err != nil {
		log.Fatal("failed to hash admin password", zap.Error(err))
	}
	tokens := token.NewHSProvider(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.Audience)

	authSvc := service.NewAuthService(
		service.AuthConfig{
			AdminUsername:     cfg.Admin.Username,
			AdminPasswordHash: adminHash,
			SessionTTL:        cfg.Session.TTL,
		},
		hasher, tokens, prefsSvc, log,
	)

	var buses service.EventBuses

	var notifier *notify.EmailNotifier
	if cfg.SMTP.Enabled() && cfg.Admin.NotifyEmail != "" {
		notifier = notify.NewEmailNotifier(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			SSL:      cfg.SMTP.SSL,
		}, cfg.Admin.NotifyEmail, log)
		log.Info("Email notifications enabled", zap.String("to", cfg.Admin.NotifyEmail))
	}

	var orderConsumer *consumer.OrderEventConsumer
	if cfg.Kafka.Enabled() {
		orderProducer := producer.NewOrderEventProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrders)
		defer orderProducer.Close()
		buses = append(buses, orderProducer)
		log.Info("Kafka events enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.TopicOrders))

		// письма шлёт consumer, чтобы они не терялись вместе с процессом
		if notifier != nil {
			orderConsumer = consumer.NewOrderEventConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.TopicOrders, notifier, log)
			defer orderConsumer.Close()
			go func() {
				if err := orderConsumer.Run(bgCtx); err != nil {
					log.Error("kafka consumer stopped", zap.Error(err))
				}
			}()
		}
	} else if notifier != nil {
		buses = append(buses, notifier)
		go notifier.Run(bgCtx)
	}

	var events service.EventBus
	if len(buses) > 0 {
		events = buses
	}

	orderSvc := service.NewOrderService(repo, events, log)
	catalogSvc := service.NewCatalogService(repo, log)
	adminSvc := service.NewAdminService(repo, log)

	var proofs proof.Store
	if cfg.Proof.CloudinaryURL != "" {
		cld, err := proof.NewCloudinaryStore(cfg.Proof.CloudinaryURL, cfg.Proof.MaxBytes)
		if err != nil {
			log.Fatal("failed to init cloudinary", zap.Error(err))
		}
		proofs = cld
		log.Info("Payment proofs uploaded to cloudinary")
	} else {
		proofs = proof.NewMemoryStore(cfg.Proof.MaxBytes)
	}

	opts := checkout.DefaultOptions()
	opts.SubmitDelay = cfg.Checkout.SubmitDelay
	if cfg.Checkout.MaxRetries >= 0 {
		opts.MaxRetries = uint64(cfg.Checkout.MaxRetries)
	}

	carts := cart.NewRegistry()
	wizards := checkout.NewRegistry(orderSvc, proofs, opts, log)

	// сессии без активности дольше SESSION_TTL удаляются вместе с корзиной и черновиком
	scheduler := cleanup.NewScheduler(map[string]cleanup.Expirer{
		"carts":   carts,
		"wizards": wizards,
	}, cfg.Session.TTL, cfg.Session.CleanupInterval, log)
	scheduler.Start(bgCtx)

	r := router.Router(router.Deps{
		Auth:           authSvc,
		Catalog:        catalogSvc,
		Orders:         orderSvc,
		Admin:          adminSvc,
		Prefs:          prefsSvc,
		Carts:          carts,
		Wizards:        wizards,
		Proofs:         proofs,
		MaxUploadBytes: cfg.Proof.MaxBytes,
	}, log)

	httpServer := &http.Server{
		Addr:              cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var grpcServer *gtransport.Server
	if cfg.GRPCPort != "" {
		lis, err := net.Listen("tcp", cfg.GRPCPort)
		if err != nil {
			log.Fatal("failed to listen", zap.Error(err))
		}
		grpcServer = gtransport.NewServer(log)
		go func() {
			log.Info("Starting gRPC server", zap.String("addr", cfg.GRPCPort))
			if err := grpcServer.Serve(lis); err != nil {
				log.Fatal("gRPC server failed", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to run http server", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down...")

	if grpcServer != nil {
		grpcServer.GracefulStop()
	}

	// идущие отправки заказов успевают завершиться
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 35*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}

	scheduler.Stop()
	bgCancel()
	log.Info("Server stopped gracefully")
}
