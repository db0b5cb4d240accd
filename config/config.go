package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"storefront-service/internal/database"

	"go.uber.org/zap"
)

type Config struct {
	Env      string
	Port     string
	GRPCPort string // пусто — gRPC не поднимаем

	Storage  Storage
	DB       DB
	Prefs    Prefs
	Redis    Redis
	Session  Session
	Admin    Admin
	Checkout Checkout
	Kafka    Kafka
	SMTP     SMTP
	Proof    Proof
}

// Storage выбирает хранилище каталога и заказов: memory или postgres.
type Storage struct {
	Driver   string
	SeedDemo bool
}

type DB struct {
	database.Config
}

type Prefs struct {
	Driver string // memory или redis
	TTL    time.Duration
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Session struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration

	// как часто удалять корзины и мастера неактивных сессий
	CleanupInterval time.Duration
}

type Admin struct {
	Username    string
	Password    string
	NotifyEmail string
}

type Checkout struct {
	SubmitDelay time.Duration
	MaxRetries  int
}

type Kafka struct {
	Brokers     []string
	TopicOrders string
	GroupID     string
}

type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	SSL      bool
}

type Proof struct {
	CloudinaryURL string
	MaxBytes      int64
}

func (k Kafka) Enabled() bool { return len(k.Brokers) > 0 }

func (s SMTP) Enabled() bool { return s.Host != "" }

func Load(log *zap.Logger) *Config {
	cfg := &Config{
		Env:      getEnvDefault("ENV", "production"),
		Port:     getEnvDefault("APP_PORT", ":8080"),
		GRPCPort: getEnvDefault("GRPC_PORT", ""),
		Storage: Storage{
			Driver:   strings.ToLower(getEnvDefault("STORAGE_DRIVER", "memory")),
			SeedDemo: getEnvDefault("SEED_DEMO_DATA", "true") == "true",
		},
		Prefs: Prefs{
			Driver: strings.ToLower(getEnvDefault("PREFS_DRIVER", "memory")),
			TTL:    parseDurationWithDays(getEnvDefault("PREFS_TTL", "30d")),
		},
		Session: Session{
			Secret:   getEnv("SESSION_SECRET", log),
			Issuer:   getEnvDefault("SESSION_ISSUER", "storefront"),
			Audience: getEnvDefault("SESSION_AUDIENCE", "storefront-web"),
			TTL:      parseDurationWithDays(getEnvDefault("SESSION_TTL", "30d")),

			CleanupInterval: parseDurationWithDays(getEnvDefault("SESSION_CLEANUP_INTERVAL", "1h")),
		},
		Admin: Admin{
			Username:    getEnvDefault("ADMIN_USERNAME", "admin"),
			Password:    getEnvDefault("ADMIN_PASSWORD", "admin123"),
			NotifyEmail: getEnvDefault("ADMIN_NOTIFY_EMAIL", ""),
		},
		Checkout: Checkout{
			SubmitDelay: parseDurationWithDays(getEnvDefault("CHECKOUT_SUBMIT_DELAY", "2s")),
			MaxRetries:  atoiDefault(getEnvDefault("CHECKOUT_MAX_RETRIES", ""), 3),
		},
		Kafka: Kafka{
			Brokers:     splitAndTrim(getEnvDefault("KAFKA_BROKERS", "")),
			TopicOrders: getEnvDefault("KAFKA_TOPIC_ORDERS", "storefront.orders"),
			GroupID:     getEnvDefault("KAFKA_GROUP_ID", "storefront-notifier"),
		},
		SMTP: SMTP{
			Host:     getEnvDefault("SMTP_HOST", ""),
			Port:     atoiDefault(getEnvDefault("SMTP_PORT", ""), 465),
			User:     getEnvDefault("SMTP_USER", ""),
			Password: getEnvDefault("SMTP_PASSWORD", ""),
			From:     getEnvDefault("SMTP_FROM", ""),
			SSL:      getEnvDefault("SMTP_SSL", "true") == "true",
		},
		Proof: Proof{
			CloudinaryURL: getEnvDefault("CLOUDINARY_URL", ""),
			MaxBytes:      int64(atoiDefault(getEnvDefault("PROOF_MAX_BYTES", ""), 5<<20)),
		},
	}

	// БД и Redis обязательны только для соответствующих драйверов
	if cfg.Storage.Driver == "postgres" {
		cfg.DB = DB{Config: database.Config{
			Host:     getEnv("DB_HOST", log),
			Port:     getEnv("DB_PORT", log),
			User:     getEnv("DB_USER", log),
			Password: getEnv("DB_PASSWORD", log),
			Name:     getEnv("DB_NAME", log),
			SSLMode:  getEnvDefault("DB_SSLMODE", "disable"),
		}}
	}
	if cfg.Prefs.Driver == "redis" {
		cfg.Redis = Redis{
			Addr:     getEnv("REDIS_ADDR", log),
			Password: getEnvDefault("REDIS_PASSWORD", ""),
			DB:       atoiDefault(getEnvDefault("REDIS_DB", ""), 0),
		}
	}
	if cfg.Session.TTL <= 0 {
		log.Warn("SESSION_TTL не распознан, используем 30d")
		cfg.Session.TTL = 30 * 24 * time.Hour
	}
	if cfg.Session.CleanupInterval <= 0 {
		log.Warn("SESSION_CLEANUP_INTERVAL не распознан, используем 1h")
		cfg.Session.CleanupInterval = time.Hour
	}
	return cfg
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return def
}

func parseDurationWithDays(s string) time.Duration {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			log.Printf("Ошибка парсинга TTL: %v", err)
			return 0
		}
		return time.Duration(days) * 24 * time.Hour
	}

	duration, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return duration
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func splitAndTrim(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
