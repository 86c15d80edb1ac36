package config

import (
	"fmt"
	"os"
	"time"

	platformkafka "github.com/SuryaTanukuT/commerce-backend/platform/kafka"
)

// Env представляет окружение приложения
type Env string

const (
	// EnvLocal - локальное окружение (для разработки на хосте)
	EnvLocal Env = "local"
	// EnvDocker - Docker окружение (для запуска в контейнерах)
	EnvDocker Env = "docker"
)

// Config содержит конфигурацию Order Service
type Config struct {
	AppEnv   Env
	HTTPAddr string

	MongoURI string
	MongoDB  string

	JWTSecret string

	Kafka            platformkafka.Config
	ConsumerGroupID  string
	KafkaDialTimeout time.Duration

	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения
func Load() (Config, error) {
	cfg := Config{}

	appEnvStr := getString("APP_ENV", string(EnvLocal))
	appEnv := Env(appEnvStr)
	if appEnv != EnvLocal && appEnv != EnvDocker {
		return Config{}, fmt.Errorf("invalid APP_ENV: %s (must be 'local' or 'docker')", appEnvStr)
	}
	cfg.AppEnv = appEnv

	if cfg.AppEnv == EnvLocal {
		cfg.HTTPAddr = getString("HTTP_ADDR", "127.0.0.1:3003")
	} else {
		cfg.HTTPAddr = getString("HTTP_ADDR", "0.0.0.0:3003")
	}

	if cfg.AppEnv == EnvLocal {
		cfg.MongoURI = getString("MONGO_ORDER_URI", "mongodb://127.0.0.1:27017")
	} else {
		cfg.MongoURI = getString("MONGO_ORDER_URI", "mongodb://mongo:27017")
	}
	cfg.MongoDB = getString("MONGO_ORDER_DB", "orders")

	cfg.JWTSecret = getString("JWT_SECRET", "")

	// Kafka: брокеры и топики из общих переменных платформы
	cfg.Kafka = platformkafka.DefaultConfig()
	if cfg.AppEnv == EnvDocker {
		cfg.Kafka.Brokers = []string{"kafka:9092"}
	}
	if err := platformkafka.LoadEnv(&cfg.Kafka); err != nil {
		return Config{}, fmt.Errorf("invalid kafka env: %w", err)
	}

	cfg.ConsumerGroupID = getString("KAFKA_GROUP_ID", "ecommerce-order-service")

	dialTimeoutStr := getString("KAFKA_DIAL_TIMEOUT", "10s")
	dialTimeout, err := time.ParseDuration(dialTimeoutStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid KAFKA_DIAL_TIMEOUT: %w", err)
	}
	cfg.KafkaDialTimeout = dialTimeout

	shutdownTimeoutStr := getString("SHUTDOWN_TIMEOUT", "10s")
	shutdownTimeout, err := time.ParseDuration(shutdownTimeoutStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.ShutdownTimeout = shutdownTimeout

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_ORDER_URI is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// getString читает переменную окружения или возвращает дефолт
func getString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
