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

// InvokerMode определяет, как воркеры инвоцируют функции-обработчики
type InvokerMode string

const (
	// InvokerLocal - обработчики исполняются in-process
	InvokerLocal InvokerMode = "local"
	// InvokerLambda - обработчики вызываются как AWS Lambda функции
	InvokerLambda InvokerMode = "lambda"
)

// Config содержит конфигурацию Dispatch Workers
type Config struct {
	AppEnv Env

	Kafka            platformkafka.Config
	KafkaDialTimeout time.Duration

	InvokerMode InvokerMode

	// Имена функций-обработчиков (имя или ARN в lambda-режиме)
	PaymentFunction      string
	NotificationFunction string

	// Consumer group per-функция: каждая функция ведёт свой курсор
	PaymentGroupID      string
	NotificationGroupID string

	// Уведомления: фиксированный получатель и адрес отправителя SES.
	// Пустой NotifyFrom в local-режиме означает log-only канал.
	NotifyRecipient string
	NotifyFrom      string

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

	// Kafka: брокеры и топики из общих переменных платформы
	cfg.Kafka = platformkafka.DefaultConfig()
	if cfg.AppEnv == EnvDocker {
		cfg.Kafka.Brokers = []string{"kafka:9092"}
	}
	if err := platformkafka.LoadEnv(&cfg.Kafka); err != nil {
		return Config{}, fmt.Errorf("invalid kafka env: %w", err)
	}

	dialTimeoutStr := getString("KAFKA_DIAL_TIMEOUT", "10s")
	dialTimeout, err := time.ParseDuration(dialTimeoutStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid KAFKA_DIAL_TIMEOUT: %w", err)
	}
	cfg.KafkaDialTimeout = dialTimeout

	modeStr := getString("INVOKER_MODE", string(InvokerLocal))
	mode := InvokerMode(modeStr)
	if mode != InvokerLocal && mode != InvokerLambda {
		return Config{}, fmt.Errorf("invalid INVOKER_MODE: %s (must be 'local' or 'lambda')", modeStr)
	}
	cfg.InvokerMode = mode

	cfg.PaymentFunction = getString("PAYMENT_FUNCTION", "payment-processor")
	cfg.NotificationFunction = getString("NOTIFICATION_FUNCTION", "notification-processor")

	cfg.PaymentGroupID = getString("PAYMENT_GROUP_ID", "ecommerce-payment-dispatch")
	cfg.NotificationGroupID = getString("NOTIFICATION_GROUP_ID", "ecommerce-notification-dispatch")

	cfg.NotifyRecipient = getString("NOTIFY_RECIPIENT", "")
	cfg.NotifyFrom = getString("NOTIFY_FROM", "")

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
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}
	if c.PaymentFunction == "" {
		return fmt.Errorf("PAYMENT_FUNCTION is required")
	}
	if c.NotificationFunction == "" {
		return fmt.Errorf("NOTIFICATION_FUNCTION is required")
	}
	if c.PaymentGroupID == c.NotificationGroupID {
		return fmt.Errorf("PAYMENT_GROUP_ID and NOTIFICATION_GROUP_ID must differ")
	}
	if c.InvokerMode == InvokerLocal && c.NotifyRecipient == "" {
		return fmt.Errorf("NOTIFY_RECIPIENT is required in local invoker mode")
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
