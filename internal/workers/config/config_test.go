package config

import (
	"os"
	"testing"
)

func TestLoad_LocalDefaults(t *testing.T) {
	// Очищаем env
	os.Clearenv()
	os.Setenv("APP_ENV", "local")
	os.Setenv("NOTIFY_RECIPIENT", "ops@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.AppEnv != EnvLocal {
		t.Errorf("Expected AppEnv=local, got %s", cfg.AppEnv)
	}
	if cfg.InvokerMode != InvokerLocal {
		t.Errorf("Expected InvokerMode=local, got %s", cfg.InvokerMode)
	}
	if len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.Brokers[0] != "localhost:19092" {
		t.Errorf("Expected Kafka.Brokers=[localhost:19092], got %v", cfg.Kafka.Brokers)
	}
	if cfg.PaymentFunction != "payment-processor" {
		t.Errorf("Expected PaymentFunction=payment-processor, got %s", cfg.PaymentFunction)
	}
	if cfg.NotificationFunction != "notification-processor" {
		t.Errorf("Expected NotificationFunction=notification-processor, got %s", cfg.NotificationFunction)
	}
	if cfg.PaymentGroupID == cfg.NotificationGroupID {
		t.Error("Expected distinct consumer groups per function")
	}
}

func TestLoad_DockerDefaults(t *testing.T) {
	// Очищаем env
	os.Clearenv()
	os.Setenv("APP_ENV", "docker")
	os.Setenv("NOTIFY_RECIPIENT", "ops@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.AppEnv != EnvDocker {
		t.Errorf("Expected AppEnv=docker, got %s", cfg.AppEnv)
	}
	if len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.Brokers[0] != "kafka:9092" {
		t.Errorf("Expected Kafka.Brokers=[kafka:9092], got %v", cfg.Kafka.Brokers)
	}
}

func TestLoad_LocalModeRequiresRecipient(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_ENV", "local")
	os.Setenv("INVOKER_MODE", "local")

	if _, err := Load(); err == nil {
		t.Error("Expected error when NOTIFY_RECIPIENT is missing in local mode")
	}
}

func TestLoad_InvalidInvokerMode(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_ENV", "local")
	os.Setenv("INVOKER_MODE", "remote")

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid INVOKER_MODE")
	}
}
