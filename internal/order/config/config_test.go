package config

import (
	"os"
	"testing"
)

func TestLoad_LocalDefaults(t *testing.T) {
	// Очищаем env
	os.Clearenv()
	os.Setenv("APP_ENV", "local")
	os.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.AppEnv != EnvLocal {
		t.Errorf("Expected AppEnv=local, got %s", cfg.AppEnv)
	}
	if cfg.HTTPAddr != "127.0.0.1:3003" {
		t.Errorf("Expected HTTPAddr=127.0.0.1:3003, got %s", cfg.HTTPAddr)
	}
	if cfg.MongoURI != "mongodb://127.0.0.1:27017" {
		t.Errorf("Expected MongoURI=mongodb://127.0.0.1:27017, got %s", cfg.MongoURI)
	}
	if len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.Brokers[0] != "localhost:19092" {
		t.Errorf("Expected Kafka.Brokers=[localhost:19092], got %v", cfg.Kafka.Brokers)
	}
	if cfg.Kafka.OrderTopic != "order.events" {
		t.Errorf("Expected OrderTopic=order.events, got %s", cfg.Kafka.OrderTopic)
	}
	if cfg.Kafka.PaymentTopic != "payment.events" {
		t.Errorf("Expected PaymentTopic=payment.events, got %s", cfg.Kafka.PaymentTopic)
	}
}

func TestLoad_DockerDefaults(t *testing.T) {
	// Очищаем env
	os.Clearenv()
	os.Setenv("APP_ENV", "docker")
	os.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.AppEnv != EnvDocker {
		t.Errorf("Expected AppEnv=docker, got %s", cfg.AppEnv)
	}
	if cfg.HTTPAddr != "0.0.0.0:3003" {
		t.Errorf("Expected HTTPAddr=0.0.0.0:3003, got %s", cfg.HTTPAddr)
	}
	if cfg.MongoURI != "mongodb://mongo:27017" {
		t.Errorf("Expected MongoURI=mongodb://mongo:27017, got %s", cfg.MongoURI)
	}
	if len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.Brokers[0] != "kafka:9092" {
		t.Errorf("Expected Kafka.Brokers=[kafka:9092], got %v", cfg.Kafka.Brokers)
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_ENV", "local")

	if _, err := Load(); err == nil {
		t.Error("Expected error when JWT_SECRET is missing")
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_ENV", "staging")

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid APP_ENV")
	}
}
