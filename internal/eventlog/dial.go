package eventlog

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// CheckBrokers проверяет доступность хотя бы одного брокера с ограниченным
// таймаутом. Используется сервисами при старте: неудача — конфигурационная
// проблема клиента лога, но НЕ повод падать сервису. Зависимый сервис
// обязан деградировать до синхронного режима, пометив consumer как
// "not started" в своём health.
func CheckBrokers(ctx context.Context, brokers []string, timeout time.Duration) error {
	if len(brokers) == 0 {
		return fmt.Errorf("no kafka brokers configured")
	}

	dialer := &kafka.Dialer{Timeout: timeout}

	var lastErr error
	for _, addr := range brokers {
		dialCtx, cancel := context.WithTimeout(ctx, timeout)
		conn, err := dialer.DialContext(dialCtx, "tcp", addr)
		cancel()
		if err != nil {
			lastErr = err
			continue
		}
		conn.Close()
		return nil
	}

	return fmt.Errorf("no kafka broker reachable: %w", lastErr)
}
