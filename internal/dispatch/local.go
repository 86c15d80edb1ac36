package dispatch

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/SuryaTanukuT/commerce-backend/internal/events"
)

// HandlerFunc — локальный обработчик конверта
type HandlerFunc func(ctx context.Context, env events.Envelope) error

// LocalInvoker исполняет обработчики in-process вместо AWS Lambda.
// Семантика та же: InvokeAsync возвращается после приёма, обработка
// идёт в отдельной горутине, её ошибка логируется и не всплывает.
type LocalInvoker struct {
	logger   *zap.Logger
	handlers map[string]HandlerFunc
	wg       sync.WaitGroup
}

// NewLocalInvoker создаёт invoker с пустым реестром функций
func NewLocalInvoker(logger *zap.Logger) *LocalInvoker {
	return &LocalInvoker{
		logger:   logger,
		handlers: make(map[string]HandlerFunc),
	}
}

// Register связывает имя функции с обработчиком.
// Вызывается на этапе сборки приложения, до первых инвокаций.
func (i *LocalInvoker) Register(function string, handler HandlerFunc) {
	i.handlers[function] = handler
}

// InvokeAsync декодирует payload и запускает обработчик в горутине
func (i *LocalInvoker) InvokeAsync(ctx context.Context, function string, payload []byte) error {
	handler, ok := i.handlers[function]
	if !ok {
		return fmt.Errorf("unknown function %s", function)
	}

	env, err := events.Decode(payload)
	if err != nil {
		return fmt.Errorf("decode payload for %s: %w", function, err)
	}

	i.wg.Add(1)
	go func() {
		defer i.wg.Done()
		if err := handler(ctx, env); err != nil {
			i.logger.Error("local invocation failed",
				zap.Error(err),
				zap.String("function", function),
				zap.String("correlation_id", env.CorrelationID),
			)
		}
	}()

	return nil
}

// Wait блокируется до завершения всех запущенных инвокаций
func (i *LocalInvoker) Wait() {
	i.wg.Wait()
}
