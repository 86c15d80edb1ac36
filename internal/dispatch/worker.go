package dispatch

import (
	"context"

	"go.uber.org/zap"

	"github.com/SuryaTanukuT/commerce-backend/internal/eventlog"
	"github.com/SuryaTanukuT/commerce-backend/internal/events"
)

// Worker читает один топик консьюмер-группой и транслирует каждый
// конверт в асинхронную инвокацию одной функции
type Worker struct {
	logger   *zap.Logger
	consumer *eventlog.Consumer
	invoker  Invoker
	function string
}

// NewWorker создаёт worker для пары топик→функция.
// groupID должен быть уникален per-функция: каждая функция-подписчик
// получает собственный курсор в топике.
func NewWorker(logger *zap.Logger, brokers []string, groupID, topic, function string, invoker Invoker) *Worker {
	w := &Worker{
		logger:   logger,
		invoker:  invoker,
		function: function,
	}
	w.consumer = eventlog.NewConsumer(logger, brokers, groupID, topic, w.dispatch)
	return w
}

// Run запускает pull-loop и блокируется до отмены контекста
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("starting dispatch worker",
		zap.String("function", w.function),
	)
	return w.consumer.Start(ctx)
}

// dispatch передаёт конверт invoker-у. Неуспех диспатча логируется и
// событие коммитится: луп не должен заклинивать на событии, которое
// invoker не принимает, а сама обработка ретраится на стороне функции.
func (w *Worker) dispatch(ctx context.Context, env events.Envelope) error {
	payload, err := env.Encode()
	if err != nil {
		w.logger.Error("failed to encode envelope for dispatch",
			zap.Error(err),
			zap.String("function", w.function),
		)
		return nil
	}

	if err := w.invoker.InvokeAsync(ctx, w.function, payload); err != nil {
		w.logger.Error("failed to dispatch event",
			zap.Error(err),
			zap.String("function", w.function),
			zap.String("event_type", string(env.Type)),
			zap.String("correlation_id", env.CorrelationID),
		)
		return nil
	}

	w.logger.Debug("event dispatched",
		zap.String("function", w.function),
		zap.String("event_type", string(env.Type)),
		zap.String("correlation_id", env.CorrelationID),
	)

	return nil
}

// Close закрывает нижележащий consumer
func (w *Worker) Close() error {
	return w.consumer.Close()
}
