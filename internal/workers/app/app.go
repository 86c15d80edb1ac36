package app

import (
	"context"
	"fmt"
	"os"
	"sync"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"go.uber.org/zap"

	"github.com/SuryaTanukuT/commerce-backend/internal/dispatch"
	"github.com/SuryaTanukuT/commerce-backend/internal/eventlog"
	"github.com/SuryaTanukuT/commerce-backend/internal/notification"
	"github.com/SuryaTanukuT/commerce-backend/internal/payment"
	"github.com/SuryaTanukuT/commerce-backend/internal/workers/config"
	platformlogging "github.com/SuryaTanukuT/commerce-backend/platform/logging"
	platformshutdown "github.com/SuryaTanukuT/commerce-backend/platform/shutdown"
)

// App содержит все зависимости для запуска и корректного shutdown воркеров
type App struct {
	logger      *zap.Logger
	workers     []*dispatch.Worker
	shutdownMgr *platformshutdown.Manager

	workersCancel context.CancelFunc
	wg            sync.WaitGroup
}

// Build создаёт и настраивает воркеры диспатча.
// В отличие от order сервиса, деградированного режима нет: воркер без
// брокера бесполезен, недоступная Kafka на старте — фатальная ошибка.
func Build(cfg config.Config) (*App, error) {
	const op = "app.Build"

	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: "workers",
		Env:         string(cfg.AppEnv),
		Level:       os.Getenv("LOG_LEVEL"),
		Format:      os.Getenv("LOG_FORMAT"),
	})
	if err != nil {
		return nil, err
	}

	logger = logger.With(zap.String("op", op))
	logger.Info("Building dispatch workers",
		zap.Strings("kafka_brokers", cfg.Kafka.Brokers),
		zap.String("order_topic", cfg.Kafka.OrderTopic),
		zap.String("payment_topic", cfg.Kafka.PaymentTopic),
		zap.String("invoker_mode", string(cfg.InvokerMode)),
	)

	if err := eventlog.CheckBrokers(context.Background(), cfg.Kafka.Brokers, cfg.KafkaDialTimeout); err != nil {
		return nil, fmt.Errorf("kafka brokers unreachable: %w", err)
	}

	shutdownMgr := platformshutdown.New(cfg.ShutdownTimeout, logger)

	invoker, err := buildInvoker(cfg, logger, shutdownMgr)
	if err != nil {
		return nil, err
	}

	// Пара топик→функция на воркер; группы разные, у каждой функции
	// собственный курсор в своём топике
	paymentWorker := dispatch.NewWorker(
		logger,
		cfg.Kafka.Brokers,
		cfg.PaymentGroupID,
		cfg.Kafka.OrderTopic,
		cfg.PaymentFunction,
		invoker,
	)
	notificationWorker := dispatch.NewWorker(
		logger,
		cfg.Kafka.Brokers,
		cfg.NotificationGroupID,
		cfg.Kafka.PaymentTopic,
		cfg.NotificationFunction,
		invoker,
	)

	shutdownMgr.Add("payment_worker", platformshutdown.CloseCloser(paymentWorker))
	shutdownMgr.Add("notification_worker", platformshutdown.CloseCloser(notificationWorker))

	return &App{
		logger:      logger,
		workers:     []*dispatch.Worker{paymentWorker, notificationWorker},
		shutdownMgr: shutdownMgr,
	}, nil
}

// buildInvoker собирает invoker согласно режиму из конфигурации
func buildInvoker(cfg config.Config, logger *zap.Logger, shutdownMgr *platformshutdown.Manager) (dispatch.Invoker, error) {
	if cfg.InvokerMode == config.InvokerLambda {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		logger.Info("using lambda invoker",
			zap.String("payment_function", cfg.PaymentFunction),
			zap.String("notification_function", cfg.NotificationFunction),
		)
		return dispatch.NewLambdaInvoker(logger, lambda.NewFromConfig(awsCfg)), nil
	}

	// Local-режим: обработчики собираются in-process и регистрируются
	// в invoker-е под теми же именами функций
	publisher := eventlog.NewPublisher(logger, cfg.Kafka.Brokers)
	shutdownMgr.Add("event_publisher", platformshutdown.CloseCloser(publisher))

	paymentProcessor := payment.NewProcessor(logger, publisher, cfg.Kafka.PaymentTopic)

	var sender notification.Sender
	if cfg.NotifyFrom != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		sender = notification.NewSESSender(logger, sesv2.NewFromConfig(awsCfg), cfg.NotifyFrom)
	} else {
		logger.Info("NOTIFY_FROM is empty, notifications will be logged only")
		sender = notification.NewLogSender(logger)
	}
	notificationProcessor := notification.NewProcessor(logger, sender, cfg.NotifyRecipient)

	invoker := dispatch.NewLocalInvoker(logger)
	invoker.Register(cfg.PaymentFunction, paymentProcessor.Handle)
	invoker.Register(cfg.NotificationFunction, notificationProcessor.Handle)

	shutdownMgr.Add("local_invoker", func(ctx context.Context) error {
		invoker.Wait()
		return nil
	})

	logger.Info("using local invoker",
		zap.String("payment_function", cfg.PaymentFunction),
		zap.String("notification_function", cfg.NotificationFunction),
	)

	return invoker, nil
}

// Run запускает воркеры и блокируется до получения сигнала shutdown
func (a *App) Run() error {
	defer platformlogging.Sync(a.logger)

	a.logger.Info("Starting dispatch workers", zap.Int("workers", len(a.workers)))

	workersCtx, cancel := context.WithCancel(context.Background())
	a.workersCancel = cancel

	for _, w := range a.workers {
		w := w
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			if err := w.Run(workersCtx); err != nil {
				a.logger.Error("dispatch worker error", zap.Error(err))
			}
		}()
	}

	a.shutdownMgr.Wait()

	a.workersCancel()
	a.wg.Wait()
	a.logger.Info("Dispatch workers stopped")
	return nil
}
