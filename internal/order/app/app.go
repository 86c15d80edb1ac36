package app

import (
	"context"
	"net/http"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/SuryaTanukuT/commerce-backend/internal/eventlog"
	httpapi "github.com/SuryaTanukuT/commerce-backend/internal/order/api/http"
	"github.com/SuryaTanukuT/commerce-backend/internal/order/config"
	orderkafka "github.com/SuryaTanukuT/commerce-backend/internal/order/event/kafka"
	mongorepo "github.com/SuryaTanukuT/commerce-backend/internal/order/repository/mongo"
	"github.com/SuryaTanukuT/commerce-backend/internal/order/service"
	platformhealth "github.com/SuryaTanukuT/commerce-backend/platform/health"
	platformlogging "github.com/SuryaTanukuT/commerce-backend/platform/logging"
	platformshutdown "github.com/SuryaTanukuT/commerce-backend/platform/shutdown"
)

// App содержит все зависимости для запуска и корректного shutdown Order Service
type App struct {
	logger          *zap.Logger
	httpServer      *http.Server
	paymentConsumer *eventlog.Consumer // nil, если Kafka недоступна на старте
	shutdownMgr     *platformshutdown.Manager

	consumerCancel context.CancelFunc
	wg             sync.WaitGroup
}

// Build создаёт и настраивает все зависимости Order Service.
// Mongo обязателен; Kafka — нет: при недоступном брокере сервис
// деградирует до синхронного request/response режима, consumer
// помечается как not started, health отражает деградацию.
func Build(cfg config.Config) (*App, error) {
	const op = "app.Build"

	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: "order",
		Env:         string(cfg.AppEnv),
		Level:       os.Getenv("LOG_LEVEL"),
		Format:      os.Getenv("LOG_FORMAT"),
	})
	if err != nil {
		return nil, err
	}

	logger = logger.With(zap.String("op", op))
	logger.Info("Building Order service",
		zap.String("http_addr", cfg.HTTPAddr),
		zap.Strings("kafka_brokers", cfg.Kafka.Brokers),
		zap.String("order_topic", cfg.Kafka.OrderTopic),
		zap.String("payment_topic", cfg.Kafka.PaymentTopic),
	)

	// Подключаемся к MongoDB (обязательная зависимость)
	logger.Info("Connecting to MongoDB")
	mongoCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(mongoCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	if err := mongoClient.Ping(mongoCtx, nil); err != nil {
		_ = mongoClient.Disconnect(context.Background())
		return nil, err
	}
	logger.Info("MongoDB connection established")

	mongoReady := func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return mongoClient.Ping(ctx, nil) == nil
	}

	orderRepo := mongorepo.NewRepository(mongoClient, cfg.MongoDB)

	// Проверяем доступность Kafka с ограниченным таймаутом.
	// Неудача не фатальна: create-путь продолжает работать.
	kafkaReady := false
	if err := eventlog.CheckBrokers(context.Background(), cfg.Kafka.Brokers, cfg.KafkaDialTimeout); err != nil {
		logger.Warn("kafka brokers unreachable, payment consumer not started; serving request/response only",
			zap.Error(err),
		)
	} else {
		kafkaReady = true
	}

	// Publisher создаётся всегда: writer ленивый, а неудачная публикация
	// на create-пути — best-effort (логируется, клиенту не мешает)
	publisher := eventlog.NewPublisher(logger, cfg.Kafka.Brokers)
	orderPublisher := orderkafka.NewOrderCreatedPublisher(logger, publisher, cfg.Kafka.OrderTopic)

	orderService := service.NewOrderService(logger, orderRepo, orderPublisher)

	// Consumer исходов оплаты — только при доступном брокере
	var paymentConsumer *eventlog.Consumer
	if kafkaReady {
		paymentConsumer = eventlog.NewConsumer(
			logger,
			cfg.Kafka.Brokers,
			cfg.ConsumerGroupID,
			cfg.Kafka.PaymentTopic,
			orderService.HandlePaymentOutcome,
		)
	}

	consumerStarted := paymentConsumer != nil
	healthChecks := []platformhealth.Check{
		{Name: "mongo", Required: true, Ready: mongoReady},
		{Name: "kafka_consumer", Required: false, Ready: func() bool { return consumerStarted }},
	}

	handler := httpapi.NewHandler(logger, orderService)
	router := httpapi.NewRouter(handler, cfg.JWTSecret, healthChecks)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownMgr := platformshutdown.New(cfg.ShutdownTimeout, logger)
	shutdownMgr.Add("mongo", platformshutdown.DisconnectMongo(mongoClient))
	shutdownMgr.Add("event_publisher", platformshutdown.CloseCloser(publisher))
	if paymentConsumer != nil {
		shutdownMgr.Add("payment_consumer", platformshutdown.CloseCloser(paymentConsumer))
	}
	shutdownMgr.Add("http_server", platformshutdown.ShutdownHTTPServer(httpServer))

	return &App{
		logger:          logger,
		httpServer:      httpServer,
		paymentConsumer: paymentConsumer,
		shutdownMgr:     shutdownMgr,
	}, nil
}

// Run запускает сервис и блокируется до получения сигнала shutdown
func (a *App) Run() error {
	defer platformlogging.Sync(a.logger)

	a.logger.Info("Starting Order service", zap.String("addr", a.httpServer.Addr))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	if a.paymentConsumer != nil {
		consumerCtx, cancel := context.WithCancel(context.Background())
		a.consumerCancel = cancel

		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			if err := a.paymentConsumer.Start(consumerCtx); err != nil {
				a.logger.Error("payment consumer error", zap.Error(err))
			}
		}()
	}

	a.shutdownMgr.Wait()

	if a.consumerCancel != nil {
		a.consumerCancel()
	}

	a.wg.Wait()
	a.logger.Info("Order service stopped")
	return nil
}
