package app

import (
	"context"
	"net/http"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	httpapi "github.com/SuryaTanukuT/commerce-backend/internal/user/api/http"
	"github.com/SuryaTanukuT/commerce-backend/internal/user/config"
	mongorepo "github.com/SuryaTanukuT/commerce-backend/internal/user/repository/mongo"
	"github.com/SuryaTanukuT/commerce-backend/internal/user/service"
	platformhealth "github.com/SuryaTanukuT/commerce-backend/platform/health"
	platformlogging "github.com/SuryaTanukuT/commerce-backend/platform/logging"
	platformshutdown "github.com/SuryaTanukuT/commerce-backend/platform/shutdown"
)

// App содержит все зависимости для запуска и корректного shutdown User Service
type App struct {
	logger      *zap.Logger
	httpServer  *http.Server
	shutdownMgr *platformshutdown.Manager
}

// Build создаёт и настраивает все зависимости User Service
func Build(cfg config.Config) (*App, error) {
	const op = "app.Build"

	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: "user",
		Env:         string(cfg.AppEnv),
		Level:       os.Getenv("LOG_LEVEL"),
		Format:      os.Getenv("LOG_FORMAT"),
	})
	if err != nil {
		return nil, err
	}

	logger = logger.With(zap.String("op", op))
	logger.Info("Building User service", zap.String("http_addr", cfg.HTTPAddr))

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

	userRepo := mongorepo.NewRepository(mongoClient, cfg.MongoDB)
	if err := userRepo.EnsureIndexes(mongoCtx); err != nil {
		_ = mongoClient.Disconnect(context.Background())
		return nil, err
	}

	userService := service.NewUserService(logger, userRepo, cfg.JWTSecret)

	healthChecks := []platformhealth.Check{
		{Name: "mongo", Required: true, Ready: mongoReady},
	}

	handler := httpapi.NewHandler(logger, userService)
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
	shutdownMgr.Add("http_server", platformshutdown.ShutdownHTTPServer(httpServer))

	return &App{
		logger:      logger,
		httpServer:  httpServer,
		shutdownMgr: shutdownMgr,
	}, nil
}

// Run запускает сервис и блокируется до получения сигнала shutdown
func (a *App) Run() error {
	defer platformlogging.Sync(a.logger)

	a.logger.Info("Starting User service", zap.String("addr", a.httpServer.Addr))

	go func() {
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	a.shutdownMgr.Wait()
	a.logger.Info("User service stopped")
	return nil
}
