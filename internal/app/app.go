package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"registration-service/internal/config"
	"registration-service/internal/db"
	"registration-service/internal/health"
	"registration-service/internal/kafka"
	"registration-service/internal/logger"
	"registration-service/internal/mailer"
	"registration-service/internal/messaging"
	"registration-service/internal/metrics"
	"registration-service/internal/middleware"
	"registration-service/internal/registration"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
)

type App struct {
	config   *config.Config
	router   chi.Router
	server   *http.Server
	logger   *slog.Logger
	producer registration.Producer
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses the same handler
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	app := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: slogLogger,
	}

	database := db.New(cfg.Database)

	ctx := context.Background()
	if err := db.RunMigrations(ctx, database, (*registration.Registration)(nil)); err != nil {
		log.Fatal("failed to run migrations:", err)
	}

	m, err := metrics.New(otel.Meter(ServiceName))
	if err != nil {
		log.Fatal("failed to init metrics:", err)
	}

	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(app.router)

	// Confirmation mail is optional: no SMTP host means no mail dispatch.
	var regMailer registration.Mailer
	if cfg.Mail.Host != "" {
		smtp, err := mailer.New(cfg.Mail, slogLogger)
		if err != nil {
			slogLogger.Warn("failed to initialize mailer", "error", err)
		} else {
			regMailer = smtp
		}
	} else {
		slogLogger.Info("mail dispatch disabled (no SMTP host configured)")
	}

	app.producer = newProducer(cfg.Messaging, slogLogger)

	regRepo := registration.NewRepository(database)
	regService := registration.NewService(regRepo, regMailer, app.producer, slogLogger, m)
	regHandler := registration.NewHandler(regService, slogLogger, m)

	app.router.Route("/api", func(r chi.Router) {
		regHandler.RegisterRoutes(r)
	})

	slogLogger.Info("application initialized successfully")

	return app
}

// newProducer picks the event broker from config. A broker failure is not
// fatal: the service runs without event publishing.
func newProducer(cfg config.MessagingConfig, logger *slog.Logger) registration.Producer {
	switch cfg.Broker {
	case "nats":
		producer, err := messaging.NewProducer(cfg.NATSURL, cfg.NATSSubject, logger)
		if err != nil {
			logger.Warn("failed to initialize NATS producer", "error", err)
			return nil
		}
		return producer
	case "kafka":
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		if err != nil {
			logger.Warn("failed to initialize kafka producer", "error", err)
			return nil
		}
		return producer
	case "":
		logger.Info("event publishing disabled (no broker configured)")
		return nil
	default:
		logger.Warn("unknown broker, event publishing disabled", "broker", cfg.Broker)
		return nil
	}
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("failed to close producer", "error", err)
		}
	}
	return a.server.Shutdown(ctx)
}
