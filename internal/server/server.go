package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/car-service/apiserver/config"
	"github.com/car-service/apiserver/internal/auth"
	"github.com/car-service/apiserver/internal/db"
	"github.com/car-service/apiserver/internal/handlers"
	"github.com/car-service/apiserver/internal/mq"
	"github.com/car-service/apiserver/internal/notifier"
	"github.com/car-service/apiserver/internal/services"
	"github.com/car-service/apiserver/internal/storage"
	"github.com/car-service/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	queue      *mq.MQ
	logger     *zap.Logger
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	jwtSecret := strings.TrimSpace(cfg.Auth.JWTSecret)
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	tokens := auth.NewTokenIssuer(jwtSecret, cfg.Auth.TokenTTL)

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	blobs, err := newStorage(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	if err := blobs.EnsureBucket(ctx); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}

	queue, err := newQueue(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	notify := newNotifier(cfg, queue, logger)

	userRepo := store.NewUserRepository(dbConn)
	carRepo := store.NewCarRepository(dbConn)
	mechanicRepo := store.NewMechanicRepository(dbConn)
	serviceRepo := store.NewServiceRepository(dbConn)
	documentRepo := store.NewDocumentRepository(dbConn)
	appointmentRepo := store.NewAppointmentRepository(dbConn)

	userService := services.NewUserService(userRepo, tokens)
	carService := services.NewCarService(carRepo, userRepo)
	mechanicService := services.NewMechanicService(mechanicRepo)
	catalogService := services.NewCatalogService(serviceRepo)
	documentService := services.NewDocumentService(documentRepo, mechanicRepo, blobs, logger)
	appointmentService := services.NewAppointmentService(
		appointmentRepo,
		userRepo,
		carRepo,
		serviceRepo,
		mechanicRepo,
		notify,
		logger,
	)

	authMiddleware := handlers.RequireAuth(tokens)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService, tokens)
	})
	router.Route("/users", func(r chi.Router) {
		handlers.UserRouter(r, userService, authMiddleware)
	})
	router.Route("/cars", func(r chi.Router) {
		handlers.CarRouter(r, carService, authMiddleware)
	})
	router.Route("/mechanics", func(r chi.Router) {
		handlers.MechanicRouter(r, mechanicService, authMiddleware)
	})
	router.Route("/services", func(r chi.Router) {
		handlers.ServiceRouter(r, catalogService, authMiddleware)
	})
	router.Route("/documents", func(r chi.Router) {
		handlers.DocumentRouter(r, documentService, authMiddleware)
	})
	router.Route("/appointments", func(r chi.Router) {
		handlers.AppointmentRouter(r, appointmentService, authMiddleware)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		queue:      queue,
		logger:     logger,
	}, nil
}

func newStorage(ctx context.Context, cfg config.Config) (*storage.Storage, error) {
	switch cfg.Storage.Backend {
	case "minio":
		client, err := storage.NewMinioClient(cfg.Storage.Minio)
		if err != nil {
			return nil, fmt.Errorf("init minio storage: %w", err)
		}
		return storage.NewStorage(client), nil
	case "gcs":
		client, err := storage.NewGCSClient(ctx, cfg.Storage.GCS)
		if err != nil {
			return nil, fmt.Errorf("init gcs storage: %w", err)
		}
		return storage.NewStorage(client), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func newQueue(ctx context.Context, cfg config.Config) (*mq.MQ, error) {
	switch cfg.MQ.Backend {
	case "rabbitmq":
		client, err := mq.NewRabbitMQClient(cfg.MQ.RabbitMQ)
		if err != nil {
			return nil, fmt.Errorf("init rabbitmq: %w", err)
		}
		return mq.New(client, notifier.NotificationChannel), nil
	case "pubsub":
		client, err := mq.NewPubSubClient(ctx, cfg.MQ.PubSub)
		if err != nil {
			return nil, fmt.Errorf("init pubsub: %w", err)
		}
		return mq.New(client, notifier.NotificationChannel), nil
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown mq backend %q", cfg.MQ.Backend)
	}
}

func newNotifier(cfg config.Config, queue *mq.MQ, logger *zap.Logger) notifier.Notifier {
	if queue != nil {
		return notifier.NewQueueNotifier(queue)
	}
	if sender, err := notifier.NewSMTPNotifier(cfg.SMTP); err == nil {
		return sender
	}
	return notifier.NewLogNotifier(logger)
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.queue != nil {
		_ = s.queue.Close()
	}
	_ = s.logger.Sync()
	return s.httpServer.Close()
}
