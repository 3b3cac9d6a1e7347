package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/roamnest/apiserver/config"
	"github.com/roamnest/apiserver/internal/auth"
	"github.com/roamnest/apiserver/internal/db"
	"github.com/roamnest/apiserver/internal/handlers"
	"github.com/roamnest/apiserver/internal/mq"
	"github.com/roamnest/apiserver/internal/services"
	"github.com/roamnest/apiserver/internal/storage"
	"github.com/roamnest/apiserver/internal/store"
	"github.com/rs/zerolog"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	broker     *mq.MQ
	logger     zerolog.Logger
}

// New constructs a Server with all dependencies wired from config.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "server").Logger()

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	photoBackend, err := newPhotoBackend(ctx, cfg.Storage)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	photoStorage := storage.NewStorage(photoBackend)
	if err := photoStorage.EnsureReady(ctx); err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	broker, err := newBroker(ctx, cfg.MQ)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	placeRepo := store.NewPlaceRepository(dbConn)
	bookingRepo := store.NewBookingRepository(dbConn)

	userService := services.NewUserService(userRepo)
	placeService := services.NewPlaceService(placeRepo)

	var publisher services.EventPublisher
	if broker != nil {
		publisher = broker
	}
	bookingService := services.NewBookingService(
		bookingRepo,
		placeRepo,
		publisher,
		logger.With().Str("component", "bookings").Logger(),
	)
	photoService := services.NewPhotoService(
		photoStorage,
		cfg.Upload.FetchTimeout,
		cfg.Upload.MaxFileBytes,
		logger.With().Str("component", "photos").Logger(),
	)

	requireAuth := handlers.RequireAuth(tokens, cfg.JWT.CookieName)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Get("/healthz", handlers.Healthz)
	handlers.AuthRouter(router, userService, tokens, cfg.JWT.CookieName)
	handlers.UploadRouter(router, photoService, cfg.Upload.MaxFiles, cfg.Upload.MaxFileBytes)
	handlers.PlaceRouter(router, placeService, requireAuth)
	handlers.BookingRouter(router, bookingService, requireAuth)

	// Local photo references are bare filenames resolved against /uploads/.
	if local, ok := photoBackend.(*storage.LocalStore); ok {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(local.Dir())))
		router.Get("/uploads/*", fileServer.ServeHTTP)
	}

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
		broker:     broker,
		logger:     logger,
	}, nil
}

func newPhotoBackend(ctx context.Context, cfg config.StorageConfig) (storage.Backend, error) {
	switch cfg.Driver {
	case config.StorageDriverLocal, "":
		return storage.NewLocalStore(cfg.Local.Dir)
	case config.StorageDriverMinio:
		return storage.NewMinioStore(cfg.Minio)
	case config.StorageDriverGCS:
		return storage.NewGCSStore(ctx, cfg.GCS)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func newBroker(ctx context.Context, cfg config.MQConfig) (*mq.MQ, error) {
	switch cfg.Driver {
	case config.MQDriverNone, "":
		return nil, nil
	case config.MQDriverRabbitMQ:
		client, err := mq.NewRabbitMQClient(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		return mq.New(client), nil
	case config.MQDriverPubSub:
		client, err := mq.NewPubSubClient(ctx, cfg.PubSub)
		if err != nil {
			return nil, err
		}
		return mq.New(client), nil
	default:
		return nil, fmt.Errorf("unknown mq driver %q", cfg.Driver)
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.broker != nil {
		_ = s.broker.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
