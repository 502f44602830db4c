package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/elliottking-cpu/beast-app-sub003/internal/aggregate"
	"github.com/elliottking-cpu/beast-app-sub003/internal/config"
	"github.com/elliottking-cpu/beast-app-sub003/internal/database"
	httpapi "github.com/elliottking-cpu/beast-app-sub003/internal/http"
	"github.com/elliottking-cpu/beast-app-sub003/internal/navigation"
	"github.com/elliottking-cpu/beast-app-sub003/internal/redisclient"
	"github.com/elliottking-cpu/beast-app-sub003/internal/repository"
	"github.com/elliottking-cpu/beast-app-sub003/internal/session"
)

// ConsoleService wires the record store, loaders, session registry, and
// HTTP surface into one runnable unit.
type ConsoleService struct {
	config      *config.Config
	logger      *zap.Logger
	db          *sql.DB
	redisClient *redis.Client
	store       repository.Store
	sessions    *session.Registry
	server      *Server
}

// NewConsoleService builds the service from configuration. The store
// backend is selected here; everything downstream sees only the interfaces.
func NewConsoleService(cfg *config.Config, logger *zap.Logger) (*ConsoleService, error) {
	var (
		store repository.Store
		db    *sql.DB
	)
	switch cfg.Console.StoreBackend {
	case "rest":
		store = repository.NewRestStore(&cfg.Rest, logger)
	default:
		var err error
		db, err = database.NewPostgresDB(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		store = repository.NewPostgresStore(db, logger)
	}

	redisClient := redisclient.New(&cfg.Redis)
	if err := redisclient.Ping(context.Background(), redisClient); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	sessions := session.NewRegistry(store, logger)
	hierarchyLoader := navigation.NewHierarchyLoader(store, store, logger)

	clientLoader := aggregate.NewClientLoader(store, logger)
	viewCache := aggregate.NewViewCache(
		aggregate.NewRedisKVStore(redisClient), cfg.Console.ViewCacheTTL, logger)
	cachedLoader := aggregate.NewCachedClientLoader(clientLoader, viewCache, logger)

	router := httpapi.NewRouter(logger)
	router.RegisterNavigationRoutes(httpapi.NewNavigationHandler(hierarchyLoader, sessions, logger))
	router.RegisterClientRoutes(httpapi.NewClientHandler(cachedLoader, logger))
	router.RegisterHealthRoute()

	return &ConsoleService{
		config:      cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
		store:       store,
		sessions:    sessions,
		server:      NewServer(cfg.HTTP.Addr, router, logger),
	}, nil
}

// Start runs the HTTP server until it fails or Stop is called.
func (s *ConsoleService) Start(ctx context.Context) error {
	s.logger.Info("Starting console service",
		zap.String("store_backend", s.config.Console.StoreBackend),
		zap.Duration("view_cache_ttl", s.config.Console.ViewCacheTTL),
	)
	return s.server.Start()
}

// Stop shuts the HTTP server down and closes backend connections.
func (s *ConsoleService) Stop(ctx context.Context) error {
	if err := s.server.Stop(ctx); err != nil {
		s.logger.Error("Error stopping HTTP server", zap.Error(err))
	}
	if err := redisclient.Close(s.redisClient); err != nil {
		s.logger.Error("Error closing redis client", zap.Error(err))
	}
	if s.db != nil {
		if err := database.Close(s.db); err != nil {
			return err
		}
	}
	return nil
}
