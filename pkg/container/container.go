package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"quotes-api/internal/config"
	infraCache "quotes-api/internal/infrastructure/cache"
	"quotes-api/internal/infrastructure/database"
	"quotes-api/internal/seed"
	"quotes-api/pkg/cache"

	authorHandler "quotes-api/internal/domains/author/handler"
	authorRepo "quotes-api/internal/domains/author/repository"
	authorService "quotes-api/internal/domains/author/service"
	quoteHandler "quotes-api/internal/domains/quote/handler"
	quoteRepo "quotes-api/internal/domains/quote/repository"
	quoteService "quotes-api/internal/domains/quote/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph.
type Container struct {
	// Infrastructure
	Config *config.Config
	Store  database.Store
	Cache  cache.Cache // nil when REDIS_ADDR is empty

	// Repositories
	AuthorRepo authorRepo.RepositoryInterface
	QuoteRepo  quoteRepo.RepositoryInterface

	// Services
	AuthorService authorService.ServiceInterface
	QuoteService  quoteService.ServiceInterface

	// Handlers
	AuthorHandler *authorHandler.AuthorHandler
	QuoteHandler  *quoteHandler.QuoteHandler
}

// NewContainer loads the configuration from the environment and builds
// the container from it.
func NewContainer(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

// NewWithConfig builds the dependency graph in order:
// config → storage → cache → repositories → services → handlers.
func NewWithConfig(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Str("backend", cfg.Store.Backend).Msg("Initializing DI container...")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: STORAGE BACKEND + REPOSITORIES
	// ========================================
	if err := c.initStorage(ctx); err != nil {
		return nil, err
	}

	// ========================================
	// STEP 2: CACHE (optional)
	// ========================================
	if cfg.CacheEnabled() {
		redisCache := infraCache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Connect(ctx); err != nil {
			// The API works without the cache.
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, author cache disabled")
			_ = redisCache.Close()
		} else {
			if err := authorRepo.FlushCache(ctx, redisCache); err != nil {
				log.Warn().Err(err).Msg("Failed to flush author cache")
			}
			c.Cache = redisCache
			c.AuthorRepo = authorRepo.NewCachedRepository(c.AuthorRepo, redisCache, cfg.Redis.CacheTTL)
			log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.CacheTTL).Msg("Author cache enabled")
		}
	}

	// ========================================
	// STEP 3: SEED
	// ========================================
	if cfg.Store.SeedData {
		if _, err := seed.Run(ctx, c.AuthorRepo, c.QuoteRepo); err != nil {
			c.Cleanup()
			return nil, fmt.Errorf("failed to seed sample data: %w", err)
		}
	}

	// ========================================
	// STEP 4: SERVICES
	// ========================================
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.QuoteService = quoteService.NewQuoteService(c.QuoteRepo, c.AuthorService)

	// ========================================
	// STEP 5: HANDLERS
	// ========================================
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.QuoteHandler = quoteHandler.NewQuoteHandler(c.QuoteService)

	log.Info().Msg("DI container initialized")
	return c, nil
}

// initStorage opens the configured backend and builds its repositories.
func (c *Container) initStorage(ctx context.Context) error {
	switch c.Config.Store.Backend {
	case config.BackendMemory:
		db := database.NewMemoryDB()
		c.Store = db
		c.AuthorRepo = authorRepo.NewMemoryRepository(db)
		c.QuoteRepo = quoteRepo.NewMemoryRepository(db)

	case config.BackendSQLite:
		db, err := database.OpenSQLite(ctx, c.Config.Store.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to open sqlite: %w", err)
		}
		c.Store = db
		c.AuthorRepo = authorRepo.NewSQLiteRepository(db.DB)
		c.QuoteRepo = quoteRepo.NewSQLiteRepository(db.DB)

	case config.BackendPostgres:
		db := database.NewPostgresDB(c.Config.PostgresConfig())
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.Store = db
		c.AuthorRepo = authorRepo.NewPostgresRepository(db.Pool)
		c.QuoteRepo = quoteRepo.NewPostgresRepository(db.Pool)

	default:
		return fmt.Errorf("unknown storage backend %q", c.Config.Store.Backend)
	}

	log.Info().Str("backend", c.Config.Store.Backend).Msg("Storage ready")
	return nil
}

// HealthCheck pings the storage backend.
func (c *Container) HealthCheck(ctx context.Context) error {
	if c.Store == nil {
		return fmt.Errorf("storage is not initialized")
	}
	return c.Store.HealthCheck(ctx)
}

// Cleanup closes storage and cache connections.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources...")

	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close storage")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}
}
