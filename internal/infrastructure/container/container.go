// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/alchemorsel/kitchen/internal/application/catalog"
	"github.com/alchemorsel/kitchen/internal/application/importer"
	"github.com/alchemorsel/kitchen/internal/application/pantry"
	"github.com/alchemorsel/kitchen/internal/application/recipe"
	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/alchemorsel/kitchen/internal/domain/shared"
	"github.com/alchemorsel/kitchen/internal/infrastructure/ai/mock"
	"github.com/alchemorsel/kitchen/internal/infrastructure/ai/ollama"
	"github.com/alchemorsel/kitchen/internal/infrastructure/ai/openai"
	"github.com/alchemorsel/kitchen/internal/infrastructure/config"
	"github.com/alchemorsel/kitchen/internal/infrastructure/events"
	"github.com/alchemorsel/kitchen/internal/infrastructure/fetch"
	"github.com/alchemorsel/kitchen/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/kitchen/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/kitchen/internal/infrastructure/http/server"
	"github.com/alchemorsel/kitchen/internal/infrastructure/monitoring"
	gormRepo "github.com/alchemorsel/kitchen/internal/infrastructure/persistence/gorm"
	"github.com/alchemorsel/kitchen/internal/infrastructure/persistence/memory"
	"github.com/alchemorsel/kitchen/internal/infrastructure/persistence/migrations"
	"github.com/alchemorsel/kitchen/internal/infrastructure/persistence/postgres"
	redisCache "github.com/alchemorsel/kitchen/internal/infrastructure/persistence/redis"
	"github.com/alchemorsel/kitchen/internal/infrastructure/persistence/sqlite"
	"github.com/alchemorsel/kitchen/internal/infrastructure/security"
	"github.com/alchemorsel/kitchen/internal/ports/inbound"
	"github.com/alchemorsel/kitchen/internal/ports/outbound"
	"github.com/alchemorsel/kitchen/pkg/healthcheck"
	"github.com/alchemorsel/kitchen/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConfigPath is the config file to load; empty searches the default locations
type ConfigPath string

// Module provides all dependency injection modules
var Module = fx.Options(
	// Infrastructure modules
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	MonitoringModule,

	// Repository modules
	RepositoryModule,

	// Import pipeline adapters
	ExtractorModule,

	// Service modules
	ServiceModule,

	// HTTP modules
	SecurityModule,
	HTTPModule,

	// Lifecycle hooks
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func(path ConfigPath) (*config.Config, *config.Watcher, error) {
		return config.LoadWatched(string(path))
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, zap.AtomicLevel, error) {
		return logger.NewWithLevel(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the database connection
var DatabaseModule = fx.Provide(NewDatabase)

// NewDatabase opens sqlite or postgres depending on configuration. Postgres
// schemas are managed by migrations; sqlite is auto-migrated.
func NewDatabase(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	gormLogger := gormRepo.NewLogger(log, cfg.Database.LogLevel, cfg.Database.SlowQueryThreshold)

	switch cfg.Database.Driver {
	case "postgres":
		connCfg := postgres.DefaultConnectionConfig()
		connCfg.DSN = cfg.GetDSN()
		connCfg.ReadReplicaDSNs = cfg.Database.ReadReplicas
		connCfg.LoadBalancePolicy = cfg.Database.LoadBalancePolicy
		if cfg.Database.MaxOpenConns > 0 {
			connCfg.MaxOpenConns = cfg.Database.MaxOpenConns
		}
		if cfg.Database.MaxIdleConns > 0 {
			connCfg.MaxIdleConns = cfg.Database.MaxIdleConns
		}
		if cfg.Database.ConnMaxLifetime > 0 {
			connCfg.ConnMaxLifetime = cfg.Database.ConnMaxLifetime
		}
		if cfg.Database.ConnMaxIdleTime > 0 {
			connCfg.ConnMaxIdleTime = cfg.Database.ConnMaxIdleTime
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cm, err := postgres.NewConnectionManager(ctx, connCfg, gormLogger, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}

		if cfg.Database.AutoMigrate {
			if err := runMigrations(cm, cfg.Database.Database, log); err != nil {
				_ = cm.Close()
				return nil, err
			}
		}

		lc.Append(fx.Hook{OnStop: func(context.Context) error { return cm.Close() }})
		return cm.DB(), nil

	default:
		db, err := sqlite.SetupDatabase(cfg.Database.Path, gormLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		log.Info("Connected to SQLite database", zap.String("path", cfg.Database.Path))

		lc.Append(fx.Hook{OnStop: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}})
		return db, nil
	}
}

func runMigrations(cm *postgres.ConnectionManager, database string, log *zap.Logger) error {
	migrator, err := migrations.New(cm.SQLDB(), database, log)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	// closing the migrator would close the shared pool
	if err := migrator.Up(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// CacheModule provides caching
var CacheModule = fx.Provide(NewCache)

// NewCache returns Redis when enabled, otherwise an in-process cache
func NewCache(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
	if !cfg.Redis.Enabled {
		log.Info("Using in-memory cache")
		cache := memory.NewCacheRepository(time.Minute)
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return cache.Close() }})
		return cache, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := redisCache.NewClient(ctx, redisCache.Config{
		Addrs:        cfg.Redis.Addrs,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	}, log)
	if err != nil {
		return nil, err
	}

	cache := redisCache.NewCacheRepository(client, cfg.Redis.KeyPrefix, log)
	lc.Append(fx.Hook{OnStop: func(context.Context) error { return cache.Close() }})
	return cache, nil
}

// MonitoringModule provides metrics and tracing
var MonitoringModule = fx.Provide(
	monitoring.NewMetricsCollector,
	func(m *monitoring.MetricsCollector) outbound.ImportMetrics { return m },
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
		tp, err := monitoring.NewTracingProvider(context.Background(), monitoring.TracingConfig{
			ServiceName:    "kitchen-api",
			ServiceVersion: cfg.App.Version,
			Environment:    cfg.App.Environment,
			OTLPEndpoint:   cfg.Monitoring.OTLPEndpoint,
			Insecure:       cfg.Monitoring.OTLPInsecure,
			SamplingRate:   cfg.Monitoring.SamplingRate,
			Enabled:        cfg.Monitoring.EnableTracing,
		}, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{OnStop: tp.Shutdown})
		return tp, nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	fx.Annotate(
		gormRepo.NewRecipeRepository,
		fx.As(new(outbound.RecipeRepository)),
	),
	fx.Annotate(
		gormRepo.NewPantryRepository,
		fx.As(new(outbound.PantryRepository)),
	),
	fx.Annotate(
		gormRepo.NewCatalogRepository,
		fx.As(new(outbound.CatalogRepository)),
	),
)

// ExtractorModule provides the page fetcher and the configured extractor
var ExtractorModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.PageFetcher {
		return fetch.New(fetch.Config{
			UserAgent:    cfg.Importer.UserAgent,
			Timeout:      cfg.Importer.FetchTimeout,
			MaxBodyBytes: cfg.Importer.MaxBodyBytes,
		}, log)
	},
	NewExtractor,
)

// NewExtractor selects the extractor named by ai.provider
func NewExtractor(cfg *config.Config, log *zap.Logger) (outbound.RecipeExtractor, error) {
	switch cfg.AI.Provider {
	case "openai":
		return openai.New(openai.Config{
			BaseURL:      cfg.AI.BaseURL,
			APIKey:       cfg.AI.APIKey,
			Model:        cfg.AI.Model,
			Temperature:  cfg.AI.Temperature,
			MaxTokens:    cfg.AI.MaxTokens,
			Timeout:      cfg.AI.Timeout,
			MaxPageChars: cfg.AI.MaxPageChars,
		}, log)
	case "ollama":
		return ollama.NewClient(ollama.Config{
			BaseURL:      cfg.AI.BaseURL,
			Model:        cfg.AI.Model,
			Temperature:  cfg.AI.Temperature,
			Timeout:      cfg.AI.Timeout,
			MaxPageChars: cfg.AI.MaxPageChars,
		}, log), nil
	case "mock":
		log.Info("Using structured-data extractor")
		return mock.New(), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.AI.Provider)
	}
}

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	measurement.NewNormalizer,

	fx.Annotate(
		events.NewDispatcher,
		fx.As(new(shared.EventDispatcher)),
	),

	recipe.NewRecipeService,
	func(s *recipe.RecipeService) inbound.RecipeService { return s },

	func(repo outbound.PantryRepository, cfg *config.Config, log *zap.Logger) inbound.PantryService {
		return pantry.NewPantryService(repo, pantry.Config{ExpiringWindowDays: cfg.Pantry.ExpiringWindowDays}, log)
	},

	func(
		repo outbound.CatalogRepository,
		cache outbound.CacheRepository,
		library *recipe.RecipeService,
		metrics *monitoring.MetricsCollector,
		cfg *config.Config,
		log *zap.Logger,
	) *catalog.CatalogService {
		return catalog.NewCatalogService(
			repo,
			monitoring.InstrumentCache(cache, "catalog", metrics),
			library,
			catalog.Config{CacheTTL: cfg.Catalog.CacheTTL},
			log,
		)
	},
	func(s *catalog.CatalogService) inbound.CatalogService { return s },

	fx.Annotate(
		importer.NewImportService,
		fx.As(new(inbound.ImportService)),
	),
)

// SecurityModule provides token verification and the import rate limiter
var SecurityModule = fx.Provide(
	func(cfg *config.Config, cache outbound.CacheRepository, log *zap.Logger) middleware.TokenValidator {
		return security.NewTokenVerifier(security.AuthConfig{
			JWTSecret: cfg.Auth.JWTSecret,
			Issuer:    cfg.Auth.Issuer,
			Audience:  cfg.Auth.Audience,
			Leeway:    cfg.Auth.Leeway,
		}, cache, log)
	},
	func(cfg *config.Config) middleware.Limiter {
		return security.NewKeyedRateLimiter(security.RateLimitConfig{
			RequestsPerMinute: cfg.Importer.RequestsPerMinute,
			Burst:             cfg.Importer.Burst,
		})
	},
)

// HTTPModule provides HTTP server and handlers
var HTTPModule = fx.Provide(
	handlers.NewHandlers,
	NewHealthCheck,
	server.NewServer,
)

// NewHealthCheck registers readiness checks for every external dependency
func NewHealthCheck(
	cfg *config.Config,
	db *gorm.DB,
	cache outbound.CacheRepository,
	extractor outbound.RecipeExtractor,
	log *zap.Logger,
) *healthcheck.HealthCheck {
	health := healthcheck.New(cfg.App.Version, log)
	health.SetCacheTTL(cfg.Monitoring.HealthCacheTTL)

	health.Register("database", healthcheck.NewPingChecker(func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}))
	health.Register("cache", healthcheck.NewPingChecker(cache.Ping))
	health.Register("extractor", healthcheck.NewCustomChecker(extractorCheck(extractor)))

	return health
}

// extractorCheck reports a degraded service when the model is unreachable;
// the library keeps working without imports.
func extractorCheck(extractor outbound.RecipeExtractor) func(ctx context.Context) (healthcheck.Status, string) {
	type pinger interface {
		HealthCheck(ctx context.Context) error
	}

	return func(ctx context.Context) (healthcheck.Status, string) {
		p, ok := extractor.(pinger)
		if !ok {
			return healthcheck.StatusHealthy, extractor.Name()
		}
		if err := p.HealthCheck(ctx); err != nil {
			return healthcheck.StatusDegraded, fmt.Sprintf("%s: %v", extractor.Name(), err)
		}
		return healthcheck.StatusHealthy, extractor.Name()
	}
}

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterEventHandlers,
	RegisterLifecycleHooks,
)

// RegisterEventHandlers subscribes handlers to domain events
func RegisterEventHandlers(dispatcher shared.EventDispatcher, log *zap.Logger) {
	events.RegisterLibraryHandlers(dispatcher, log)
}

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *config.Config,
	watcher *config.Watcher,
	level zap.AtomicLevel,
	log *zap.Logger,
	normalizer *measurement.Normalizer,
	catalogService *catalog.CatalogService,
	_ *monitoring.TracingProvider,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting kitchen application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.String("database", cfg.Database.Driver),
				zap.String("extractor", cfg.AI.Provider),
			)

			watcher.Start(level, log)

			if cfg.Catalog.Seed {
				added, err := catalogService.Seed(ctx, catalog.DefaultSeed(normalizer))
				if err != nil {
					return fmt.Errorf("failed to seed catalog: %w", err)
				}
				if added > 0 {
					log.Info("Seeded master recipe catalog", zap.Int("recipes", added))
				}
			}

			go func() {
				if err := srv.Start(); err != nil {
					log.Error("HTTP server stopped unexpectedly", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down kitchen application")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			_ = log.Sync()
			return nil
		},
	})
}
