package di

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/JEONG99/movieql-server/application/commands/bus"
	commands_handlers "github.com/JEONG99/movieql-server/application/commands/handlers"
	"github.com/JEONG99/movieql-server/application/ports"
	querybus "github.com/JEONG99/movieql-server/application/queries/bus"
	queries_handlers "github.com/JEONG99/movieql-server/application/queries/handlers"
	"github.com/JEONG99/movieql-server/infrastructure/config"
	"github.com/JEONG99/movieql-server/infrastructure/persistence/memory"
	"github.com/JEONG99/movieql-server/infrastructure/upstream/yts"
	gql "github.com/JEONG99/movieql-server/interfaces/graphql"
	"github.com/JEONG99/movieql-server/interfaces/http/rest"
	"github.com/JEONG99/movieql-server/pkg/observability"

	"github.com/go-chi/chi/v5"
	graphql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

const (
	serviceName         = "movieql-server"
	tracingFlushTimeout = 10 * time.Second
)

// ProvideLogLevel parses the configured level into an atomic level that can be
// changed while the process runs
func ProvideLogLevel(cfg *config.Config) (zap.AtomicLevel, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid log level: %w", err)
	}
	return level, nil
}

// ProvideLogger creates a new logger instance. Only development gets the
// console encoder; every other environment logs JSON.
func ProvideLogger(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, func(), error) {
	var zapCfg zap.Config
	if cfg.IsDevelopment() {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = level

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, nil, err
	}
	logger = logger.With(zap.String("service", serviceName))

	cleanup := func() {
		// Sync fails on terminals and pipes; it is not worth reporting
		_ = logger.Sync()
	}
	return logger, cleanup, nil
}

// ProvideMetrics creates the Prometheus collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector("movieql")
}

// ProvideTracing installs the tracer provider. The cleanup flushes pending spans.
func ProvideTracing(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*observability.Tracing, func(), error) {
	tracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRate:  cfg.Tracing.SampleRate,
		Enabled:     cfg.EnableTracing,
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), tracingFlushTimeout)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to flush spans", zap.Error(err))
		}
	}
	return tracing, cleanup, nil
}

// ProvideIDGenerator selects the tweet id strategy
func ProvideIDGenerator(cfg *config.Config) memory.IDGenerator {
	return memory.NewIDGenerator(cfg.Tweets.IDStrategy, len(memory.SeedTweets()))
}

// ProvideStore creates the seeded in-memory store
func ProvideStore(ids memory.IDGenerator) *memory.Store {
	return memory.NewSeededStore(ids)
}

// ProvideUserRepository exposes the store as the user repository
func ProvideUserRepository(store *memory.Store) ports.UserRepository {
	return store
}

// ProvideTweetRepository exposes the store as the tweet repository
func ProvideTweetRepository(store *memory.Store) ports.TweetRepository {
	return store
}

// ProvideMovieCatalog creates the upstream movie client
func ProvideMovieCatalog(
	cfg *config.Config,
	tracing *observability.Tracing,
	metrics *observability.Collector,
	logger *zap.Logger,
) ports.MovieCatalog {
	breaker := yts.DefaultBreakerConfig("movies")
	breaker.MaxRequests = cfg.Movies.Breaker.MaxRequests
	breaker.Interval = cfg.Movies.Breaker.Interval
	breaker.Timeout = cfg.Movies.Breaker.Timeout
	breaker.FailureRatio = cfg.Movies.Breaker.FailureRatio
	breaker.MinRequests = cfg.Movies.Breaker.MinRequests

	return yts.NewClient(yts.Config{
		BaseURL: cfg.Movies.BaseURL,
		Timeout: cfg.Movies.Timeout,
		Breaker: breaker,
		Tracer:  tracing.Tracer(),
	}, &http.Client{}, metrics, logger.Named("yts"))
}

// ProvideQueryBus creates the query bus and registers every query handler
func ProvideQueryBus(
	users ports.UserRepository,
	tweets ports.TweetRepository,
	movies ports.MovieCatalog,
	metrics *observability.Collector,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(
		querybus.LoggingMiddleware(logger),
		querybus.MetricsMiddleware(metrics),
	)

	if err := queries_handlers.RegisterQueryHandlers(queryBus,
		queries_handlers.NewUserQueryHandler(users),
		queries_handlers.NewTweetQueryHandler(tweets),
		queries_handlers.NewMovieQueryHandler(movies),
	); err != nil {
		return nil, fmt.Errorf("failed to register query handlers: %w", err)
	}

	return queryBus, nil
}

// ProvideCommandBus creates the command bus and registers every command handler
func ProvideCommandBus(
	tweets ports.TweetRepository,
	metrics *observability.Collector,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.LoggingMiddleware(logger),
		bus.MetricsMiddleware(metrics),
	)

	if err := commands_handlers.RegisterCommandHandlers(commandBus,
		commands_handlers.NewPostTweetHandler(tweets, metrics, logger),
		commands_handlers.NewDeleteTweetHandler(tweets, metrics, logger),
	); err != nil {
		return nil, fmt.Errorf("failed to register command handlers: %w", err)
	}

	return commandBus, nil
}

// ProvideSchema parses the GraphQL schema and binds the root resolver
func ProvideSchema(
	cfg *config.Config,
	queryBus *querybus.QueryBus,
	commandBus *bus.CommandBus,
	logger *zap.Logger,
) (*graphql.Schema, error) {
	schema, err := gql.NewSchema(gql.NewResolver(queryBus, commandBus), gql.SchemaConfig{
		MaxDepth:       cfg.GraphQL.MaxDepth,
		MaxParallelism: cfg.GraphQL.MaxParallelism,
		Introspection:  cfg.GraphQL.Introspection,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return schema, nil
}

// ProvideGraphQLHandler creates the GraphQL HTTP handler. GraphiQL is served
// whenever introspection is allowed.
func ProvideGraphQLHandler(
	cfg *config.Config,
	schema *graphql.Schema,
	tracing *observability.Tracing,
	logger *zap.Logger,
) *gql.Handler {
	return gql.NewHandler(schema, gql.HandlerConfig{
		MaxBodyBytes: cfg.GraphQL.MaxBodyBytes,
		GraphiQL:     cfg.GraphQL.Introspection,
		Endpoint:     cfg.Server.GraphQLPath,
	}, tracing.Tracer(), logger)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	cfg *config.Config,
	handler *gql.Handler,
	metrics *observability.Collector,
	logger *zap.Logger,
) *chi.Mux {
	return rest.NewRouter(rest.RouterConfig{
		GraphQLPath:    cfg.Server.GraphQLPath,
		EnableMetrics:  cfg.EnableMetrics,
		EnableCORS:     cfg.EnableCORS,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}, handler, metrics, logger).Setup()
}

// ProvideConfigWatcher watches the configuration file, when there is one, and
// applies log level changes without a restart
func ProvideConfigWatcher(cfg *config.Config, level zap.AtomicLevel, logger *zap.Logger) (*config.Watcher, func(), error) {
	if cfg.File == "" {
		return nil, func() {}, nil
	}

	watcher, err := config.NewWatcher(cfg, logger.Named("config"))
	if err != nil {
		return nil, nil, err
	}

	watcher.OnChange(func(next *config.Config) {
		if err := level.UnmarshalText([]byte(next.LogLevel)); err != nil {
			logger.Warn("Ignoring invalid log level", zap.String("level", next.LogLevel))
			return
		}
		logger.Info("Log level changed", zap.String("level", next.LogLevel))
	})
	watcher.Start()

	return watcher, watcher.Stop, nil
}
