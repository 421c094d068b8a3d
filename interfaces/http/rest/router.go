package rest

import (
	"net/http"

	"github.com/JEONG99/movieql-server/interfaces/http/rest/middleware"
	"github.com/JEONG99/movieql-server/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// RouterConfig selects the optional parts of the router
type RouterConfig struct {
	GraphQLPath    string
	EnableMetrics  bool
	EnableCORS     bool
	AllowedOrigins []string
}

// Router creates and configures the HTTP router
type Router struct {
	config  RouterConfig
	graphql http.Handler
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	config RouterConfig,
	graphql http.Handler,
	metrics *observability.Collector,
	logger *zap.Logger,
) *Router {
	if config.GraphQLPath == "" {
		config.GraphQLPath = "/"
	}
	return &Router{
		config:  config,
		graphql: graphql,
		metrics: metrics,
		logger:  logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.metrics))

	if rt.config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: rt.config.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if rt.config.EnableMetrics {
		router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	router.Method(http.MethodGet, rt.config.GraphQLPath, rt.graphql)
	router.Method(http.MethodPost, rt.config.GraphQLPath, rt.graphql)

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests. All state is in memory,
// so the process is ready as soon as it serves.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
