package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/JEONG99/movieql-server/pkg/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server      ServerConfig `yaml:"server"`
	Environment string       `yaml:"environment" validate:"oneof=development staging production"`

	// Logging
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// Upstream movie API
	Movies MoviesConfig `yaml:"movies"`

	// Tweet storage
	Tweets TweetsConfig `yaml:"tweets"`

	// GraphQL execution limits
	GraphQL GraphQLConfig `yaml:"graphql"`

	// Observability
	Tracing TracingConfig `yaml:"tracing"`

	// Feature flags
	EnableMetrics bool `yaml:"enable_metrics"`
	EnableTracing bool `yaml:"enable_tracing"`
	EnableCORS    bool `yaml:"enable_cors"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" validate:"required_if=EnableCORS true"`

	// File is the YAML file the configuration was read from, if any
	File string `yaml:"-"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Address     string `yaml:"address" validate:"required"`
	GraphQLPath string `yaml:"graphql_path" validate:"required,startswith=/"`
}

// MoviesConfig holds upstream client settings
type MoviesConfig struct {
	BaseURL string        `yaml:"base_url" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
	Breaker BreakerConfig `yaml:"breaker"`
}

// BreakerConfig holds circuit breaker settings for the upstream client
type BreakerConfig struct {
	MaxRequests  uint32        `yaml:"max_requests" validate:"min=1"`
	Interval     time.Duration `yaml:"interval" validate:"gte=0"`
	Timeout      time.Duration `yaml:"timeout" validate:"gt=0"`
	FailureRatio float64       `yaml:"failure_ratio" validate:"gt=0,lte=1"`
	MinRequests  uint32        `yaml:"min_requests" validate:"min=1"`
}

// TweetsConfig holds tweet storage settings
type TweetsConfig struct {
	IDStrategy string `yaml:"id_strategy" validate:"oneof=sequence uuid"`
}

// GraphQLConfig holds GraphQL execution settings
type GraphQLConfig struct {
	MaxDepth       int   `yaml:"max_depth" validate:"gte=0"`
	MaxParallelism int   `yaml:"max_parallelism" validate:"min=1"`
	Introspection  bool  `yaml:"introspection"`
	MaxBodyBytes   int64 `yaml:"max_body_bytes" validate:"min=1"`
}

// TracingConfig holds OpenTelemetry exporter settings
type TracingConfig struct {
	Endpoint   string  `yaml:"endpoint" validate:"required"`
	SampleRate float64 `yaml:"sample_rate" validate:"gte=0,lte=1"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:     ":4000",
			GraphQLPath: "/",
		},
		Environment: "development",
		LogLevel:    "info",
		Movies: MoviesConfig{
			BaseURL: "https://yts.mx/api/v2",
			Timeout: 10 * time.Second,
			Breaker: BreakerConfig{
				MaxRequests:  5,
				Interval:     30 * time.Second,
				Timeout:      60 * time.Second,
				FailureRatio: 0.8,
				MinRequests:  5,
			},
		},
		Tweets: TweetsConfig{IDStrategy: "sequence"},
		GraphQL: GraphQLConfig{
			MaxDepth:       0,
			MaxParallelism: 10,
			Introspection:  true,
			MaxBodyBytes:   1 << 20,
		},
		Tracing: TracingConfig{
			Endpoint:   "localhost:4317",
			SampleRate: 1.0,
		},
		EnableMetrics:      true,
		EnableTracing:      false,
		EnableCORS:         true,
		CORSAllowedOrigins: []string{"*"},
	}
}

// LoadConfig loads configuration from defaults, then the YAML file at path
// (or CONFIG_FILE when path is empty), then environment variables.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
		cfg.File = path
	}

	cfg.loadEnvironmentVariables()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// loadEnvironmentVariables overlays environment variables on the configuration
func (c *Config) loadEnvironmentVariables() {
	c.Server.Address = getEnv("SERVER_ADDRESS", c.Server.Address)
	c.Server.GraphQLPath = getEnv("GRAPHQL_PATH", c.Server.GraphQLPath)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.Movies.BaseURL = getEnv("MOVIES_BASE_URL", c.Movies.BaseURL)
	c.Movies.Timeout = getEnvDuration("MOVIES_TIMEOUT", c.Movies.Timeout)
	c.Movies.Breaker.MaxRequests = uint32(getEnvInt("MOVIES_BREAKER_MAX_REQUESTS", int(c.Movies.Breaker.MaxRequests)))
	c.Movies.Breaker.Interval = getEnvDuration("MOVIES_BREAKER_INTERVAL", c.Movies.Breaker.Interval)
	c.Movies.Breaker.Timeout = getEnvDuration("MOVIES_BREAKER_TIMEOUT", c.Movies.Breaker.Timeout)
	c.Movies.Breaker.FailureRatio = getEnvFloat("MOVIES_BREAKER_FAILURE_RATIO", c.Movies.Breaker.FailureRatio)
	c.Movies.Breaker.MinRequests = uint32(getEnvInt("MOVIES_BREAKER_MIN_REQUESTS", int(c.Movies.Breaker.MinRequests)))

	c.Tweets.IDStrategy = getEnv("TWEET_ID_STRATEGY", c.Tweets.IDStrategy)

	c.GraphQL.MaxDepth = getEnvInt("GRAPHQL_MAX_DEPTH", c.GraphQL.MaxDepth)
	c.GraphQL.MaxParallelism = getEnvInt("GRAPHQL_MAX_PARALLELISM", c.GraphQL.MaxParallelism)
	c.GraphQL.Introspection = getEnvBool("GRAPHQL_INTROSPECTION", c.GraphQL.Introspection)
	c.GraphQL.MaxBodyBytes = int64(getEnvInt("GRAPHQL_MAX_BODY_BYTES", int(c.GraphQL.MaxBodyBytes)))

	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)
	c.EnableCORS = getEnvBool("ENABLE_CORS", c.EnableCORS)
	c.Tracing.Endpoint = getEnv("OTLP_ENDPOINT", c.Tracing.Endpoint)
	c.Tracing.SampleRate = getEnvFloat("TRACE_SAMPLE_RATE", c.Tracing.SampleRate)

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.CORSAllowedOrigins = splitList(origins)
	}
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// formatValidationError formats validation errors into readable messages
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		if e.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", e.Namespace(), e.Tag(), e.Param(), e.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s (got %v)", e.Namespace(), e.Tag(), e.Value()))
		}
		fields = append(fields, e.Namespace())
	}
	return pkgerrors.NewValidationError("invalid configuration: " + strings.Join(msgs, "; ")).
		WithDetails(map[string]interface{}{"fields": fields})
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
