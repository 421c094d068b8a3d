package yts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/JEONG99/movieql-server/domain/core/entities"
	pkgerrors "github.com/JEONG99/movieql-server/pkg/errors"
	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	serviceName = "movies"

	endpointList    = "list_movies"
	endpointDetails = "movie_details"

	// DefaultBaseURL is the public YTS API
	DefaultBaseURL = "https://yts.mx/api/v2"
)

// Metrics receives upstream call measurements
type Metrics interface {
	ObserveUpstream(endpoint, status string, duration time.Duration)
	SetCircuitState(name string, state float64)
}

// Config holds the upstream client settings
type Config struct {
	BaseURL string
	Timeout time.Duration
	Breaker BreakerConfig
	// Tracer defaults to the global provider's tracer
	Tracer trace.Tracer
}

// Client fetches movies from the YTS REST API
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	tracer     trace.Tracer
	metrics    Metrics
	logger     *zap.Logger
}

// NewClient creates a new upstream client. A nil httpClient means http.DefaultClient.
func NewClient(config Config, httpClient *http.Client, metrics Metrics, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Breaker.Name == "" {
		config.Breaker.Name = serviceName
	}
	if config.Tracer == nil {
		config.Tracer = otel.Tracer("github.com/JEONG99/movieql-server/infrastructure/upstream/yts")
	}

	return &Client{
		baseURL:    config.BaseURL,
		timeout:    config.Timeout,
		httpClient: httpClient,
		breaker:    newBreaker(config.Breaker, logger, metrics),
		tracer:     config.Tracer,
		metrics:    metrics,
		logger:     logger,
	}
}

// ListMovies returns the movies under data.movies of the listing endpoint
func (c *Client) ListMovies(ctx context.Context) ([]*entities.Movie, error) {
	body, err := c.get(ctx, endpointList, nil)
	if err != nil {
		return nil, err
	}

	data, err := envelope(body)
	if err != nil {
		return nil, err
	}

	raw := data.Get("movies")
	if !raw.IsArray() {
		return nil, pkgerrors.NewUpstreamFormatError(serviceName, "missing data.movies").
			WithDetails(map[string]interface{}{"endpoint": endpointList})
	}

	var movies []*entities.Movie
	if err := json.Unmarshal([]byte(raw.Raw), &movies); err != nil {
		return nil, pkgerrors.NewUpstreamFormatError(serviceName, err.Error()).
			WithDetails(map[string]interface{}{"endpoint": endpointList})
	}
	return movies, nil
}

// GetMovie returns data.movie of the details endpoint, or nil when the
// upstream answers with a null movie.
func (c *Client) GetMovie(ctx context.Context, id string) (*entities.Movie, error) {
	body, err := c.get(ctx, endpointDetails, url.Values{"movie_id": {id}})
	if err != nil {
		return nil, err
	}

	data, err := envelope(body)
	if err != nil {
		return nil, err
	}

	raw := data.Get("movie")
	if !raw.Exists() || raw.Type == gjson.Null {
		return nil, nil
	}
	if !raw.IsObject() {
		return nil, pkgerrors.NewUpstreamFormatError(serviceName, "data.movie is not an object").
			WithDetails(map[string]interface{}{"endpoint": endpointDetails})
	}

	var movie entities.Movie
	if err := json.Unmarshal([]byte(raw.Raw), &movie); err != nil {
		return nil, pkgerrors.NewUpstreamFormatError(serviceName, err.Error()).
			WithDetails(map[string]interface{}{"endpoint": endpointDetails})
	}
	return &movie, nil
}

// envelope validates the body and returns its data member
func envelope(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, pkgerrors.NewUpstreamFormatError(serviceName, "body is not valid JSON")
	}
	data := gjson.GetBytes(body, "data")
	if !data.IsObject() {
		return gjson.Result{}, pkgerrors.NewUpstreamFormatError(serviceName, "missing data")
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	target := fmt.Sprintf("%s/%s.json", c.baseURL, endpoint)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	ctx, span := c.tracer.Start(ctx, "yts."+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", http.MethodGet),
			attribute.String("http.url", target),
		),
	)
	defer span.End()

	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, endpoint, target)
	})
	err = translateBreakerError(serviceName, err)

	status := "ok"
	if err != nil {
		status = "error"
		if appErr := pkgerrors.GetAppError(err); appErr != nil && appErr.Code != "" {
			status = appErr.Code
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		// contract violations log at error
		level := zap.WarnLevel
		if pkgerrors.IsExternal(err) {
			level = zap.ErrorLevel
		}
		c.logger.Log(level, "Upstream request failed",
			zap.String("endpoint", endpoint),
			zap.String("url", target),
			zap.Error(err),
		)
	}
	c.metrics.ObserveUpstream(endpoint, status, time.Since(start))

	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (c *Client) do(ctx context.Context, endpoint, target string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to build upstream request").WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	defer resp.Body.Close()

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	details := map[string]interface{}{
		"endpoint": endpoint,
		"status":   resp.StatusCode,
	}
	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, pkgerrors.NewUpstreamUnavailableError(serviceName, fmt.Errorf("status %d", resp.StatusCode)).
			WithDetails(details)
	case resp.StatusCode != http.StatusOK:
		return nil, pkgerrors.NewExternalError(serviceName, fmt.Errorf("status %d", resp.StatusCode)).
			WithCode(pkgerrors.CodeUpstreamStatus).
			WithDetails(details)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	return body, nil
}

// transportError reports a failed round trip. Deadline expiry becomes a
// timeout that still carries the unavailable code.
func transportError(endpoint string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return pkgerrors.NewTimeoutError(serviceName+" "+endpoint).
			WithCode(pkgerrors.CodeUpstreamUnavailable).
			WithDetails(map[string]interface{}{"endpoint": endpoint}).
			WithCause(err)
	}
	return pkgerrors.NewUpstreamUnavailableError(serviceName, err)
}
