package yts

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/JEONG99/movieql-server/pkg/errors"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerConfig holds configuration for the upstream circuit breaker
type BreakerConfig struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// FailureRatio and MinRequests decide when the breaker trips
	FailureRatio float64
	MinRequests  uint32
}

// DefaultBreakerConfig returns the default breaker configuration
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:         name,
		MaxRequests:  5,
		Interval:     30 * time.Second,
		Timeout:      60 * time.Second,
		FailureRatio: 0.8,
		MinRequests:  5,
	}
}

func newBreaker(config BreakerConfig, logger *zap.Logger, metrics Metrics) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.SetCircuitState(name, float64(to))
		},
		// Only an unreachable, slow or failing upstream counts against the
		// breaker; 4xx answers and callers hanging up do not.
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			return !pkgerrors.IsUnavailable(err) && !pkgerrors.IsTimeout(err)
		},
	})
}

// translateBreakerError maps gobreaker's rejection errors onto the error taxonomy
func translateBreakerError(service string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return pkgerrors.NewUnavailableError(service).
			WithCode(pkgerrors.CodeUpstreamCircuitOpen).
			WithCause(err)
	}
	return err
}
