package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracing_Disabled(t *testing.T) {
	tracing, err := InitTracing(context.Background(), TracingConfig{ServiceName: "movieql-test"})
	require.NoError(t, err)

	_, span := tracing.Tracer().Start(context.Background(), "op")
	span.End()

	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, tracing.Shutdown(context.Background()))
}
