package graphql

import (
	"context"
	_ "embed"
	"runtime/debug"

	graphql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

//go:embed schema.graphql
var schemaSDL string

// SchemaConfig holds execution limits applied to the parsed schema
type SchemaConfig struct {
	MaxDepth       int
	MaxParallelism int
	Introspection  bool
}

// NewSchema parses the SDL and binds it to the root resolver
func NewSchema(root *Resolver, config SchemaConfig, logger *zap.Logger) (*graphql.Schema, error) {
	opts := []graphql.SchemaOpt{
		graphql.Logger(&panicLogger{logger: logger}),
	}
	if config.MaxDepth > 0 {
		opts = append(opts, graphql.MaxDepth(config.MaxDepth))
	}
	if config.MaxParallelism > 0 {
		opts = append(opts, graphql.MaxParallelism(config.MaxParallelism))
	}
	if !config.Introspection {
		opts = append(opts, graphql.DisableIntrospection())
	}

	return graphql.ParseSchema(schemaSDL, root, opts...)
}

// panicLogger reports resolver panics through zap instead of the standard logger
type panicLogger struct {
	logger *zap.Logger
}

func (l *panicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.logger.Error("GraphQL resolver panic",
		zap.Any("panic", value),
		zap.ByteString("stack", debug.Stack()),
	)
}
