//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/JEONG99/movieql-server/infrastructure/config"
	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogLevel,
	ProvideLogger,
	ProvideMetrics,
	ProvideTracing,
	ProvideIDGenerator,
	ProvideStore,
	ProvideUserRepository,
	ProvideTweetRepository,
	ProvideMovieCatalog,
	ProvideQueryBus,
	ProvideCommandBus,
	ProvideSchema,
	ProvideGraphQLHandler,
	ProvideRouter,
	ProvideConfigWatcher,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container and the function that
// releases its resources
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	wire.Build(SuperSet)
	return nil, nil, nil // Wire will replace this
}
