package di

import (
	"github.com/JEONG99/movieql-server/application/commands/bus"
	querybus "github.com/JEONG99/movieql-server/application/queries/bus"
	"github.com/JEONG99/movieql-server/infrastructure/config"
	"github.com/JEONG99/movieql-server/infrastructure/persistence/memory"
	"github.com/JEONG99/movieql-server/pkg/observability"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Container holds all application dependencies. Resources it holds are
// released by the cleanup function returned alongside it.
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	LogLevel   zap.AtomicLevel
	Metrics    *observability.Collector
	Tracing    *observability.Tracing
	Store      *memory.Store
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
	Router     *chi.Mux
	Watcher    *config.Watcher
}
