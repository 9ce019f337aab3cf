package usecase

import (
	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/discovery"
	"github.com/quadrago-discovery/internal/domain/repository"
)

// EngineFactory - сборка discovery движков с общими зависимостями
type EngineFactory struct {
	catalog  repository.CatalogRepository
	resolver *discovery.AvailabilityResolver
	logger   *zap.Logger
	opts     []discovery.EngineOption
}

func NewEngineFactory(
	catalog repository.CatalogRepository,
	resolver *discovery.AvailabilityResolver,
	logger *zap.Logger,
	opts ...discovery.EngineOption,
) *EngineFactory {
	return &EngineFactory{
		catalog:  catalog,
		resolver: resolver,
		logger:   logger,
		opts:     opts,
	}
}

// New создаёт движок, начальное состояние которого читается из query
func (f *EngineFactory) New(query string) (*discovery.Engine, *discovery.MemoryNavigator) {
	nav := discovery.NewMemoryNavigator(query)
	return discovery.NewEngine(f.catalog, f.resolver, nav, f.logger, f.opts...), nav
}
