package services

import (
	portsrepo "github.com/SscSPs/fxql_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fxql_service/internal/core/ports/services"
	"github.com/SscSPs/fxql_service/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Fxql: NewFxqlService(
			repos.ExchangeRateRepo,
			WithMaxPairs(cfg.MaxCurrencyPairs),
			WithUpsertConcurrency(cfg.UpsertConcurrency),
		),
	}
}

// Helper to check interface implementations at compile time
var _ portssvc.FxqlSvcFacade = (*fxqlService)(nil)
