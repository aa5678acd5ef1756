// Package di provides dependency injection configuration for the Dojo client.
package di

import (
	"github.com/samber/do/v2"

	"github.com/dojoapp/dojo-client/internal/config"
	"github.com/dojoapp/dojo-client/internal/di/providers"
	"github.com/dojoapp/dojo-client/internal/groupview"
	"github.com/dojoapp/dojo-client/internal/logger"
	"github.com/dojoapp/dojo-client/internal/nav"
	"github.com/dojoapp/dojo-client/internal/session"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideStore)

	// Backend access
	do.Provide(injector, providers.ProvideAPIClient)
	do.Provide(injector, providers.ProvideValidator)

	// Client state machines
	do.Provide(injector, providers.ProvideSessionManager)
	do.Provide(injector, providers.ProvideNavController)
	do.Provide(injector, providers.ProvideGroupViewLoader)
	do.Provide(injector, providers.ProvideGroupViewActions)

	// Front end
	do.Provide(injector, providers.ProvideShell)

	return injector
}

// Bootstrap triggers lazy initialization of all services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*session.Manager](injector)
	_ = do.MustInvoke[*nav.Controller](injector)
	_ = do.MustInvoke[*groupview.Loader](injector)
	_ = do.MustInvoke[*groupview.Actions](injector)
	_ = do.MustInvoke[*providers.ShellHandle](injector)
	return nil
}
