package providers

import (
	"github.com/samber/do/v2"

	"github.com/dojoapp/dojo-client/internal/api"
	"github.com/dojoapp/dojo-client/internal/config"
	"github.com/dojoapp/dojo-client/internal/groupview"
	"github.com/dojoapp/dojo-client/internal/logger"
	"github.com/dojoapp/dojo-client/internal/nav"
	"github.com/dojoapp/dojo-client/internal/session"
	"github.com/dojoapp/dojo-client/internal/validation"
)

// ProvideSessionManager provides the session state machine. It receives
// the writable credential store; everything else sees tokens read-only.
func ProvideSessionManager(i do.Injector) (*session.Manager, error) {
	client := do.MustInvoke[*api.Client](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validate := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return session.NewManager(client, storeHandle.Store, validate, log.Logger), nil
}

// ProvideNavController provides the navigation controller.
func ProvideNavController(i do.Injector) (*nav.Controller, error) {
	cfg := do.MustInvoke[*config.Config](i)
	sess := do.MustInvoke[*session.Manager](i)
	log := do.MustInvoke[*logger.Logger](i)

	return nav.NewController(sess, cfg.Nav.BootstrapURL, cfg.Nav.ResetRedirectDelay, log.Logger), nil
}

// ProvideGroupViewLoader provides the group view loader.
func ProvideGroupViewLoader(i do.Injector) (*groupview.Loader, error) {
	client := do.MustInvoke[*api.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return groupview.NewLoader(client, log.Logger), nil
}

// ProvideGroupViewActions provides the dashboard and group view mutations.
func ProvideGroupViewActions(i do.Injector) (*groupview.Actions, error) {
	client := do.MustInvoke[*api.Client](i)
	validate := do.MustInvoke[*validation.Validator](i)

	return groupview.NewActions(client, validate), nil
}
