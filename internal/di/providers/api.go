package providers

import (
	"github.com/samber/do/v2"

	"github.com/dojoapp/dojo-client/internal/api"
	"github.com/dojoapp/dojo-client/internal/config"
	"github.com/dojoapp/dojo-client/internal/logger"
	"github.com/dojoapp/dojo-client/internal/validation"
)

// ProvideAPIClient provides the backend HTTP client. It reads tokens from
// the credential store but cannot write them; only the session manager can.
func ProvideAPIClient(i do.Injector) (*api.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return api.New(cfg.API.BaseURL, cfg.API.RequestTimeout, storeHandle.Store, log.Logger), nil
}

// ProvideValidator provides the form validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
