package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/dojoapp/dojo-client/internal/config"
	"github.com/dojoapp/dojo-client/internal/logger"
	"github.com/dojoapp/dojo-client/internal/store"
)

// StoreHandle wraps the credential store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the persistent credential store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.Path, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Debug("Credential store opened", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}
