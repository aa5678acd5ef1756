package providers

import (
	"github.com/samber/do/v2"

	"github.com/dojoapp/dojo-client/internal/groupview"
	"github.com/dojoapp/dojo-client/internal/logger"
	"github.com/dojoapp/dojo-client/internal/nav"
	"github.com/dojoapp/dojo-client/internal/session"
	"github.com/dojoapp/dojo-client/internal/shell"
)

// ShellHandle wraps the shell with shutdown capability.
type ShellHandle struct {
	*shell.Shell
}

// Shutdown implements do.Shutdownable.
func (h *ShellHandle) Shutdown() error {
	return h.Close()
}

// ProvideShell provides the interactive terminal front end.
func ProvideShell(i do.Injector) (*ShellHandle, error) {
	sess := do.MustInvoke[*session.Manager](i)
	navc := do.MustInvoke[*nav.Controller](i)
	loader := do.MustInvoke[*groupview.Loader](i)
	actions := do.MustInvoke[*groupview.Actions](i)
	log := do.MustInvoke[*logger.Logger](i)

	sh, err := shell.New(sess, navc, loader, actions, log.Logger)
	if err != nil {
		return nil, err
	}

	return &ShellHandle{Shell: sh}, nil
}
