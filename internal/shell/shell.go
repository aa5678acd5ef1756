// Package shell is the interactive terminal front end. It renders the
// active view, reads commands with readline, and dispatches them to the
// session manager, the navigation controller and the group view loader.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/dojoapp/dojo-client/internal/groupview"
	"github.com/dojoapp/dojo-client/internal/nav"
	"github.com/dojoapp/dojo-client/internal/session"
)

// errQuit signals a clean exit from the command loop.
var errQuit = errors.New("quit requested")

// Shell drives the interactive loop.
type Shell struct {
	session *session.Manager
	nav     *nav.Controller
	loader  *groupview.Loader
	actions *groupview.Actions
	logger  *slog.Logger

	rl  *readline.Instance
	out io.Writer

	// viewInstance tags the active group view; bundle and dashboard hold
	// the data behind the current view and are replaced wholesale.
	viewInstance string
	bundle       *groupview.Bundle
	dashboard    *groupview.Dashboard
}

// New creates the shell and its readline instance.
func New(sess *session.Manager, navc *nav.Controller, loader *groupview.Loader, actions *groupview.Actions, logger *slog.Logger) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "dojo> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}

	return &Shell{
		session: sess,
		nav:     navc,
		loader:  loader,
		actions: actions,
		logger:  logger,
		rl:      rl,
		out:     os.Stdout,
	}, nil
}

// Close releases the readline instance.
func (s *Shell) Close() error {
	return s.rl.Close()
}

// Run bootstraps navigation and enters the command loop. It returns when
// the user exits or the context is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Welcome to Dojo. Use 'help' for the list of commands.")

	state := s.nav.Bootstrap(ctx)
	s.enterView(ctx, state)
	s.render(state)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.rl.SetPrompt(promptFor(s.nav.Current()))
		line, err := s.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Fprintln(s.out, "Use 'exit' to leave.")
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		before := s.nav.Current()
		err = s.dispatch(ctx, parseArgs(line))
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			s.renderError(err)
		}

		after := s.nav.Current()
		if after != before {
			s.enterView(ctx, after)
			s.render(after)
		}
	}
}

// enterView performs the data loads a view needs on entry and retires the
// group view instance when leaving it.
func (s *Shell) enterView(ctx context.Context, state nav.State) {
	if state.View != nav.ViewGroup && s.viewInstance != "" {
		s.loader.EndView(s.viewInstance)
		s.viewInstance = ""
		s.bundle = nil
	}

	switch state.View {
	case nav.ViewDashboard:
		s.reloadDashboard(ctx)
	case nav.ViewGroup:
		s.viewInstance = s.loader.BeginView()
		s.reloadGroup(ctx, state.GroupID)
	}
}

func (s *Shell) reloadDashboard(ctx context.Context) {
	user := s.session.User()
	if user == nil {
		return
	}
	dash, err := s.loader.LoadDashboard(ctx, user.ID)
	if err != nil {
		s.dashboard = nil
		s.renderError(err)
		return
	}
	s.dashboard = dash
}

func (s *Shell) reloadGroup(ctx context.Context, groupID string) {
	user := s.session.User()
	if user == nil {
		return
	}
	bundle, err := s.loader.Load(ctx, s.viewInstance, groupID, user.ID)
	if errors.Is(err, groupview.ErrStale) {
		return
	}
	if err != nil {
		s.bundle = nil
		s.renderError(err)
		return
	}
	s.bundle = bundle
}

// parseArgs splits a command line into arguments, honoring double quotes.
func parseArgs(input string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, char := range input {
		switch char {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if inQuotes {
				current.WriteRune(char)
			} else if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(char)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// promptFor renders the navigation position into the readline prompt.
func promptFor(state nav.State) string {
	if state.View == nav.ViewGroup {
		return fmt.Sprintf("dojo/group:%s> ", state.GroupID)
	}
	return fmt.Sprintf("dojo/%s> ", state.View)
}
