// Package nav is the top-level navigation state machine. It decides which
// view is active, gated by whether a session exists, carries view
// parameters across transitions, and handles the startup redirect to the
// reset-password view when a reset token rides in on the launch URL.
package nav

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"
)

// View identifies one screen of the client.
type View string

// All views.
const (
	ViewLogin          View = "login"
	ViewRegister       View = "register"
	ViewForgotPassword View = "forgot-password"
	ViewResetPassword  View = "reset-password"
	ViewDashboard      View = "dashboard"
	ViewProfile        View = "profile"
	ViewGroup          View = "group"
)

// State is the navigation position. GroupID is set iff View is ViewGroup;
// transitions always replace both fields together.
type State struct {
	View    View
	GroupID string
}

// groupTargetPrefix selects the group view with a parameter: "group:<id>".
const groupTargetPrefix = "group:"

// parseTarget turns a navigation target literal into a requested state.
func parseTarget(target string) State {
	if id, ok := strings.CutPrefix(target, groupTargetPrefix); ok && id != "" {
		return State{View: ViewGroup, GroupID: id}
	}
	return State{View: View(target)}
}

// gate applies the reachability rule for the current session state.
// Anonymous sessions reach only the four public views and fall back to
// login; authenticated sessions reach dashboard, profile and group and
// fall back to dashboard.
func gate(authenticated bool, requested State) State {
	if !authenticated {
		switch requested.View {
		case ViewLogin, ViewRegister, ViewForgotPassword, ViewResetPassword:
			return State{View: requested.View}
		default:
			return State{View: ViewLogin}
		}
	}

	switch requested.View {
	case ViewDashboard, ViewProfile:
		return State{View: requested.View}
	case ViewGroup:
		if requested.GroupID == "" {
			return State{View: ViewDashboard}
		}
		return requested
	default:
		return State{View: ViewDashboard}
	}
}

// Resolve is the pure transition function: target literal in, gated state
// out. It has no side effects and is what NavigateTo applies.
func Resolve(authenticated bool, target string) State {
	return gate(authenticated, parseTarget(target))
}

// Session is the slice of the session manager the controller needs.
type Session interface {
	Authenticated() bool
	Restore(ctx context.Context) bool
}

// Controller owns the navigation state for the running client.
type Controller struct {
	session       Session
	logger        *slog.Logger
	redirectDelay time.Duration
	resetToken    string

	mu    sync.Mutex
	state State
	timer *time.Timer
}

// NewController creates the controller. bootstrapURL is the URL the
// client was launched with; a "token" query parameter is the password
// reset bootstrap.
func NewController(session Session, bootstrapURL string, redirectDelay time.Duration, logger *slog.Logger) *Controller {
	return &Controller{
		session:       session,
		logger:        logger,
		redirectDelay: redirectDelay,
		resetToken:    resetTokenFromURL(bootstrapURL),
		state:         State{View: ViewLogin},
	}
}

// resetTokenFromURL extracts the reset token query parameter, if any.
func resetTokenFromURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("token")
}

// ResetToken returns the bootstrap reset token, empty when absent.
func (c *Controller) ResetToken() string {
	return c.resetToken
}

// Bootstrap establishes the initial state. With a reset token in the
// launch URL the session is treated as Anonymous — any stored token is
// ignored, not cleared, and no network call is made — and the state is
// pinned to reset-password. Otherwise a stored session is restored and
// the gate picks dashboard or login.
func (c *Controller) Bootstrap(ctx context.Context) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.resetToken != "" {
		c.state = State{View: ViewResetPassword}
		c.logger.Info("reset token present, opening reset form")
		return c.state
	}

	if c.session.Restore(ctx) {
		c.state = State{View: ViewDashboard}
	} else {
		c.state = State{View: ViewLogin}
	}
	return c.state
}

// NavigateTo transitions toward the target, subject to the gate.
func (c *Controller) NavigateTo(target string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Resolve(c.session.Authenticated(), target)
	return c.state
}

// Current re-applies the gate to the held state and returns the result.
// The gate runs on every render, not only on transitions, so a session
// change (login, logout, expiry) snaps the view to a reachable one.
func (c *Controller) Current() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = gate(c.session.Authenticated(), c.state)
	return c.state
}

// OnLoginSuccess moves to the dashboard after a login or registration.
func (c *Controller) OnLoginSuccess() State {
	return c.NavigateTo(string(ViewDashboard))
}

// OnLogout moves to the login view.
func (c *Controller) OnLogout() State {
	return c.NavigateTo(string(ViewLogin))
}

// OnResetSuccess schedules the transition back to login after the grace
// period, leaving the confirmation visible meanwhile. done, when not nil,
// is signalled after the transition (used by the shell to re-render).
func (c *Controller) OnResetSuccess(done chan<- State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.redirectDelay, func() {
		state := c.NavigateTo(string(ViewLogin))
		if done != nil {
			done <- state
		}
	})
}
