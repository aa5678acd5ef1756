// Package session owns the authentication token and current user identity.
// It is the single writer of the credential store: login, register,
// restore, logout and password-reset flows all route through the Manager,
// and a session is only ever Anonymous or fully Authenticated — never a
// token without a validated identity.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dojoapp/dojo-client/internal/api"
	domainerrors "github.com/dojoapp/dojo-client/internal/errors"
	"github.com/dojoapp/dojo-client/internal/store"
	"github.com/dojoapp/dojo-client/internal/validation"
)

// ForgotPasswordMessage is reported for every forgot-password request,
// successful or not, so responses cannot be used to probe which email
// addresses have accounts.
const ForgotPasswordMessage = "If the email exists, a reset link has been sent."

// LoginForm carries login credentials.
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

// RegisterForm carries new-account data.
type RegisterForm struct {
	Username       string `json:"username" validate:"required,min=3"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=4"`
	GithubUsername string `json:"github_username" validate:"required"`
}

// ProfileForm carries the one mutable profile field.
type ProfileForm struct {
	GithubUsername string `json:"github_username" validate:"required"`
}

// Manager is the session state machine: Anonymous or Authenticated(user).
type Manager struct {
	api      *api.Client
	tokens   store.TokenStore
	validate *validation.Validator
	logger   *slog.Logger

	mu   sync.RWMutex
	user *api.User
}

// NewManager creates a session manager. It starts Anonymous; call Restore
// once at startup to revalidate a persisted token.
func NewManager(client *api.Client, tokens store.TokenStore, validate *validation.Validator, logger *slog.Logger) *Manager {
	return &Manager{
		api:      client,
		tokens:   tokens,
		validate: validate,
		logger:   logger,
	}
}

// Authenticated reports whether a validated session exists.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// User returns the current user, or nil when Anonymous.
func (m *Manager) User() *api.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Login validates the form, exchanges credentials for a token, persists
// it, and fetches the identity behind it. If the identity fetch fails the
// stored token is rolled back: a login must never leave a half-authenticated
// session.
func (m *Manager) Login(ctx context.Context, form LoginForm) (*api.User, error) {
	if err := m.validate.Validate(form); err != nil {
		return nil, err
	}

	tokens, err := m.api.Login(ctx, form.Email, form.Password)
	if err != nil {
		return nil, err
	}

	if err := m.tokens.SetToken(tokens.AccessToken); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to persist session")
	}

	user, err := m.api.Me(ctx)
	if err != nil {
		// Roll back: the token is useless without a validated identity.
		if clearErr := m.tokens.ClearToken(); clearErr != nil {
			m.logger.Error("token rollback failed", "error", clearErr)
		}
		return nil, err
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	m.logger.Info("signed in", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Register creates the account and then performs the same login sequence.
// A registration failure aborts before any login attempt.
func (m *Manager) Register(ctx context.Context, form RegisterForm) (*api.User, error) {
	if err := m.validate.Validate(form); err != nil {
		return nil, err
	}

	if _, err := m.api.Register(ctx, form.Username, form.Email, form.Password, form.GithubUsername); err != nil {
		return nil, err
	}

	return m.Login(ctx, LoginForm{Email: form.Email, Password: form.Password})
}

// Restore revalidates a persisted token at startup. Without a stored
// token, or on any failure, the session is Anonymous and the stale token
// is discarded; the user is never shown an ambiguous state.
func (m *Manager) Restore(ctx context.Context) bool {
	if _, ok := m.tokens.Token(); !ok {
		return false
	}

	user, err := m.api.Me(ctx)
	if err != nil {
		m.logger.Info("stored session is no longer valid", "error", err)
		if clearErr := m.tokens.ClearToken(); clearErr != nil {
			m.logger.Error("failed to discard stale token", "error", clearErr)
		}
		return false
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	m.logger.Info("session restored", "user_id", user.ID, "username", user.Username)
	return true
}

// UpdateProfile replaces the stored user with the server's authoritative
// response. Requires an Authenticated session.
func (m *Manager) UpdateProfile(ctx context.Context, form ProfileForm) (*api.User, error) {
	if !m.Authenticated() {
		return nil, domainerrors.Unauthenticated("sign in to update your profile")
	}

	if err := m.validate.Validate(form); err != nil {
		return nil, err
	}

	user, err := m.api.UpdateMe(ctx, form.GithubUsername)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	return user, nil
}

// Logout discards the token and transitions to Anonymous unconditionally.
// No network call is made; calling it when already Anonymous is a no-op.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()

	if err := m.tokens.ClearToken(); err != nil {
		m.logger.Error("failed to clear token on logout", "error", err)
	}
}

// ForgotPassword reports the same success message whether the request
// succeeded, failed, or never reached the server. The masking is an
// information-hiding policy: a distinguishable answer would reveal which
// addresses have accounts.
func (m *Manager) ForgotPassword(ctx context.Context, email string) string {
	if err := m.api.ForgotPassword(ctx, email); err != nil {
		m.logger.Debug("forgot-password request failed", "error", err)
	}
	return ForgotPasswordMessage
}

// ResetPassword exchanges a reset token for a password change. Unlike
// ForgotPassword the outcome is distinguishable: the token already
// identifies a pending reset, so there is nothing left to hide. Success
// invalidates all prior tokens server-side, so any locally stored one is
// dropped too.
func (m *Manager) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := m.api.ResetPassword(ctx, token, newPassword); err != nil {
		return err
	}

	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()

	if err := m.tokens.ClearToken(); err != nil {
		m.logger.Error("failed to clear token after reset", "error", err)
	}
	return nil
}
