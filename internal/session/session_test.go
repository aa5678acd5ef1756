package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dojoapp/dojo-client/internal/api"
	domainerrors "github.com/dojoapp/dojo-client/internal/errors"
	"github.com/dojoapp/dojo-client/internal/store"
	"github.com/dojoapp/dojo-client/internal/validation"
)

// fakeBackend simulates the auth endpoints with failure injection.
type fakeBackend struct {
	loginCalls atomic.Int64
	meCalls    atomic.Int64
	totalCalls atomic.Int64
	failLogin  bool
	failMe     bool
	failForgot bool
	failReset  bool
	githubName string
	registered atomic.Int64
}

func (f *fakeBackend) user() api.User {
	github := f.githubName
	if github == "" {
		github = "alice-gh"
	}
	return api.User{ID: "u1", Username: "alice", Email: "alice@example.com", GithubUsername: github}
}

func (f *fakeBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.totalCalls.Add(1)
		switch {
		case r.URL.Path == "/auth/login":
			f.loginCalls.Add(1)
			if f.failLogin {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail": "Incorrect email or password"}`))
				return
			}
			json.NewEncoder(w).Encode(api.TokenResponse{AccessToken: "tok-live"})
		case r.URL.Path == "/auth/me" && r.Method == http.MethodGet:
			f.meCalls.Add(1)
			if f.failMe {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail": "Could not validate credentials"}`))
				return
			}
			json.NewEncoder(w).Encode(f.user())
		case r.URL.Path == "/auth/me" && r.Method == http.MethodPut:
			var body struct {
				GithubUsername string `json:"github_username"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			f.githubName = body.GithubUsername
			json.NewEncoder(w).Encode(f.user())
		case r.URL.Path == "/auth/register":
			f.registered.Add(1)
			json.NewEncoder(w).Encode(f.user())
		case r.URL.Path == "/auth/forgot-password":
			if f.failForgot {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"detail": "mailer exploded"}`))
				return
			}
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/auth/reset-password":
			if f.failReset {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"detail": "Invalid or expired token"}`))
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "Not found"}`))
		}
	}
}

func newTestManager(t *testing.T, backend *fakeBackend) (*Manager, *store.MemStore) {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	tokens := store.NewMemStore()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	client := api.New(server.URL, 0, tokens, logger)
	return NewManager(client, tokens, validation.New(), logger), tokens
}

func TestLogin_Success(t *testing.T) {
	backend := &fakeBackend{}
	m, tokens := newTestManager(t, backend)

	user, err := m.Login(context.Background(), LoginForm{Email: "alice@example.com", Password: "hunter2"})
	require.NoError(t, err)

	assert.True(t, m.Authenticated())
	assert.Equal(t, "alice", user.Username)

	token, ok := tokens.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-live", token)
}

func TestLogin_WrongPassword(t *testing.T) {
	backend := &fakeBackend{failLogin: true}
	m, tokens := newTestManager(t, backend)

	_, err := m.Login(context.Background(), LoginForm{Email: "alice@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "Incorrect email or password", api.ErrorMessage(err))

	assert.False(t, m.Authenticated(), "session must remain Anonymous")
	_, ok := tokens.Token()
	assert.False(t, ok, "token store must remain empty")
}

func TestLogin_IdentityFailureRollsBackToken(t *testing.T) {
	backend := &fakeBackend{failMe: true}
	m, tokens := newTestManager(t, backend)

	_, err := m.Login(context.Background(), LoginForm{Email: "alice@example.com", Password: "hunter2"})
	require.Error(t, err)

	assert.False(t, m.Authenticated(), "a token without a validated identity is not a session")
	_, ok := tokens.Token()
	assert.False(t, ok, "stored token must be rolled back")
}

func TestLogin_ValidationFailureNeverHitsNetwork(t *testing.T) {
	backend := &fakeBackend{}
	m, _ := newTestManager(t, backend)

	_, err := m.Login(context.Background(), LoginForm{Email: "not-an-email", Password: "abc"})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
	assert.NotNil(t, validation.FieldErrors(err))
	assert.Zero(t, backend.totalCalls.Load())
}

func TestRegister_SuccessLogsIn(t *testing.T) {
	backend := &fakeBackend{}
	m, _ := newTestManager(t, backend)

	user, err := m.Register(context.Background(), RegisterForm{
		Username:       "alice",
		Email:          "alice@example.com",
		Password:       "hunter2",
		GithubUsername: "alice-gh",
	})
	require.NoError(t, err)
	assert.True(t, m.Authenticated())
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, int64(1), backend.registered.Load())
	assert.Equal(t, int64(1), backend.loginCalls.Load())
}

func TestRegister_ValidationFailureAbortsEverything(t *testing.T) {
	backend := &fakeBackend{}
	m, _ := newTestManager(t, backend)

	_, err := m.Register(context.Background(), RegisterForm{Username: "al"})
	require.Error(t, err)
	assert.Zero(t, backend.totalCalls.Load())
}

func TestRestore_NoTokenIsAnonymous(t *testing.T) {
	backend := &fakeBackend{}
	m, _ := newTestManager(t, backend)

	assert.False(t, m.Restore(context.Background()))
	assert.False(t, m.Authenticated())
	assert.Zero(t, backend.totalCalls.Load(), "no stored token means no network call")
}

func TestRestore_ValidToken(t *testing.T) {
	backend := &fakeBackend{}
	m, tokens := newTestManager(t, backend)
	require.NoError(t, tokens.SetToken("tok-live"))

	assert.True(t, m.Restore(context.Background()))
	assert.True(t, m.Authenticated())
}

func TestRestore_StaleTokenDiscarded(t *testing.T) {
	backend := &fakeBackend{failMe: true}
	m, tokens := newTestManager(t, backend)
	require.NoError(t, tokens.SetToken("tok-stale"))

	assert.False(t, m.Restore(context.Background()))
	assert.False(t, m.Authenticated())

	_, ok := tokens.Token()
	assert.False(t, ok, "stale token must be discarded")
}

func TestLogout_Idempotent(t *testing.T) {
	backend := &fakeBackend{}
	m, tokens := newTestManager(t, backend)

	_, err := m.Login(context.Background(), LoginForm{Email: "alice@example.com", Password: "hunter2"})
	require.NoError(t, err)
	callsAfterLogin := backend.totalCalls.Load()

	m.Logout()
	assert.False(t, m.Authenticated())
	_, ok := tokens.Token()
	assert.False(t, ok)

	m.Logout() // already Anonymous
	assert.False(t, m.Authenticated())
	assert.Equal(t, callsAfterLogin, backend.totalCalls.Load(), "logout performs no network call")
}

func TestUpdateProfile_RequiresAuthenticated(t *testing.T) {
	backend := &fakeBackend{}
	m, _ := newTestManager(t, backend)

	_, err := m.UpdateProfile(context.Background(), ProfileForm{GithubUsername: "alice"})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnauthenticated))
}

func TestUpdateProfile_RoundTrip(t *testing.T) {
	backend := &fakeBackend{}
	m, _ := newTestManager(t, backend)

	_, err := m.Login(context.Background(), LoginForm{Email: "alice@example.com", Password: "hunter2"})
	require.NoError(t, err)

	updated, err := m.UpdateProfile(context.Background(), ProfileForm{GithubUsername: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.GithubUsername)

	// A fresh identity fetch agrees with the update.
	fresh := m.User()
	assert.Equal(t, "alice", fresh.GithubUsername)
}

func TestForgotPassword_UniformMessage(t *testing.T) {
	okBackend := &fakeBackend{}
	mOK, _ := newTestManager(t, okBackend)

	failBackend := &fakeBackend{failForgot: true}
	mFail, _ := newTestManager(t, failBackend)

	msgOK := mOK.ForgotPassword(context.Background(), "alice@example.com")
	msgFail := mFail.ForgotPassword(context.Background(), "whoever@example.com")

	assert.Equal(t, ForgotPasswordMessage, msgOK)
	assert.Equal(t, msgOK, msgFail, "success and failure must be indistinguishable")
}

func TestResetPassword_SuccessClearsLocalToken(t *testing.T) {
	backend := &fakeBackend{}
	m, tokens := newTestManager(t, backend)
	require.NoError(t, tokens.SetToken("tok-old"))

	require.NoError(t, m.ResetPassword(context.Background(), "reset-tok", "newpass"))

	_, ok := tokens.Token()
	assert.False(t, ok, "reset invalidates all prior tokens")
	assert.False(t, m.Authenticated())
}

func TestResetPassword_FailureIsDistinguishable(t *testing.T) {
	backend := &fakeBackend{failReset: true}
	m, _ := newTestManager(t, backend)

	err := m.ResetPassword(context.Background(), "expired-tok", "newpass")
	require.Error(t, err)
	assert.Equal(t, "Invalid or expired token", api.ErrorMessage(err))
}
