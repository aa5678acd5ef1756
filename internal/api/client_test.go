package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token() (string, bool) {
	return s.token, s.token != ""
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(server.URL, 0, staticTokens{token: token}, testLogger())
	client.http = server.Client()
	return client, server
}

func TestDo_MethodDefaults(t *testing.T) {
	var gotMethod string
	client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.Write([]byte(`{}`))
	})

	require.NoError(t, client.do(context.Background(), "probe", "/groups/", requestOpts{}, nil))
	assert.Equal(t, http.MethodGet, gotMethod, "no body defaults to GET")

	require.NoError(t, client.do(context.Background(), "probe", "/groups/", requestOpts{body: map[string]string{"name": "x"}}, nil))
	assert.Equal(t, http.MethodPost, gotMethod, "body defaults to POST")
}

func TestDo_InjectsBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, "tok123", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	require.NoError(t, client.do(context.Background(), "probe", "/groups/", requestOpts{}, nil))
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestDo_NoTokenNoHeader(t *testing.T) {
	var hasAuth bool
	client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	})

	require.NoError(t, client.do(context.Background(), "probe", "/groups/", requestOpts{}, nil))
	assert.False(t, hasAuth)
}

func TestDo_ExtractsDetailFromErrorBody(t *testing.T) {
	client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Incorrect email or password"}`))
	})

	err := client.do(context.Background(), "probe", "/auth/me", requestOpts{}, nil)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Incorrect email or password", apiErr.Detail)
}

func TestDo_UnparseableErrorBodyFallsBack(t *testing.T) {
	client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>gateway timeout</html>`))
	})

	err := client.do(context.Background(), "probe", "/groups/", requestOpts{}, nil)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, unknownErrorMessage, apiErr.Detail)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
}

func TestDo_NoContentLeavesOutZero(t *testing.T) {
	client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	var out map[string]any
	require.NoError(t, client.do(context.Background(), "probe", "/groups/1/join", requestOpts{method: "POST"}, &out))
	assert.Empty(t, out)
}

func TestLogin_FormEncodedWithoutBearer(t *testing.T) {
	var (
		gotContentType string
		gotUsername    string
		gotPassword    string
		hasAuth        bool
	)
	client, _ := newTestClient(t, "stale-token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotContentType = r.Header.Get("Content-Type")
		gotUsername = r.PostFormValue("username")
		gotPassword = r.PostFormValue("password")
		_, hasAuth = r.Header["Authorization"]
		w.Write([]byte(`{"access_token": "fresh", "token_type": "bearer"}`))
	})

	tokens, err := client.Login(context.Background(), "alice@example.com", "hunter2")
	require.NoError(t, err)

	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "alice@example.com", gotUsername, "email travels in the username field")
	assert.Equal(t, "hunter2", gotPassword)
	assert.False(t, hasAuth, "login must not carry a stale bearer token")
	assert.Equal(t, "fresh", tokens.AccessToken)
}

func TestLogin_ServerDetailSurfaced(t *testing.T) {
	client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Incorrect email or password"}`))
	})

	_, err := client.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Incorrect email or password", ErrorMessage(err))
}

func TestMe_ParsesUser(t *testing.T) {
	client, _ := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/me", r.URL.Path)
		w.Write([]byte(`{"id": "u1", "username": "alice", "email": "alice@example.com", "github_username": "alice-gh"}`))
	})

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "alice-gh", user.GithubUsername)
}

func TestUpdateMe_UsesPut(t *testing.T) {
	var gotMethod string
	client, _ := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.Write([]byte(`{"id": "u1", "username": "alice", "email": "a@b.c", "github_username": "alice"}`))
	})

	user, err := client.UpdateMe(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "alice", user.GithubUsername)
}

func TestGroupLeaderboard_PreservesServerOrder(t *testing.T) {
	client, _ := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"user_id": "u2", "username": "bob", "score": 10},
			{"user_id": "u1", "username": "alice", "score": 30},
			{"user_id": "u3", "username": "cara", "score": 20}
		]`))
	})

	board, err := client.GroupLeaderboard(context.Background(), "g1")
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, "bob", board[0].Username, "client must not re-sort the leaderboard")
	assert.Equal(t, "alice", board[1].Username)
}

func TestContextCancellation(t *testing.T) {
	client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Groups(ctx)
	assert.Error(t, err)
}

func TestLimiterKey(t *testing.T) {
	tests := []struct {
		endpoint string
		want     string
	}{
		{"/groups/", "groups"},
		{"/groups/42/join", "groups"},
		{"/auth/login", "auth"},
		{"/submissions/", "submissions"},
		{"/", "root"},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			assert.Equal(t, tt.want, limiterKey(tt.endpoint))
		})
	}
}

func TestError_Error(t *testing.T) {
	withStatus := &Error{Op: "getGroup", Status: 404, Detail: "Group not found"}
	assert.Equal(t, "api getGroup [404]: Group not found", withStatus.Error())

	transport := &Error{Op: "groups", Detail: unknownErrorMessage, Err: errors.New("dial refused")}
	assert.Equal(t, "api groups: "+unknownErrorMessage, transport.Error())
	assert.ErrorContains(t, errors.Unwrap(transport), "dial refused")
}
