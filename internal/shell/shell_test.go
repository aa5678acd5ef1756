package shell

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dojoapp/dojo-client/internal/api"
	domainerrors "github.com/dojoapp/dojo-client/internal/errors"
	"github.com/dojoapp/dojo-client/internal/nav"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"login a@b.co secret", []string{"login", "a@b.co", "secret"}},
		{`create-group gophers "late night practice"`, []string{"create-group", "gophers", "late night practice"}},
		{`challenge "goroutine leaks" Medium`, []string{"challenge", "goroutine leaks", "Medium"}},
		{"  refresh  ", []string{"refresh"}},
		{"", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseArgs(tt.input), "input %q", tt.input)
	}
}

func TestPromptFor(t *testing.T) {
	assert.Equal(t, "dojo/login> ", promptFor(nav.State{View: nav.ViewLogin}))
	assert.Equal(t, "dojo/dashboard> ", promptFor(nav.State{View: nav.ViewDashboard}))
	assert.Equal(t, "dojo/group:g1> ", promptFor(nav.State{View: nav.ViewGroup, GroupID: "g1"}))
}

func TestRenderLeaderboard_OrderAndTiers(t *testing.T) {
	var buf bytes.Buffer
	renderLeaderboard(&buf, []api.LeaderboardEntry{
		{UserID: "u1", Username: "alice", Score: 30},
		{UserID: "u2", Username: "bob", Score: 20},
		{UserID: "u3", Username: "carol", Score: 10},
		{UserID: "u4", Username: "dave", Score: 5},
	})

	out := buf.String()
	aliceAt := bytes.Index([]byte(out), []byte("alice"))
	bobAt := bytes.Index([]byte(out), []byte("bob"))
	daveAt := bytes.Index([]byte(out), []byte("dave"))
	assert.Less(t, aliceAt, bobAt, "rows keep server order")
	assert.Less(t, bobAt, daveAt)
	assert.Contains(t, out, "\033[38;5;220m", "top row gets the gold tier")
}

func TestRenderLeaderboard_Empty(t *testing.T) {
	var buf bytes.Buffer
	renderLeaderboard(&buf, nil)
	assert.Contains(t, buf.String(), "empty")
}

func TestRenderError_ValidationFields(t *testing.T) {
	var buf bytes.Buffer
	s := &Shell{out: &buf}

	s.renderError(domainerrors.ValidationWithDetails("validation failed", map[string]string{
		"email": "must be a valid email address",
	}))

	out := buf.String()
	assert.Contains(t, out, "Invalid input:")
	assert.Contains(t, out, "email must be a valid email address")
}

func TestRenderError_RequestFailure(t *testing.T) {
	var buf bytes.Buffer
	s := &Shell{out: &buf}

	s.renderError(domainerrors.Request("Incorrect email or password"))
	assert.Contains(t, buf.String(), "Incorrect email or password")
}
