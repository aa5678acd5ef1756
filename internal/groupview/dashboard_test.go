package groupview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dojoapp/dojo-client/internal/api"
)

func TestSplitGroups(t *testing.T) {
	groups := []api.Group{
		{ID: "g1", Name: "Alpha", Members: []string{"u1", "u2"}},
		{ID: "g2", Name: "Beta", Members: []string{"u2"}},
		{ID: "g3", Name: "Gamma", Members: []string{"u1"}},
		{ID: "g4", Name: "Delta"},
	}

	mine, others := SplitGroups(groups, "u1")

	require.Len(t, mine, 2)
	assert.Equal(t, "Alpha", mine[0].Name)
	assert.Equal(t, "Gamma", mine[1].Name)

	require.Len(t, others, 2)
	assert.Equal(t, "Beta", others[0].Name)
	assert.Equal(t, "Delta", others[1].Name)
}

func TestSplitGroups_Empty(t *testing.T) {
	mine, others := SplitGroups(nil, "u1")
	assert.Empty(t, mine)
	assert.Empty(t, others)
}

func TestLoadDashboard(t *testing.T) {
	backend := happyBackend()
	backend.groups = []api.Group{
		{ID: "g1", Name: "Alpha", Members: []string{"u1"}},
		{ID: "g2", Name: "Beta", Members: []string{"u9"}},
	}

	l := NewLoader(backend, testLogger())
	dash, err := l.LoadDashboard(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, dash.MyGroups, 1)
	assert.Equal(t, "Alpha", dash.MyGroups[0].Name)
	require.Len(t, dash.OtherGroups, 1)
	assert.Equal(t, "Beta", dash.OtherGroups[0].Name)
}

func TestLoadDashboard_BackendFailure(t *testing.T) {
	boom := errors.New("listing unavailable")
	backend := happyBackend()
	backend.groupsErr = boom

	l := NewLoader(backend, testLogger())
	_, err := l.LoadDashboard(context.Background(), "u1")
	assert.ErrorIs(t, err, boom)
}
