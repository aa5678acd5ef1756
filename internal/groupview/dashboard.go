package groupview

import (
	"context"
	"slices"

	"github.com/dojoapp/dojo-client/internal/api"
)

// Dashboard is the data behind the dashboard view: all groups, split by
// the current user's membership.
type Dashboard struct {
	MyGroups    []api.Group
	OtherGroups []api.Group
}

// LoadDashboard fetches the group list and splits it by membership.
func (l *Loader) LoadDashboard(ctx context.Context, currentUserID string) (*Dashboard, error) {
	groups, err := l.backend.Groups(ctx)
	if err != nil {
		return nil, err
	}

	mine, others := SplitGroups(groups, currentUserID)
	return &Dashboard{MyGroups: mine, OtherGroups: others}, nil
}

// SplitGroups partitions groups into those the user belongs to and the
// rest, preserving server order in both halves.
func SplitGroups(groups []api.Group, userID string) (mine, others []api.Group) {
	for _, g := range groups {
		if slices.Contains(g.Members, userID) {
			mine = append(mine, g)
		} else {
			others = append(others, g)
		}
	}
	return mine, others
}
