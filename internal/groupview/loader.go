// Package groupview assembles the data behind the group detail view. Four
// resources are fetched concurrently and joined into one atomic bundle;
// any single failure fails the whole load, because a leaderboard rendered
// against a stale or absent group record would be misleading.
package groupview

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dojoapp/dojo-client/internal/api"
	"github.com/dojoapp/dojo-client/internal/id"
)

// ErrStale is returned when a load completes for a view instance that is
// no longer active. The caller discards the result; a stale response must
// never mutate a newer view's state.
var ErrStale = errors.New("groupview: view instance no longer active")

// Backend is the slice of the API client the group view needs.
type Backend interface {
	Group(ctx context.Context, groupID string) (*api.Group, error)
	GroupLeaderboard(ctx context.Context, groupID string) ([]api.LeaderboardEntry, error)
	ChallengeHistory(ctx context.Context, groupID string) ([]api.Challenge, error)
	MySubmissions(ctx context.Context) ([]api.Submission, error)
	Groups(ctx context.Context) ([]api.Group, error)
	CreateGroup(ctx context.Context, name, description string) (*api.Group, error)
	JoinGroup(ctx context.Context, groupID string) error
	CreateChallenge(ctx context.Context, topic, difficulty, groupID string) (*api.Challenge, error)
}

// Bundle is the aggregated, atomically-replaced data backing the group
// detail view. It is recomputed wholesale on every load; there is no
// incremental patching and no caching across views.
type Bundle struct {
	Group            *api.Group
	Leaderboard      []api.LeaderboardEntry
	ChallengeHistory []api.Challenge
	MySubmissions    []api.Submission
	// MyGroupSubmissions is the subsequence of MySubmissions whose
	// challenge appears in ChallengeHistory, in original order.
	MyGroupSubmissions []api.Submission
}

// Loader coordinates group view loads and drops results from abandoned
// view instances.
type Loader struct {
	backend Backend
	logger  *slog.Logger

	mu     sync.Mutex
	active string
}

// NewLoader creates a group view loader.
func NewLoader(backend Backend, logger *slog.Logger) *Loader {
	return &Loader{
		backend: backend,
		logger:  logger,
	}
}

// BeginView allocates a fresh view-instance tag and makes it the active
// one. Results from loads tagged with an older instance are discarded on
// arrival.
func (l *Loader) BeginView() string {
	instance := id.MustGenerate("view")
	l.mu.Lock()
	l.active = instance
	l.mu.Unlock()
	return instance
}

// EndView deactivates the instance if it is still the active one, so a
// fetch still in flight for it lands nowhere.
func (l *Loader) EndView(instance string) {
	l.mu.Lock()
	if l.active == instance {
		l.active = ""
	}
	l.mu.Unlock()
}

func (l *Loader) isActive(instance string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active == instance
}

// Load fetches group metadata, leaderboard, challenge history, and the
// caller's submissions concurrently, waiting for all four. Any single
// failure fails the whole load; no partial bundle is ever returned. The
// result is dropped with ErrStale when the issuing view instance is no
// longer active by the time all fetches complete.
func (l *Loader) Load(ctx context.Context, instance, groupID, currentUserID string) (*Bundle, error) {
	var (
		group       *api.Group
		leaderboard []api.LeaderboardEntry
		history     []api.Challenge
		submissions []api.Submission
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		group, err = l.backend.Group(gctx, groupID)
		return err
	})
	g.Go(func() error {
		var err error
		leaderboard, err = l.backend.GroupLeaderboard(gctx, groupID)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = l.backend.ChallengeHistory(gctx, groupID)
		return err
	})
	g.Go(func() error {
		var err error
		submissions, err = l.backend.MySubmissions(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		l.logger.Warn("group view load failed", "group_id", groupID, "error", err)
		return nil, err
	}

	if !l.isActive(instance) {
		l.logger.Debug("discarding stale group view result", "group_id", groupID, "instance", instance)
		return nil, ErrStale
	}

	return &Bundle{
		Group:              group,
		Leaderboard:        leaderboard,
		ChallengeHistory:   history,
		MySubmissions:      submissions,
		MyGroupSubmissions: filterGroupSubmissions(submissions, history),
	}, nil
}

// filterGroupSubmissions is an inner join of submissions on challenge
// identity: only submissions whose challenge appears in the group's
// history survive, in their original relative order.
func filterGroupSubmissions(submissions []api.Submission, history []api.Challenge) []api.Submission {
	known := make(map[string]struct{}, len(history))
	for _, ch := range history {
		known[ch.ID] = struct{}{}
	}

	var filtered []api.Submission
	for _, sub := range submissions {
		if _, ok := known[sub.ChallengeID]; ok {
			filtered = append(filtered, sub)
		}
	}
	return filtered
}

// Tier classifies a leaderboard row for presentation emphasis only; it
// never affects stored order.
type Tier string

// Leaderboard row tiers.
const (
	TierGold    Tier = "gold"
	TierSilver  Tier = "silver"
	TierBronze  Tier = "bronze"
	TierDefault Tier = "default"
)

// RankTier maps a zero-based rank to its display tier.
func RankTier(rank int) Tier {
	switch rank {
	case 0:
		return TierGold
	case 1:
		return TierSilver
	case 2:
		return TierBronze
	default:
		return TierDefault
	}
}
