package groupview

import (
	"context"

	"github.com/dojoapp/dojo-client/internal/api"
	"github.com/dojoapp/dojo-client/internal/validation"
)

// CreateGroupForm carries the new-group fields.
type CreateGroupForm struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description" validate:"required,min=2"`
}

// CreateChallengeForm carries the new-challenge fields. The Topic field
// name matches the backend contract's capitalization.
type CreateChallengeForm struct {
	Topic      string `json:"Topic" validate:"required,min=3"`
	Difficulty string `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
}

// Actions performs the mutations available from the dashboard and group
// views. Every mutation is followed by a full reload of the affected
// view, never an incremental patch: the bundle is an atomic snapshot.
type Actions struct {
	backend  Backend
	validate *validation.Validator
}

// NewActions creates the action set.
func NewActions(backend Backend, validate *validation.Validator) *Actions {
	return &Actions{backend: backend, validate: validate}
}

// CreateGroup validates the form and creates the group.
func (a *Actions) CreateGroup(ctx context.Context, form CreateGroupForm) (*api.Group, error) {
	if err := a.validate.Validate(form); err != nil {
		return nil, err
	}
	return a.backend.CreateGroup(ctx, form.Name, form.Description)
}

// JoinGroup adds the current user to the group.
func (a *Actions) JoinGroup(ctx context.Context, groupID string) error {
	return a.backend.JoinGroup(ctx, groupID)
}

// CreateChallenge validates the form and requests challenge generation
// for the group.
func (a *Actions) CreateChallenge(ctx context.Context, groupID string, form CreateChallengeForm) (*api.Challenge, error) {
	if err := a.validate.Validate(form); err != nil {
		return nil, err
	}
	return a.backend.CreateChallenge(ctx, form.Topic, form.Difficulty, groupID)
}
