package api

import (
	"context"
	"fmt"
)

// Auth endpoints.

// Register creates a new account. It does not log the user in; the caller
// follows up with Login.
func (c *Client) Register(ctx context.Context, username, email, password, githubUsername string) (*User, error) {
	var user User
	err := c.do(ctx, "register", "/auth/register", requestOpts{
		body: registerRequest{
			Username:       username,
			Email:          email,
			Password:       password,
			GithubUsername: githubUsername,
		},
		noAuth: true,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Me fetches the identity behind the current bearer token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, "me", "/auth/me", requestOpts{}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe replaces the profile's github_username and returns the server's
// authoritative user record.
func (c *Client) UpdateMe(ctx context.Context, githubUsername string) (*User, error) {
	var user User
	err := c.do(ctx, "updateMe", "/auth/me", requestOpts{
		method: "PUT",
		body:   updateProfileRequest{GithubUsername: githubUsername},
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ForgotPassword asks the backend to mail a reset link. The backend
// answers uniformly whether or not the address exists.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, "forgotPassword", "/auth/forgot-password", requestOpts{
		body:   forgotPasswordRequest{Email: email},
		noAuth: true,
	}, nil)
}

// ResetPassword exchanges a reset token for a password change.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.do(ctx, "resetPassword", "/auth/reset-password", requestOpts{
		body:   resetPasswordRequest{Token: token, NewPassword: newPassword},
		noAuth: true,
	}, nil)
}

// Group endpoints.

// Groups lists all groups.
func (c *Client) Groups(ctx context.Context) ([]Group, error) {
	var groups []Group
	if err := c.do(ctx, "groups", "/groups/", requestOpts{}, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Group fetches one group's metadata.
func (c *Client) Group(ctx context.Context, groupID string) (*Group, error) {
	var group Group
	if err := c.do(ctx, "getGroup", fmt.Sprintf("/groups/%s", groupID), requestOpts{}, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// CreateGroup creates a new practice group.
func (c *Client) CreateGroup(ctx context.Context, name, description string) (*Group, error) {
	var group Group
	err := c.do(ctx, "createGroup", "/groups/", requestOpts{
		body: createGroupRequest{Name: name, Description: description},
	}, &group)
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// JoinGroup adds the current user to a group.
func (c *Client) JoinGroup(ctx context.Context, groupID string) error {
	return c.do(ctx, "joinGroup", fmt.Sprintf("/groups/%s/join", groupID), requestOpts{
		method: "POST",
	}, nil)
}

// Challenge, submission and leaderboard endpoints.

// CreateChallenge requests generation of a new challenge for a group.
func (c *Client) CreateChallenge(ctx context.Context, topic, difficulty, groupID string) (*Challenge, error) {
	var challenge Challenge
	err := c.do(ctx, "createChallenge", "/challenges/", requestOpts{
		body: createChallengeRequest{Topic: topic, Difficulty: difficulty, GroupID: groupID},
	}, &challenge)
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

// ChallengeHistory lists the challenges generated for a group.
func (c *Client) ChallengeHistory(ctx context.Context, groupID string) ([]Challenge, error) {
	var history []Challenge
	if err := c.do(ctx, "challengeHistory", fmt.Sprintf("/challenges/group/%s", groupID), requestOpts{}, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// MySubmissions lists the caller's submissions across all groups; the
// endpoint is not group-scoped.
func (c *Client) MySubmissions(ctx context.Context) ([]Submission, error) {
	var subs []Submission
	if err := c.do(ctx, "mySubmissions", "/submissions/", requestOpts{}, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// GroupLeaderboard fetches a group's ranked scores in server order.
func (c *Client) GroupLeaderboard(ctx context.Context, groupID string) ([]LeaderboardEntry, error) {
	var board []LeaderboardEntry
	if err := c.do(ctx, "groupLeaderboard", fmt.Sprintf("/leaderboard/group/%s", groupID), requestOpts{}, &board); err != nil {
		return nil, err
	}
	return board, nil
}
