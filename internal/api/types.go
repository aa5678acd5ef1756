package api

// User is the authenticated account record. The server's response is
// authoritative; the client never merges user fields locally.
type User struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	GithubUsername string `json:"github_username,omitempty"`
}

// TokenResponse is the result of the form-encoded login call.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
}

// Group is a practice group's metadata.
type Group struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members,omitempty"`
}

// Challenge is one generated challenge. The Topic field is capitalized on
// the wire; the backend contract spells it that way.
type Challenge struct {
	ID         string `json:"id"`
	Topic      string `json:"Topic"`
	Difficulty string `json:"difficulty"`
}

// Submission is one of the caller's solution submissions. The submissions
// endpoint is not group-scoped; filtering to a group happens client-side.
type Submission struct {
	ID          string  `json:"id"`
	ChallengeID string  `json:"challenge_id"`
	CommitHash  string  `json:"commit_hash"`
	Score       float64 `json:"score"`
	Feedback    string  `json:"feedback,omitempty"`
}

// LeaderboardEntry is one ranked row. Rows arrive pre-sorted from the
// server and the client preserves that order.
type LeaderboardEntry struct {
	UserID   string  `json:"user_id"`
	Username string  `json:"username"`
	Score    float64 `json:"score"`
}

// Request bodies.

type registerRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	GithubUsername string `json:"github_username"`
}

type updateProfileRequest struct {
	GithubUsername string `json:"github_username"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type createGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type createChallengeRequest struct {
	Topic      string `json:"Topic"`
	Difficulty string `json:"difficulty"`
	GroupID    string `json:"group_id"`
}
