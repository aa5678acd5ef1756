package shell

import (
	"fmt"
	"io"

	"github.com/dojoapp/dojo-client/internal/api"
	"github.com/dojoapp/dojo-client/internal/color"
	domainerrors "github.com/dojoapp/dojo-client/internal/errors"
	"github.com/dojoapp/dojo-client/internal/groupview"
	"github.com/dojoapp/dojo-client/internal/nav"
	"github.com/dojoapp/dojo-client/internal/validation"
)

func (s *Shell) render(state nav.State) {
	switch state.View {
	case nav.ViewLogin:
		fmt.Fprintln(s.out, "Sign in with: login <email> <password>")
	case nav.ViewRegister:
		fmt.Fprintln(s.out, "Create an account with: register <username> <email> <password> <github-username>")
	case nav.ViewForgotPassword:
		fmt.Fprintln(s.out, "Request a reset link with: send <email>")
	case nav.ViewResetPassword:
		fmt.Fprintln(s.out, "Set a new password with: reset <new-password>")
	case nav.ViewDashboard:
		s.renderDashboard()
	case nav.ViewProfile:
		s.renderProfile()
	case nav.ViewGroup:
		s.renderGroup()
	}
}

func (s *Shell) renderDashboard() {
	if s.dashboard == nil {
		fmt.Fprintln(s.out, "No groups loaded; try 'refresh'.")
		return
	}

	fmt.Fprintln(s.out, color.Paint(color.Bold, "My groups"))
	renderGroupList(s.out, s.dashboard.MyGroups, "you are not in any group yet")

	fmt.Fprintln(s.out, color.Paint(color.Bold, "Other groups"))
	renderGroupList(s.out, s.dashboard.OtherGroups, "none")
}

func renderGroupList(w io.Writer, groups []api.Group, empty string) {
	if len(groups) == 0 {
		fmt.Fprintf(w, "  %s\n", color.Paint(color.Dim, empty))
		return
	}
	for _, g := range groups {
		fmt.Fprintf(w, "  %s  %s  %s\n", g.ID, color.Paint(color.Bold, g.Name),
			color.Paint(color.Dim, fmt.Sprintf("%d members", len(g.Members))))
	}
}

func (s *Shell) renderProfile() {
	user := s.session.User()
	if user == nil {
		return
	}
	fmt.Fprintf(s.out, "%s%s%s\n", color.ForUser(user.ID), user.Username, color.Reset)
	fmt.Fprintf(s.out, "  email:  %s\n", user.Email)
	fmt.Fprintf(s.out, "  github: %s\n", user.GithubUsername)
}

func (s *Shell) renderGroup() {
	if s.bundle == nil {
		fmt.Fprintln(s.out, "Group not loaded; try 'refresh'.")
		return
	}
	b := s.bundle

	fmt.Fprintf(s.out, "%s\n%s\n", color.Paint(color.Bold, b.Group.Name), b.Group.Description)

	fmt.Fprintln(s.out, color.Paint(color.Bold, "Leaderboard"))
	renderLeaderboard(s.out, b.Leaderboard)

	fmt.Fprintln(s.out, color.Paint(color.Bold, "Challenge history"))
	if len(b.ChallengeHistory) == 0 {
		fmt.Fprintf(s.out, "  %s\n", color.Paint(color.Dim, "no challenges yet"))
	}
	for _, ch := range b.ChallengeHistory {
		fmt.Fprintf(s.out, "  %s  %s (%s)\n", ch.ID, ch.Topic, ch.Difficulty)
	}

	fmt.Fprintln(s.out, color.Paint(color.Bold, "My submissions in this group"))
	if len(b.MyGroupSubmissions) == 0 {
		fmt.Fprintf(s.out, "  %s\n", color.Paint(color.Dim, "no submissions yet"))
	}
	for _, sub := range b.MyGroupSubmissions {
		fmt.Fprintf(s.out, "  %s  challenge:%s  score:%.1f\n", sub.CommitHash, sub.ChallengeID, sub.Score)
	}
}

// renderLeaderboard prints rows in server order with tier emphasis for
// the top three.
func renderLeaderboard(w io.Writer, entries []api.LeaderboardEntry) {
	if len(entries) == 0 {
		fmt.Fprintf(w, "  %s\n", color.Paint(color.Dim, "empty"))
		return
	}
	for i, e := range entries {
		name := color.ForUser(e.UserID) + e.Username + color.Reset
		row := fmt.Sprintf("%2d. %s  %.1f", i+1, name, e.Score)
		fmt.Fprintf(w, "  %s\n", paintTier(groupview.RankTier(i), row))
	}
}

func paintTier(tier groupview.Tier, s string) string {
	switch tier {
	case groupview.TierGold:
		return color.Paint(color.Gold, s)
	case groupview.TierSilver:
		return color.Paint(color.Silver, s)
	case groupview.TierBronze:
		return color.Paint(color.Bronze, s)
	default:
		return s
	}
}

// renderError prints a failure as a transient notice. Validation errors
// list the offending fields; everything else shows its display message.
func (s *Shell) renderError(err error) {
	if fields := validation.FieldErrors(err); fields != nil {
		fmt.Fprintln(s.out, color.Paint(color.Red, "Invalid input:"))
		for field, msg := range fields {
			fmt.Fprintf(s.out, "  %s %s\n", field, msg)
		}
		return
	}

	var domainErr *domainerrors.Error
	if domainerrors.As(err, &domainErr) {
		fmt.Fprintln(s.out, color.Paint(color.Red, domainErr.Message))
		return
	}
	fmt.Fprintln(s.out, color.Paint(color.Red, api.ErrorMessage(err)))
}

func (s *Shell) renderHelp(state nav.State) {
	fmt.Fprintln(s.out, "Commands available everywhere:")
	fmt.Fprintln(s.out, "  go <view>    navigate (login, register, forgot-password, dashboard, profile, group:<id>)")
	fmt.Fprintln(s.out, "  whoami       show the signed-in user")
	fmt.Fprintln(s.out, "  logout       sign out")
	fmt.Fprintln(s.out, "  exit         leave the shell")

	fmt.Fprintf(s.out, "On the %s view:\n", state.View)
	switch state.View {
	case nav.ViewLogin:
		fmt.Fprintln(s.out, "  login <email> <password>")
	case nav.ViewRegister:
		fmt.Fprintln(s.out, "  register <username> <email> <password> <github-username>")
	case nav.ViewForgotPassword:
		fmt.Fprintln(s.out, "  send <email>")
	case nav.ViewResetPassword:
		fmt.Fprintln(s.out, "  reset <new-password>")
	case nav.ViewDashboard:
		fmt.Fprintln(s.out, "  refresh")
		fmt.Fprintln(s.out, "  open <group-id>")
		fmt.Fprintln(s.out, "  join <group-id>")
		fmt.Fprintln(s.out, `  create-group <name> "<description>"`)
	case nav.ViewProfile:
		fmt.Fprintln(s.out, "  set-github <username>")
	case nav.ViewGroup:
		fmt.Fprintln(s.out, "  refresh")
		fmt.Fprintln(s.out, `  challenge "<topic>" <Easy|Medium|Hard>`)
		fmt.Fprintln(s.out, "  back")
	}
}
