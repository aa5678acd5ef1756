package shell

import (
	"context"
	"fmt"

	domainerrors "github.com/dojoapp/dojo-client/internal/errors"
	"github.com/dojoapp/dojo-client/internal/groupview"
	"github.com/dojoapp/dojo-client/internal/nav"
	"github.com/dojoapp/dojo-client/internal/session"
)

// dispatch routes one parsed command. View-specific commands are only
// accepted on their view; navigation and session commands work anywhere
// the gate allows the resulting view.
func (s *Shell) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return nil
	}

	state := s.nav.Current()

	switch args[0] {
	case "help":
		s.renderHelp(state)
		return nil
	case "exit", "quit":
		fmt.Fprintln(s.out, "Goodbye.")
		return errQuit
	case "go":
		if len(args) != 2 {
			return domainerrors.Validation("usage: go <view>")
		}
		s.nav.NavigateTo(args[1])
		return nil
	case "whoami":
		return s.handleWhoami()
	case "logout":
		s.session.Logout()
		s.nav.OnLogout()
		fmt.Fprintln(s.out, "Signed out.")
		return nil
	}

	switch state.View {
	case nav.ViewLogin:
		return s.dispatchLogin(ctx, args)
	case nav.ViewRegister:
		return s.dispatchRegister(ctx, args)
	case nav.ViewForgotPassword:
		return s.dispatchForgotPassword(ctx, args)
	case nav.ViewResetPassword:
		return s.dispatchResetPassword(ctx, args)
	case nav.ViewDashboard:
		return s.dispatchDashboard(ctx, args)
	case nav.ViewProfile:
		return s.dispatchProfile(ctx, args)
	case nav.ViewGroup:
		return s.dispatchGroup(ctx, args, state.GroupID)
	default:
		return domainerrors.Validation("unknown command: " + args[0])
	}
}

func (s *Shell) handleWhoami() error {
	user := s.session.User()
	if user == nil {
		fmt.Fprintln(s.out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(s.out, "%s <%s> github:%s\n", user.Username, user.Email, user.GithubUsername)
	return nil
}

func (s *Shell) dispatchLogin(ctx context.Context, args []string) error {
	if args[0] != "login" {
		return domainerrors.Validation("unknown command: " + args[0])
	}
	if len(args) != 3 {
		return domainerrors.Validation("usage: login <email> <password>")
	}

	user, err := s.session.Login(ctx, session.LoginForm{Email: args[1], Password: args[2]})
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Welcome back, %s.\n", user.Username)
	s.nav.OnLoginSuccess()
	return nil
}

func (s *Shell) dispatchRegister(ctx context.Context, args []string) error {
	if args[0] != "register" {
		return domainerrors.Validation("unknown command: " + args[0])
	}
	if len(args) != 5 {
		return domainerrors.Validation("usage: register <username> <email> <password> <github-username>")
	}

	user, err := s.session.Register(ctx, session.RegisterForm{
		Username:       args[1],
		Email:          args[2],
		Password:       args[3],
		GithubUsername: args[4],
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Welcome, %s.\n", user.Username)
	s.nav.OnLoginSuccess()
	return nil
}

func (s *Shell) dispatchForgotPassword(ctx context.Context, args []string) error {
	if args[0] != "send" {
		return domainerrors.Validation("unknown command: " + args[0])
	}
	if len(args) != 2 {
		return domainerrors.Validation("usage: send <email>")
	}

	fmt.Fprintln(s.out, s.session.ForgotPassword(ctx, args[1]))
	return nil
}

func (s *Shell) dispatchResetPassword(ctx context.Context, args []string) error {
	if args[0] != "reset" {
		return domainerrors.Validation("unknown command: " + args[0])
	}
	if len(args) != 2 {
		return domainerrors.Validation("usage: reset <new-password>")
	}

	token := s.nav.ResetToken()
	if token == "" {
		return domainerrors.Validation("no reset token; open the link from your email")
	}

	if err := s.session.ResetPassword(ctx, token, args[1]); err != nil {
		return err
	}

	fmt.Fprintln(s.out, "Password updated. Returning to sign-in.")

	done := make(chan nav.State, 1)
	s.nav.OnResetSuccess(done)
	go func() {
		state := <-done
		s.rl.SetPrompt(promptFor(state))
		s.rl.Refresh()
	}()
	return nil
}

func (s *Shell) dispatchDashboard(ctx context.Context, args []string) error {
	switch args[0] {
	case "refresh":
		s.reloadDashboard(ctx)
		s.render(s.nav.Current())
		return nil
	case "open":
		if len(args) != 2 {
			return domainerrors.Validation("usage: open <group-id>")
		}
		s.nav.NavigateTo("group:" + args[1])
		return nil
	case "join":
		if len(args) != 2 {
			return domainerrors.Validation("usage: join <group-id>")
		}
		if err := s.actions.JoinGroup(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Joined.")
		s.reloadDashboard(ctx)
		s.render(s.nav.Current())
		return nil
	case "create-group":
		if len(args) != 3 {
			return domainerrors.Validation(`usage: create-group <name> "<description>"`)
		}
		group, err := s.actions.CreateGroup(ctx, groupview.CreateGroupForm{
			Name:        args[1],
			Description: args[2],
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Created group %s (%s).\n", group.Name, group.ID)
		s.reloadDashboard(ctx)
		s.render(s.nav.Current())
		return nil
	default:
		return domainerrors.Validation("unknown command: " + args[0])
	}
}

func (s *Shell) dispatchProfile(ctx context.Context, args []string) error {
	if args[0] != "set-github" {
		return domainerrors.Validation("unknown command: " + args[0])
	}
	if len(args) != 2 {
		return domainerrors.Validation("usage: set-github <username>")
	}

	user, err := s.session.UpdateProfile(ctx, session.ProfileForm{GithubUsername: args[1]})
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Profile updated: github:%s\n", user.GithubUsername)
	return nil
}

func (s *Shell) dispatchGroup(ctx context.Context, args []string, groupID string) error {
	switch args[0] {
	case "refresh":
		s.reloadGroup(ctx, groupID)
		s.render(s.nav.Current())
		return nil
	case "challenge":
		if len(args) != 3 {
			return domainerrors.Validation(`usage: challenge "<topic>" <Easy|Medium|Hard>`)
		}
		ch, err := s.actions.CreateChallenge(ctx, groupID, groupview.CreateChallengeForm{
			Topic:      args[1],
			Difficulty: args[2],
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Challenge created: %s (%s)\n", ch.Topic, ch.Difficulty)
		s.reloadGroup(ctx, groupID)
		s.render(s.nav.Current())
		return nil
	case "back":
		s.nav.NavigateTo(string(nav.ViewDashboard))
		return nil
	default:
		return domainerrors.Validation("unknown command: " + args[0])
	}
}
