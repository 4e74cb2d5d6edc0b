package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/stayx/internal/formatter"
	"github.com/desertthunder/stayx/internal/models"
	"github.com/urfave/cli/v3"
)

type userView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Provider  string    `json:"provider,omitempty"`
	Password  bool      `json:"hasPassword"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserView(u *models.User) userView {
	return userView{
		ID:        u.ID(),
		Email:     u.Email(),
		Name:      u.Name(),
		Provider:  u.Provider(),
		Password:  u.HasPassword(),
		CreatedAt: u.CreatedAt(),
	}
}

// UsersCreate registers a credentials account.
func (r *Runner) UsersCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(cmd); err != nil {
		return err
	}

	authService, err := r.authService()
	if err != nil {
		return err
	}

	user, err := authService.Register(ctx, cmd.String("email"), cmd.String("name"), cmd.String("password"))
	if err != nil {
		return err
	}

	return r.writePlain("%s\n", formatter.Styles.OK(fmt.Sprintf("created user %s <%s> (%s)", user.DisplayName(), user.Email(), user.ID())))
}

// UsersList prints every active account.
func (r *Runner) UsersList(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(cmd); err != nil {
		return err
	}

	users, err := r.users.List(ctx, map[string]any{"provider": cmd.String("provider")})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		views := make([]userView, 0, len(users))
		for _, u := range users {
			views = append(views, newUserView(u))
		}
		return r.writeJSON(views, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Users (%d)", len(users)))
	for _, u := range users {
		provider := u.Provider()
		if provider == "" {
			provider = "credentials"
		}
		r.writePlain("%s  %-30s %-20s %s\n", u.ID(), u.Email(), u.DisplayName(), formatter.Styles.Help(provider))
	}
	return nil
}
