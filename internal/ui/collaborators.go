package ui

import (
	"context"

	"github.com/desertthunder/stayx/internal/models"
)

// SignInOptions are passed to [Authenticator.SignIn].
type SignInOptions struct {
	// Values holds the form values for credential sign-in (email, password).
	Values map[string]string
	// Redirect asks the authenticator to redirect on completion instead of returning a result.
	Redirect bool
}

// SignInResult reports the outcome of a sign-in attempt.
// For OAuth providers URL holds the consent page to redirect to.
type SignInResult struct {
	OK    bool
	Error string
	URL   string
}

// Authenticator signs users in with credentials or an OAuth provider.
type Authenticator interface {
	SignIn(ctx context.Context, provider string, opts SignInOptions) (*SignInResult, error)
}

// Registrar creates credential accounts.
type Registrar interface {
	Register(ctx context.Context, email, name, password string) (*models.User, error)
}

// CurrentUserFetcher resolves the signed-in user; nil when anonymous.
type CurrentUserFetcher interface {
	CurrentUser(ctx context.Context) (*models.User, error)
}

// FavoriteListingsFetcher returns the favorited listings of the current session, most recent first.
type FavoriteListingsFetcher interface {
	FavoriteListings(ctx context.Context) ([]*models.Listing, error)
}
