package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/desertthunder/stayx/internal/auth"
	"github.com/desertthunder/stayx/internal/models"
	"github.com/desertthunder/stayx/internal/server"
	"github.com/desertthunder/stayx/internal/shared"
	"github.com/desertthunder/stayx/internal/ui"
)

// InvalidCredentialsMessage is the sign-in error shown for any rejected email/password pair.
const InvalidCredentialsMessage = "Invalid credentials"

// authenticator implements [ui.Authenticator] for one request. Successful sign-ins write
// the session cookie, provider sign-ins the OAuth state cookie.
type authenticator struct {
	app *App
	w   http.ResponseWriter
	r   *http.Request
}

func (a *authenticator) SignIn(ctx context.Context, provider string, opts ui.SignInOptions) (*ui.SignInResult, error) {
	if provider == models.ProviderCredentials {
		user, err := a.app.auth.Authorize(ctx, opts.Values["email"], opts.Values["password"])
		if errors.Is(err, shared.ErrInvalidCredentials) {
			return &ui.SignInResult{Error: InvalidCredentialsMessage}, nil
		}
		if err != nil {
			return nil, err
		}
		if err := a.app.startSession(a.w, a.r, user); err != nil {
			return nil, err
		}
		a.app.logger.Info("signed in", "user", user.ID(), "provider", provider)
		return &ui.SignInResult{OK: true}, nil
	}

	state, err := auth.NewState()
	if err != nil {
		return nil, err
	}
	url, err := a.app.auth.AuthCodeURL(provider, state)
	if err != nil {
		return nil, err
	}
	server.SetStateCookie(a.w, state, a.app.cfg.SecureCookies)
	return &ui.SignInResult{OK: true, URL: url}, nil
}

// favoriteListings implements [ui.FavoriteListingsFetcher] over the session user.
// Anonymous sessions have no favorites.
type favoriteListings struct {
	store FavoriteStore
}

func (f favoriteListings) FavoriteListings(ctx context.Context) ([]*models.Listing, error) {
	user := auth.UserFrom(ctx)
	if user == nil {
		return []*models.Listing{}, nil
	}
	return f.store.Listings(ctx, user.ID())
}
