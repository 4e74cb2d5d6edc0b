package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/desertthunder/stayx/internal/auth"
	"github.com/desertthunder/stayx/internal/models"
	"github.com/desertthunder/stayx/internal/shared"
	"github.com/google/uuid"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "stayx_session"
	// ClientCookie identifies a browser for modal state, signed in or not.
	ClientCookie = "stayx_client"
)

type ctxKey int

const clientKey ctxKey = iota

func clientFrom(ctx context.Context) string {
	id, _ := ctx.Value(clientKey).(string)
	return id
}

// loadSession attaches the signed-in user and the client ID to the request context.
// Invalid or expired session cookies are cleared.
func (a *App) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
			user, err := a.auth.UserFromSession(ctx, c.Value)
			switch {
			case err == nil:
				ctx = auth.WithUser(ctx, user)
			case errors.Is(err, shared.ErrInvalidSession):
				a.logger.Debug("dropping session", "error", err)
				a.clearSession(w)
			default:
				a.logger.Error("failed to load session", "error", err)
			}
		}

		clientID := ""
		if c, err := r.Cookie(ClientCookie); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				clientID = c.Value
			}
		}
		if clientID == "" {
			clientID = shared.GenerateID()
			http.SetCookie(w, &http.Cookie{
				Name:     ClientCookie,
				Value:    clientID,
				Path:     "/",
				HttpOnly: true,
				Secure:   a.cfg.SecureCookies,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx = context.WithValue(ctx, clientKey, clientID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// startSession issues a session token for user and stores it in a cookie.
func (a *App) startSession(w http.ResponseWriter, r *http.Request, user *models.User) error {
	token, expires, err := a.auth.IssueSession(user)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   a.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (a *App) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
