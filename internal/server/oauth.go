package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stayx/internal/models"
	"github.com/desertthunder/stayx/internal/shared"
	"github.com/go-chi/chi/v5"
)

// StateCookie holds the OAuth state between the sign-in redirect and the callback.
const StateCookie = "stayx_oauth_state"

// OAuthCompleter finishes a provider sign-in and returns the local account.
type OAuthCompleter interface {
	CompleteOAuth(ctx context.Context, provider, code string) (*models.User, error)
}

// SessionStarter writes the session for a freshly authenticated user.
type SessionStarter func(w http.ResponseWriter, r *http.Request, user *models.User) error

// OAuthHandler handles OAuth2 callback requests for the authorization code flow.
// Implements the Handler interface for registration with a Router.
type OAuthHandler struct {
	auth     OAuthCompleter
	start    SessionStarter
	redirect string
	secure   bool
	logger   *log.Logger
}

// NewOAuthHandler creates a callback handler that redirects to redirect once the session is set.
func NewOAuthHandler(auth OAuthCompleter, start SessionStarter, redirect string, secure bool, logger *log.Logger) *OAuthHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &OAuthHandler{
		auth:     auth,
		start:    start,
		redirect: redirect,
		secure:   secure,
		logger:   shared.WithLogger(logger, "component", "oauth"),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *OAuthHandler) Routes() []string {
	return []string{"/api/auth/callback/{provider}"}
}

// ServeHTTP handles the OAuth callback request.
//
// Validates the state parameter against the state cookie, exchanges the authorization code,
// starts a session and redirects.
func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	provider := chi.URLParam(r, "provider")
	state := r.URL.Query().Get("state")

	cookie, err := r.Cookie(StateCookie)
	ClearStateCookie(w, h.secure)
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(state)) != 1 {
		h.logger.Warn("callback rejected", "provider", provider, "error", shared.ErrOAuthState)
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.logger.Warn("authorization failed", "provider", provider,
			"error", r.URL.Query().Get("error"), "description", r.URL.Query().Get("error_description"))
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	user, err := h.auth.CompleteOAuth(r.Context(), provider, code)
	switch {
	case errors.Is(err, shared.ErrUnknownProvider), errors.Is(err, shared.ErrProviderDisabled):
		http.Error(w, "Unknown provider", http.StatusNotFound)
		return
	case errors.Is(err, shared.ErrAccountNotLinked):
		h.logger.Warn("provider sign-in refused", "provider", provider, "error", err)
		http.Error(w, "This email is already registered with another sign-in method", http.StatusConflict)
		return
	case errors.Is(err, shared.ErrInvalidCredentials):
		h.logger.Warn("provider sign-in rejected", "provider", provider, "error", err)
		http.Error(w, "Authorization failed", http.StatusForbidden)
		return
	case err != nil:
		h.logger.Error("token exchange failed", "provider", provider, "error", err)
		http.Error(w, "Token exchange failed", http.StatusInternalServerError)
		return
	}

	if err := h.start(w, r, user); err != nil {
		h.logger.Error("failed to start session", "user", user.ID(), "error", err)
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		return
	}

	h.logger.Info("signed in", "user", user.ID(), "provider", provider)
	http.Redirect(w, r, h.redirect, http.StatusSeeOther)
}

// SetStateCookie stores the OAuth state for the callback. It expires after ten minutes.
func SetStateCookie(w http.ResponseWriter, state string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     StateCookie,
		Value:    state,
		Path:     "/api/auth",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearStateCookie removes the OAuth state cookie.
func ClearStateCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     StateCookie,
		Value:    "",
		Path:     "/api/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
