package web

import (
	"errors"
	"net/http"

	"github.com/desertthunder/stayx/internal/auth"
	"github.com/desertthunder/stayx/internal/models"
	"github.com/desertthunder/stayx/internal/shared"
	"github.com/desertthunder/stayx/internal/ui"
	"github.com/go-chi/chi/v5"
)

// request bundles the per-request ui components.
type request struct {
	app      *App
	r        *http.Request
	user     *models.User
	store    ui.ModalStore
	toasts   *ui.Collector
	login    *ui.LoginModal
	register *ui.RegisterModal
}

func (a *App) newRequest(w http.ResponseWriter, r *http.Request) *request {
	store := a.modals.get(clientFrom(r.Context()))
	toasts := &ui.Collector{}
	return &request{
		app:      a,
		r:        r,
		user:     auth.UserFrom(r.Context()),
		store:    store,
		toasts:   toasts,
		login:    ui.NewLoginModal(&authenticator{app: a, w: w, r: r}, toasts, toasts, store),
		register: ui.NewRegisterModal(a.auth, toasts, store, a.logger),
	}
}

func (q *request) githubURL() string {
	if _, err := q.app.auth.Provider(models.ProviderGitHub); err != nil {
		return ""
	}
	return "/api/auth/signin/" + models.ProviderGitHub
}

// page builds the shared page data. form holds the values and errors of the modal being submitted.
func (q *request) page(title string, form *ui.Modal) *page {
	loginValues, loginErrs := map[string]string{}, map[string]string{}
	registerValues, registerErrs := map[string]string{}, map[string]string{}
	if form != nil {
		switch form.Kind {
		case ui.ModalLogin:
			loginValues, loginErrs = form.Values, form.Errors
		case ui.ModalRegister:
			registerValues, registerErrs = form.Values, form.Errors
		}
	}

	return &page{
		Title: title,
		User:  q.user,
		Modals: []ui.Modal{
			q.login.Modal(loginValues, loginErrs, q.githubURL()),
			q.register.Modal(registerValues, registerErrs, q.githubURL()),
		},
		Toasts: q.toasts.Toasts(),
	}
}

func (a *App) home(w http.ResponseWriter, r *http.Request) {
	a.renderHome(w, a.newRequest(w, r), nil)
}

func (a *App) renderHome(w http.ResponseWriter, q *request, form *ui.Modal) {
	ctx := q.r.Context()

	criteria := map[string]any{}
	if category := q.r.URL.Query().Get("category"); category != "" {
		criteria["category"] = category
	}
	listings, err := a.listings.List(ctx, criteria)
	if err != nil {
		a.serverError(w, q.r, err)
		return
	}

	favorites := map[string]bool{}
	if q.user != nil {
		ids, err := a.favorites.ListingIDs(ctx, q.user.ID())
		if err != nil {
			a.serverError(w, q.r, err)
			return
		}
		for _, id := range ids {
			favorites[id] = true
		}
	}

	p := q.page("Home", form)
	p.Cards = cards(listings, func(id string) bool { return favorites[id] }, q.user != nil)
	if len(p.Cards) == 0 {
		p.Empty = &ui.EmptyState{Title: "No exact matches", Subtitle: "Try changing or removing some of your filters."}
	}
	a.render(w, http.StatusOK, "home", p)
}

// respondModals renders the modal container for HTMX requests and the whole home page otherwise.
func (a *App) respondModals(w http.ResponseWriter, q *request, form *ui.Modal) {
	if err := writeSignals(w, q.toasts); err != nil {
		a.logger.Error("failed to encode toasts", "error", err)
	}
	if isHTMX(q.r) {
		a.renderPartial(w, http.StatusOK, "modals", q.page("", form))
		return
	}
	a.renderHome(w, q, form)
}

func (a *App) openLogin(w http.ResponseWriter, r *http.Request) {
	q := a.newRequest(w, r)
	q.store.Open(ui.ModalLogin)
	a.respondModals(w, q, nil)
}

func (a *App) submitLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	q := a.newRequest(w, r)
	q.store.Open(ui.ModalLogin)

	values := map[string]string{
		"email":    r.PostForm.Get("email"),
		"password": r.PostForm.Get("password"),
	}

	form := &ui.Modal{Kind: ui.ModalLogin, Values: values}
	err := q.login.Submit(r.Context(), values)

	var invalid ui.ValidationError
	switch {
	case errors.As(err, &invalid):
		form.Errors = invalid
	case err != nil:
		a.logger.Warn("sign in failed", "error", err)
	}

	if !isHTMX(r) && q.toasts.Refreshes() > 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	a.respondModals(w, q, form)
}

func (a *App) toggleLogin(w http.ResponseWriter, r *http.Request) {
	q := a.newRequest(w, r)
	q.login.Toggle()
	a.respondModals(w, q, nil)
}

func (a *App) closeLogin(w http.ResponseWriter, r *http.Request) {
	q := a.newRequest(w, r)
	q.login.Close()
	a.respondModals(w, q, nil)
}

func (a *App) submitRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	q := a.newRequest(w, r)
	q.store.Open(ui.ModalRegister)

	values := map[string]string{
		"email":    r.PostForm.Get("email"),
		"name":     r.PostForm.Get("name"),
		"password": r.PostForm.Get("password"),
	}

	form := &ui.Modal{Kind: ui.ModalRegister, Values: values}
	var invalid ui.ValidationError
	if err := q.register.Submit(r.Context(), values); errors.As(err, &invalid) {
		form.Errors = invalid
	}
	a.respondModals(w, q, form)
}

func (a *App) toggleRegister(w http.ResponseWriter, r *http.Request) {
	q := a.newRequest(w, r)
	q.register.Toggle()
	a.respondModals(w, q, nil)
}

func (a *App) closeRegister(w http.ResponseWriter, r *http.Request) {
	q := a.newRequest(w, r)
	q.register.Close()
	a.respondModals(w, q, nil)
}

func (a *App) signIn(w http.ResponseWriter, r *http.Request) {
	q := a.newRequest(w, r)
	provider := chi.URLParam(r, "provider")

	url, err := q.login.SignInWithProvider(r.Context(), provider)
	switch {
	case errors.Is(err, shared.ErrUnknownProvider), errors.Is(err, shared.ErrProviderDisabled):
		a.renderError(w, r, http.StatusNotFound, "Unknown sign-in provider", "This sign-in method is not available.")
		return
	case err != nil:
		a.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

func (a *App) logout(w http.ResponseWriter, r *http.Request) {
	a.clearSession(w)
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) favoritesPage(w http.ResponseWriter, r *http.Request) {
	q := a.newRequest(w, r)

	loader := &ui.FavoritesPage{Listings: favoriteListings{store: a.favorites}, Users: a.auth}
	view, err := loader.Load(r.Context())
	if err != nil {
		a.serverError(w, r, err)
		return
	}

	p := q.page("Favorites", nil)
	p.View = view
	if view.Grid != nil {
		p.Cards = cards(view.Grid.Listings, view.Grid.IsFavorite, view.Grid.CurrentUser != nil)
	}
	a.render(w, http.StatusOK, "favorites", p)
}

func (a *App) addFavorite(w http.ResponseWriter, r *http.Request) {
	a.setFavorite(w, r, true)
}

func (a *App) removeFavorite(w http.ResponseWriter, r *http.Request) {
	a.setFavorite(w, r, false)
}

func (a *App) setFavorite(w http.ResponseWriter, r *http.Request, favorite bool) {
	ctx := r.Context()
	user := auth.UserFrom(ctx)
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": shared.ErrNotAuthenticated.Error()})
		return
	}

	listingID := chi.URLParam(r, "listingID")
	listing, err := a.listings.Get(ctx, listingID)
	if errors.Is(err, shared.ErrListingNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		a.logger.Error("failed to load listing", "listing", listingID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Something went wrong."})
		return
	}

	if favorite {
		err = a.favorites.Add(ctx, user.ID(), listingID)
	} else {
		err = a.favorites.Remove(ctx, user.ID(), listingID)
	}
	if err == nil {
		favorite, err = a.favorites.IsFavorite(ctx, user.ID(), listingID)
	}
	if err != nil {
		a.logger.Error("failed to update favorite", "listing", listingID, "user", user.ID(), "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Something went wrong."})
		return
	}

	if isHTMX(r) {
		a.renderPartial(w, http.StatusOK, "heart", card{Listing: listing, Favorite: favorite, SignedIn: true})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"listingId": listingID, "favorite": favorite})
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) notFound(w http.ResponseWriter, r *http.Request) {
	a.renderError(w, r, http.StatusNotFound, "Page not found", "The page you are looking for does not exist.")
}
