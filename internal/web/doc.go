// Package web implements the HTMX web application: listings, the login and register modals,
// and the favorites page.
//
// # Architecture
//
// Handlers are thin. Each request builds the [ui] components it needs ([ui.LoginModal],
// [ui.RegisterModal], [ui.FavoritesPage]) around per-request collaborators:
//
//   - an authenticator adapter over [auth.Service] that sets the session cookie on sign-in
//   - a [ui.Collector] whose toasts and refresh requests become HTMX response headers
//   - the modal store of the browser, kept in an in-memory registry keyed by a client cookie
//
// Routes
//
//	GET    /                              → listing grid (filter with ?category=)
//	GET    /login                         → open the login modal
//	POST   /login                         → credential sign-in (rate limited per IP; forwarded
//	                                        headers count only with server.trust_proxy)
//	POST   /login/toggle                  → switch to the register modal
//	POST   /login/close                   → hide the login modal
//	POST   /register                      → create an account
//	POST   /register/toggle               → switch to the login modal
//	POST   /register/close                → hide the register modal
//	GET    /api/auth/signin/{provider}    → OAuth redirect
//	GET    /api/auth/callback/{provider}  → OAuth completion ([server.OAuthHandler])
//	POST   /logout                        → end the session
//	GET    /favorites                     → favorites page
//	POST   /api/favorites/{listingID}     → add a favorite
//	DELETE /api/favorites/{listingID}     → remove a favorite
//	GET    /healthz                       → liveness check
//
// Templates
//
//   - layout.html: document shell with navigation and toast listener
//   - partials.html: modal shell, listing card, heart button, empty state, toasts
//   - home.html, favorites.html, error.html: page content
//
// # Signals
//
// Toasts travel in the HX-Trigger header as {"toast":[{"kind":"success","message":"Logged in"}]}.
// A refresh request sets HX-Refresh: true. Non-HTMX requests get toasts rendered inline and
// redirects instead of refreshes.
//
// # Testing Strategy
//
// Tests drive the router with httptest against an in-memory SQLite database and check status
// codes, cookies, HTMX headers and rendered markup.
package web
