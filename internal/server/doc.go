// Package server provides HTTP routing, middleware, and the OAuth callback handler for the web service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses a chi mux internally, so routes can carry URL parameters and
// unsupported methods on a known path answer 405.
//
// # Middleware
//
// [RequestID], [RealIP], [RequestLogger], [Recoverer] and [CORS] form the global stack.
// [RateLimiter] keeps a token bucket per client IP and is attached to individual routes such as POST /login.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code callback flow.
//
// The handler validates the state parameter against the cookie set by [SetStateCookie] (CSRF protection),
// exchanges the authorization code through an [OAuthCompleter], starts a session and redirects home.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
