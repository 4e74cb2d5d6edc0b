// Package auth establishes authenticated sessions for marketplace users.
//
// # Sign-in Methods
//
// Credentials sign-in compares the submitted password against a bcrypt hash stored on the [models.User].
// Unknown emails, wrong passwords and OAuth-only accounts all fail with [shared.ErrInvalidCredentials]
// so that the response does not reveal which accounts exist.
//
// OAuth sign-in uses the authorization code flow from [golang.org/x/oauth2]. Each identity provider is a
// [Provider] that pairs an [oauth2.Config] with a profile fetcher; after the code exchange the profile email
// is used to find or create the local account.
//
// # Sessions
//
// A session is an HS256 JWT whose subject is the user ID. [SessionManager] issues and parses tokens; the web
// layer stores them in an HttpOnly cookie and places the resolved user in the request context with [WithUser].
package auth
