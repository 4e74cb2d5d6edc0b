// Package ui holds the server-side component logic behind the login and register modals
// and the favorites page.
//
// Components never touch HTTP directly. They talk to their collaborators through small
// interfaces ([Authenticator], [Registrar], [Toaster], [Refresher], [ModalStore],
// [CurrentUserFetcher], [FavoriteListingsFetcher]) that the web package implements per
// request, so each behavior can be driven from a test with hand-written fakes.
//
// # Modals
//
// [LoginModal] and [RegisterModal] each describe a [Modal] shell (title, action label,
// fields, footer) and carry the submit and toggle operations. Field configuration is
// explicit: a slice of [Field] rendered by [RenderField].
//
// # Favorites
//
// [FavoritesPage.Load] resolves the current user and their favorited listings concurrently
// and yields a [View] holding either an [EmptyState] or a [FavoritesGrid].
package ui
