// Package models defines domain entities and persistence interfaces for the stayx rental marketplace.
//
// Persistent entities:
//   - [User] : accounts created with credentials or through an OAuth provider
//   - [Listing] : rentable property records owned by a user
//   - [Favorite] : many-to-many association marking a listing as bookmarked by a user
//
// [User] and [Listing] implement the [Model] interface providing ID generation, timestamps, validation, and soft delete support.
// The [Repository] interface defines standard CRUD operations for database access.
package models
