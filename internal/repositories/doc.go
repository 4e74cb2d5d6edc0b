// Package repositories implements SQLite persistence for all domain entities.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// Users and listings support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [UserRepository] : account persistence with email-based lookups
//   - [ListingRepository] : listing persistence with owner, category and location filters
//   - [FavoriteRepository] : junction table managing which listings a user has favorited
//
// Sequence numbers provide stable, human-readable ordering (e.g., user #42, listing #15) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
