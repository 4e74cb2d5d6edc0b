package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/stayx/internal/models"
	"github.com/desertthunder/stayx/internal/shared"
	"github.com/mattn/go-sqlite3"
)

// FavoriteRepository manages the user/listing favorites junction table.
type FavoriteRepository struct {
	db       *sql.DB
	listings *ListingRepository
}

// NewFavoriteRepository creates a new [FavoriteRepository] with the given database connection
func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db, listings: NewListingRepository(db)}
}

// Add marks the listing as a favorite of the user. Adding an existing favorite is a no-op.
//
// Returns [shared.ErrListingNotFound] for unknown or deleted listings.
func (r *FavoriteRepository) Add(ctx context.Context, userID, listingID string) error {
	if _, err := r.listings.Get(ctx, listingID); err != nil {
		return err
	}

	fav := models.NewFavorite(userID, listingID)
	query := `INSERT OR IGNORE INTO favorites (user_id, listing_id, created_at) VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, fav.UserID, fav.ListingID, fav.CreatedAt)
	if isConstraint(err, sqlite3.ErrConstraintForeignKey) {
		return fmt.Errorf("%w: %s", shared.ErrUserNotFound, userID)
	}
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove deletes the favorite. Removing a missing favorite is a no-op.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, listingID string) error {
	query := `DELETE FROM favorites WHERE user_id = ? AND listing_id = ?`
	if _, err := r.db.ExecContext(ctx, query, userID, listingID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// IsFavorite reports whether the listing is in the user's favorites.
func (r *FavoriteRepository) IsFavorite(ctx context.Context, userID, listingID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = ? AND listing_id = ?)`
	if err := r.db.QueryRowContext(ctx, query, userID, listingID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

// ListingIDs returns the IDs of the user's favorited listings, most recently favorited first.
func (r *FavoriteRepository) ListingIDs(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT f.listing_id FROM favorites f
		JOIN listings l ON l.id = f.listing_id AND l.deleted_at IS NULL
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC, l.sequence DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return ids, nil
}

// Listings returns the user's favorited listings, most recently favorited first.
// The result is empty (never nil) when the user has no favorites.
func (r *FavoriteRepository) Listings(ctx context.Context, userID string) ([]*models.Listing, error) {
	query := `
		SELECT ` + listingColumns + ` FROM favorites f
		JOIN listings l ON l.id = f.listing_id AND l.deleted_at IS NULL
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC, l.sequence DESC
	`
	return r.listings.query(ctx, query, userID)
}

// List returns the raw favorite records for a user.
func (r *FavoriteRepository) List(ctx context.Context, userID string) ([]models.Favorite, error) {
	query := `SELECT user_id, listing_id, created_at FROM favorites WHERE user_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	var favorites []models.Favorite
	for rows.Next() {
		var (
			fav       models.Favorite
			createdAt time.Time
		)
		if err := rows.Scan(&fav.UserID, &fav.ListingID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		fav.CreatedAt = createdAt
		favorites = append(favorites, fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return favorites, nil
}
