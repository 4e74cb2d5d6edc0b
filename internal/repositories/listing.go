package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/stayx/internal/models"
	"github.com/desertthunder/stayx/internal/shared"
	"github.com/mattn/go-sqlite3"
)

const listingColumns = `l.id, l.sequence, l.owner_id, l.title, l.description, l.image_url, l.category, l.location_value,
	l.room_count, l.bathroom_count, l.guest_count, l.price, l.created_at, l.updated_at, l.deleted_at`

// ListingRepository implements [models.Repository] for [models.Listing] persistence.
type ListingRepository struct {
	db *sql.DB
}

// NewListingRepository creates a new [ListingRepository] with the given database connection
func NewListingRepository(db *sql.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Create inserts a new listing with generated ID and sequence. The owner must exist.
func (r *ListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	if err := listing.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(ctx, r.db, "listings")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	d := listing.Details()

	query := `
		INSERT INTO listings (id, sequence, owner_id, title, description, image_url, category, location_value,
			room_count, bathroom_count, guest_count, price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		id, sequence, listing.OwnerID(), d.Title, d.Description, d.ImageURL, d.Category, d.LocationValue,
		d.RoomCount, d.BathroomCount, d.GuestCount, d.Price, listing.CreatedAt(), listing.UpdatedAt(),
	)
	if isConstraint(err, sqlite3.ErrConstraintForeignKey) {
		return fmt.Errorf("%w: owner %s", shared.ErrUserNotFound, listing.OwnerID())
	}
	if err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}

	listing.SetID(id)
	listing.SetSequence(sequence)
	return nil
}

// Get retrieves a listing by ID, excluding soft-deleted listings
func (r *ListingRepository) Get(ctx context.Context, id string) (*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings l WHERE l.id = ? AND l.deleted_at IS NULL`

	listing, err := scanListing(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrListingNotFound, id)
	}
	return listing, err
}

// Update modifies the display attributes of an existing listing
func (r *ListingRepository) Update(ctx context.Context, listing *models.Listing) error {
	if err := listing.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	d := listing.Details()

	query := `
		UPDATE listings
		SET title = ?, description = ?, image_url = ?, category = ?, location_value = ?,
			room_count = ?, bathroom_count = ?, guest_count = ?, price = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		d.Title, d.Description, d.ImageURL, d.Category, d.LocationValue,
		d.RoomCount, d.BathroomCount, d.GuestCount, d.Price, now, listing.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	if err := checkAffected(result, fmt.Errorf("%w: %s", shared.ErrListingNotFound, listing.ID())); err != nil {
		return err
	}

	listing.SetUpdatedAt(now)
	return nil
}

// Delete soft-deletes a listing by ID. Favorites pointing at it stop being returned.
func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE listings SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	return checkAffected(result, fmt.Errorf("%w: %s", shared.ErrListingNotFound, id))
}

// List retrieves listings matching the given criteria, newest first.
//
// Supported criteria: "owner_id", "category", "location_value" (string) and "limit" (int).
func (r *ListingRepository) List(ctx context.Context, criteria map[string]any) ([]*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings l WHERE l.deleted_at IS NULL`
	args := []any{}

	for _, key := range []string{"owner_id", "category", "location_value"} {
		if v, ok := criteria[key].(string); ok && v != "" {
			query += " AND l." + key + " = ?"
			args = append(args, v)
		}
	}

	query += " ORDER BY l.sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return r.query(ctx, query, args...)
}

func (r *ListingRepository) query(ctx context.Context, query string, args ...any) ([]*models.Listing, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	listings := []*models.Listing{}
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return listings, nil
}

// scanListing scans a row into a [models.Listing]. [sql.ErrNoRows] is returned unwrapped.
func scanListing(row rowScanner) (*models.Listing, error) {
	var (
		id        string
		sequence  int
		ownerID   string
		d         models.ListingDetails
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &ownerID, &d.Title, &d.Description, &d.ImageURL, &d.Category, &d.LocationValue,
		&d.RoomCount, &d.BathroomCount, &d.GuestCount, &d.Price, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan listing: %w", err)
	}

	listing := models.NewListing(sequence, ownerID, d)
	listing.SetID(id)
	listing.SetCreatedAt(createdAt)
	listing.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		listing.SetDeletedAt(&deletedAt.Time)
	}

	return listing, nil
}
