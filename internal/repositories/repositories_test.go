package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/stayx/internal/models"
	"github.com/desertthunder/stayx/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if _, err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func createUser(t *testing.T, db *sql.DB, email string) *models.User {
	t.Helper()
	user := models.NewUser(0, email, "Test User")
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createListing(t *testing.T, db *sql.DB, ownerID, title string) *models.Listing {
	t.Helper()
	listing := models.NewListing(0, ownerID, models.ListingDetails{
		Title:         title,
		Category:      "Beach",
		LocationValue: "PT",
		RoomCount:     2,
		GuestCount:    4,
		Price:         120,
	})
	if err := NewListingRepository(db).Create(context.Background(), listing); err != nil {
		t.Fatalf("failed to create listing: %v", err)
	}
	return listing
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first, err := NextSequence(ctx, db, "users")
	if err != nil {
		t.Fatalf("NextSequence failed: %v", err)
	}
	second, err := NextSequence(ctx, db, "users")
	if err != nil {
		t.Fatalf("NextSequence failed: %v", err)
	}
	if second != first+1 {
		t.Errorf("expected sequence %d, got %d", first+1, second)
	}

	if _, err := NextSequence(ctx, db, "missing"); err == nil {
		t.Error("expected error for table without sequence")
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		user := createUser(t, db, "test@example.com")

		if user.ID() == "" {
			t.Error("user ID should be set after creation")
		}
		if user.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", user.Sequence())
		}
	})

	t.Run("Create Validation Error", func(t *testing.T) {
		db := setupTestDB(t)
		if err := NewUserRepository(db).Create(ctx, models.NewUser(0, "", "No Email")); err == nil {
			t.Fatal("expected validation error for empty email")
		}
	})

	t.Run("Create Duplicate Email", func(t *testing.T) {
		db := setupTestDB(t)
		createUser(t, db, "test@example.com")

		err := NewUserRepository(db).Create(ctx, models.NewUser(0, "TEST@example.com", "Other"))
		if !errors.Is(err, shared.ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		user := createUser(t, db, "test@example.com")

		retrieved, err := NewUserRepository(db).Get(ctx, user.ID())
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}

		if retrieved.ID() != user.ID() {
			t.Errorf("expected ID %s, got %s", user.ID(), retrieved.ID())
		}
		if retrieved.Email() != user.Email() {
			t.Errorf("expected email %s, got %s", user.Email(), retrieved.Email())
		}
		if retrieved.Provider() != models.ProviderCredentials {
			t.Errorf("expected provider credentials, got %s", retrieved.Provider())
		}
	})

	t.Run("Get Not Found", func(t *testing.T) {
		db := setupTestDB(t)
		_, err := NewUserRepository(db).Get(ctx, "nonexistent-id")
		if !errors.Is(err, shared.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("GetByEmail", func(t *testing.T) {
		db := setupTestDB(t)
		user := createUser(t, db, "test@example.com")

		retrieved, err := NewUserRepository(db).GetByEmail(ctx, "  Test@Example.com ")
		if err != nil {
			t.Fatalf("failed to get user by email: %v", err)
		}
		if retrieved.ID() != user.ID() {
			t.Errorf("expected ID %s, got %s", user.ID(), retrieved.ID())
		}

		if _, err := NewUserRepository(db).GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, shared.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)
		user := createUser(t, db, "test@example.com")

		user.SetName("Renamed")
		user.SetPasswordHash("hash")
		if err := repo.Update(ctx, user); err != nil {
			t.Fatalf("failed to update user: %v", err)
		}

		retrieved, err := repo.Get(ctx, user.ID())
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if retrieved.Name() != "Renamed" || !retrieved.HasPassword() {
			t.Errorf("update not persisted: name=%q hasPassword=%v", retrieved.Name(), retrieved.HasPassword())
		}
	})

	t.Run("Update Not Found", func(t *testing.T) {
		db := setupTestDB(t)
		user := models.NewUser(0, "ghost@example.com", "Ghost")
		user.SetID("missing")

		if err := NewUserRepository(db).Update(ctx, user); !errors.Is(err, shared.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)
		user := createUser(t, db, "test@example.com")

		if err := repo.Delete(ctx, user.ID()); err != nil {
			t.Fatalf("failed to delete user: %v", err)
		}
		if _, err := repo.Get(ctx, user.ID()); err == nil {
			t.Error("expected error when getting deleted user")
		}
		if err := repo.Delete(ctx, user.ID()); err == nil {
			t.Error("expected error when deleting twice")
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)
		createUser(t, db, "one@example.com")
		createUser(t, db, "two@example.com")

		users, err := repo.List(ctx, map[string]any{})
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		if len(users) != 2 {
			t.Fatalf("expected 2 users, got %d", len(users))
		}
		if users[0].Email() != "one@example.com" {
			t.Errorf("expected users ordered by sequence, got %s first", users[0].Email())
		}

		filtered, err := repo.List(ctx, map[string]any{"email": "two@example.com"})
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		if len(filtered) != 1 {
			t.Errorf("expected 1 user, got %d", len(filtered))
		}
	})
}

func TestListingRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create And Get", func(t *testing.T) {
		db := setupTestDB(t)
		owner := createUser(t, db, "owner@example.com")
		listing := createListing(t, db, owner.ID(), "Seaside Cottage")

		retrieved, err := NewListingRepository(db).Get(ctx, listing.ID())
		if err != nil {
			t.Fatalf("failed to get listing: %v", err)
		}
		if retrieved.Title() != "Seaside Cottage" {
			t.Errorf("expected title Seaside Cottage, got %s", retrieved.Title())
		}
		if retrieved.Details() != listing.Details() {
			t.Errorf("details mismatch: %+v vs %+v", retrieved.Details(), listing.Details())
		}
	})

	t.Run("Create Unknown Owner", func(t *testing.T) {
		db := setupTestDB(t)
		listing := models.NewListing(0, "missing-owner", models.ListingDetails{Title: "Orphan"})

		err := NewListingRepository(db).Create(ctx, listing)
		if !errors.Is(err, shared.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("Get Not Found", func(t *testing.T) {
		db := setupTestDB(t)
		if _, err := NewListingRepository(db).Get(ctx, "nope"); !errors.Is(err, shared.ErrListingNotFound) {
			t.Fatalf("expected ErrListingNotFound, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewListingRepository(db)
		owner := createUser(t, db, "owner@example.com")
		listing := createListing(t, db, owner.ID(), "Cabin")

		d := listing.Details()
		d.Price = 250
		updated := models.NewListing(listing.Sequence(), owner.ID(), d)
		updated.SetID(listing.ID())

		if err := repo.Update(ctx, updated); err != nil {
			t.Fatalf("failed to update listing: %v", err)
		}

		retrieved, err := repo.Get(ctx, listing.ID())
		if err != nil {
			t.Fatalf("failed to get listing: %v", err)
		}
		if retrieved.Price() != 250 {
			t.Errorf("expected price 250, got %d", retrieved.Price())
		}
	})

	t.Run("List With Criteria", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewListingRepository(db)
		alice := createUser(t, db, "alice@example.com")
		bob := createUser(t, db, "bob@example.com")
		createListing(t, db, alice.ID(), "First")
		second := createListing(t, db, alice.ID(), "Second")
		createListing(t, db, bob.ID(), "Third")

		all, err := repo.List(ctx, map[string]any{})
		if err != nil {
			t.Fatalf("failed to list listings: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 listings, got %d", len(all))
		}
		if all[0].Title() != "Third" {
			t.Errorf("expected newest listing first, got %s", all[0].Title())
		}

		owned, err := repo.List(ctx, map[string]any{"owner_id": alice.ID()})
		if err != nil {
			t.Fatalf("failed to list listings: %v", err)
		}
		if len(owned) != 2 || owned[0].ID() != second.ID() {
			t.Errorf("unexpected owner filter result: %d listings", len(owned))
		}

		limited, err := repo.List(ctx, map[string]any{"limit": 1})
		if err != nil {
			t.Fatalf("failed to list listings: %v", err)
		}
		if len(limited) != 1 {
			t.Errorf("expected 1 listing, got %d", len(limited))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewListingRepository(db)
		owner := createUser(t, db, "owner@example.com")
		listing := createListing(t, db, owner.ID(), "Cabin")

		if err := repo.Delete(ctx, listing.ID()); err != nil {
			t.Fatalf("failed to delete listing: %v", err)
		}
		if _, err := repo.Get(ctx, listing.ID()); !errors.Is(err, shared.ErrListingNotFound) {
			t.Errorf("expected ErrListingNotFound after delete, got %v", err)
		}
	})
}

func TestFavoriteRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		db := setupTestDB(t)
		user := createUser(t, db, "guest@example.com")

		listings, err := NewFavoriteRepository(db).Listings(ctx, user.ID())
		if err != nil {
			t.Fatalf("failed to list favorites: %v", err)
		}
		if listings == nil || len(listings) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", listings)
		}
	})

	t.Run("Add Is Idempotent", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewFavoriteRepository(db)
		owner := createUser(t, db, "owner@example.com")
		guest := createUser(t, db, "guest@example.com")
		listing := createListing(t, db, owner.ID(), "Cabin")

		for range 2 {
			if err := repo.Add(ctx, guest.ID(), listing.ID()); err != nil {
				t.Fatalf("failed to add favorite: %v", err)
			}
		}

		ids, err := repo.ListingIDs(ctx, guest.ID())
		if err != nil {
			t.Fatalf("failed to list favorite ids: %v", err)
		}
		if len(ids) != 1 || ids[0] != listing.ID() {
			t.Errorf("expected exactly [%s], got %v", listing.ID(), ids)
		}
	})

	t.Run("Add Unknown Listing", func(t *testing.T) {
		db := setupTestDB(t)
		guest := createUser(t, db, "guest@example.com")

		err := NewFavoriteRepository(db).Add(ctx, guest.ID(), "missing")
		if !errors.Is(err, shared.ErrListingNotFound) {
			t.Fatalf("expected ErrListingNotFound, got %v", err)
		}
	})

	t.Run("Add Unknown User", func(t *testing.T) {
		db := setupTestDB(t)
		owner := createUser(t, db, "owner@example.com")
		listing := createListing(t, db, owner.ID(), "Cabin")

		err := NewFavoriteRepository(db).Add(ctx, "ghost", listing.ID())
		if !errors.Is(err, shared.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("Listings", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewFavoriteRepository(db)
		owner := createUser(t, db, "owner@example.com")
		guest := createUser(t, db, "guest@example.com")
		other := createUser(t, db, "other@example.com")
		cabin := createListing(t, db, owner.ID(), "Cabin")
		loft := createListing(t, db, owner.ID(), "Loft")
		createListing(t, db, owner.ID(), "Unloved")

		if err := repo.Add(ctx, guest.ID(), cabin.ID()); err != nil {
			t.Fatalf("failed to add favorite: %v", err)
		}
		if err := repo.Add(ctx, guest.ID(), loft.ID()); err != nil {
			t.Fatalf("failed to add favorite: %v", err)
		}
		if err := repo.Add(ctx, other.ID(), cabin.ID()); err != nil {
			t.Fatalf("failed to add favorite: %v", err)
		}

		listings, err := repo.Listings(ctx, guest.ID())
		if err != nil {
			t.Fatalf("failed to list favorites: %v", err)
		}
		if len(listings) != 2 {
			t.Fatalf("expected 2 favorites, got %d", len(listings))
		}

		got := map[string]bool{}
		for _, l := range listings {
			got[l.ID()] = true
		}
		if !got[cabin.ID()] || !got[loft.ID()] {
			t.Errorf("expected cabin and loft in favorites, got %v", got)
		}

		records, err := repo.List(ctx, guest.ID())
		if err != nil {
			t.Fatalf("failed to list favorite records: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("expected 2 favorite records, got %d", len(records))
		}
	})

	t.Run("Deleted Listing Is Hidden", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewFavoriteRepository(db)
		owner := createUser(t, db, "owner@example.com")
		guest := createUser(t, db, "guest@example.com")
		listing := createListing(t, db, owner.ID(), "Cabin")

		if err := repo.Add(ctx, guest.ID(), listing.ID()); err != nil {
			t.Fatalf("failed to add favorite: %v", err)
		}
		if err := NewListingRepository(db).Delete(ctx, listing.ID()); err != nil {
			t.Fatalf("failed to delete listing: %v", err)
		}

		listings, err := repo.Listings(ctx, guest.ID())
		if err != nil {
			t.Fatalf("failed to list favorites: %v", err)
		}
		if len(listings) != 0 {
			t.Errorf("expected deleted listing to be hidden, got %d", len(listings))
		}
	})

	t.Run("IsFavorite", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewFavoriteRepository(db)
		owner := createUser(t, db, "owner@example.com")
		guest := createUser(t, db, "guest@example.com")
		listing := createListing(t, db, owner.ID(), "Cabin")

		if ok, err := repo.IsFavorite(ctx, guest.ID(), listing.ID()); err != nil || ok {
			t.Fatalf("expected not a favorite, got %v (%v)", ok, err)
		}
		if err := repo.Add(ctx, guest.ID(), listing.ID()); err != nil {
			t.Fatalf("failed to add favorite: %v", err)
		}
		if ok, _ := repo.IsFavorite(ctx, guest.ID(), listing.ID()); !ok {
			t.Error("expected listing to be a favorite")
		}
		if ok, _ := repo.IsFavorite(ctx, owner.ID(), listing.ID()); ok {
			t.Error("favorites should be per user")
		}
		if err := repo.Remove(ctx, guest.ID(), listing.ID()); err != nil {
			t.Fatalf("failed to remove favorite: %v", err)
		}
		if ok, _ := repo.IsFavorite(ctx, guest.ID(), listing.ID()); ok {
			t.Error("expected listing not to be a favorite")
		}
	})
}
