package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/stayx/internal/formatter"
	"github.com/desertthunder/stayx/internal/models"
	"github.com/urfave/cli/v3"
)

type listingView struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"ownerId"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	ImageURL      string    `json:"imageSrc,omitempty"`
	Category      string    `json:"category"`
	LocationValue string    `json:"locationValue"`
	RoomCount     int       `json:"roomCount"`
	BathroomCount int       `json:"bathroomCount"`
	GuestCount    int       `json:"guestCount"`
	Price         int       `json:"price"`
	CreatedAt     time.Time `json:"createdAt"`
}

func newListingView(l *models.Listing) listingView {
	d := l.Details()
	return listingView{
		ID:            l.ID(),
		OwnerID:       l.OwnerID(),
		Title:         d.Title,
		Description:   d.Description,
		ImageURL:      d.ImageURL,
		Category:      d.Category,
		LocationValue: d.LocationValue,
		RoomCount:     d.RoomCount,
		BathroomCount: d.BathroomCount,
		GuestCount:    d.GuestCount,
		Price:         d.Price,
		CreatedAt:     l.CreatedAt(),
	}
}

// ListingsCreate creates a listing owned by the account with the --owner email.
func (r *Runner) ListingsCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(cmd); err != nil {
		return err
	}

	owner, err := r.users.GetByEmail(ctx, cmd.String("owner"))
	if err != nil {
		return err
	}

	listing := models.NewListing(0, owner.ID(), models.ListingDetails{
		Title:         cmd.String("title"),
		Description:   cmd.String("description"),
		ImageURL:      cmd.String("image"),
		Category:      cmd.String("category"),
		LocationValue: cmd.String("location"),
		RoomCount:     int(cmd.Int("rooms")),
		BathroomCount: int(cmd.Int("bathrooms")),
		GuestCount:    int(cmd.Int("guests")),
		Price:         int(cmd.Int("price")),
	})
	if err := r.listings.Create(ctx, listing); err != nil {
		return err
	}

	return r.writePlain("%s\n", formatter.Styles.OK(fmt.Sprintf("created listing %q (%s)", listing.Title(), listing.ID())))
}

// ListingsList prints listings, newest first.
func (r *Runner) ListingsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(cmd); err != nil {
		return err
	}

	criteria := map[string]any{
		"category": cmd.String("category"),
		"limit":    int(cmd.Int("limit")),
	}
	if email := cmd.String("owner"); email != "" {
		owner, err := r.users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		criteria["owner_id"] = owner.ID()
	}

	listings, err := r.listings.List(ctx, criteria)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		views := make([]listingView, 0, len(listings))
		for _, l := range listings {
			views = append(views, newListingView(l))
		}
		return r.writeJSON(views, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Listings (%d)", len(listings)))
	for _, l := range listings {
		r.writePlain("%s  %-30s %-12s %-4s $%d/night\n", l.ID(), l.Title(), l.Category(), l.LocationValue(), l.Price())
	}
	return nil
}
