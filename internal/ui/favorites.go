package ui

import (
	"context"

	"github.com/desertthunder/stayx/internal/models"
	"golang.org/x/sync/errgroup"
)

// EmptyState is the placeholder shown when a collection has nothing to display.
type EmptyState struct {
	Title    string
	Subtitle string
}

// FavoritesGrid is the populated favorites view.
type FavoritesGrid struct {
	Listings    []*models.Listing
	CurrentUser *models.User
}

// IsFavorite reports whether the listing is in the grid.
func (g *FavoritesGrid) IsFavorite(listingID string) bool {
	for _, l := range g.Listings {
		if l.ID() == listingID {
			return true
		}
	}
	return false
}

// View is the favorites page outcome. Exactly one of Empty and Grid is set.
type View struct {
	Empty *EmptyState
	Grid  *FavoritesGrid
}

// FavoritesPage loads the data behind /favorites.
type FavoritesPage struct {
	Listings FavoriteListingsFetcher
	Users    CurrentUserFetcher
}

// Load fetches the favorited listings and the current user concurrently.
// A fetch error is returned as is.
func (p *FavoritesPage) Load(ctx context.Context) (*View, error) {
	var (
		listings []*models.Listing
		user     *models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		listings, err = p.Listings.FavoriteListings(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		user, err = p.Users.CurrentUser(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(listings) == 0 {
		return &View{Empty: &EmptyState{
			Title:    "No favorites found",
			Subtitle: "Looks like you have no favorite listings.",
		}}, nil
	}
	return &View{Grid: &FavoritesGrid{Listings: listings, CurrentUser: user}}, nil
}
