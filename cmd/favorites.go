package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/stayx/internal/formatter"
	"github.com/urfave/cli/v3"
)

type favoriteView struct {
	UserID    string    `json:"userId"`
	ListingID string    `json:"listingId"`
	CreatedAt time.Time `json:"createdAt"`
}

// FavoritesAdd marks --listing as a favorite of the --user account.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(cmd); err != nil {
		return err
	}

	user, err := r.users.GetByEmail(ctx, cmd.String("user"))
	if err != nil {
		return err
	}

	listingID := cmd.String("listing")
	if err := r.favorites.Add(ctx, user.ID(), listingID); err != nil {
		return err
	}

	return r.writePlain("%s\n", formatter.Styles.OK(fmt.Sprintf("added %s to favorites of %s", listingID, user.Email())))
}

// FavoritesRemove removes --listing from the --user account's favorites.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(cmd); err != nil {
		return err
	}

	user, err := r.users.GetByEmail(ctx, cmd.String("user"))
	if err != nil {
		return err
	}

	listingID := cmd.String("listing")
	if err := r.favorites.Remove(ctx, user.ID(), listingID); err != nil {
		return err
	}

	return r.writePlain("%s\n", formatter.Styles.OK(fmt.Sprintf("removed %s from favorites of %s", listingID, user.Email())))
}

// FavoritesList exports the --user account's favorites to stdout, or to --output when set.
// With --json it prints the raw favorite records instead.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	if err := r.connect(cmd); err != nil {
		return err
	}

	user, err := r.users.GetByEmail(ctx, cmd.String("user"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		records, err := r.favorites.List(ctx, user.ID())
		if err != nil {
			return err
		}
		views := make([]favoriteView, 0, len(records))
		for _, f := range records {
			views = append(views, favoriteView{UserID: f.UserID, ListingID: f.ListingID, CreatedAt: f.CreatedAt})
		}
		return r.writeJSON(views, cmd.Bool("pretty"))
	}

	listings, err := r.favorites.Listings(ctx, user.ID())
	if err != nil {
		return err
	}

	export := &formatter.FavoritesExport{User: user, Listings: listings}
	if !cmd.IsSet("output") {
		return formatter.WriteExport(r.output, export, format)
	}

	path, err := formatter.WriteExportFile(export, format, cmd.String("output"))
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", formatter.Styles.OK(fmt.Sprintf("exported %d favorites to %s", len(listings), path)))
}
