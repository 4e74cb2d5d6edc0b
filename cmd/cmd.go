// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create the config file if missing, initialize the database and run migrations",
		Action: r.Setup,
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (overrides server.host and server.port)",
			},
			&cli.BoolFlag{
				Name:  "insecure-dev",
				Usage: "Allow the placeholder session secret (local development only)",
			},
		},
		Action: r.Serve,
	}
}

func usersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Manage accounts",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a credentials account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "name", Usage: "Display name", Required: true},
					&cli.StringFlag{Name: "password", Usage: "Account password", Required: true},
				},
				Action: r.UsersCreate,
			},
			{
				Name:  "list",
				Usage: "List accounts",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "provider", Usage: "Only accounts created through this provider"},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.UsersList,
			},
		},
	}
}

func listingsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "listings",
		Usage: "Manage listings",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a listing",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "owner", Usage: "Owner email", Required: true},
					&cli.StringFlag{Name: "title", Usage: "Listing title", Required: true},
					&cli.StringFlag{Name: "description", Usage: "Listing description"},
					&cli.StringFlag{Name: "image", Usage: "Image URL"},
					&cli.StringFlag{Name: "category", Usage: "Category (Beach, Mountains, ...)", Required: true},
					&cli.StringFlag{Name: "location", Usage: "Country code", Required: true},
					&cli.IntFlag{Name: "rooms", Usage: "Room count", Value: 1},
					&cli.IntFlag{Name: "bathrooms", Usage: "Bathroom count", Value: 1},
					&cli.IntFlag{Name: "guests", Usage: "Guest count", Value: 1},
					&cli.IntFlag{Name: "price", Usage: "Price per night", Required: true},
				},
				Action: r.ListingsCreate,
			},
			{
				Name:  "list",
				Usage: "List listings, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Usage: "Filter by category"},
					&cli.StringFlag{Name: "owner", Usage: "Filter by owner email"},
					&cli.IntFlag{Name: "limit", Usage: "Maximum number of listings to return"},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.ListingsList,
			},
		},
	}
}

func favoritesCommand(r *Runner) *cli.Command {
	target := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: "user", Usage: "User email", Required: true},
			&cli.StringFlag{Name: "listing", Usage: "Listing ID", Required: true},
		}
	}

	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage a user's favorite listings",
		Commands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Add a listing to a user's favorites",
				Flags:  target(),
				Action: r.FavoritesAdd,
			},
			{
				Name:   "remove",
				Usage:  "Remove a listing from a user's favorites",
				Flags:  target(),
				Action: r.FavoritesRemove,
			},
			{
				Name:  "list",
				Usage: "Export a user's favorites",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Usage: "User email", Required: true},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Output format: text, csv or md", Value: "text"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write to this file instead of stdout"},
					&cli.BoolFlag{Name: "json", Usage: "Output raw favorite records as JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output"},
				},
				Action: r.FavoritesList,
			},
		},
	}
}
