package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/stayx/internal/server"
	"github.com/desertthunder/stayx/internal/shared"
	"github.com/desertthunder/stayx/internal/web"
	"github.com/urfave/cli/v3"
)

const shutdownGrace = 10 * time.Second

// Serve runs the web server until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(cmd); err != nil {
		return err
	}
	if err := r.config.Validate(); err != nil {
		return err
	}
	if r.config.Auth.SessionSecret == placeholderSecret {
		if !cmd.Bool("insecure-dev") {
			return fmt.Errorf("%w: auth.session_secret is the placeholder %q; run setup or set STAYX_SESSION_SECRET",
				shared.ErrMissingConfig, placeholderSecret)
		}
		r.logger.Warn("using the placeholder session secret; sessions can be forged")
	}

	authService, err := r.authService()
	if err != nil {
		return err
	}

	app, err := web.New(web.Options{
		Auth:      authService,
		Listings:  r.listings,
		Favorites: r.favorites,
		Server:    r.config.Server,
		Logger:    r.logger,
	})
	if err != nil {
		return err
	}

	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.Server.Addr()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.logger.Info("starting server", "addr", addr, "providers", authService.Providers())
	return server.Run(ctx, server.New(addr, app.Router()), shutdownGrace, r.logger)
}
