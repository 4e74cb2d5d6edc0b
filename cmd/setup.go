package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/desertthunder/stayx/internal/formatter"
	"github.com/desertthunder/stayx/internal/shared"
	"github.com/urfave/cli/v3"
)

// placeholderSecret is the session secret shipped in the example config.
const placeholderSecret = "change-me"

// Setup creates the config file when missing, initializes the database and runs migrations.
//
// A freshly created config gets a random session secret in place of the placeholder.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return err
		}

		config, err := shared.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if config.Auth.SessionSecret == placeholderSecret {
			secret, err := shared.GenerateSecret(32)
			if err != nil {
				return fmt.Errorf("failed to generate session secret: %w", err)
			}
			config.Auth.SessionSecret = secret
			if err := shared.SaveConfig(configPath, config); err != nil {
				return err
			}
		}
		r.writePlain("%s\n", formatter.Styles.OK("created "+configPath))
	}

	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)
	if err := r.connect(cmd); err != nil {
		return err
	}

	r.writePlain("%s\n", formatter.Styles.OK("database ready at "+r.config.Database.Path))
	return nil
}
