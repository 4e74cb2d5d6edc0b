package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stayx/internal/auth"
	"github.com/desertthunder/stayx/internal/repositories"
	"github.com/desertthunder/stayx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *shared.Config
	db        *sql.DB
	users     *repositories.UserRepository
	listings  *repositories.ListingRepository
	favorites *repositories.FavoriteRepository
	logger    *log.Logger
	output    io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// When DB is nil the database is opened from the loaded config on first use.
type RunnerOpts struct {
	Config *shared.Config
	DB     *sql.DB
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
	}
	if opts.DB != nil {
		r.attach(opts.DB)
	}
	return r
}

func (r *Runner) attach(db *sql.DB) {
	r.db = db
	r.users = repositories.NewUserRepository(db)
	r.listings = repositories.NewListingRepository(db)
	r.favorites = repositories.NewFavoriteRepository(db)
}

// Close releases the database opened by [Runner.connect].
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, usersCommand, listingsCommand, favoritesCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig reads the --config file (defaults when missing) and applies environment overrides.
func (r *Runner) loadConfig(cmd *cli.Command) error {
	if r.config != nil {
		return nil
	}

	config, err := shared.LoadOrDefault(cmd.String("config"))
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(); err != nil {
		return err
	}
	r.config = config
	return nil
}

// connect opens the configured database and applies pending migrations.
func (r *Runner) connect(cmd *cli.Command) error {
	if r.db != nil {
		return nil
	}
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	applied, err := shared.RunMigrations(db)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if len(applied) > 0 {
		r.logger.Info("applied migrations", "versions", applied)
	}

	r.attach(db)
	return nil
}

// authService builds the auth service from config, enabling every provider with credentials.
func (r *Runner) authService() (*auth.Service, error) {
	var providers []*auth.Provider
	if r.config.Auth.GitHub.Enabled() {
		providers = append(providers, auth.NewGitHubProvider(r.config.Auth.GitHub))
	}
	if r.config.Auth.Google.Enabled() {
		providers = append(providers, auth.NewGoogleProvider(r.config.Auth.Google))
	}

	return auth.NewService(r.users, auth.Options{
		Sessions:  auth.NewSessionManager([]byte(r.config.Auth.SessionSecret), r.config.Auth.SessionDuration()),
		Providers: providers,
		Logger:    r.logger,
	})
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
