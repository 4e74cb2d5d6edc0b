package auth

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stayx/internal/models"
	"github.com/desertthunder/stayx/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the persistence the auth [Service] needs; implemented by repositories.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// Options configures a [Service].
type Options struct {
	Sessions   *SessionManager
	Providers  []*Provider
	Logger     *log.Logger
	BcryptCost int // defaults to [bcrypt.DefaultCost]
}

// Service authenticates users with credentials or OAuth providers and manages their sessions.
type Service struct {
	users     UserStore
	sessions  *SessionManager
	providers map[string]*Provider
	logger    *log.Logger
	cost      int
	dummyHash []byte
}

// NewService creates an auth [Service] backed by the given user store.
func NewService(users UserStore, opts Options) (*Service, error) {
	if opts.Sessions == nil {
		return nil, fmt.Errorf("%w: session manager is required", shared.ErrMissingConfig)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}

	// compared against when the email is unknown so both paths cost one bcrypt comparison
	dummy, err := bcrypt.GenerateFromPassword([]byte("stayx-timing-guard"), opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password hashing: %w", err)
	}

	providers := make(map[string]*Provider, len(opts.Providers))
	for _, p := range opts.Providers {
		providers[p.ID] = p
	}

	return &Service{
		users:     users,
		sessions:  opts.Sessions,
		providers: providers,
		logger:    shared.WithLogger(opts.Logger, "component", "auth"),
		cost:      opts.BcryptCost,
		dummyHash: dummy,
	}, nil
}

// Providers returns the IDs of the configured OAuth providers, sorted.
func (s *Service) Providers() []string {
	ids := make([]string, 0, len(s.providers))
	for id := range s.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Provider looks up a configured OAuth provider.
func (s *Service) Provider(id string) (*Provider, error) {
	if id == models.ProviderCredentials {
		return nil, fmt.Errorf("%w: %s is not an oauth provider", shared.ErrUnknownProvider, id)
	}
	p, ok := s.providers[id]
	if !ok {
		switch id {
		case models.ProviderGitHub, models.ProviderGoogle:
			return nil, fmt.Errorf("%w: %s", shared.ErrProviderDisabled, id)
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrUnknownProvider, id)
	}
	return p, nil
}

// Authorize verifies an email/password pair.
//
// Returns [shared.ErrInvalidCredentials] for missing fields, unknown emails, wrong passwords,
// and accounts that only sign in through an OAuth provider.
func (s *Service) Authorize(ctx context.Context, email, password string) (*models.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, shared.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, shared.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, shared.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.HasPassword() {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, shared.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	s.logger.Debug("credentials accepted", "user", user.ID())
	return user, nil
}

// Register creates a credentials account.
//
// Returns [shared.ErrInvalidInput] for missing fields and [shared.ErrEmailTaken] for duplicates.
func (s *Service) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(name) == "" || password == "" {
		return nil, fmt.Errorf("%w: email, name and password are required", shared.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(0, email, name)
	user.SetPasswordHash(string(hash))

	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user", user.ID())
	return user, nil
}

// AuthCodeURL returns the consent URL of an OAuth provider.
func (s *Service) AuthCodeURL(providerID, state string) (string, error) {
	p, err := s.Provider(providerID)
	if err != nil {
		return "", err
	}
	return p.AuthCodeURL(state), nil
}

// CompleteOAuth exchanges an authorization code and returns the matching local account,
// creating it on first sign-in. Profile name and image fill in blanks on existing accounts.
//
// An email already registered through a different provider (credentials included) is not
// linked: [shared.ErrAccountNotLinked] is returned and the account is left untouched.
func (s *Service) CompleteOAuth(ctx context.Context, providerID, code string) (*models.User, error) {
	p, err := s.Provider(providerID)
	if err != nil {
		return nil, err
	}

	profile, err := p.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, profile.Email)
	switch {
	case errors.Is(err, shared.ErrUserNotFound):
		user = models.NewUser(0, profile.Email, profile.Name)
		user.SetImage(profile.Image)
		user.SetProvider(p.ID)
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("user created from provider", "user", user.ID(), "provider", p.ID)
		return user, nil
	case err != nil:
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.Provider() != p.ID {
		s.logger.Warn("provider sign-in refused", "user", user.ID(), "provider", p.ID, "registered_with", user.Provider())
		return nil, fmt.Errorf("%w: %s is registered with %s", shared.ErrAccountNotLinked, user.Email(), user.Provider())
	}

	changed := false
	if user.Name() == "" && profile.Name != "" {
		user.SetName(profile.Name)
		changed = true
	}
	if user.Image() == "" && profile.Image != "" {
		user.SetImage(profile.Image)
		changed = true
	}
	if changed {
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("provider sign-in", "user", user.ID(), "provider", p.ID)
	return user, nil
}

// IssueSession creates a session token for the user.
func (s *Service) IssueSession(user *models.User) (string, time.Time, error) {
	return s.sessions.Issue(user.ID())
}

// UserFromSession resolves a session token to its (non-deleted) user.
func (s *Service) UserFromSession(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.sessions.Parse(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Get(ctx, userID)
	if errors.Is(err, shared.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: user no longer exists", shared.ErrInvalidSession)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CurrentUser returns the user attached to ctx by the session middleware, or nil when anonymous.
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	return UserFrom(ctx), nil
}

// NewState returns a random OAuth state value.
func NewState() (string, error) {
	return shared.GenerateSecret(16)
}
