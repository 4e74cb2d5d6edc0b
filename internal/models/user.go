package models

import (
	"fmt"
	"strings"
)

// Identity providers a [User] can be created through.
const (
	ProviderCredentials = "credentials"
	ProviderGitHub      = "github"
	ProviderGoogle      = "google"
)

// User is a marketplace account. The password hash is empty for accounts created through an OAuth provider.
type User struct {
	base
	email        string
	name         string
	image        string
	passwordHash string
	provider     string
}

// NewUser creates a credentials [User] with the given sequence, email and display name.
func NewUser(sequence int, email, name string) *User {
	return &User{
		base:     newBase(sequence),
		email:    strings.TrimSpace(strings.ToLower(email)),
		name:     strings.TrimSpace(name),
		provider: ProviderCredentials,
	}
}

func (u *User) Email() string            { return u.email }
func (u *User) Name() string             { return u.name }
func (u *User) SetName(name string)      { u.name = strings.TrimSpace(name) }
func (u *User) Image() string            { return u.image }
func (u *User) SetImage(image string)    { u.image = image }
func (u *User) PasswordHash() string     { return u.passwordHash }
func (u *User) SetPasswordHash(h string) { u.passwordHash = h }
func (u *User) Provider() string         { return u.provider }
func (u *User) SetProvider(p string)     { u.provider = p }

// HasPassword reports whether the user can sign in with credentials.
func (u *User) HasPassword() bool { return u.passwordHash != "" }

// DisplayName returns the user's name, falling back to the local part of the email.
func (u *User) DisplayName() string {
	if u.name != "" {
		return u.name
	}
	if at := strings.Index(u.email, "@"); at > 0 {
		return u.email[:at]
	}
	return u.email
}

// Validate checks that the user has a plausible email address and a known provider.
func (u *User) Validate() error {
	if u.email == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(u.email, "@") {
		return fmt.Errorf("invalid email: %s", u.email)
	}
	switch u.provider {
	case ProviderCredentials, ProviderGitHub, ProviderGoogle:
	default:
		return fmt.Errorf("unknown provider: %s", u.provider)
	}
	return nil
}
