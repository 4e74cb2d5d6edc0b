package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/stayx/internal/models"
	"github.com/desertthunder/stayx/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

const (
	githubAPIURL      = "https://api.github.com"
	googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
)

// Profile is the identity returned by a provider after a successful code exchange.
type Profile struct {
	Email string
	Name  string
	Image string
}

// ProfileFetcher loads the signed-in user's profile with an authenticated client.
type ProfileFetcher func(ctx context.Context, client *http.Client) (*Profile, error)

// Provider is an OAuth2 identity provider.
type Provider struct {
	ID     string
	Name   string
	Config *oauth2.Config
	Fetch  ProfileFetcher
}

// AuthCodeURL returns the provider's consent page URL for the given state.
func (p *Provider) AuthCodeURL(state string) string {
	return p.Config.AuthCodeURL(state)
}

// Exchange trades an authorization code for a token and loads the user's profile.
func (p *Provider) Exchange(ctx context.Context, code string) (*Profile, error) {
	token, err := p.Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	profile, err := p.Fetch(ctx, p.Config.Client(ctx, token))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s profile: %w", p.Name, err)
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("%w: %s account has no verified email", shared.ErrInvalidCredentials, p.Name)
	}
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	return profile, nil
}

// NewGitHubProvider configures GitHub sign-in from the given client credentials.
func NewGitHubProvider(cfg shared.ProviderConfig) *Provider {
	return &Provider{
		ID:   models.ProviderGitHub,
		Name: "GitHub",
		Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		Fetch: GitHubProfile(githubAPIURL),
	}
}

// NewGoogleProvider configures Google sign-in from the given client credentials.
func NewGoogleProvider(cfg shared.ProviderConfig) *Provider {
	return &Provider{
		ID:   models.ProviderGoogle,
		Name: "Google",
		Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		Fetch: GoogleProfile(googleUserInfoURL),
	}
}

type githubUser struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// GitHubProfile fetches /user, falling back to the primary verified address from /user/emails
// when the public profile email is hidden.
func GitHubProfile(apiURL string) ProfileFetcher {
	return func(ctx context.Context, client *http.Client) (*Profile, error) {
		var user githubUser
		if err := getJSON(ctx, client, apiURL+"/user", &user); err != nil {
			return nil, err
		}

		profile := &Profile{Email: user.Email, Name: user.Name, Image: user.AvatarURL}
		if profile.Name == "" {
			profile.Name = user.Login
		}
		if profile.Email != "" {
			return profile, nil
		}

		var emails []githubEmail
		if err := getJSON(ctx, client, apiURL+"/user/emails", &emails); err != nil {
			return nil, err
		}
		for _, e := range emails {
			if e.Primary && e.Verified {
				profile.Email = e.Email
				break
			}
		}
		return profile, nil
	}
}

type googleUserInfo struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleProfile fetches the OpenID Connect userinfo document. Unverified emails are discarded.
func GoogleProfile(userInfoURL string) ProfileFetcher {
	return func(ctx context.Context, client *http.Client) (*Profile, error) {
		var info googleUserInfo
		if err := getJSON(ctx, client, userInfoURL, &info); err != nil {
			return nil, err
		}
		profile := &Profile{Name: info.Name, Image: info.Picture}
		if info.EmailVerified {
			profile.Email = info.Email
		}
		return profile, nil
	}
}

func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("profile API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
