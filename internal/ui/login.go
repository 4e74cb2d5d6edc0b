package ui

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/stayx/internal/models"
)

// Messages shown by the login modal.
const (
	LoginSuccessMessage = "Logged in"
	LoginFailedMessage  = "Something went wrong."
)

var loginFields = []Field{
	{ID: "email", Label: "Email", Type: FieldText, Required: true},
	{ID: "password", Label: "Password", Type: FieldPassword, Required: true},
}

// LoginModal orchestrates the credential form and the OAuth triggers.
type LoginModal struct {
	Auth    Authenticator
	Toasts  Toaster
	Refresh Refresher
	Modals  ModalStore

	mu      sync.Mutex
	loading bool
}

// NewLoginModal wires a [LoginModal] to its collaborators.
func NewLoginModal(auth Authenticator, toasts Toaster, refresh Refresher, modals ModalStore) *LoginModal {
	return &LoginModal{Auth: auth, Toasts: toasts, Refresh: refresh, Modals: modals}
}

// Loading reports whether a credential submission is in flight.
func (m *LoginModal) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *LoginModal) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

// Fields returns the form configuration. Fields are disabled while loading.
func (m *LoginModal) Fields() []Field {
	return withDisabled(loginFields, m.Loading())
}

// Validate returns inline messages for missing required values.
func (m *LoginModal) Validate(values map[string]string) map[string]string {
	return ValidateFields(loginFields, values)
}

// Submit signs in with the given form values.
//
// Invalid forms return a [ValidationError] without contacting the authenticator. A rejected
// sign-in surfaces its message as an error toast and leaves the modal open. An authenticator
// failure is toasted as well and returned for logging.
func (m *LoginModal) Submit(ctx context.Context, values map[string]string) error {
	if errs := m.Validate(values); len(errs) > 0 {
		return ValidationError(errs)
	}

	m.setLoading(true)
	res, err := m.Auth.SignIn(ctx, models.ProviderCredentials, SignInOptions{
		Values:   map[string]string{"email": values["email"], "password": values["password"]},
		Redirect: false,
	})
	m.setLoading(false)

	if err != nil {
		m.Toasts.Error(err.Error())
		return fmt.Errorf("sign in failed: %w", err)
	}
	if res == nil {
		m.Toasts.Error(LoginFailedMessage)
		return fmt.Errorf("sign in returned no result")
	}

	if res.OK {
		m.Toasts.Success(LoginSuccessMessage)
		m.Refresh.Refresh()
		m.Modals.Close(ModalLogin)
	}
	if res.Error != "" {
		m.Toasts.Error(res.Error)
	}
	return nil
}

// SignInWithProvider starts an OAuth sign-in and returns the URL to redirect to.
// The provider flow owns session creation, so no toast is raised here.
func (m *LoginModal) SignInWithProvider(ctx context.Context, provider string) (string, error) {
	res, err := m.Auth.SignIn(ctx, provider, SignInOptions{Redirect: true})
	if err != nil {
		return "", err
	}
	if res == nil || res.URL == "" {
		return "", fmt.Errorf("provider %s returned no redirect", provider)
	}
	return res.URL, nil
}

// SignInWithGoogle is the Google trigger. It does nothing.
func (m *LoginModal) SignInWithGoogle(context.Context) {}

// Toggle closes the login modal and opens the register modal.
func (m *LoginModal) Toggle() {
	m.Modals.Close(ModalLogin)
	m.Modals.Open(ModalRegister)
}

// Close hides the login modal.
func (m *LoginModal) Close() {
	m.Modals.Close(ModalLogin)
}

// Modal describes the shell for rendering. githubURL is the GitHub sign-in route.
func (m *LoginModal) Modal(values, errs map[string]string, githubURL string) Modal {
	return Modal{
		Kind:        ModalLogin,
		Open:        m.Modals.IsOpen(ModalLogin),
		Title:       "Login",
		ActionLabel: "Continue",
		Heading:     "Welcome back",
		Subheading:  "Login to your account!",
		Fields:      m.Fields(),
		Values:      values,
		Errors:      errs,
		Disabled:    m.Loading(),
		Providers: []ProviderButton{
			{ID: models.ProviderGoogle, Label: "Continue with Google"},
			{ID: models.ProviderGitHub, Label: "Continue with Github", URL: githubURL},
		},
		SubmitURL:  "/login",
		ToggleURL:  "/login/toggle",
		CloseURL:   "/login/close",
		FooterText: "First time using Airbnb?",
		FooterLink: "Create an account",
	}
}
