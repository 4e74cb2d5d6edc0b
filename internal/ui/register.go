package ui

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stayx/internal/models"
	"github.com/desertthunder/stayx/internal/shared"
)

// Messages shown by the register modal.
const (
	RegisterSuccessMessage = "Registered!"
	RegisterFailedMessage  = "Something went wrong."
)

var registerFields = []Field{
	{ID: "email", Label: "Email", Type: FieldText, Required: true},
	{ID: "name", Label: "Name", Type: FieldText, Required: true},
	{ID: "password", Label: "Password", Type: FieldPassword, Required: true},
}

// RegisterModal creates credential accounts and hands back to the login modal.
type RegisterModal struct {
	Users  Registrar
	Toasts Toaster
	Modals ModalStore
	Logger *log.Logger

	mu      sync.Mutex
	loading bool
}

// NewRegisterModal wires a [RegisterModal]. A nil logger falls back to [shared.NewLogger].
func NewRegisterModal(users Registrar, toasts Toaster, modals ModalStore, logger *log.Logger) *RegisterModal {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &RegisterModal{Users: users, Toasts: toasts, Modals: modals, Logger: logger}
}

func (m *RegisterModal) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *RegisterModal) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

func (m *RegisterModal) Fields() []Field {
	return withDisabled(registerFields, m.Loading())
}

func (m *RegisterModal) Validate(values map[string]string) map[string]string {
	return ValidateFields(registerFields, values)
}

// Submit registers an account. On success it toasts and toggles to the login modal;
// on failure it logs the error and shows a generic error toast.
func (m *RegisterModal) Submit(ctx context.Context, values map[string]string) error {
	if errs := m.Validate(values); len(errs) > 0 {
		return ValidationError(errs)
	}

	m.setLoading(true)
	_, err := m.Users.Register(ctx, values["email"], values["name"], values["password"])
	m.setLoading(false)

	if err != nil {
		m.Logger.Error("registration failed", "error", err)
		m.Toasts.Error(RegisterFailedMessage)
		return fmt.Errorf("register: %w", err)
	}

	m.Toasts.Success(RegisterSuccessMessage)
	m.Toggle()
	return nil
}

// Toggle closes the register modal and opens the login modal.
func (m *RegisterModal) Toggle() {
	m.Modals.Close(ModalRegister)
	m.Modals.Open(ModalLogin)
}

func (m *RegisterModal) Close() {
	m.Modals.Close(ModalRegister)
}

func (m *RegisterModal) Modal(values, errs map[string]string, githubURL string) Modal {
	return Modal{
		Kind:        ModalRegister,
		Open:        m.Modals.IsOpen(ModalRegister),
		Title:       "Register",
		ActionLabel: "Continue",
		Heading:     "Welcome to Airbnb",
		Subheading:  "Create an account!",
		Fields:      m.Fields(),
		Values:      values,
		Errors:      errs,
		Disabled:    m.Loading(),
		Providers: []ProviderButton{
			{ID: models.ProviderGoogle, Label: "Continue with Google"},
			{ID: models.ProviderGitHub, Label: "Continue with Github", URL: githubURL},
		},
		SubmitURL:  "/register",
		ToggleURL:  "/register/toggle",
		CloseURL:   "/register/close",
		FooterText: "Already have an account?",
		FooterLink: "Log in",
	}
}
