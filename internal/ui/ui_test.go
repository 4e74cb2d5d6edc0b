package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/stayx/internal/models"
	"github.com/desertthunder/stayx/internal/shared"
)

type fakeAuth struct {
	mu       sync.Mutex
	calls    []string
	opts     []SignInOptions
	result   *SignInResult
	err      error
	duringFn func()
}

func (f *fakeAuth) SignIn(ctx context.Context, provider string, opts SignInOptions) (*SignInResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, provider)
	f.opts = append(f.opts, opts)
	f.mu.Unlock()
	if f.duringFn != nil {
		f.duringFn()
	}
	return f.result, f.err
}

type fakeRegistrar struct {
	calls int
	err   error
}

func (f *fakeRegistrar) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return models.NewUser(1, email, name), nil
}

func newLogin(auth Authenticator) (*LoginModal, *Collector, *MemoryModalStore) {
	c := &Collector{}
	store := NewModalStore()
	store.Open(ModalLogin)
	return NewLoginModal(auth, c, c, store), c, store
}

func TestModalStore(t *testing.T) {
	a := NewModalStore()
	b := NewModalStore()

	a.Open(ModalLogin)
	if !a.IsOpen(ModalLogin) {
		t.Error("expected login to be open")
	}
	if b.IsOpen(ModalLogin) {
		t.Error("stores should be isolated")
	}

	a.Close(ModalLogin)
	a.Close(ModalLogin)
	if a.IsOpen(ModalLogin) {
		t.Error("expected login to be closed")
	}
}

func TestLoginModal(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing Fields Skip Network", func(t *testing.T) {
		tc := []struct {
			name   string
			values map[string]string
			fields []string
		}{
			{"empty form", map[string]string{}, []string{"email", "password"}},
			{"missing password", map[string]string{"email": "a@b.co"}, []string{"password"}},
			{"missing email", map[string]string{"password": "pw"}, []string{"email"}},
			{"blank email", map[string]string{"email": "   ", "password": "pw"}, []string{"email"}},
		}
		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				auth := &fakeAuth{result: &SignInResult{OK: true}}
				m, c, store := newLogin(auth)

				err := m.Submit(ctx, tt.values)

				var verr ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				for _, id := range tt.fields {
					if !strings.HasSuffix(verr[id], "is required") {
						t.Errorf("expected inline message for %s, got %q", id, verr[id])
					}
				}
				if len(verr) != len(tt.fields) {
					t.Errorf("expected %d messages, got %v", len(tt.fields), verr)
				}
				if len(auth.calls) != 0 {
					t.Errorf("expected no sign-in call, got %d", len(auth.calls))
				}
				if len(c.Toasts()) != 0 || !store.IsOpen(ModalLogin) {
					t.Error("validation failure should not toast or close the modal")
				}
			})
		}
	})

	t.Run("Success", func(t *testing.T) {
		auth := &fakeAuth{result: &SignInResult{OK: true}}
		m, c, store := newLogin(auth)
		values := map[string]string{"email": "jane@example.com", "password": "pw"}

		if err := m.Submit(ctx, values); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}

		if len(auth.calls) != 1 || auth.calls[0] != "credentials" {
			t.Fatalf("expected one credentials sign-in, got %v", auth.calls)
		}
		if auth.opts[0].Redirect {
			t.Error("credential sign-in must not redirect")
		}
		if auth.opts[0].Values["email"] != "jane@example.com" || auth.opts[0].Values["password"] != "pw" {
			t.Errorf("unexpected values %v", auth.opts[0].Values)
		}

		toasts := c.Toasts()
		if len(toasts) != 1 || toasts[0] != (Toast{Kind: ToastSuccess, Message: "Logged in"}) {
			t.Errorf("expected exactly one success toast, got %v", toasts)
		}
		if c.Refreshes() != 1 {
			t.Errorf("expected exactly one refresh, got %d", c.Refreshes())
		}
		if store.IsOpen(ModalLogin) {
			t.Error("expected login modal to close")
		}
		if m.Loading() {
			t.Error("loading should be cleared")
		}
	})

	t.Run("Error Result", func(t *testing.T) {
		auth := &fakeAuth{result: &SignInResult{Error: "Invalid credentials"}}
		m, c, store := newLogin(auth)

		if err := m.Submit(ctx, map[string]string{"email": "jane@example.com", "password": "nope"}); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}

		toasts := c.Toasts()
		if len(toasts) != 1 || toasts[0] != (Toast{Kind: ToastError, Message: "Invalid credentials"}) {
			t.Errorf("expected error toast with exact message, got %v", toasts)
		}
		if !store.IsOpen(ModalLogin) {
			t.Error("modal should stay open")
		}
		if c.Refreshes() != 0 {
			t.Error("no refresh expected on failure")
		}
		if m.Loading() {
			t.Error("loading should be cleared")
		}
	})

	t.Run("OK And Error Both Reported", func(t *testing.T) {
		auth := &fakeAuth{result: &SignInResult{OK: true, Error: "Email not verified"}}
		m, c, store := newLogin(auth)

		if err := m.Submit(ctx, map[string]string{"email": "jane@example.com", "password": "pw"}); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}

		want := []Toast{
			{Kind: ToastSuccess, Message: "Logged in"},
			{Kind: ToastError, Message: "Email not verified"},
		}
		toasts := c.Toasts()
		if len(toasts) != len(want) {
			t.Fatalf("expected %d toasts, got %v", len(want), toasts)
		}
		for i := range want {
			if toasts[i] != want[i] {
				t.Errorf("toast %d = %v, want %v", i, toasts[i], want[i])
			}
		}
		if c.Refreshes() != 1 || store.IsOpen(ModalLogin) {
			t.Error("expected refresh and closed modal")
		}
	})

	t.Run("Loading During Call", func(t *testing.T) {
		auth := &fakeAuth{result: &SignInResult{OK: true}}
		m, _, _ := newLogin(auth)

		var sawLoading, sawDisabled bool
		auth.duringFn = func() {
			sawLoading = m.Loading()
			fields := m.Fields()
			sawDisabled = fields[0].Disabled && fields[1].Disabled
		}

		if err := m.Submit(ctx, map[string]string{"email": "a@b.co", "password": "pw"}); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if !sawLoading || !sawDisabled {
			t.Error("expected loading flag and disabled fields during the call")
		}
		for _, f := range m.Fields() {
			if f.Disabled {
				t.Errorf("field %s should be enabled after the call", f.ID)
			}
		}
	})

	t.Run("Transport Error", func(t *testing.T) {
		auth := &fakeAuth{err: errors.New("connection reset")}
		m, c, store := newLogin(auth)

		err := m.Submit(ctx, map[string]string{"email": "a@b.co", "password": "pw"})
		if err == nil {
			t.Fatal("expected error to be returned")
		}

		toasts := c.Toasts()
		if len(toasts) != 1 || toasts[0].Kind != ToastError || toasts[0].Message != "connection reset" {
			t.Errorf("expected error toast, got %v", toasts)
		}
		if !store.IsOpen(ModalLogin) || m.Loading() {
			t.Error("modal should stay open with loading cleared")
		}
	})

	t.Run("Provider Sign In", func(t *testing.T) {
		auth := &fakeAuth{result: &SignInResult{OK: true, URL: "https://github.com/login/oauth/authorize?state=x"}}
		m, c, _ := newLogin(auth)

		url, err := m.SignInWithProvider(ctx, "github")
		if err != nil {
			t.Fatalf("SignInWithProvider failed: %v", err)
		}
		if url != auth.result.URL || auth.calls[0] != "github" {
			t.Errorf("unexpected redirect %s (calls %v)", url, auth.calls)
		}
		if len(c.Toasts()) != 0 || c.Refreshes() != 0 {
			t.Error("provider sign-in should not toast or refresh")
		}

		auth.result = &SignInResult{}
		if _, err := m.SignInWithProvider(ctx, "github"); err == nil {
			t.Error("expected error for missing redirect")
		}

		auth.err = shared.ErrUnknownProvider
		if _, err := m.SignInWithProvider(ctx, "myspace"); !errors.Is(err, shared.ErrUnknownProvider) {
			t.Errorf("expected ErrUnknownProvider, got %v", err)
		}
	})

	t.Run("Google Is No-op", func(t *testing.T) {
		auth := &fakeAuth{result: &SignInResult{OK: true}}
		m, c, store := newLogin(auth)

		m.SignInWithGoogle(ctx)

		if len(auth.calls) != 0 || len(c.Toasts()) != 0 || !store.IsOpen(ModalLogin) {
			t.Error("google trigger should have no effect")
		}
	})

	t.Run("Toggle", func(t *testing.T) {
		tc := []struct {
			name               string
			loginOpen, regOpen bool
		}{
			{"both closed", false, false},
			{"login open", true, false},
			{"register open", false, true},
			{"both open", true, true},
		}
		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				store := NewModalStore()
				if tt.loginOpen {
					store.Open(ModalLogin)
				}
				if tt.regOpen {
					store.Open(ModalRegister)
				}
				m := NewLoginModal(&fakeAuth{}, &Collector{}, &Collector{}, store)

				m.Toggle()

				if store.IsOpen(ModalLogin) || !store.IsOpen(ModalRegister) {
					t.Error("expected login closed and register open")
				}
			})
		}
	})

	t.Run("Close", func(t *testing.T) {
		store := NewModalStore()
		store.Open(ModalLogin)
		store.Open(ModalRegister)
		m := NewLoginModal(&fakeAuth{}, &Collector{}, &Collector{}, store)

		m.Close()
		m.Close()

		if store.IsOpen(ModalLogin) {
			t.Error("expected login closed")
		}
		if !store.IsOpen(ModalRegister) {
			t.Error("closing login should not touch register")
		}
		if m.Modal(nil, nil, "").Open {
			t.Error("shell should render closed")
		}
	})

	t.Run("Modal Shell", func(t *testing.T) {
		m, _, _ := newLogin(&fakeAuth{})
		shell := m.Modal(nil, nil, "/api/auth/signin/github")

		if shell.Title != "Login" || shell.ActionLabel != "Continue" {
			t.Errorf("unexpected title/action %q/%q", shell.Title, shell.ActionLabel)
		}
		if shell.Heading != "Welcome back" || shell.Subheading != "Login to your account!" {
			t.Errorf("unexpected heading %q/%q", shell.Heading, shell.Subheading)
		}
		if shell.FooterText != "First time using Airbnb?" || shell.FooterLink != "Create an account" {
			t.Errorf("unexpected footer %q/%q", shell.FooterText, shell.FooterLink)
		}
		if shell.CloseURL != "/login/close" {
			t.Errorf("unexpected close URL %q", shell.CloseURL)
		}
		if !shell.Open || len(shell.Fields) != 2 || len(shell.Providers) != 2 {
			t.Errorf("unexpected shell %+v", shell)
		}
		for _, p := range shell.Providers {
			if p.ID == "google" && p.URL != "" {
				t.Error("google button should be inert")
			}
		}
	})
}

func TestRegisterModal(t *testing.T) {
	ctx := context.Background()
	values := map[string]string{"email": "jane@example.com", "name": "Jane", "password": "pw"}

	t.Run("Success Toggles To Login", func(t *testing.T) {
		users := &fakeRegistrar{}
		c := &Collector{}
		store := NewModalStore()
		store.Open(ModalRegister)
		m := NewRegisterModal(users, c, store, nil)

		if err := m.Submit(ctx, values); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if toasts := c.Toasts(); len(toasts) != 1 || toasts[0].Message != "Registered!" {
			t.Errorf("unexpected toasts %v", toasts)
		}
		if store.IsOpen(ModalRegister) || !store.IsOpen(ModalLogin) {
			t.Error("expected register closed and login open")
		}
	})

	t.Run("Failure", func(t *testing.T) {
		users := &fakeRegistrar{err: shared.ErrEmailTaken}
		c := &Collector{}
		store := NewModalStore()
		store.Open(ModalRegister)
		m := NewRegisterModal(users, c, store, nil)

		err := m.Submit(ctx, values)
		if !errors.Is(err, shared.ErrEmailTaken) {
			t.Errorf("expected ErrEmailTaken, got %v", err)
		}
		if toasts := c.Toasts(); len(toasts) != 1 || toasts[0] != (Toast{Kind: ToastError, Message: "Something went wrong."}) {
			t.Errorf("unexpected toasts %v", toasts)
		}
		if !store.IsOpen(ModalRegister) {
			t.Error("register modal should stay open")
		}
	})

	t.Run("Close", func(t *testing.T) {
		store := NewModalStore()
		store.Open(ModalRegister)
		m := NewRegisterModal(&fakeRegistrar{}, &Collector{}, store, nil)

		m.Close()

		if store.IsOpen(ModalRegister) || store.IsOpen(ModalLogin) {
			t.Error("expected every modal closed")
		}
		if shell := m.Modal(nil, nil, ""); shell.Open || shell.CloseURL != "/register/close" {
			t.Errorf("unexpected shell %+v", shell)
		}
	})

	t.Run("Validation", func(t *testing.T) {
		users := &fakeRegistrar{}
		m := NewRegisterModal(users, &Collector{}, NewModalStore(), nil)

		err := m.Submit(ctx, map[string]string{"email": "jane@example.com"})
		var verr ValidationError
		if !errors.As(err, &verr) || len(verr) != 2 {
			t.Fatalf("expected two field errors, got %v", err)
		}
		if verr["name"] != "Name is required" {
			t.Errorf("unexpected message %q", verr["name"])
		}
		if users.calls != 0 {
			t.Error("registrar should not be called")
		}
	})
}

func TestRenderField(t *testing.T) {
	t.Run("Attributes", func(t *testing.T) {
		var b strings.Builder
		f := Field{ID: "email", Label: "Email", Type: FieldText, Required: true, Disabled: true}
		if err := RenderField(&b, f, `a"b@example.com`, "Email is required"); err != nil {
			t.Fatalf("RenderField failed: %v", err)
		}
		out := b.String()

		for _, want := range []string{`id="email"`, `type="text"`, " required", " disabled", "Email is required", "&#34;"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in %s", want, out)
			}
		}
	})

	t.Run("Password Never Echoed", func(t *testing.T) {
		html, err := Field{ID: "password", Label: "Password", Type: FieldPassword}.HTML("secret", "")
		if err != nil {
			t.Fatalf("HTML failed: %v", err)
		}
		if strings.Contains(string(html), "secret") {
			t.Error("password value leaked into markup")
		}
		if strings.Contains(string(html), "required") {
			t.Error("optional field rendered as required")
		}
	})
}

type fakeListings struct {
	listings []*models.Listing
	err      error
}

func (f *fakeListings) FavoriteListings(context.Context) ([]*models.Listing, error) {
	return f.listings, f.err
}

type fakeUsers struct {
	user *models.User
	err  error
}

func (f *fakeUsers) CurrentUser(context.Context) (*models.User, error) { return f.user, f.err }

func TestFavoritesPage(t *testing.T) {
	ctx := context.Background()
	user := models.NewUser(1, "jane@example.com", "Jane")
	user.SetID("user-1")

	newListing := func(id string) *models.Listing {
		l := models.NewListing(1, "user-1", models.ListingDetails{Title: id})
		l.SetID(id)
		return l
	}

	t.Run("Empty", func(t *testing.T) {
		for _, listings := range [][]*models.Listing{nil, {}} {
			page := &FavoritesPage{Listings: &fakeListings{listings: listings}, Users: &fakeUsers{user: user}}

			view, err := page.Load(ctx)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if view.Grid != nil {
				t.Error("grid should not render for empty favorites")
			}
			if view.Empty == nil || view.Empty.Title != "No favorites found" || view.Empty.Subtitle != "Looks like you have no favorite listings." {
				t.Errorf("unexpected empty state %+v", view.Empty)
			}
		}
	})

	t.Run("Populated", func(t *testing.T) {
		listings := []*models.Listing{newListing("b"), newListing("a")}

		for _, u := range []*models.User{user, nil} {
			page := &FavoritesPage{Listings: &fakeListings{listings: listings}, Users: &fakeUsers{user: u}}

			view, err := page.Load(ctx)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if view.Empty != nil || view.Grid == nil {
				t.Fatal("expected grid only")
			}
			if len(view.Grid.Listings) != 2 || view.Grid.Listings[0] != listings[0] || view.Grid.Listings[1] != listings[1] {
				t.Error("listings should pass through unchanged")
			}
			if view.Grid.CurrentUser != u {
				t.Errorf("expected user %v, got %v", u, view.Grid.CurrentUser)
			}
			if !view.Grid.IsFavorite("a") || view.Grid.IsFavorite("c") {
				t.Error("IsFavorite mismatch")
			}
		}
	})

	t.Run("Fetch Errors Propagate", func(t *testing.T) {
		boom := errors.New("database is closed")

		pages := map[string]*FavoritesPage{
			"listings": {Listings: &fakeListings{err: boom}, Users: &fakeUsers{user: user}},
			"user":     {Listings: &fakeListings{listings: []*models.Listing{newListing("a")}}, Users: &fakeUsers{err: boom}},
		}
		for name, page := range pages {
			t.Run(name, func(t *testing.T) {
				view, err := page.Load(ctx)
				if err != boom {
					t.Errorf("expected the fetch error unchanged, got %v", err)
				}
				if view != nil {
					t.Error("expected no view")
				}
			})
		}
	})
}
