// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/desertthunder/stayx/internal/models"
	"github.com/desertthunder/stayx/internal/shared"
)

// MemoryUserStore is an in-memory test double for repositories.UserRepository
type MemoryUserStore struct {
	mu      sync.Mutex
	users   map[string]*models.User
	nextSeq int

	// Err, when set, is returned by every method
	Err error
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: map[string]*models.User{}}
}

func (m *MemoryUserStore) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, u := range m.users {
		if u.Email() == user.Email() {
			return fmt.Errorf("%w: %s", shared.ErrEmailTaken, user.Email())
		}
	}
	m.nextSeq++
	user.SetID(fmt.Sprintf("user-%d", m.nextSeq))
	user.SetSequence(m.nextSeq)
	m.users[user.ID()] = user
	return nil
}

func (m *MemoryUserStore) Get(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrUserNotFound, id)
	}
	return u, nil
}

func (m *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrUserNotFound, email)
}

func (m *MemoryUserStore) Update(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.users[user.ID()]; !ok {
		return fmt.Errorf("%w: %s", shared.ErrUserNotFound, user.ID())
	}
	m.users[user.ID()] = user
	return nil
}

// Len returns the number of stored users
func (m *MemoryUserStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
