package ui

import "sync"

// ModalKind names a modal overlay.
type ModalKind string

const (
	ModalLogin    ModalKind = "login"
	ModalRegister ModalKind = "register"
)

// ModalStore tracks which modals are visible.
type ModalStore interface {
	IsOpen(kind ModalKind) bool
	Open(kind ModalKind)
	Close(kind ModalKind)
}

// MemoryModalStore is a [ModalStore] safe for concurrent use. Each instance is isolated.
type MemoryModalStore struct {
	mu   sync.RWMutex
	open map[ModalKind]bool
}

// NewModalStore returns an empty store with every modal closed.
func NewModalStore() *MemoryModalStore {
	return &MemoryModalStore{open: make(map[ModalKind]bool)}
}

func (s *MemoryModalStore) IsOpen(kind ModalKind) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open[kind]
}

func (s *MemoryModalStore) Open(kind ModalKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open[kind] = true
}

func (s *MemoryModalStore) Close(kind ModalKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.open, kind)
}

// ProviderButton is an OAuth trigger rendered below the credential form.
// An empty URL renders an inert button.
type ProviderButton struct {
	ID    string
	Label string
	URL   string
}

// Modal is the generic modal shell a template renders.
type Modal struct {
	Kind        ModalKind
	Open        bool
	Title       string
	ActionLabel string
	Heading     string
	Subheading  string
	Fields      []Field
	Values      map[string]string
	Errors      map[string]string
	Disabled    bool
	Providers   []ProviderButton
	SubmitURL   string
	ToggleURL   string
	CloseURL    string
	FooterText  string
	FooterLink  string
}

// Value returns the submitted value of a field. Password values are never echoed back.
func (m Modal) Value(f Field) string {
	if f.Type == FieldPassword {
		return ""
	}
	return m.Values[f.ID]
}

// Error returns the inline validation message of a field.
func (m Modal) Error(f Field) string {
	return m.Errors[f.ID]
}
