package ui

import "sync"

// ToastKind is the style of a notification.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient notification.
type Toast struct {
	Kind    ToastKind `json:"kind"`
	Message string    `json:"message"`
}

// Toaster shows notifications to the user.
type Toaster interface {
	Success(message string)
	Error(message string)
}

// Refresher asks the client to reload server-rendered data for the current route.
type Refresher interface {
	Refresh()
}

// Collector records toasts and refresh requests raised while handling one request.
// It implements both [Toaster] and [Refresher].
type Collector struct {
	mu        sync.Mutex
	toasts    []Toast
	refreshes int
}

func (c *Collector) Success(message string) { c.add(ToastSuccess, message) }
func (c *Collector) Error(message string)   { c.add(ToastError, message) }

func (c *Collector) add(kind ToastKind, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toasts = append(c.toasts, Toast{Kind: kind, Message: message})
}

func (c *Collector) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshes++
}

// Toasts returns a copy of the recorded notifications in emission order.
func (c *Collector) Toasts() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Toast(nil), c.toasts...)
}

// Refreshes returns how many times a refresh was requested.
func (c *Collector) Refreshes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshes
}
