// Package command is the command surface exposed to the front end. Each
// command takes no arguments and returns a text payload or an error whose
// message is shown to the user verbatim.
package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Command names registered by the application.
const (
	CopyFromActiveWindow = "copy_from_active_window"
	ListWindows          = "list_windows"
	CheckDependencies    = "check_dependencies"
)

// ErrUnknownCommand is returned by Invoke for an unregistered name.
var ErrUnknownCommand = errors.New("unknown command")

// Handler produces a command's payload.
type Handler func(ctx context.Context) (string, error)

// Error is a failed invocation flattened to a message.
type Error struct {
	Command string
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// Registry maps command names to handlers. It is safe for concurrent use;
// handlers themselves may run concurrently.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler. Registering a name twice is a programming error
// and panics.
func (r *Registry) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.handlers[name]; dup {
		panic(fmt.Sprintf("command %q registered twice", name))
	}
	r.handlers[name] = h
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the named command. Handler failures come back as *Error.
func (r *Registry) Invoke(ctx context.Context, name string) (string, error) {
	r.mu.RLock()
	h, ok := r.handlers[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	payload, err := h(ctx)
	if err != nil {
		return "", &Error{Command: name, Message: err.Error(), cause: err}
	}
	return payload, nil
}
