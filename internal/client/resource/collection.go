// Package resource implements the synchronization pattern shared by the
// three server-backed collections: fetch-all, render, and a mandated
// refetch after every write. Consistency comes only from re-reading
// authoritative server state; there is no optimistic local mutation.
//
// Known race: two mutating calls in flight on the same resource (two admins,
// two tabs) are not serialized. The last refresh to resolve wins and may
// transiently show state inconsistent with a request still in flight
// elsewhere. A per-collection version token would close this; it is left out
// on purpose.
package resource

import (
	"context"
	"errors"
	"log"
	"sync"

	"ideahub/internal/client/api"
	"ideahub/internal/model"
)

// Prompter asks the user to confirm a destructive or irreversible action.
type Prompter interface {
	Confirm(message string) bool
}

// Notifier surfaces a non-blocking notice to the user.
type Notifier interface {
	Notify(message string)
}

// Snapshot is an immutable copy of a collection's state handed to the render
// layer.
type Snapshot[T any] struct {
	Items   []T
	Loading bool
	Err     error
}

// View paints a snapshot for the given session. Implementations must treat
// the snapshot as read-only and must re-evaluate per-item permissions on
// every call; gating decisions are never cached across renders.
type View[T any] interface {
	Render(snap Snapshot[T], sess model.Session)
}

// Fetch reads the full collection from the backend.
type Fetch[T any] func(ctx context.Context) ([]T, error)

// Collection owns the in-memory copy of one server-backed list. Nothing
// outside this type mutates the items.
type Collection[T any] struct {
	mu      sync.Mutex
	name    string
	fetch   Fetch[T]
	view    View[T]
	session func() model.Session

	items   []T
	err     error
	loading bool
}

// NewCollection wires a collection to its fetch, view and session source.
func NewCollection[T any](name string, fetch Fetch[T], view View[T], session func() model.Session) *Collection[T] {
	return &Collection[T]{name: name, fetch: fetch, view: view, session: session}
}

// Refresh re-reads the whole collection and re-renders. The previous content
// is replaced wholesale; on failure it is discarded and an error placeholder
// is rendered instead of surfacing a blocking dialog.
func (c *Collection[T]) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.renderLocked()
	c.mu.Unlock()

	items, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		log.Printf("refresh %s: %v", c.name, err)
		c.items = nil
		c.err = err
	} else {
		c.items = items
		c.err = nil
	}
	c.renderLocked()
}

// Items returns a copy of the current collection.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// Find returns the first item matching pred.
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// renderLocked paints the current state. Callers hold c.mu.
func (c *Collection[T]) renderLocked() {
	snap := Snapshot[T]{
		Items:   append([]T(nil), c.items...),
		Loading: c.loading,
		Err:     c.err,
	}
	c.view.Render(snap, c.session())
}

// serverMessage extracts the server-provided error message for a failed
// write, with a generic fallback.
func serverMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "request failed"
}
