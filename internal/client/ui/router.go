// Package ui holds the view router and the textual render layer of the
// dashboard.
package ui

import (
	"context"
	"fmt"
	"sync"

	"ideahub/internal/client/guard"
	"ideahub/internal/model"
)

// Notifier surfaces a non-blocking notice to the user.
type Notifier interface {
	Notify(message string)
}

// RefreshFunc reloads the collection backing a view.
type RefreshFunc func(ctx context.Context)

// NavItem is one navigation entry with its selection state.
type NavItem struct {
	ID       string
	Selected bool
}

// Router keeps exactly one view active at a time. Transitions into the admin
// view are gated by the access guard; every transition fires the view's
// refresh hook without blocking, so content populates asynchronously behind
// a loading placeholder.
type Router struct {
	mu      sync.Mutex
	session func() model.Session
	notify  Notifier
	order   []string
	hooks   map[string]RefreshFunc
	active  string
}

// NewRouter builds a router over the given session source.
func NewRouter(session func() model.Session, notify Notifier) *Router {
	return &Router{session: session, notify: notify, hooks: map[string]RefreshFunc{}}
}

// Register adds a view with an optional refresh hook. The first registered
// view becomes the default active view.
func (r *Router) Register(viewID string, refresh RefreshFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hooks[viewID]; !ok {
		r.order = append(r.order, viewID)
	}
	r.hooks[viewID] = refresh
	if r.active == "" {
		r.active = viewID
	}
}

// Goto switches to viewID. A denied transition surfaces a rejection notice
// and leaves the active view unchanged. Re-entering the active view is a
// no-op transition that still re-triggers its refresh, which is how lists
// are force-reloaded on demand.
func (r *Router) Goto(ctx context.Context, viewID string) error {
	r.mu.Lock()
	hook, ok := r.hooks[viewID]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("unknown view %q", viewID)
	}
	if !guard.CanEnterView(r.session(), viewID) {
		r.mu.Unlock()
		r.notify.Notify("access denied")
		return guard.ErrAccessDenied
	}
	r.active = viewID
	r.mu.Unlock()

	if hook != nil {
		go hook(ctx)
	}
	return nil
}

// Reload re-derives session-dependent UI after a self-targeted mutation.
// When the active view is no longer permitted (role self-downgrade) the
// router falls back to the default view.
func (r *Router) Reload(ctx context.Context) {
	r.mu.Lock()
	if len(r.order) == 0 {
		r.mu.Unlock()
		return
	}
	demoted := !guard.CanEnterView(r.session(), r.active)
	if demoted {
		r.active = r.order[0]
	}
	hook := r.hooks[r.active]
	r.mu.Unlock()

	if demoted {
		r.notify.Notify("your role changed; returning to " + r.Active())
	}
	if hook != nil {
		go hook(ctx)
	}
}

// Active returns the id of the currently visible view.
func (r *Router) Active() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Nav returns the navigation entries for the current session. The admin
// entry is hidden from non-admins; Goto still guards direct attempts.
func (r *Router) Nav() []NavItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess := r.session()
	items := make([]NavItem, 0, len(r.order))
	for _, id := range r.order {
		if id == guard.ViewAdmin && !guard.CanEnterView(sess, id) {
			continue
		}
		items = append(items, NavItem{ID: id, Selected: id == r.active})
	}
	return items
}
