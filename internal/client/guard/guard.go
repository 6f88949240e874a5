// Package guard is the permission-decision layer of the dashboard. Every
// function is a pure predicate over an explicitly passed session; nothing
// here reads ambient state or performs I/O.
package guard

import (
	"errors"
	"strings"

	"ideahub/internal/model"
)

// View identifiers for the dashboard's mutually exclusive screens.
const (
	ViewDashboard = "dashboard"
	ViewRooms     = "rooms"
	ViewAdmin     = "admin"
	ViewSettings  = "settings"
)

// ErrAccessDenied is returned when a navigation or action is forbidden by
// role. It is surfaced as a notice, never logged as a system fault.
var ErrAccessDenied = errors.New("access denied")

// CanEnterView reports whether the session may open the given view. Only the
// admin view is restricted.
func CanEnterView(s model.Session, viewID string) bool {
	return viewID != ViewAdmin || s.IsAdmin()
}

// CanManageUsers reports whether the session may mutate the user roster.
func CanManageUsers(s model.Session) bool {
	return s.IsAdmin()
}

// CanMutateRoom reports whether the session may create or delete rooms.
// Reading and joining rooms is unconditional.
func CanMutateRoom(s model.Session) bool {
	return s.IsAdmin()
}

// CanDeleteIdea reports whether the session may delete the idea: its author
// (matched by display name) or any admin. An empty display name never
// matches, so an unauthenticated session cannot claim authorship.
func CanDeleteIdea(s model.Session, idea model.Idea) bool {
	if s.IsAdmin() {
		return true
	}
	return s.Name != "" && idea.Author == s.Name
}

// IsSelf reports whether the given email names the session holder's own
// account. Comparison is case-insensitive; an empty session email is never
// "self" so self-protection logic stays inert without an identity.
func IsSelf(s model.Session, email string) bool {
	return s.Authenticated() && strings.EqualFold(s.Email, email)
}
