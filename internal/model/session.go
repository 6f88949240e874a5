package model

// Session is the locally cached identity and role of the dashboard user.
// An empty Email means no authenticated identity; the storage layer fills
// Role with RoleUser in that case so permission checks always see a value.
type Session struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the session holds the administrator role.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// Authenticated reports whether any identity is present.
func (s Session) Authenticated() bool { return s.Email != "" }
