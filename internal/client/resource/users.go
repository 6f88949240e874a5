package resource

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"ideahub/internal/client/api"
	"ideahub/internal/client/guard"
	"ideahub/internal/model"
)

var validate = validator.New()

// UserAPI is the slice of the REST client the roster controller needs.
type UserAPI interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	RegisterUser(ctx context.Context, input api.RegisterInput) error
	UpdateUserRole(ctx context.Context, email, role string) error
	UpdateProfile(ctx context.Context, email, name, password string) error
	DeleteUser(ctx context.Context, email string) error
}

// SessionSource provides the cached identity and its write-through update.
type SessionSource interface {
	Current() model.Session
	UpdateLocal(name, role string)
}

// NewUserInput is the admin form for creating a roster member.
type NewUserInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Role     string `validate:"required,oneof=user admin"`
}

// Users synchronizes the user roster shown in the admin view.
type Users struct {
	col     *Collection[model.User]
	api     UserAPI
	session SessionSource
	prompt  Prompter
	notify  Notifier
	reload  func()
}

// NewUsers builds the roster controller. reload is invoked after any
// self-targeted mutation so session-dependent UI is re-derived.
func NewUsers(client UserAPI, session SessionSource, view View[model.User], prompt Prompter, notify Notifier, reload func()) *Users {
	u := &Users{api: client, session: session, prompt: prompt, notify: notify, reload: reload}
	u.col = NewCollection("users", client.ListUsers, view, session.Current)
	return u
}

// Refresh re-reads the roster and re-renders it.
func (u *Users) Refresh(ctx context.Context) {
	u.col.Refresh(ctx)
}

// Roster returns a copy of the currently cached roster.
func (u *Users) Roster() []model.User {
	return u.col.Items()
}

// Create registers a new user. Input is validated before any network call;
// on server rejection the server's message is surfaced and local state is
// left untouched.
func (u *Users) Create(ctx context.Context, input NewUserInput) error {
	if !guard.CanManageUsers(u.session.Current()) {
		u.notify.Notify("access denied")
		return guard.ErrAccessDenied
	}
	if err := validate.Struct(input); err != nil {
		u.notify.Notify("all fields are required (password min 6 chars, role user/admin)")
		return err
	}

	err := u.api.RegisterUser(ctx, api.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		u.notify.Notify(serverMessage(err))
		return err
	}
	u.notify.Notify(fmt.Sprintf("user %s created", input.Email))
	u.col.Refresh(ctx)
	return nil
}

// ChangeRole updates the target user's role after explicit confirmation.
// Declining restores the displayed value by refreshing, since the role
// control may already show the pending edit. The session holder's own role
// cannot be changed through this path.
func (u *Users) ChangeRole(ctx context.Context, email, role string) error {
	sess := u.session.Current()
	if !guard.CanManageUsers(sess) {
		u.notify.Notify("access denied")
		return guard.ErrAccessDenied
	}
	if guard.IsSelf(sess, email) {
		u.notify.Notify("you cannot change your own role")
		u.col.Refresh(ctx)
		return guard.ErrAccessDenied
	}

	if !u.prompt.Confirm(fmt.Sprintf("Change role of %s to %s?", email, role)) {
		u.col.Refresh(ctx)
		return nil
	}

	if err := u.api.UpdateUserRole(ctx, email, role); err != nil {
		u.notify.Notify(serverMessage(err))
		return err
	}
	u.col.Refresh(ctx)
	return nil
}

// Delete removes the target user after explicit confirmation. Self-deletion
// is refused before any prompt.
func (u *Users) Delete(ctx context.Context, email string) error {
	sess := u.session.Current()
	if !guard.CanManageUsers(sess) {
		u.notify.Notify("access denied")
		return guard.ErrAccessDenied
	}
	if guard.IsSelf(sess, email) {
		u.notify.Notify("you cannot delete your own account")
		return guard.ErrAccessDenied
	}

	if !u.prompt.Confirm(fmt.Sprintf("Really delete user %s?", email)) {
		return nil
	}

	if err := u.api.DeleteUser(ctx, email); err != nil {
		u.notify.Notify(serverMessage(err))
		return err
	}
	u.col.Refresh(ctx)
	return nil
}

// UpdateProfile is the settings path: the session holder rewrites their own
// name and/or password. A confirmed name change is written through to the
// cached session, then session-dependent UI is re-derived.
func (u *Users) UpdateProfile(ctx context.Context, name, password string) error {
	sess := u.session.Current()
	if !sess.Authenticated() {
		u.notify.Notify("not logged in")
		return guard.ErrAccessDenied
	}
	if name == "" && password == "" {
		return nil
	}

	if err := u.api.UpdateProfile(ctx, sess.Email, name, password); err != nil {
		u.notify.Notify(serverMessage(err))
		return err
	}
	if name != "" {
		u.session.UpdateLocal(name, "")
	}
	u.notify.Notify("profile updated")
	if u.reload != nil {
		u.reload()
	}
	return nil
}
