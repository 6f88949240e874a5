package resource

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ideahub/internal/client/chat"
	"ideahub/internal/client/guard"
	"ideahub/internal/model"
)

// ErrEmptyName is returned when a room is created without a name.
var ErrEmptyName = errors.New("room name must not be empty")

// ErrRoomUnknown is returned when joining a room id that is not in the
// current list.
var ErrRoomUnknown = errors.New("no such room")

// RoomAPI is the slice of the REST client the room controller needs.
type RoomAPI interface {
	ListRooms(ctx context.Context) ([]model.Room, error)
	CreateRoom(ctx context.Context, name string) error
	DeleteRoom(ctx context.Context, id int64) error
}

// Rooms synchronizes the room roster. Anyone may read and join; creating
// and deleting is admin-only.
type Rooms struct {
	col     *Collection[model.Room]
	api     RoomAPI
	session SessionSource
	prompt  Prompter
	notify  Notifier
	chat    chat.Entrant
}

// NewRooms builds the room roster controller.
func NewRooms(client RoomAPI, session SessionSource, view View[model.Room], prompt Prompter, notify Notifier, entrant chat.Entrant) *Rooms {
	r := &Rooms{api: client, session: session, prompt: prompt, notify: notify, chat: entrant}
	r.col = NewCollection("rooms", client.ListRooms, view, session.Current)
	return r
}

// Refresh re-reads the roster and re-renders it.
func (r *Rooms) Refresh(ctx context.Context) {
	r.col.Refresh(ctx)
}

// Roster returns a copy of the currently cached rooms.
func (r *Rooms) Roster() []model.Room {
	return r.col.Items()
}

// Create adds a room. Admin only; an empty name is blocked before any
// network call.
func (r *Rooms) Create(ctx context.Context, name string) error {
	if !guard.CanMutateRoom(r.session.Current()) {
		r.notify.Notify("access denied")
		return guard.ErrAccessDenied
	}
	name = strings.TrimSpace(name)
	if name == "" {
		r.notify.Notify(ErrEmptyName.Error())
		return ErrEmptyName
	}

	if err := r.api.CreateRoom(ctx, name); err != nil {
		r.notify.Notify(fmt.Sprintf("error: %s", serverMessage(err)))
		return err
	}
	r.col.Refresh(ctx)
	return nil
}

// Delete removes a room after confirmation. Admin only.
func (r *Rooms) Delete(ctx context.Context, id int64) error {
	if !guard.CanMutateRoom(r.session.Current()) {
		r.notify.Notify("access denied")
		return guard.ErrAccessDenied
	}

	if !r.prompt.Confirm("Really remove this room?") {
		return nil
	}

	if err := r.api.DeleteRoom(ctx, id); err != nil {
		r.notify.Notify(serverMessage(err))
		return err
	}
	r.col.Refresh(ctx)
	return nil
}

// Join hands the user off to the chat transport for the given room. Joining
// is unconditional; only the room must exist in the current list.
func (r *Rooms) Join(ctx context.Context, id int64) error {
	room, ok := r.col.Find(func(it model.Room) bool { return it.ID == id })
	if !ok {
		r.notify.Notify(ErrRoomUnknown.Error())
		return ErrRoomUnknown
	}

	if err := r.chat.EnterChatRoom(ctx, room.ID, room.Name); err != nil {
		r.notify.Notify(serverMessage(err))
		return err
	}
	return nil
}
