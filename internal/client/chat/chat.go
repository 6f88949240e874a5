// Package chat declares the hand-off point to the real-time chat transport.
// The transport itself lives outside this repository; the dashboard only
// invokes it when a user joins a room.
package chat

import "context"

// Entrant takes the user into a chat room identified by id and name.
type Entrant interface {
	EnterChatRoom(ctx context.Context, roomID int64, roomName string) error
}

// EntrantFunc adapts a function to the Entrant interface.
type EntrantFunc func(ctx context.Context, roomID int64, roomName string) error

func (f EntrantFunc) EnterChatRoom(ctx context.Context, roomID int64, roomName string) error {
	return f(ctx, roomID, roomName)
}
