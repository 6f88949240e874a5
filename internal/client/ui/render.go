package ui

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"ideahub/internal/client/guard"
	"ideahub/internal/client/resource"
	"ideahub/internal/model"
)

// The renderers below are pure functions of (snapshot, session): they paint
// whatever they are handed and decide per row which controls to show by
// asking the guard, freshly on every call.

// UserTable renders the admin roster.
type UserTable struct {
	w io.Writer
}

// NewUserTable builds a roster renderer writing to w.
func NewUserTable(w io.Writer) *UserTable {
	return &UserTable{w: w}
}

func (t *UserTable) Render(snap resource.Snapshot[model.User], sess model.Session) {
	fmt.Fprintln(t.w, "== Users ==")
	switch {
	case snap.Loading:
		fmt.Fprintln(t.w, "Loading users...")
	case snap.Err != nil:
		fmt.Fprintln(t.w, "Failed to load users.")
	case len(snap.Items) == 0:
		fmt.Fprintln(t.w, "No users.")
	default:
		fmt.Fprintf(t.w, "%d users total\n", len(snap.Items))
		tw := tabwriter.NewWriter(t.w, 2, 4, 2, ' ', 0)
		for _, u := range snap.Items {
			controls := "[role: user|admin]  [delete]"
			if guard.IsSelf(sess, u.Email) {
				controls = "(you)"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.Name, u.Email, u.Role, controls)
		}
		tw.Flush()
	}
}

// IdeaList renders the dashboard idea board.
type IdeaList struct {
	w io.Writer
}

// NewIdeaList builds an idea board renderer writing to w.
func NewIdeaList(w io.Writer) *IdeaList {
	return &IdeaList{w: w}
}

func (l *IdeaList) Render(snap resource.Snapshot[model.Idea], sess model.Session) {
	fmt.Fprintln(l.w, "== Ideas ==")
	switch {
	case snap.Loading:
		fmt.Fprintln(l.w, "Loading ideas...")
	case snap.Err != nil:
		fmt.Fprintln(l.w, "Failed to load ideas.")
	case len(snap.Items) == 0:
		fmt.Fprintln(l.w, "No ideas yet. Be the first!")
	default:
		for _, idea := range snap.Items {
			date := time.UnixMilli(idea.Timestamp).Format("2006-01-02")
			del := ""
			if guard.CanDeleteIdea(sess, idea) {
				del = "  [delete]"
			}
			fmt.Fprintf(l.w, "#%d  %s (%s)%s\n      %s\n", idea.ID, idea.Author, date, del, idea.Content)
		}
	}
}

// RoomList renders the room roster.
type RoomList struct {
	w io.Writer
}

// NewRoomList builds a room roster renderer writing to w.
func NewRoomList(w io.Writer) *RoomList {
	return &RoomList{w: w}
}

func (l *RoomList) Render(snap resource.Snapshot[model.Room], sess model.Session) {
	fmt.Fprintln(l.w, "== Rooms ==")
	switch {
	case snap.Loading:
		fmt.Fprintln(l.w, "Loading rooms...")
	case snap.Err != nil:
		fmt.Fprintln(l.w, "Failed to load rooms.")
	case len(snap.Items) == 0:
		fmt.Fprintln(l.w, "No rooms available.")
	default:
		for _, room := range snap.Items {
			del := ""
			if guard.CanMutateRoom(sess) {
				del = "  [delete]"
			}
			fmt.Fprintf(l.w, "#%d  %s (created %s)  [join]%s\n",
				room.ID, room.Name, room.CreatedAt.Format("2006-01-02"), del)
		}
	}
}

// RenderNav prints the navigation bar with the selected view marked.
func RenderNav(w io.Writer, r *Router) {
	for i, item := range r.Nav() {
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		if item.Selected {
			fmt.Fprintf(w, "[%s]", item.ID)
		} else {
			fmt.Fprint(w, item.ID)
		}
	}
	fmt.Fprintln(w)
}
