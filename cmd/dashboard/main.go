// The dashboard is the terminal client for IdeaHub. It keeps a locally
// persisted session, routes between the dashboard/rooms/admin/settings
// views, and keeps each view's server-backed list in sync by refetching
// after every write.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"

	"ideahub/internal/auth"
	"ideahub/internal/client/api"
	"ideahub/internal/client/chat"
	"ideahub/internal/client/guard"
	"ideahub/internal/client/resource"
	"ideahub/internal/client/session"
	"ideahub/internal/client/ui"
	"ideahub/internal/config"
	"ideahub/internal/model"
)

// terminal implements the Prompter and Notifier interfaces over stdio.
type terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func (t *terminal) Confirm(message string) bool {
	fmt.Fprintf(t.out, "%s [y/N] ", message)
	line, err := t.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (t *terminal) Notify(message string) {
	fmt.Fprintf(t.out, "! %s\n", message)
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	term := &terminal{in: bufio.NewReader(os.Stdin), out: os.Stdout}
	store := session.NewStore(cfg.SessionFile)
	client := api.New(cfg.APIBase, store.Token)

	router := ui.NewRouter(store.Current, term)
	reload := func() { router.Reload(context.Background()) }

	// Access tokens expire mid-session; a rejected request is retried once
	// after exchanging the stored refresh token for a new access token. The
	// renewed token's claims carry the current role (the server re-reads the
	// roster when issuing it), so a changed role re-derives the UI.
	client.OnUnauthorized(func(ctx context.Context) bool {
		refresh := store.RefreshToken()
		if refresh == "" {
			return false
		}
		access, err := client.RefreshAccessToken(ctx, refresh)
		if err != nil {
			term.Notify("session expired, please log in again")
			return false
		}
		store.SetAccessToken(access)

		var claims auth.Claims
		if _, _, err := jwt.NewParser().ParseUnverified(access, &claims); err == nil {
			changed := store.Current().Role != claims.Role
			store.UpdateLocal(claims.Name, claims.Role)
			if changed {
				router.Reload(ctx)
			}
		}
		return true
	})

	entrant := chat.EntrantFunc(func(ctx context.Context, id int64, name string) error {
		fmt.Printf("Entering chat room #%d %q (chat transport takes over from here)\n", id, name)
		return nil
	})

	ideas := resource.NewIdeas(client, store, ui.NewIdeaList(os.Stdout), term, term)
	rooms := resource.NewRooms(client, store, ui.NewRoomList(os.Stdout), term, term, entrant)
	users := resource.NewUsers(client, store, ui.NewUserTable(os.Stdout), term, term, reload)

	router.Register(guard.ViewDashboard, ideas.Refresh)
	router.Register(guard.ViewRooms, rooms.Refresh)
	router.Register(guard.ViewAdmin, users.Refresh)
	router.Register(guard.ViewSettings, nil)

	ctx := context.Background()

	if sess := store.Current(); sess.Authenticated() {
		fmt.Printf("Welcome back, %s (%s)\n", sess.Name, sess.Role)
		_ = router.Goto(ctx, guard.ViewDashboard)
	} else {
		fmt.Println("Not logged in. Use: login <email> <password>")
	}

	for {
		fmt.Print("ideahub> ")
		line, err := term.in.ReadString('\n')
		if err != nil {
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		cmd, rest := args[0], args[1:]

		switch cmd {
		case "help":
			printHelp()

		case "login":
			if len(rest) != 2 {
				term.Notify("usage: login <email> <password>")
				continue
			}
			res, err := client.Login(ctx, rest[0], rest[1])
			if err != nil {
				term.Notify(err.Error())
				continue
			}
			store.SetIdentity(model.Session{
				Name:  res.User.Name,
				Email: res.User.Email,
				Role:  res.User.Role,
			}, res.AccessToken, res.RefreshToken)
			fmt.Printf("Logged in as %s (%s)\n", res.User.Name, res.User.Role)
			_ = router.Goto(ctx, guard.ViewDashboard)

		case "logout":
			if tok := store.RefreshToken(); tok != "" {
				_ = client.Logout(ctx, tok)
			}
			store.Clear()
			fmt.Println("Logged out.")

		case "whoami":
			sess := store.Current()
			if !sess.Authenticated() {
				fmt.Println("not logged in")
			} else {
				fmt.Printf("%s <%s> role=%s\n", sess.Name, sess.Email, sess.Role)
			}

		case "nav":
			ui.RenderNav(os.Stdout, router)

		case "go":
			if len(rest) != 1 {
				term.Notify("usage: go <dashboard|rooms|admin|settings>")
				continue
			}
			if err := router.Goto(ctx, rest[0]); err != nil && err != guard.ErrAccessDenied {
				term.Notify(err.Error())
			}

		case "refresh":
			// Re-entering the active view re-triggers its refresh.
			_ = router.Goto(ctx, router.Active())

		case "idea":
			_ = ideas.Submit(ctx, strings.Join(rest, " "))

		case "idea-del":
			if id, ok := parseID(term, rest); ok {
				_ = ideas.Delete(ctx, id)
			}

		case "room-add":
			_ = rooms.Create(ctx, strings.Join(rest, " "))

		case "room-del":
			if id, ok := parseID(term, rest); ok {
				_ = rooms.Delete(ctx, id)
			}

		case "join":
			if id, ok := parseID(term, rest); ok {
				_ = rooms.Join(ctx, id)
			}

		case "user-add":
			if len(rest) != 4 {
				term.Notify("usage: user-add <name> <email> <password> <user|admin>")
				continue
			}
			_ = users.Create(ctx, resource.NewUserInput{
				Name:     rest[0],
				Email:    strings.ToLower(rest[1]),
				Password: rest[2],
				Role:     rest[3],
			})

		case "role":
			if len(rest) != 2 {
				term.Notify("usage: role <email> <user|admin>")
				continue
			}
			_ = users.ChangeRole(ctx, rest[0], rest[1])

		case "user-del":
			if len(rest) != 1 {
				term.Notify("usage: user-del <email>")
				continue
			}
			_ = users.Delete(ctx, rest[0])

		case "name":
			_ = users.UpdateProfile(ctx, strings.Join(rest, " "), "")

		case "passwd":
			if len(rest) != 1 {
				term.Notify("usage: passwd <new password>")
				continue
			}
			_ = users.UpdateProfile(ctx, "", rest[0])

		case "quit", "exit":
			return

		default:
			term.Notify("unknown command, try: help")
		}
	}
}

func parseID(term *terminal, rest []string) (int64, bool) {
	if len(rest) != 1 {
		term.Notify("expected a single numeric id")
		return 0, false
	}
	id, err := strconv.ParseInt(rest[0], 10, 64)
	if err != nil {
		term.Notify("invalid id: " + rest[0])
		return 0, false
	}
	return id, true
}

func printHelp() {
	fmt.Print(`Session:
  login <email> <password>   logout   whoami
Navigation:
  nav   go <dashboard|rooms|admin|settings>   refresh
Ideas (dashboard view):
  idea <text>   idea-del <id>
Rooms:
  join <id>   room-add <name>   room-del <id>
Admin:
  user-add <name> <email> <password> <role>   role <email> <role>   user-del <email>
Settings:
  name <new name>   passwd <new password>
`)
}
