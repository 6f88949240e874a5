package resource

import (
	"context"
	"errors"
	"strings"

	"ideahub/internal/client/guard"
	"ideahub/internal/model"
)

// ErrEmptyContent is returned when an idea submission has no text. No
// network call is issued in that case.
var ErrEmptyContent = errors.New("idea content must not be empty")

// IdeaAPI is the slice of the REST client the idea controller needs.
type IdeaAPI interface {
	ListIdeas(ctx context.Context) ([]model.Idea, error)
	CreateIdea(ctx context.Context, content, author string) error
	DeleteIdea(ctx context.Context, id int64) error
}

// Ideas synchronizes the idea board shown on the dashboard view.
type Ideas struct {
	col     *Collection[model.Idea]
	api     IdeaAPI
	session SessionSource
	prompt  Prompter
	notify  Notifier
}

// NewIdeas builds the idea board controller.
func NewIdeas(client IdeaAPI, session SessionSource, view View[model.Idea], prompt Prompter, notify Notifier) *Ideas {
	i := &Ideas{api: client, session: session, prompt: prompt, notify: notify}
	i.col = NewCollection("ideas", client.ListIdeas, view, session.Current)
	return i
}

// Refresh re-reads the board and re-renders it.
func (i *Ideas) Refresh(ctx context.Context) {
	i.col.Refresh(ctx)
}

// Board returns a copy of the currently cached ideas.
func (i *Ideas) Board() []model.Idea {
	return i.col.Items()
}

// Submit posts a new idea authored by the session holder. Empty content is
// blocked before any request leaves the client.
func (i *Ideas) Submit(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		i.notify.Notify(ErrEmptyContent.Error())
		return ErrEmptyContent
	}

	author := i.session.Current().Name
	if author == "" {
		author = "Anonymous"
	}

	if err := i.api.CreateIdea(ctx, content, author); err != nil {
		i.notify.Notify(serverMessage(err))
		return err
	}
	i.col.Refresh(ctx)
	return nil
}

// Delete removes an idea after confirmation. Only the author or an admin
// may delete; the server enforces the same rule.
func (i *Ideas) Delete(ctx context.Context, id int64) error {
	sess := i.session.Current()
	if idea, ok := i.col.Find(func(it model.Idea) bool { return it.ID == id }); ok {
		if !guard.CanDeleteIdea(sess, idea) {
			i.notify.Notify("access denied")
			return guard.ErrAccessDenied
		}
	}

	if !i.prompt.Confirm("Really delete this idea?") {
		return nil
	}

	if err := i.api.DeleteIdea(ctx, id); err != nil {
		i.notify.Notify(serverMessage(err))
		return err
	}
	i.col.Refresh(ctx)
	return nil
}
