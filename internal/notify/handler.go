// Package notify turns board events into mail for post authors.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tazhibayda/piazza-service/internal/queue"
	"go.uber.org/zap"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Handler returns the queue handler for the notifier. Undecodable bodies
// are dropped, not requeued; a mail failure requeues the delivery.
func Handler(m Mailer, l *zap.Logger) queue.Handler {
	if l == nil {
		l = zap.NewNop()
	}
	return func(ctx context.Context, key string, body []byte) error {
		to, subject, text, ok := render(key, body, l)
		if !ok {
			return nil
		}
		if err := m.Send(ctx, to, subject, text); err != nil {
			return fmt.Errorf("send %s mail: %w", key, err)
		}
		return nil
	}
}

func render(key string, body []byte, l *zap.Logger) (to, subject, text string, ok bool) {
	switch key {
	case queue.KeyPostCommented:
		var ev queue.PostCommented
		if err := json.Unmarshal(body, &ev); err != nil {
			l.Warn("drop undecodable event", zap.String("key", key), zap.Error(err))
			return "", "", "", false
		}
		if ev.AuthorEmail == "" {
			return "", "", "", false
		}
		return ev.AuthorEmail,
			fmt.Sprintf("New comment on %q", ev.Title),
			fmt.Sprintf("%s commented on your post %q.", ev.By, ev.Title),
			true

	case queue.KeyPostReacted:
		var ev queue.PostReacted
		if err := json.Unmarshal(body, &ev); err != nil {
			l.Warn("drop undecodable event", zap.String("key", key), zap.Error(err))
			return "", "", "", false
		}
		// withdrawn reactions are not worth a mail
		if ev.AuthorEmail == "" || !ev.Active {
			return "", "", "", false
		}
		return ev.AuthorEmail,
			fmt.Sprintf("Someone reacted to %q", ev.Title),
			fmt.Sprintf("%s left a %s on your post %q.", ev.By, ev.Reaction, ev.Title),
			true
	}
	l.Debug("ignore event", zap.String("key", key))
	return "", "", "", false
}
