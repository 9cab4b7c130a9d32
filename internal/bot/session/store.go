package session

import (
	"context"
	"errors"

	"github.com/speedyfix/auto-garage/internal/bot/dialog"
)

var ErrNotFound = errors.New("session not found")

// Store persists conversation state between webhook turns.
type Store interface {
	Get(ctx context.Context, id string) (*dialog.Session, error)
	Save(ctx context.Context, session *dialog.Session) error
	Delete(ctx context.Context, id string) error
}
