package ports

import (
	"context"

	"github.com/aretw0/stepwise/pkg/domain"
)

// SessionStore persists playback sessions.
// Traces are never stored: a session is replayed by re-running its scenario.
type SessionStore interface {
	// Save persists the session under sessionID, replacing any previous value.
	Save(ctx context.Context, sessionID string, session *domain.Session) error

	// Load retrieves the session for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of every stored session.
	List(ctx context.Context) ([]string, error)
}
