// Package ports defines the driven-side interfaces of the divination table.
package ports

import (
	"context"

	"github.com/aretw0/cliching/pkg/divination"
)

// SessionStore holds in-flight consultation sessions for the serve surface.
// It is a registry of operational state, not a reading archive: adapters are
// expected to bound entries with a TTL where the backend supports it.
type SessionStore interface {
	// Save persists the session under the given ID.
	Save(ctx context.Context, sessionID string, session *divination.Session) error

	// Load retrieves the session for the given ID.
	// Returns divination.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*divination.Session, error)

	// Delete removes the session for the given ID. Deleting a session that
	// does not exist is not an error.
	Delete(ctx context.Context, sessionID string) error
}
