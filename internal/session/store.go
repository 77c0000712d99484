package session

import (
	"context"
	"encoding/json"

	"github.com/agrovia/agroexport-web/pkg/enums"
	"github.com/google/uuid"
)

// Credentials is one role's slot in a browsing session: the upstream bearer
// token plus the profile snapshot returned at login. The profile stays
// opaque; only the marketplace API interprets it.
type Credentials struct {
	Token   string          `json:"token"`
	Profile json.RawMessage `json:"profile,omitempty"`
}

// Store keeps per-role credentials behind a session ID. Implementations must
// treat every read as fresh; guards re-evaluate on each request and never
// cache an outcome.
type Store interface {
	Get(ctx context.Context, sessionID string, role enums.Role) (Credentials, bool, error)
	Set(ctx context.Context, sessionID string, role enums.Role, creds Credentials) error
	Clear(ctx context.Context, sessionID string, role enums.Role) error
	ClearAll(ctx context.Context, sessionID string) error
}

// NewSessionID returns a fresh opaque session identifier.
func NewSessionID() string {
	return uuid.NewString()
}
