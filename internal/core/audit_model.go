package core

import (
	"context"
	"encoding/json"
	"time"
)

// AuditLog is an immutable append-only record of a mutating action. The
// application never updates or deletes rows in this table.
type AuditLog struct {
	ID        int             `json:"id"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  *int            `json:"entity_id"`
	Username  string          `json:"user"`
	Details   json.RawMessage `json:"details"`
	CreatedAt time.Time       `json:"created_at"`
}

// AnonymousActor is recorded when no authenticated identity is attached to
// the request. Most mutation routes are not gated, so this is the common case.
const AnonymousActor = "anonymous"

// AuditService appends audit rows. Record is best effort: a storage failure
// is logged by the caller's queue worker and never propagated to the request
// that triggered it.
type AuditService interface {
	Record(ctx context.Context, action, entity string, entityID int, actor string, details map[string]any) error

	// Latest returns the most recent limit rows, newest first.
	Latest(ctx context.Context, limit int) ([]AuditLog, error)
}
