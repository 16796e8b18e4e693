package activity

import (
	"encoding/json"
	"time"
)

// Entry is one append-only audit record in a user's activity log.
// Type is a free-form tag ("downloaded_report", ...); Details is an opaque
// payload kept as raw JSON.
type Entry struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Details   json.RawMessage `json:"details"`
	Timestamp time.Time       `json:"timestamp"`
}
