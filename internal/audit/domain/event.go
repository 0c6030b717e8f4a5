// Package domain defines audit events published by the gateway.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NamespaceDatabase groups every data access and error event.
const NamespaceDatabase = "database"

// Event names published in NamespaceDatabase.
const (
	EventCreate = "create"
	EventRead   = "read"
	EventUpdate = "update"
	EventDelete = "delete"
	EventError  = "error"
)

// Event is a single audit notification. Payload is the JSON encoding of the
// value handed to the notifier.
type Event struct {
	ID         uuid.UUID       `json:"id"`
	Namespace  string          `json:"namespace"`
	Name       string          `json:"event"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Type returns the namespaced event type, e.g. "database.create".
func (e *Event) Type() string {
	return e.Namespace + "." + e.Name
}
