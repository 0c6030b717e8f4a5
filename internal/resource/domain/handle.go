// Package domain defines the model-agnostic resource contract used by the
// generic CRUD dispatcher, and the registry resolving path segments to handles.
package domain

import (
	"context"
	"encoding/json"
)

// Handle is the CRUD delegate registered once per resource kind.
// Bodies and results are raw JSON so the dispatcher stays model-agnostic.
type Handle interface {
	// Get returns the full collection as a JSON array when id is empty, or a
	// single record. Returns an error wrapping ErrNotFound for a missing id.
	Get(ctx context.Context, id string) (json.RawMessage, error)

	// Post creates a record and returns it with its generated fields.
	Post(ctx context.Context, body json.RawMessage) (json.RawMessage, error)

	// Put replaces the record identified by id, creating it when missing.
	Put(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error)

	// Patch merges body into an existing record. It never creates one.
	Patch(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error)

	// Delete removes the record identified by id.
	Delete(ctx context.Context, id string) error
}

// Sampler is implemented by handles able to create a random record.
type Sampler interface {
	Random(ctx context.Context) (json.RawMessage, error)
}
