// Package store keeps computed layouts as snapshots that can be fetched
// again by id.
//
// Two backends exist: [Memory] for tests and single-process servers, and
// the mongo subpackage for deployments that need persistence. Snapshots hold
// engine output only; manual edits made in a viewer are never stored.
//
//	st := store.NewMemory()
//	snap, err := st.Save(ctx, layout)
//	again, err := st.Get(ctx, snap.ID)
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/matzehuels/appgraph/pkg/errors"
	"github.com/matzehuels/appgraph/pkg/flow"
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Snapshot is a stored layout.
type Snapshot struct {
	ID        string      `json:"id" bson:"_id"`
	CreatedAt time.Time   `json:"createdAt" bson:"created_at"`
	Layout    flow.Layout `json:"layout" bson:"layout"`
}

// Store saves and retrieves snapshots.
type Store interface {
	// Save assigns an id and creation time and stores the layout.
	Save(ctx context.Context, l flow.Layout) (Snapshot, error)

	// Get returns the snapshot with the given id, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (Snapshot, error)

	// List returns up to limit snapshots, newest first.
	List(ctx context.Context, limit int) ([]Snapshot, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NewSnapshot stamps l with a fresh uuid and the given time.
func NewSnapshot(l flow.Layout, now time.Time) Snapshot {
	return Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: now.UTC(),
		Layout:    l,
	}
}

// NotFound returns the error reported for an unknown snapshot id.
func NotFound(id string) error {
	return apperrors.New(apperrors.ErrCodeNotFound, "layout %s not found", id)
}

// ValidateID rejects ids that are not uuids before they reach a backend.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid layout id %q", id)
	}
	return nil
}
