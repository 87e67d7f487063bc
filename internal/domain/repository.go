package domain

import (
	"context"
)

// SnapshotRepository persists the single last-known coordinate so the service
// can seed the manager after a restart. It deliberately holds one row, not a
// history.
type SnapshotRepository interface {
	// Load returns the stored coordinate and whether one exists.
	Load(ctx context.Context) (Coordinate, bool, error)
	Save(ctx context.Context, coordinate Coordinate, source CommitSource) error
}
