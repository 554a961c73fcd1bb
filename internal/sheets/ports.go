package sheets

import (
	"context"
	"time"

	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/core"
)

// Snapshot is one full report of the contract book at a point in time.
type Snapshot struct {
	GeneratedAt time.Time
	Settings    core.Settings
	Summary     core.Summary
	Records     []core.Record
}

// SnapshotWriter is the outbound port for report export.
type SnapshotWriter interface {
	WriteSnapshot(ctx context.Context, snap Snapshot) error
}
