// Package worker refreshes the exported report whenever the ledger changes.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/amqp"
	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/core"
	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/sheets"
	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/storage"
)

// ExportWorker consumes record-change events and rewrites the report
// snapshot from the current store contents. Events carry no payload worth
// trusting: the store is always re-read, so replayed or out-of-order
// messages cannot corrupt the report.
type ExportWorker struct {
	store  *storage.Repository
	writer sheets.SnapshotWriter
}

func NewExportWorker(store *storage.Repository, writer sheets.SnapshotWriter) *ExportWorker {
	return &ExportWorker{store: store, writer: writer}
}

// HandleChangeMessage processes one AMQP change event.
func (w *ExportWorker) HandleChangeMessage(ctx context.Context, msg *amqp.RecordChangeMessage) error {
	slog.InfoContext(ctx, "Processing record change", "id", msg.ID, "action", msg.Action)
	return w.Export(ctx)
}

// Export reads the book, computes the summary, and writes the snapshot.
func (w *ExportWorker) Export(ctx context.Context) error {
	records, err := w.store.ListRecords(ctx)
	if err != nil {
		return fmt.Errorf("list records: %w", err)
	}
	settings, err := w.store.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("get settings: %w", err)
	}

	snap := sheets.Snapshot{
		GeneratedAt: time.Now(),
		Settings:    settings,
		Summary:     core.ComputeSummary(records, settings),
		Records:     records,
	}
	if err := w.writer.WriteSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// RunPeriodic exports on every tick until ctx is done. It backstops lost
// events and keeps the report's timestamp fresh.
func (w *ExportWorker) RunPeriodic(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Export(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic export failed", "error", err)
			}
		}
	}
}
