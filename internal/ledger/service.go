// Package ledger orchestrates the contract book: it normalizes raw
// submissions, applies the lifecycle coercion rules, delegates persistence
// to the store, and derives the monthly summary for display and export.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/amqp"
	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/core"
	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/storage"
)

// EventPublisher notifies downstream consumers (the report export worker)
// that the book changed. A nil publisher disables events.
type EventPublisher interface {
	PublishRecordChange(ctx context.Context, id int64, action string) error
}

type Service struct {
	store  *storage.Repository
	events EventPublisher
}

func NewService(store *storage.Repository, events EventPublisher) *Service {
	return &Service{store: store, events: events}
}

// Overview is everything the index page needs: the ordered book split into
// its status buckets, the current rates, and the monthly totals.
type Overview struct {
	Current  []core.Record
	Archived []core.Record
	Settings core.Settings
	Summary  core.Summary
}

// CreateRecord normalizes a submission and persists it. A submission with a
// missing required field or unusable amount is dropped without an error:
// the original tool treats a partial form as a non-event. The drop is
// logged so it is at least visible internally.
func (s *Service) CreateRecord(ctx context.Context, in core.RecordInput) error {
	rec, err := in.Normalize()
	if err != nil {
		slog.WarnContext(ctx, "Dropping invalid record submission",
			"reason", err, "company", in.Company)
		return nil
	}

	id, err := s.store.CreateRecord(ctx, rec)
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}

	s.publish(ctx, id, amqp.ActionCreated)
	return nil
}

// UpdateRecord replaces all mutable fields of an existing record. The same
// silent-drop policy as CreateRecord applies to invalid submissions; a
// missing id is a hard storage.ErrNotFound.
func (s *Service) UpdateRecord(ctx context.Context, id int64, in core.RecordInput) error {
	rec, err := in.Normalize()
	if err != nil {
		slog.WarnContext(ctx, "Dropping invalid record update",
			"reason", err, "id", id, "company", in.Company)
		return nil
	}

	if err := s.store.UpdateRecord(ctx, id, rec); err != nil {
		return fmt.Errorf("update record %d: %w", id, err)
	}

	s.publish(ctx, id, amqp.ActionUpdated)
	return nil
}

// DeleteRecord removes a record. Deleting a missing id fails with
// storage.ErrNotFound so caller bugs are not masked.
func (s *Service) DeleteRecord(ctx context.Context, id int64) error {
	if err := s.store.DeleteRecord(ctx, id); err != nil {
		return fmt.Errorf("delete record %d: %w", id, err)
	}

	s.publish(ctx, id, amqp.ActionDeleted)
	return nil
}

// GetRecord returns one record for edit-form prefill.
func (s *Service) GetRecord(ctx context.Context, id int64) (core.Record, error) {
	return s.store.GetRecord(ctx, id)
}

// Overview reads the full book and folds it into the monthly summary.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	records, err := s.store.ListRecords(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("list records: %w", err)
	}
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("get settings: %w", err)
	}

	current, archived := core.Partition(records)
	return Overview{
		Current:  current,
		Archived: archived,
		Settings: settings,
		Summary:  core.ComputeSummary(records, settings),
	}, nil
}

// UpdateSettings applies a partial rates update. An empty or unparseable
// field leaves the stored rate untouched.
func (s *Service) UpdateSettings(ctx context.Context, vatRaw, taxRaw string) error {
	vat := parseRate(ctx, "vat_rate", vatRaw)
	tax := parseRate(ctx, "tax_rate", taxRaw)

	if _, err := s.store.UpsertSettings(ctx, vat, tax); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}

	s.publish(ctx, 0, amqp.ActionUpdated)
	return nil
}

func parseRate(ctx context.Context, field, raw string) *decimal.Decimal {
	raw = core.NormalizeText(raw)
	if raw == "" {
		return nil
	}
	d, err := core.ParseAmount(raw)
	if err != nil {
		slog.WarnContext(ctx, "Ignoring unparseable rate", "field", field, "value", raw)
		return nil
	}
	return &d
}

// publish is best-effort: the book is already persisted, so a broker outage
// only delays the report export until the worker's next periodic tick.
func (s *Service) publish(ctx context.Context, id int64, action string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishRecordChange(ctx, id, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record change",
			"id", id, "action", action, "error", err)
	}
}
