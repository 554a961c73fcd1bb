// Package storage persists the contract ledger in SQLite. It is the single
// durable collection of client records plus the settings singleton.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/core"
)

// ErrNotFound is returned when an update or delete references an id that
// does not exist. Callers must not mask it: a missing id is a caller bug,
// not a normal outcome.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateRecord inserts a record and returns the store-assigned id. There is
// no uniqueness constraint on business fields; the book legitimately holds
// duplicate company/email lines for separate services.
func (r *Repository) CreateRecord(ctx context.Context, rec core.Record) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO client_records
			(leader, company, email, service, amount_ht, frequency, status, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Leader, rec.Company, rec.Email, rec.Service,
		rec.AmountHT.String(), string(rec.Frequency), string(rec.Status),
		nullDate(rec.StartDate), nullDate(rec.EndDate),
	)
	if err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Record created",
		"id", id,
		"company", rec.Company,
		"status", rec.Status,
		"amount_ht", rec.AmountHT.String())

	return id, nil
}

// GetRecord returns one record by id, or ErrNotFound.
func (r *Repository) GetRecord(ctx context.Context, id int64) (core.Record, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, ErrNotFound
	}
	if err != nil {
		return core.Record{}, fmt.Errorf("get record %d: %w", id, err)
	}
	return rec, nil
}

// UpdateRecord replaces every mutable field of the record matching id.
func (r *Repository) UpdateRecord(ctx context.Context, id int64, rec core.Record) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE client_records
		SET leader = ?, company = ?, email = ?, service = ?, amount_ht = ?,
		    frequency = ?, status = ?, start_date = ?, end_date = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		rec.Leader, rec.Company, rec.Email, rec.Service,
		rec.AmountHT.String(), string(rec.Frequency), string(rec.Status),
		nullDate(rec.StartDate), nullDate(rec.EndDate), id,
	)
	if err != nil {
		return fmt.Errorf("update record %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Record updated", "id", id, "company", rec.Company, "status", rec.Status)
	return nil
}

// DeleteRecord removes the record matching id, failing with ErrNotFound
// when it is absent.
func (r *Repository) DeleteRecord(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM client_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete record %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Record deleted", "id", id)
	return nil
}

// ListRecords returns every record ordered by (status, company, id). The id
// tie-breaker keeps the order stable for identical inputs.
func (r *Repository) ListRecords(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY status ASC, company ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// ReplaceRecords swaps the whole record set in one transaction. Used by the
// seed importer; a failed import never leaves a half-replaced book.
func (r *Repository) ReplaceRecords(ctx context.Context, records []core.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM client_records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	for _, rec := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO client_records
				(leader, company, email, service, amount_ht, frequency, status, start_date, end_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.Leader, rec.Company, rec.Email, rec.Service,
			rec.AmountHT.String(), string(rec.Frequency), string(rec.Status),
			nullDate(rec.StartDate), nullDate(rec.EndDate),
		)
		if err != nil {
			return fmt.Errorf("insert seed record for %s: %w", rec.Company, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}

	slog.InfoContext(ctx, "Record set replaced", "count", len(records))
	return nil
}

// GetSettings returns the singleton settings row, creating it with the
// default rates on first read.
func (r *Repository) GetSettings(ctx context.Context) (core.Settings, error) {
	settings, err := r.readSettings(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return core.Settings{}, fmt.Errorf("get settings: %w", err)
	}

	defaults := core.DefaultSettings()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO settings (id, vat_rate, tax_rate) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		defaults.VATRate.String(), defaults.TaxRate.String(),
	)
	if err != nil {
		return core.Settings{}, fmt.Errorf("initialize settings: %w", err)
	}

	slog.InfoContext(ctx, "Settings initialized with defaults",
		"vat_rate", defaults.VATRate.String(),
		"tax_rate", defaults.TaxRate.String())

	return r.readSettings(ctx)
}

// UpsertSettings updates only the rates present in the partial input,
// creating the row with defaults for absent fields when needed.
func (r *Repository) UpsertSettings(ctx context.Context, vatRate, taxRate *decimal.Decimal) (core.Settings, error) {
	current, err := r.GetSettings(ctx)
	if err != nil {
		return core.Settings{}, err
	}
	if vatRate != nil {
		current.VATRate = *vatRate
	}
	if taxRate != nil {
		current.TaxRate = *taxRate
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE settings SET vat_rate = ?, tax_rate = ? WHERE id = 1`,
		current.VATRate.String(), current.TaxRate.String(),
	)
	if err != nil {
		return core.Settings{}, fmt.Errorf("update settings: %w", err)
	}

	slog.InfoContext(ctx, "Settings updated",
		"vat_rate", current.VATRate.String(),
		"tax_rate", current.TaxRate.String())

	return current, nil
}

func (r *Repository) readSettings(ctx context.Context) (core.Settings, error) {
	var vatRaw, taxRaw string
	err := r.db.QueryRowContext(ctx,
		`SELECT vat_rate, tax_rate FROM settings WHERE id = 1`,
	).Scan(&vatRaw, &taxRaw)
	if err != nil {
		return core.Settings{}, err
	}
	vat, err := decimal.NewFromString(vatRaw)
	if err != nil {
		return core.Settings{}, fmt.Errorf("parse vat rate %q: %w", vatRaw, err)
	}
	tax, err := decimal.NewFromString(taxRaw)
	if err != nil {
		return core.Settings{}, fmt.Errorf("parse tax rate %q: %w", taxRaw, err)
	}
	return core.Settings{VATRate: vat, TaxRate: tax}, nil
}

const selectColumns = `
	SELECT id, leader, company, email, service, amount_ht, frequency, status, start_date, end_date
	FROM client_records`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (core.Record, error) {
	var (
		rec        core.Record
		amountRaw  string
		freqRaw    string
		statusRaw  string
		startRaw   sql.NullString
		endRaw     sql.NullString
	)
	err := row.Scan(&rec.ID, &rec.Leader, &rec.Company, &rec.Email, &rec.Service,
		&amountRaw, &freqRaw, &statusRaw, &startRaw, &endRaw)
	if err != nil {
		return core.Record{}, err
	}

	rec.AmountHT, err = decimal.NewFromString(amountRaw)
	if err != nil {
		return core.Record{}, fmt.Errorf("parse stored amount %q: %w", amountRaw, err)
	}
	rec.Frequency = core.Frequency(freqRaw)
	rec.Status = core.Status(statusRaw)
	if startRaw.Valid {
		rec.StartDate = core.ParseISODate(startRaw.String)
	}
	if endRaw.Valid {
		rec.EndDate = core.ParseISODate(endRaw.String)
	}
	return rec, nil
}

func nullDate(d core.Date) any {
	if d.IsEmpty() {
		return nil
	}
	return d.ISO()
}
