package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a client contract. The wire spellings are
// load-bearing: seed data and form submissions carry them verbatim.
const (
	StatusActive     Status = "ACTIVE"
	StatusSuspended  Status = "SUSPENDED"
	StatusTerminated Status = "TERMINATED"
)

// FrequencyMonthly is the only billing frequency currently supported. The
// field exists so a second frequency can be added without a schema change.
const FrequencyMonthly Frequency = "MONTHLY"

type (
	Status    string
	Frequency string

	// Date is a calendar date at UTC midnight. The zero value means the
	// date is absent, which is a legitimate state for contract ranges.
	Date struct {
		time.Time
	}

	// Record is one recurring contract line. AmountHT is kept as an exact
	// decimal so repeated aggregation never accumulates float drift.
	Record struct {
		ID        int64
		Leader    string
		Company   string
		Email     string
		Service   string
		AmountHT  decimal.Decimal
		Frequency Frequency
		Status    Status
		StartDate Date
		EndDate   Date
	}

	// Settings is the singleton rate configuration (conceptually one row).
	Settings struct {
		VATRate decimal.Decimal
		TaxRate decimal.Decimal
	}
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrMissingLeader  = errors.New("missing leader")
	ErrMissingCompany = errors.New("missing company")
	ErrMissingEmail   = errors.New("missing email")
	ErrMissingService = errors.New("missing service")
)

// DefaultSettings are applied when the settings row does not exist yet.
func DefaultSettings() Settings {
	return Settings{
		VATRate: decimal.NewFromInt(20),
		TaxRate: decimal.NewFromInt(26),
	}
}

// NewDate builds a UTC-midnight date. Out-of-range components normalize the
// same way time.Date does (e.g. day 32 rolls into the next month).
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// IsEmpty reports whether the date is absent.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// CoerceStatus maps free-text input onto the status enumeration. Only the
// exact spellings SUSPENDED and TERMINATED are accepted; everything else,
// including empty input and the literal ACTIVE, becomes ACTIVE. This
// allow-list is deliberate: seed data depends on unknown values landing in
// the active bucket.
func CoerceStatus(s string) Status {
	switch s {
	case string(StatusSuspended):
		return StatusSuspended
	case string(StatusTerminated):
		return StatusTerminated
	default:
		return StatusActive
	}
}

// CoerceFrequency maps any input onto the single supported frequency.
func CoerceFrequency(string) Frequency {
	return FrequencyMonthly
}

// NormalizeText trims surrounding whitespace. An empty result counts as a
// missing value for required-field checks.
func NormalizeText(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeEmail trims and lower-cases. No deliverability validation here;
// shape checks belong to the form layer.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Validate checks the required-field policy on an already-normalized record.
func (r Record) Validate() error {
	if r.Leader == "" {
		return ErrMissingLeader
	}
	if r.Company == "" {
		return ErrMissingCompany
	}
	if r.Email == "" {
		return ErrMissingEmail
	}
	if r.Service == "" {
		return ErrMissingService
	}
	if r.AmountHT.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// RecordInput is a raw form or seed submission, all fields as entered.
type RecordInput struct {
	Leader    string
	Company   string
	Email     string
	Service   string
	AmountHT  string
	Frequency string
	Status    string
	StartDate string // ISO YYYY-MM-DD
	EndDate   string // ISO YYYY-MM-DD
}

// Normalize converts a raw submission into a canonical Record. Malformed
// dates degrade to absent; a missing required field or unusable amount is
// returned as an error so the caller can decide to drop the submission.
func (in RecordInput) Normalize() (Record, error) {
	amountRaw := NormalizeText(in.AmountHT)
	if amountRaw == "" {
		return Record{}, ErrInvalidAmount
	}
	amount, err := ParseAmount(amountRaw)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Leader:    NormalizeText(in.Leader),
		Company:   NormalizeText(in.Company),
		Email:     NormalizeEmail(in.Email),
		Service:   NormalizeText(in.Service),
		AmountHT:  amount,
		Frequency: CoerceFrequency(in.Frequency),
		Status:    CoerceStatus(NormalizeText(in.Status)),
		StartDate: ParseISODate(in.StartDate),
		EndDate:   ParseISODate(in.EndDate),
	}
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}
