package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func record(amount string, status Status) Record {
	d, _ := decimal.NewFromString(amount)
	return Record{
		Leader:   "lead",
		Company:  "co",
		Email:    "a@b.fr",
		Service:  "SEO",
		AmountHT: d,
		Status:   status,
	}
}

func TestComputeSummary(t *testing.T) {
	records := []Record{
		record("100", StatusActive),
		record("50.50", StatusSuspended),
		record("500", StatusTerminated),
	}
	s := ComputeSummary(records, DefaultSettings())

	if s.TotalHT.String() != "150.5" {
		t.Fatalf("TotalHT = %s", s.TotalHT)
	}
	if s.TotalTTC.String() != "180.6" {
		t.Fatalf("TotalTTC = %s", s.TotalTTC)
	}
	if s.TotalAfterTax.String() != "111.37" {
		t.Fatalf("TotalAfterTax = %s", s.TotalAfterTax)
	}
}

func TestComputeSummaryIdentities(t *testing.T) {
	records := []Record{
		record("291.67", StatusActive),
		record("333.3", StatusActive),
		record("316.67", StatusSuspended),
	}
	settings := Settings{
		VATRate: decimal.RequireFromString("20"),
		TaxRate: decimal.RequireFromString("26"),
	}
	s := ComputeSummary(records, settings)

	hundred := decimal.NewFromInt(100)
	one := decimal.NewFromInt(1)
	wantTTC := s.TotalHT.Mul(one.Add(settings.VATRate.Div(hundred)))
	wantNet := s.TotalHT.Mul(one.Sub(settings.TaxRate.Div(hundred)))
	if !s.TotalTTC.Equal(wantTTC) {
		t.Fatalf("TTC identity broken: %s != %s", s.TotalTTC, wantTTC)
	}
	if !s.TotalAfterTax.Equal(wantNet) {
		t.Fatalf("after-tax identity broken: %s != %s", s.TotalAfterTax, wantNet)
	}
}

func TestComputeSummaryOrderIndependent(t *testing.T) {
	a := []Record{record("0.1", StatusActive), record("0.2", StatusActive), record("291.67", StatusActive)}
	b := []Record{record("291.67", StatusActive), record("0.1", StatusActive), record("0.2", StatusActive)}
	sa := ComputeSummary(a, DefaultSettings())
	sb := ComputeSummary(b, DefaultSettings())
	if !sa.TotalHT.Equal(sb.TotalHT) {
		t.Fatalf("summation order changed the total: %s != %s", sa.TotalHT, sb.TotalHT)
	}
	if sa.TotalHT.String() != "291.97" {
		t.Fatalf("TotalHT = %s", sa.TotalHT)
	}
}

func TestComputeSummaryEmpty(t *testing.T) {
	s := ComputeSummary(nil, DefaultSettings())
	if !s.TotalHT.IsZero() || !s.TotalTTC.IsZero() || !s.TotalAfterTax.IsZero() {
		t.Fatalf("empty set should yield zero totals: %+v", s)
	}
}

func TestComputeSummaryZeroRates(t *testing.T) {
	records := []Record{record("100", StatusActive)}
	s := ComputeSummary(records, Settings{VATRate: decimal.Zero, TaxRate: decimal.Zero})
	if !s.TotalTTC.Equal(s.TotalHT) || !s.TotalAfterTax.Equal(s.TotalHT) {
		t.Fatalf("zero rates should degenerate to HT: %+v", s)
	}
}

func TestComputeSummaryZeroAmountStillCounts(t *testing.T) {
	records := []Record{record("0", StatusActive), record("100", StatusActive)}
	current, archived := Partition(records)
	if len(current) != 2 || len(archived) != 0 {
		t.Fatalf("zero-amount record must stay in its bucket: %d/%d", len(current), len(archived))
	}
	s := ComputeSummary(records, DefaultSettings())
	if s.TotalHT.String() != "100" {
		t.Fatalf("TotalHT = %s", s.TotalHT)
	}
}

func TestPartition(t *testing.T) {
	records := []Record{
		record("1", StatusActive),
		record("2", StatusTerminated),
		record("3", StatusSuspended),
	}
	current, archived := Partition(records)
	if len(current) != 2 {
		t.Fatalf("current = %d", len(current))
	}
	if len(archived) != 1 || archived[0].AmountHT.String() != "2" {
		t.Fatalf("archived = %+v", archived)
	}
}
