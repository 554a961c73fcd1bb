package core

import "github.com/shopspring/decimal"

// Summary is the monthly financial rollup over the non-terminated contracts.
// All three totals are exact decimals; rounding happens only at render time.
type Summary struct {
	TotalHT       decimal.Decimal
	TotalTTC      decimal.Decimal
	TotalAfterTax decimal.Decimal
}

// Partition splits records into the running book (ACTIVE and SUSPENDED) and
// the archive (TERMINATED). It is computed from the status values on every
// read so there is no second source of truth to drift.
func Partition(records []Record) (current, archived []Record) {
	for _, r := range records {
		if r.Status == StatusTerminated {
			archived = append(archived, r)
		} else {
			current = append(current, r)
		}
	}
	return current, archived
}

// ComputeSummary folds the record set into the monthly totals. Terminated
// contracts never contribute to TotalHT; suspended ones still do. TTC is
// HT grossed up by the VAT rate, and the after-tax estimate applies the
// income-tax provision to the pre-tax total, not the VAT-inclusive one.
func ComputeSummary(records []Record, settings Settings) Summary {
	totalHT := decimal.Zero
	for _, r := range records {
		if r.Status == StatusTerminated {
			continue
		}
		totalHT = totalHT.Add(r.AmountHT)
	}

	hundred := decimal.NewFromInt(100)
	one := decimal.NewFromInt(1)
	vat := settings.VATRate.Div(hundred)
	tax := settings.TaxRate.Div(hundred)

	return Summary{
		TotalHT:       totalHT,
		TotalTTC:      totalHT.Mul(one.Add(vat)),
		TotalAfterTax: totalHT.Mul(one.Sub(tax)),
	}
}
