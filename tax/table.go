/*
Package tax computes the monthly Brazilian domestic-employment tax chain.

PURPOSE:
  Pure calculation functions over dated statutory tables: progressive INSS,
  dual-method IRRF (legal vs simplified, with the optional monthly reduction
  rule), FGTS, the consolidated DAE remittance, vacation pay, 13th-salary
  installments, vacation/13th provisions, and the numeric net-to-gross
  inversion that everything upstream depends on.

KEY CONCEPTS IN THIS FILE (table.go):
  - Table: one statutory rule set with a validity interval
  - INSSBracket / IRRFBracket: ordered progressive brackets
  - ReductionRule: the optional monthly IRRF reduction band

DESIGN PRINCIPLES:
  1. Purity: every function is (inputs, table) -> result, no hidden state
  2. Precision: decimal.Decimal everywhere, rounded to cents at the exact
     granularity the persisted historical figures were produced with
  3. Breakdown fidelity: itemized results always sum to their rounded totals

SEE ALSO:
  - registry.go: date -> Table resolution with nearest-table fallback
  - inss.go, irrf.go, fgts.go: the withholding computations
  - solver.go: net -> gross inversion
*/
package tax

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// BRACKETS
// =============================================================================

// INSSBracket is one progressive social-security tranche. Limit is the
// cumulative gross upper bound; Rate applies only to the portion of gross
// that falls between the previous bracket's limit and this one.
type INSSBracket struct {
	Limit decimal.Decimal
	Rate  decimal.Decimal
}

// IRRFBracket is one income-tax bracket. The first bracket carries a zero
// rate (the exemption band). Limit is the upper bound of the taxable base
// for this bracket; a zero Limit marks the open-ended top bracket.
// Deduction is the fixed amount subtracted after applying the rate.
type IRRFBracket struct {
	Limit     decimal.Decimal
	Rate      decimal.Decimal
	Deduction decimal.Decimal
}

// ReductionRule is the optional monthly IRRF reduction: tax is zeroed for
// bases up to ZeroThreshold, reduced by LinearA - LinearB*base inside the
// band (ZeroThreshold, BandUntil], and untouched above. The reduction is
// clamped to [0, MaxReduction].
type ReductionRule struct {
	ZeroThreshold decimal.Decimal
	BandUntil     decimal.Decimal
	LinearA       decimal.Decimal
	LinearB       decimal.Decimal
	MaxReduction  decimal.Decimal
}

// =============================================================================
// TABLE - One dated statutory rule set
// =============================================================================

// Table holds every statutory figure needed for one validity interval.
// Tables are immutable after construction; the registry shares them freely
// across concurrent readers.
type Table struct {
	// Validity interval [ValidFrom, ValidUntil). A zero ValidUntil marks
	// the currently open table.
	ValidFrom  time.Time
	ValidUntil time.Time

	INSS []INSSBracket
	IRRF []IRRFBracket

	DependentDeduction  decimal.Decimal
	SimplifiedDeduction decimal.Decimal
	Reduction           *ReductionRule

	// Employer charge rates.
	EmployerINSS decimal.Decimal // INSS patronal
	FGTSDeposit  decimal.Decimal
	FGTSFine     decimal.Decimal // monthly reference for the termination fine
	SAT          decimal.Decimal // workplace-accident insurance

	MinimumWage decimal.Decimal
}

// EmployerRate is the sum of every employer charge rate. Used both for the
// DAE employer share and for the charge on monthly provisions.
func (t Table) EmployerRate() decimal.Decimal {
	return t.EmployerINSS.Add(t.FGTSDeposit).Add(t.FGTSFine).Add(t.SAT)
}

// Contains reports whether the calendar date falls inside the validity
// interval.
func (t Table) Contains(date time.Time) bool {
	d := civilDate(date)
	if d.Before(t.ValidFrom) {
		return false
	}
	return t.ValidUntil.IsZero() || d.Before(t.ValidUntil)
}

// civilDate truncates to the calendar date in the time's own location.
// Using the local date rather than the UTC instant keeps a paycheck dated
// "2025-01-01 00:30 BRT" inside the 2025 table even though the UTC instant
// is still in 2024.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
