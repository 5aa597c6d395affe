/*
registry.go - Dated table lookup

PURPOSE:
  Resolves the statutory Table applicable to any calendar date. Tables are
  non-overlapping and ordered by ValidFrom; a date outside every interval
  falls back to the nearest table (newest for future dates, oldest for past
  dates). Fallback is a recoverable condition - tax rules are legally
  time-bound, so the caller should surface a warning when extrapolating -
  but it is never an error. The only failure mode is an empty registry.

USAGE:
  reg := tax.DefaultRegistry()
  table, exact, err := reg.Resolve(date)
  if !exact {
      log.Warn("date outside known tax tables, extrapolating")
  }

SEE ALSO:
  - table.go: Table definition
*/
package tax

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Registry holds the ordered statutory tables. Immutable after
// construction, so concurrent readers need no locking.
type Registry struct {
	tables []Table
}

// NewRegistry builds a registry from tables in any order; they are sorted
// by ValidFrom on construction.
func NewRegistry(tables []Table) *Registry {
	sorted := make([]Table, len(tables))
	copy(sorted, tables)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ValidFrom.Before(sorted[j].ValidFrom)
	})
	return &Registry{tables: sorted}
}

// Resolve returns the table whose validity interval contains the calendar
// date. The second return is false when the date fell outside every
// interval and the nearest table was extrapolated instead.
func (r *Registry) Resolve(date time.Time) (Table, bool, error) {
	if len(r.tables) == 0 {
		return Table{}, false, ErrEmptyRegistry
	}

	d := civilDate(date)
	for _, t := range r.tables {
		if t.Contains(d) {
			return t, true, nil
		}
	}

	// Earlier than the oldest table: extrapolate backwards.
	if d.Before(r.tables[0].ValidFrom) {
		return r.tables[0], false, nil
	}
	// Later than the newest table's end: extrapolate forwards.
	return r.tables[len(r.tables)-1], false, nil
}

// =============================================================================
// STATUTORY TABLES
// =============================================================================

// DefaultRegistry ships the statutory tables known to this build.
//
// Employer rates are constant across vigencies for domestic employment:
// 8% INSS patronal, 8% FGTS deposit, 3.2% FGTS fine reference, 0.8% SAT.
func DefaultRegistry() *Registry {
	employer := func(t *Table) {
		t.EmployerINSS = Pct("8")
		t.FGTSDeposit = Pct("8")
		t.FGTSFine = Pct("3.2")
		t.SAT = Pct("0.8")
	}

	// IRRF brackets have not changed since May 2023; the 2026 relief came as
	// a reduction rule on top of them rather than new brackets.
	irrf := []IRRFBracket{
		{Limit: MustParse("2259.20"), Rate: decimal.Zero, Deduction: decimal.Zero},
		{Limit: MustParse("2826.65"), Rate: Pct("7.5"), Deduction: MustParse("169.44")},
		{Limit: MustParse("3751.05"), Rate: Pct("15"), Deduction: MustParse("381.44")},
		{Limit: MustParse("4664.68"), Rate: Pct("22.5"), Deduction: MustParse("662.77")},
		{Limit: decimal.Zero, Rate: Pct("27.5"), Deduction: MustParse("896.00")},
	}

	t2024 := Table{
		ValidFrom:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		INSS: []INSSBracket{
			{Limit: MustParse("1412.00"), Rate: Pct("7.5")},
			{Limit: MustParse("2666.68"), Rate: Pct("9")},
			{Limit: MustParse("4000.03"), Rate: Pct("12")},
			{Limit: MustParse("7786.02"), Rate: Pct("14")},
		},
		IRRF:                irrf,
		DependentDeduction:  MustParse("189.59"),
		SimplifiedDeduction: MustParse("564.80"),
		MinimumWage:         MustParse("1412.00"),
	}
	employer(&t2024)

	t2025 := Table{
		ValidFrom:  time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		INSS: []INSSBracket{
			{Limit: MustParse("1518.00"), Rate: Pct("7.5")},
			{Limit: MustParse("2793.88"), Rate: Pct("9")},
			{Limit: MustParse("4190.83"), Rate: Pct("12")},
			{Limit: MustParse("8157.41"), Rate: Pct("14")},
		},
		IRRF:                irrf,
		DependentDeduction:  MustParse("189.59"),
		SimplifiedDeduction: MustParse("564.80"),
		MinimumWage:         MustParse("1518.00"),
	}
	employer(&t2025)

	// 2026: zero tax up to 5000.00, linear decay to zero at 7350.00.
	// The linear coefficients cancel the bracket tax exactly at the
	// threshold (tax(5000.00) = 479.00 in the top bracket).
	t2026 := Table{
		ValidFrom: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		INSS: []INSSBracket{
			{Limit: MustParse("1630.00"), Rate: Pct("7.5")},
			{Limit: MustParse("3000.00"), Rate: Pct("9")},
			{Limit: MustParse("4500.00"), Rate: Pct("12")},
			{Limit: MustParse("8759.36"), Rate: Pct("14")},
		},
		IRRF:                irrf,
		DependentDeduction:  MustParse("189.59"),
		SimplifiedDeduction: MustParse("564.80"),
		Reduction: &ReductionRule{
			ZeroThreshold: MustParse("5000.00"),
			BandUntil:     MustParse("7350.00"),
			LinearA:       MustParse("1498.149"),
			LinearB:       MustParse("0.2038298"),
			MaxReduction:  MustParse("479.00"),
		},
		MinimumWage: MustParse("1630.00"),
	}
	employer(&t2026)

	return NewRegistry([]Table{t2024, t2025, t2026})
}
