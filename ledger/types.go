/*
Package ledger owns the per-employee payroll ledger and its recomputation.

PURPOSE:
  One Service per employee holds the employee record, the ordered salary
  events, and a year -> 12-entry ledger map. Every command (set target net,
  toggle vacation, add a payment, ...) rewrites the affected months forward
  and re-runs the bonus-pot fold across the whole employment history.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee / SalaryEvent: the inputs every computation reads
  - Variation: a closed tagged adjustment (gross/net, add/deduct)
  - PaymentRecord: a recorded disbursement, tagged by kind
  - Entry: the persisted shape of one (year, month) ledger line
  - BonusBreakdown: the itemized audit trail behind the monthly bonus

DESIGN PRINCIPLES:
  1. Single writer per employee: commands mutate the whole aggregate
  2. Everything below the Service is a pure function over (inputs, table)
  3. Persisted shapes are stable - downstream audit tooling reads them

SEE ALSO:
  - employment.go: pro-rata window and salary-event resolution
  - entry.go: the per-month recompute pipeline
  - bonus.go: the chronological bonus-pot fold
  - service.go: commands and cascading recomputation
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/tax"
)

// =============================================================================
// EMPLOYEE
// =============================================================================

// TerminationType distinguishes who ended the employment; only
// employer-initiated terminations owe the 40% FGTS fine.
type TerminationType string

const (
	TerminationByEmployer TerminationType = "employer"
	TerminationByEmployee TerminationType = "employee"
)

// Employee is the read-only input to every ledger computation. Edits go
// through Service.UpdateEmployee, which triggers a full recompute.
type Employee struct {
	ID              string
	Name            string
	AdmissionDate   time.Time
	TerminationDate *time.Time
	TerminationType TerminationType
	Dependents      int
}

// Terminated reports whether a termination date is set.
func (e Employee) Terminated() bool { return e.TerminationDate != nil }

// =============================================================================
// SALARY EVENTS
// =============================================================================

// SalaryEvent sets the target net pay from its effective month (always a
// first-of-month) until superseded by a later event.
type SalaryEvent struct {
	EffectiveFrom time.Time
	TargetNet     decimal.Decimal
}

// =============================================================================
// VARIATIONS - Closed tagged adjustments owned by a single month
// =============================================================================

// VariationKind is the closed set of adjustment impacts. Each kind has
// exactly one application point in the recompute pipeline: net kinds move
// the solver's target, gross kinds move the solved gross.
type VariationKind string

const (
	VariationGrossAdd    VariationKind = "gross_add"
	VariationGrossDeduct VariationKind = "gross_deduct"
	VariationNetAdd      VariationKind = "net_add"
	VariationNetDeduct   VariationKind = "net_deduct"
)

// Variation is an ad-hoc monetary adjustment on one month.
type Variation struct {
	ID          string
	Kind        VariationKind
	Value       decimal.Decimal
	Description string
}

// =============================================================================
// PAYMENTS
// =============================================================================

// PaymentKind tags what obligation a disbursement settles. Multiple
// records may exist per kind per month (partial payments).
type PaymentKind string

const (
	PaySalary                  PaymentKind = "salary"
	PayThirteenthFirst         PaymentKind = "13th_installment_1"
	PayThirteenthSecond        PaymentKind = "13th_installment_2"
	PayBonus                   PaymentKind = "bonus"
	PayTerminationFine         PaymentKind = "termination_fine"
	PayTerminationEntitlements PaymentKind = "termination_entitlements"
)

// PaymentKinds lists every kind in status-derivation order.
var PaymentKinds = []PaymentKind{
	PaySalary,
	PayThirteenthFirst,
	PayThirteenthSecond,
	PayBonus,
	PayTerminationFine,
	PayTerminationEntitlements,
}

// PaymentRecord is one recorded disbursement.
type PaymentRecord struct {
	ID     string
	Kind   PaymentKind
	Amount decimal.Decimal
	Date   time.Time
	Method string
	Note   string
}

// =============================================================================
// STATUS
// =============================================================================

// Status is the derived payment state of one ledger entry.
type Status string

const (
	StatusPending Status = "pending"
	StatusPartial Status = "partial"
	StatusPaid    Status = "paid"
)

// =============================================================================
// BONUS BREAKDOWN
// =============================================================================

// BonusBreakdown itemizes how one month's bonus was assembled. The FGTS
// fine reference and the provisions total appear for audit completeness
// but are excluded from the pot: the fine funds the termination fine and
// provisions are future entitlements, not economized taxes.
type BonusBreakdown struct {
	FGTSDeposit  decimal.Decimal
	FGTSFineRef  decimal.Decimal
	EmployerINSS decimal.Decimal
	SAT          decimal.Decimal
	EmployeeINSS decimal.Decimal
	EmployeeIRRF decimal.Decimal
	Provisions   decimal.Decimal
	SplitBase    decimal.Decimal
	TaxSplit     decimal.Decimal
	MonthlyBonus decimal.Decimal
}

// =============================================================================
// TERMINATION ENTITLEMENTS
// =============================================================================

// TerminationEntitlements packages the accrued-but-unpaid net amounts
// settled in the termination month.
type TerminationEntitlements struct {
	Vacation   decimal.Decimal
	OneThird   decimal.Decimal
	Thirteenth decimal.Decimal
	Total      decimal.Decimal
}

// =============================================================================
// LEDGER ENTRY - The persisted shape of one (year, month)
// =============================================================================

// Entry is one month of the ledger. Created empty for all 12 months of a
// year on first access, rewritten by every recompute, never deleted
// except on full reset.
type Entry struct {
	Year  int
	Month time.Month

	// Employment window.
	Employed      bool
	DaysWorked    int
	ProRataFactor decimal.Decimal

	// Flags driving the recompute pipeline.
	Vacation         bool
	VacationEnjoyed  int
	VacationSold     int
	WorkedHoliday    bool
	ThirteenthFirst  bool
	ThirteenthSecond bool

	// Inputs owned by this month.
	Variations []Variation
	Payments   []PaymentRecord

	// Computed salary chain.
	TargetNet    decimal.Decimal
	ProratedNet  decimal.Decimal
	Gross        decimal.Decimal
	Net          decimal.Decimal
	EmployeeINSS decimal.Decimal
	EmployeeIRRF decimal.Decimal
	IRRFMethod   tax.IRRFMethod
	DAETotal     decimal.Decimal
	Provisions   decimal.Decimal

	// Thirteenth-salary figures (zero unless a flag is set).
	ThirteenthDue   decimal.Decimal
	ThirteenthBonus decimal.Decimal

	// Bonus pot.
	Bonus          BonusBreakdown
	ScheduledBonus decimal.Decimal
	BonusDue       decimal.Decimal
	RunningBalance decimal.Decimal
	CarryDue       decimal.Decimal

	// Termination settlement (only in the termination month).
	TerminationPayout decimal.Decimal
	TerminationFine   decimal.Decimal
	Entitlements      *TerminationEntitlements

	// Amounts owed per payment kind, and the derived status.
	Due    map[PaymentKind]decimal.Decimal
	Status Status

	// monthFGTSDeposit feeds the pot fold's cumulative deposit total
	// (salary deposit plus the 13th pass). Recomputed, not persisted.
	monthFGTSDeposit decimal.Decimal
}

// DueFor returns the amount owed for a kind, zero when absent.
func (e *Entry) DueFor(kind PaymentKind) decimal.Decimal {
	if e.Due == nil {
		return decimal.Zero
	}
	if d, ok := e.Due[kind]; ok {
		return d
	}
	return decimal.Zero
}

// PaidFor sums the payments recorded against a kind.
func (e *Entry) PaidFor(kind PaymentKind) decimal.Decimal {
	total := decimal.Zero
	for _, p := range e.Payments {
		if p.Kind == kind {
			total = total.Add(p.Amount)
		}
	}
	return total
}
