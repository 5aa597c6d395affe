/*
bonus.go - The bonus pot: contribution, maturation, and the running fold

PURPOSE:
  The pot redistributes the employer's economized taxes back to the
  employee: each month credits the full FGTS deposit plus half of the
  (employer INSS + SAT + employee INSS + employee IRRF) split base. The
  balance matures on fixed dates - half of the not-yet-due balance in July,
  the whole balance in December - and in full at termination.

RUNNING FOLD:
  The pot is an explicit left-to-right fold over the entire employment
  history, not a per-month formula: July depends on what December left
  behind, December depends on what was paid in August, and so on. It is
  implemented as the two passes the state model demands:
    1. potStep: a pure transform of (state, one month's figures)
    2. Service.refold: the chronological driver re-running potStep over
       every month in history whenever any upstream figure changes

CARRY SEMANTICS (deliberate, easy to get wrong):
  December and termination REPLACE the due amount with the full balance,
  absorbing any matured-but-unpaid carry rather than adding to it. July
  adds on top of the carry and leaves the carry untouched.

SEE ALSO:
  - entry.go: builds the BonusBreakdown that feeds contributions
  - service.go: the chronological driver
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/tax"
)

var (
	half        = tax.MustParse("0.5")
	fineRate    = tax.MustParse("0.4")
	statusEps   = tax.MustParse("0.01")
	oneThirdDiv = decimal.NewFromInt(3)
	twelveDiv   = decimal.NewFromInt(12)
)

// =============================================================================
// POT STATE - Carried across the whole employment history
// =============================================================================

// potState is the fold accumulator. Balance is the owed, unpaid accrual;
// CarryDue the matured-but-unpaid amount rolling forward; FGTSTotal the
// cumulative deposits funding the termination fine.
type potState struct {
	Balance   decimal.Decimal
	CarryDue  decimal.Decimal
	FGTSTotal decimal.Decimal
}

func newPotState() potState {
	return potState{Balance: decimal.Zero, CarryDue: decimal.Zero, FGTSTotal: decimal.Zero}
}

// potMonth is one month's input to the fold, read from an already
// recomputed entry.
type potMonth struct {
	Month         time.Month
	Contribution  decimal.Decimal // monthly bonus + any 13th-installment bonus
	FGTSDeposit   decimal.Decimal // this month's deposits (salary + 13th pass)
	PaidBonus     decimal.Decimal // payments recorded with kind = bonus
	IsTermination bool
	Termination   TerminationType
	Entitlements  *TerminationEntitlements
}

// potOutcome is what the fold writes back onto the entry.
type potOutcome struct {
	Scheduled         decimal.Decimal
	BonusDue          decimal.Decimal
	TerminationPayout decimal.Decimal
	TerminationFine   decimal.Decimal
	BalanceAfter      decimal.Decimal
	CarryAfter        decimal.Decimal
}

// =============================================================================
// PURE PER-MONTH STEP
// =============================================================================

// potStep advances the pot through one month. Pure: same state and input
// always produce the same outcome. Balance and carry are clamped at zero
// defensively; a negative value would be a programming defect upstream.
func potStep(state potState, in potMonth) (potState, potOutcome) {
	var out potOutcome

	// 1. Accrue this month's contribution.
	state.Balance = state.Balance.Add(in.Contribution)
	state.FGTSTotal = state.FGTSTotal.Add(in.FGTSDeposit)

	carryBefore := state.CarryDue
	scheduled := decimal.Zero

	switch {
	case in.IsTermination:
		// 4. Termination absorbs the carry and matures the full balance.
		carryBefore = decimal.Zero
		state.CarryDue = decimal.Zero
		out.TerminationPayout = state.Balance
		if in.Termination == TerminationByEmployer {
			out.TerminationFine = tax.Cents(state.FGTSTotal.Mul(fineRate))
		}
	case in.Month == time.December:
		// 3. December matures everything, absorbing the prior carry.
		carryBefore = decimal.Zero
		state.CarryDue = decimal.Zero
		scheduled = state.Balance
	case in.Month == time.July:
		// 2. July matures half of the not-yet-due balance.
		scheduled = tax.Cents(maxZero(state.Balance.Sub(state.CarryDue)).Mul(half))
	}

	// 5. What is owed this month.
	out.Scheduled = scheduled
	out.BonusDue = carryBefore.Add(scheduled).Add(out.TerminationPayout)

	// 6. Apply bonus payments recorded this month.
	if in.PaidBonus.IsPositive() {
		state.Balance = maxZero(state.Balance.Sub(decimal.Min(in.PaidBonus, state.Balance)))
	}
	state.CarryDue = maxZero(out.BonusDue.Sub(in.PaidBonus))

	out.BalanceAfter = state.Balance
	out.CarryAfter = state.CarryDue
	return state, out
}

func maxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
