package ledger

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// STATUS DERIVATION - Due vs paid, per kind, with 1-cent tolerance
// =============================================================================

// finalizeEntry assembles the per-kind due map and derives the entry
// status. Runs after the pot fold, since the bonus due depends on it.
func finalizeEntry(e *Entry) {
	due := make(map[PaymentKind]decimal.Decimal)
	put := func(kind PaymentKind, amount decimal.Decimal) {
		if amount.IsPositive() {
			due[kind] = amount
		}
	}

	put(PaySalary, e.Net)
	if e.ThirteenthFirst {
		put(PayThirteenthFirst, e.ThirteenthDue)
	}
	if e.ThirteenthSecond {
		put(PayThirteenthSecond, e.ThirteenthDue)
	}
	put(PayBonus, e.BonusDue)
	put(PayTerminationFine, e.TerminationFine)
	if e.Entitlements != nil {
		put(PayTerminationEntitlements, e.Entitlements.Total)
	}
	e.Due = due
	e.Status = deriveStatus(e)
}

// deriveStatus compares each kind's due amount against the matching
// payments. A kind is covered when paid >= due - 0.01. The entry is paid
// when something is due and every kind is covered, partial when some
// payment exists but coverage is incomplete, pending otherwise - which
// includes the "not employed, nothing due" case.
func deriveStatus(e *Entry) Status {
	totalDue := decimal.Zero
	allCovered := true
	for _, kind := range PaymentKinds {
		d := e.DueFor(kind)
		if !d.IsPositive() {
			continue
		}
		totalDue = totalDue.Add(d)
		if e.PaidFor(kind).LessThan(d.Sub(statusEps)) {
			allCovered = false
		}
	}

	anyPaid := false
	for _, p := range e.Payments {
		if p.Amount.IsPositive() {
			anyPaid = true
			break
		}
	}

	switch {
	case totalDue.IsPositive() && allCovered:
		return StatusPaid
	case anyPaid:
		return StatusPartial
	default:
		return StatusPending
	}
}
