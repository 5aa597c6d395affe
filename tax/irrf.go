package tax

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IRRF - Dual-method income-tax withholding
// =============================================================================

// IRRFMethod names which deduction regime produced the lower tax.
type IRRFMethod string

const (
	IRRFLegal      IRRFMethod = "legal"      // base - INSS - dependents
	IRRFSimplified IRRFMethod = "simplified" // base - flat simplified deduction
)

// IRRFResult carries the chosen method and the full audit trail: both
// candidate bases, the winning bracket figures, and the reduction applied.
type IRRFResult struct {
	Method         IRRFMethod
	LegalBase      decimal.Decimal
	SimplifiedBase decimal.Decimal
	Base           decimal.Decimal
	Rate           decimal.Decimal
	Deduction      decimal.Decimal
	Reduction      decimal.Decimal
	TaxBefore      decimal.Decimal
	Tax            decimal.Decimal
}

// irrfCandidate is one method's outcome before the comparison.
type irrfCandidate struct {
	base      decimal.Decimal
	rate      decimal.Decimal
	deduction decimal.Decimal
	reduction decimal.Decimal
	taxBefore decimal.Decimal
	tax       decimal.Decimal
}

// ComputeIRRF computes the withholding under both the legal method
// (base - INSS - dependents x dependent deduction) and the simplified
// method (base - flat deduction), applies the table's optional monthly
// reduction rule to each, and returns whichever yields the lower
// post-reduction tax. Ties favor the simplified method.
func ComputeIRRF(base, inss decimal.Decimal, dependents int, table Table) IRRFResult {
	legalBase := maxZero(base.Sub(inss).Sub(
		table.DependentDeduction.Mul(decimal.NewFromInt(int64(dependents)))))
	simplifiedBase := maxZero(base.Sub(table.SimplifiedDeduction))

	legal := irrfOnBase(legalBase, table)
	simplified := irrfOnBase(simplifiedBase, table)

	chosen, method := simplified, IRRFSimplified
	if legal.tax.LessThan(simplified.tax) {
		chosen, method = legal, IRRFLegal
	}

	return IRRFResult{
		Method:         method,
		LegalBase:      legalBase,
		SimplifiedBase: simplifiedBase,
		Base:           chosen.base,
		Rate:           chosen.rate,
		Deduction:      chosen.deduction,
		Reduction:      chosen.reduction,
		TaxBefore:      chosen.taxBefore,
		Tax:            chosen.tax,
	}
}

// irrfOnBase applies the progressive brackets and the reduction rule to a
// single taxable base.
func irrfOnBase(base decimal.Decimal, table Table) irrfCandidate {
	c := irrfCandidate{base: base, rate: decimal.Zero, deduction: decimal.Zero}

	for _, b := range table.IRRF {
		c.rate = b.Rate
		c.deduction = b.Deduction
		if !b.Limit.IsZero() && base.LessThanOrEqual(b.Limit) {
			break
		}
	}

	c.taxBefore = maxZero(Cents(base.Mul(c.rate)).Sub(c.deduction))
	c.reduction = monthlyReduction(base, c.taxBefore, table.Reduction)
	c.tax = maxZero(c.taxBefore.Sub(c.reduction))
	return c
}

// monthlyReduction evaluates the optional reduction rule: the full max
// below the zero-tax threshold, a linear decay inside the band, zero
// outside, clamped to [0, MaxReduction].
func monthlyReduction(base, taxBefore decimal.Decimal, rule *ReductionRule) decimal.Decimal {
	if rule == nil || taxBefore.IsZero() {
		return decimal.Zero
	}
	var reduction decimal.Decimal
	switch {
	case base.LessThanOrEqual(rule.ZeroThreshold):
		reduction = rule.MaxReduction
	case base.LessThanOrEqual(rule.BandUntil):
		reduction = rule.LinearA.Sub(rule.LinearB.Mul(base))
	default:
		return decimal.Zero
	}
	reduction = decimal.Min(maxZero(reduction), rule.MaxReduction)
	return Cents(reduction)
}
