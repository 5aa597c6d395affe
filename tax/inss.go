package tax

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// INSS - Progressive social-security withholding
// =============================================================================

// INSSTranche is the portion of gross attributed to one bracket, with the
// cent-rounded amount withheld on it.
type INSSTranche struct {
	From   decimal.Decimal
	To     decimal.Decimal
	Rate   decimal.Decimal
	Amount decimal.Decimal
}

// INSSResult itemizes the withholding per bracket. The tranche amounts
// always sum exactly to Total.
type INSSResult struct {
	Tranches []INSSTranche
	Total    decimal.Decimal
}

// ComputeINSS walks the brackets in order, attributing to each the portion
// of gross between the previous cumulative limit and min(gross, limit).
// Each tranche is rounded to cents; the total is the rounded full-precision
// sum, and any discrepancy against the sum of rounded tranches is absorbed
// into the last non-zero tranche so the visible breakdown always adds up.
// Earnings above the top bracket's ceiling are not taxed.
func ComputeINSS(gross decimal.Decimal, table Table) INSSResult {
	res := INSSResult{Total: decimal.Zero}
	if !gross.IsPositive() {
		return res
	}

	exact := decimal.Zero
	rounded := decimal.Zero
	prev := decimal.Zero
	for _, b := range table.INSS {
		upper := decimal.Min(gross, b.Limit)
		portion := upper.Sub(prev)
		if !portion.IsPositive() {
			break
		}
		amount := Cents(portion.Mul(b.Rate))
		res.Tranches = append(res.Tranches, INSSTranche{
			From:   prev,
			To:     upper,
			Rate:   b.Rate,
			Amount: amount,
		})
		exact = exact.Add(portion.Mul(b.Rate))
		rounded = rounded.Add(amount)
		prev = b.Limit
		if gross.LessThanOrEqual(b.Limit) {
			break
		}
	}

	res.Total = Cents(exact)

	// Absorb the rounding discrepancy into the last non-zero tranche.
	diff := res.Total.Sub(rounded)
	if !diff.IsZero() {
		for i := len(res.Tranches) - 1; i >= 0; i-- {
			if !res.Tranches[i].Amount.IsZero() {
				res.Tranches[i].Amount = res.Tranches[i].Amount.Add(diff)
				break
			}
		}
	}
	return res
}
