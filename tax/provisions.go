package tax

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONTHLY PROVISIONS - Vacation, one-third, 13th accruals + employer charges
// =============================================================================

// ProvisionsResult itemizes one month of future-entitlement accrual. Each
// component is rounded to cents independently before summing; downstream
// audit breakdowns persist the components, not just the total.
type ProvisionsResult struct {
	Vacation   decimal.Decimal
	OneThird   decimal.Decimal
	Thirteenth decimal.Decimal
	ChargeRate decimal.Decimal
	Charges    decimal.Decimal
	Total      decimal.Decimal
}

// ComputeProvisions accrues one month of vacation (gross/12), one-third
// (gross/3/12), and 13th (gross/12) entitlements, plus the employer
// charges those future payments will attract at the table's combined
// employer rate.
func ComputeProvisions(gross decimal.Decimal, table Table) ProvisionsResult {
	vacation := Cents(gross.Div(twelve))
	oneThird := Cents(gross.Div(three).Div(twelve))
	thirteenth := Cents(gross.Div(twelve))

	rate := table.EmployerRate()
	base := vacation.Add(oneThird).Add(thirteenth)
	charges := Cents(base.Mul(rate))

	return ProvisionsResult{
		Vacation:   vacation,
		OneThird:   oneThird,
		Thirteenth: thirteenth,
		ChargeRate: rate,
		Charges:    charges,
		Total:      base.Add(charges),
	}
}
