package tax

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// 13TH SALARY - Two-installment annual extra pay
// =============================================================================

// ThirteenthResult itemizes one installment of the 13th salary.
// Installment 1 (paid by November) is half the full 13th, untaxed.
// Installment 2 (December) taxes the FULL 13th in a pass separate from the
// monthly salary, then nets out whatever was paid on installment 1.
type ThirteenthResult struct {
	Installment  int
	Full         decimal.Decimal
	INSS         INSSResult
	IRRF         IRRFResult
	GrossPayable decimal.Decimal
	Net          decimal.Decimal
}

// ComputeThirteenth computes one installment of the proportional 13th:
// full = gross/12 x monthsWorked. firstInstallmentPaid is only consulted
// for installment 2, where it is deducted from the taxed full amount.
func ComputeThirteenth(gross decimal.Decimal, installment, monthsWorked, dependents int, table Table, firstInstallmentPaid decimal.Decimal) (ThirteenthResult, error) {
	if installment != 1 && installment != 2 {
		return ThirteenthResult{}, ErrInvalidInstallment
	}

	full := Cents(gross.Div(twelve).Mul(decimal.NewFromInt(int64(monthsWorked))))
	res := ThirteenthResult{Installment: installment, Full: full}

	if installment == 1 {
		res.GrossPayable = Cents(full.Div(two))
		res.Net = res.GrossPayable
		return res, nil
	}

	res.INSS = ComputeINSS(full, table)
	res.IRRF = ComputeIRRF(full, res.INSS.Total, dependents, table)
	res.GrossPayable = full.Sub(firstInstallmentPaid)
	res.Net = maxZero(full.Sub(res.INSS.Total).Sub(res.IRRF.Tax).Sub(firstInstallmentPaid))
	return res, nil
}
