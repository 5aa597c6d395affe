package tax

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// VACATION PAY
// =============================================================================

// VacationResult itemizes a vacation payment: pay for the days enjoyed,
// the constitutional one-third bonus, and the allowance for days sold back.
type VacationResult struct {
	DailyRate decimal.Decimal
	Pay       decimal.Decimal
	OneThird  decimal.Decimal
	SoldDays  decimal.Decimal
	Total     decimal.Decimal
}

// ValidateVacationDays checks the statutory bounds: daysEnjoyed <= 30,
// daysSold <= 10, combined <= 30. Violations are rejected, never clamped.
func ValidateVacationDays(daysEnjoyed, daysSold int) error {
	switch {
	case daysEnjoyed < 0 || daysSold < 0:
		return &VacationDaysError{daysEnjoyed, daysSold, "day counts must be non-negative"}
	case daysEnjoyed > 30:
		return &VacationDaysError{daysEnjoyed, daysSold, "cannot enjoy more than 30 days"}
	case daysSold > 10:
		return &VacationDaysError{daysEnjoyed, daysSold, "cannot sell more than 10 days"}
	case daysEnjoyed+daysSold > 30:
		return &VacationDaysError{daysEnjoyed, daysSold, "enjoyed plus sold days cannot exceed 30"}
	}
	return nil
}

// ComputeVacation prices a vacation period at a 30-day divisor.
func ComputeVacation(gross decimal.Decimal, daysEnjoyed, daysSold int, table Table) (VacationResult, error) {
	if err := ValidateVacationDays(daysEnjoyed, daysSold); err != nil {
		return VacationResult{}, err
	}

	daily := gross.Div(thirty)
	pay := Cents(daily.Mul(decimal.NewFromInt(int64(daysEnjoyed))))
	oneThird := Cents(daily.Mul(decimal.NewFromInt(int64(daysEnjoyed + daysSold))).Div(three))
	sold := Cents(daily.Mul(decimal.NewFromInt(int64(daysSold))))

	return VacationResult{
		DailyRate: Cents(daily),
		Pay:       pay,
		OneThird:  oneThird,
		SoldDays:  sold,
		Total:     pay.Add(oneThird).Add(sold),
	}, nil
}
