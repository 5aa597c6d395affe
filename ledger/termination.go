package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/tax"
)

// =============================================================================
// TERMINATION SETTLEMENT - Proportional entitlements not yet settled
// =============================================================================

// terminationMonth reports whether (year, month) contains the employee's
// termination date.
func (s *Service) terminationMonth(year int, month time.Month) bool {
	if s.employee.TerminationDate == nil {
		return false
	}
	t := civil(*s.employee.TerminationDate)
	return t.Year() == year && t.Month() == month
}

// computeEntitlements packages the accrued-but-unpaid net vacation,
// one-third, and 13th amounts settled in the termination month.
//
// Vacation accrues from the last enjoyed vacation period (or admission if
// none), one month of gross/12 per employed month, capped at a full
// period; the one-third follows at a third of it. The proportional 13th
// covers the months worked in the termination year, net of 13th amounts
// already recorded as paid. A pro-rated termination month still settles
// on the full monthly gross, not the partial one.
func (s *Service) computeEntitlements(e *Entry) *TerminationEntitlements {
	gross := s.fullMonthGross(e)
	if !gross.IsPositive() {
		gross = e.Gross
	}
	if !gross.IsPositive() {
		return nil
	}

	months := s.vacationAccrualMonths(e.Year, e.Month)
	vacation := tax.Cents(gross.Div(twelveDiv).Mul(decimal.NewFromInt(int64(months))))
	oneThird := tax.Cents(vacation.Div(oneThirdDiv))

	full13 := tax.Cents(gross.Div(twelveDiv).Mul(decimal.NewFromInt(int64(s.monthsWorkedInYear(e.Year)))))
	paid13 := s.thirteenthPaidInYear(e.Year)
	thirteenth := maxZero(full13.Sub(paid13))

	return &TerminationEntitlements{
		Vacation:   vacation,
		OneThird:   oneThird,
		Thirteenth: thirteenth,
		Total:      vacation.Add(oneThird).Add(thirteenth),
	}
}

// fullMonthGross solves the un-prorated gross for the entry's target net.
func (s *Service) fullMonthGross(e *Entry) decimal.Decimal {
	if !e.TargetNet.IsPositive() {
		return decimal.Zero
	}
	table, exact, err := s.registry.Resolve(monthDate(e.Year, e.Month))
	if err != nil {
		return decimal.Zero
	}
	if !exact {
		s.fallbackWarning(e.Year, e.Month)
	}
	return tax.FindGrossFromNet(e.TargetNet, s.employee.Dependents, table)
}

// vacationAccrualMonths counts employed months since the last vacation
// period (or admission), capped at 12.
func (s *Service) vacationAccrualMonths(termYear int, termMonth time.Month) int {
	anchorYear := s.employee.AdmissionDate.Year()
	anchorMonth := s.employee.AdmissionDate.Month()

	for _, year := range s.sortedYears() {
		for _, e := range s.years[year] {
			if !e.Vacation {
				continue
			}
			if e.Year > termYear || (e.Year == termYear && e.Month >= termMonth) {
				continue
			}
			if e.Year > anchorYear || (e.Year == anchorYear && e.Month > anchorMonth) {
				anchorYear, anchorMonth = e.Year, e.Month
			}
		}
	}

	months := (termYear-anchorYear)*12 + int(termMonth-anchorMonth)
	if months > 12 {
		months = 12
	}
	if months < 0 {
		months = 0
	}
	return months
}

// thirteenthPaidInYear sums 13th-installment payments recorded in a year.
func (s *Service) thirteenthPaidInYear(year int) decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.years[year] {
		total = total.Add(e.PaidFor(PayThirteenthFirst))
		total = total.Add(e.PaidFor(PayThirteenthSecond))
	}
	return total
}
