/*
entry.go - The per-month recompute pipeline

PURPOSE:
  Rebuilds the computed figures of one ledger entry from its inputs:
  employment window, target net, variations, and flags. Order matters:

    1. Pro-rate the target net over the employment window
    2. Apply net variations to the solver target
    3. Scale the target for vacation (x 4/3) and worked holiday (x 31/30) -
       pre-solve, so the employee lands exactly on net+1/3 (or net+1/30)
       after tax
    4. Invert net -> gross
    5. Apply gross variations
    6. Run the withholding chain (INSS, IRRF, FGTS, DAE) and provisions
    7. Run the 13th-installment pass if flagged
    8. Assemble the bonus breakdown (the pot fold runs later, globally)

  The pot fold and status derivation are NOT here: they depend on other
  months and run in the Service's chronological passes.

SEE ALSO:
  - bonus.go: the fold that consumes the breakdown built here
  - service.go: the cascade that decides which entries to rebuild
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/tax"
)

var (
	fourThirds   = decimal.NewFromInt(4).Div(decimal.NewFromInt(3))
	holidayScale = decimal.NewFromInt(31).Div(decimal.NewFromInt(30))
)

// recomputeEntry rebuilds every computed field of the entry in place,
// except the pot-fold outputs (RunningBalance, CarryDue, BonusDue,
// ScheduledBonus, termination figures) and Status.
//
// monthsWorked13 and firstInstallment are the year-level 13th inputs
// resolved by the caller.
func (s *Service) recomputeEntry(e *Entry, table tax.Table, monthsWorked13 int, firstInstallment decimal.Decimal) {
	window := ResolveEmployment(s.employee, e.Year, e.Month)
	e.Employed = window.Employed
	e.DaysWorked = window.DaysWorked
	e.ProRataFactor = window.ProRataFactor

	e.TargetNet = ResolveTargetNet(s.events, e.Year, e.Month)
	e.ProratedNet = tax.Cents(e.TargetNet.Mul(window.ProRataFactor))

	if !window.Employed || !e.ProratedNet.IsPositive() {
		s.zeroEntry(e)
		return
	}

	// Net-impacting variations move the solver target.
	solveNet := maxZero(e.ProratedNet.Add(netAdjustment(e.Variations)))

	// Vacation and worked-holiday adjustments are pre-solve scalings.
	if e.Vacation {
		solveNet = tax.Cents(solveNet.Mul(fourThirds))
	}
	if e.WorkedHoliday {
		solveNet = tax.Cents(solveNet.Mul(holidayScale))
	}

	gross := tax.FindGrossFromNet(solveNet, s.employee.Dependents, table)

	// Gross-impacting variations land after the solve.
	gross = maxZero(tax.Cents(gross.Add(grossAdjustment(e.Variations))))
	e.Gross = gross

	inss := tax.ComputeINSS(gross, table)
	irrf := tax.ComputeIRRF(gross, inss.Total, s.employee.Dependents, table)
	fgts := tax.ComputeFGTS(gross, table)
	dae := tax.ComputeDAE(gross, inss.Total, irrf.Tax, table)
	prov := tax.ComputeProvisions(gross, table)

	e.EmployeeINSS = inss.Total
	e.EmployeeIRRF = irrf.Tax
	e.IRRFMethod = irrf.Method
	e.Net = gross.Sub(inss.Total).Sub(irrf.Tax)
	e.DAETotal = dae.Total
	e.Provisions = prov.Total

	e.ThirteenthDue = decimal.Zero
	e.ThirteenthBonus = decimal.Zero
	thirteenthFGTS := decimal.Zero
	switch {
	case e.ThirteenthFirst:
		res, err := tax.ComputeThirteenth(gross, 1, monthsWorked13, s.employee.Dependents, table, decimal.Zero)
		if err == nil {
			e.ThirteenthDue = res.Net
		}
	case e.ThirteenthSecond:
		res, err := tax.ComputeThirteenth(gross, 2, monthsWorked13, s.employee.Dependents, table, firstInstallment)
		if err == nil {
			e.ThirteenthDue = res.Net
			// The 13th pass economizes taxes of its own: FGTS on the
			// full 13th plus half of its tax split joins the pot.
			fgts13 := tax.ComputeFGTS(res.Full, table)
			split13 := tax.Cents(res.Full.Mul(table.EmployerINSS)).
				Add(tax.Cents(res.Full.Mul(table.SAT))).
				Add(res.INSS.Total).
				Add(res.IRRF.Tax)
			e.ThirteenthBonus = fgts13.Deposit.Add(tax.Cents(split13.Mul(half)))
			thirteenthFGTS = fgts13.Deposit
		}
	}

	e.Bonus = BonusBreakdown{
		FGTSDeposit:  dae.FGTSDeposit,
		FGTSFineRef:  fgts.Fine,
		EmployerINSS: dae.EmployerINSS,
		SAT:          dae.SAT,
		EmployeeINSS: inss.Total,
		EmployeeIRRF: irrf.Tax,
		Provisions:   prov.Total,
	}
	e.Bonus.SplitBase = e.Bonus.EmployerINSS.Add(e.Bonus.SAT).
		Add(e.Bonus.EmployeeINSS).Add(e.Bonus.EmployeeIRRF)
	e.Bonus.TaxSplit = tax.Cents(e.Bonus.SplitBase.Mul(half))
	e.Bonus.MonthlyBonus = e.Bonus.FGTSDeposit.Add(e.Bonus.TaxSplit)

	// Stash the deposit total the pot fold needs (salary + 13th pass).
	e.monthFGTSDeposit = dae.FGTSDeposit.Add(thirteenthFGTS)
}

// zeroEntry clears the computed chain for months with nothing due while
// preserving the month's owned inputs (variations, payments, flags).
func (s *Service) zeroEntry(e *Entry) {
	e.Gross = decimal.Zero
	e.Net = decimal.Zero
	e.EmployeeINSS = decimal.Zero
	e.EmployeeIRRF = decimal.Zero
	e.IRRFMethod = ""
	e.DAETotal = decimal.Zero
	e.Provisions = decimal.Zero
	e.ThirteenthDue = decimal.Zero
	e.ThirteenthBonus = decimal.Zero
	e.Bonus = BonusBreakdown{
		FGTSDeposit: decimal.Zero, FGTSFineRef: decimal.Zero,
		EmployerINSS: decimal.Zero, SAT: decimal.Zero,
		EmployeeINSS: decimal.Zero, EmployeeIRRF: decimal.Zero,
		Provisions: decimal.Zero, SplitBase: decimal.Zero,
		TaxSplit: decimal.Zero, MonthlyBonus: decimal.Zero,
	}
	e.monthFGTSDeposit = decimal.Zero
}

// monthsWorkedInYear counts months of the year with at least 15 employed
// days - the statutory threshold for a month to count toward the 13th.
func (s *Service) monthsWorkedInYear(year int) int {
	count := 0
	for m := time.January; m <= time.December; m++ {
		if w := ResolveEmployment(s.employee, year, m); w.DaysWorked >= 15 {
			count++
		}
	}
	return count
}
