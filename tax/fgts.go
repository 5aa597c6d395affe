package tax

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// FGTS - Employer severance-guarantee deposits
// =============================================================================

// FGTSResult itemizes the monthly employer FGTS obligation. The fine is a
// reference figure collected alongside the deposit - it funds the eventual
// 40% termination fine, it is not a cash obligation on its own.
type FGTSResult struct {
	Deposit decimal.Decimal
	Fine    decimal.Decimal
	Total   decimal.Decimal
}

// ComputeFGTS applies the table's deposit and fine rates to gross, each
// rounded to cents independently.
func ComputeFGTS(gross decimal.Decimal, table Table) FGTSResult {
	deposit := Cents(gross.Mul(table.FGTSDeposit))
	fine := Cents(gross.Mul(table.FGTSFine))
	return FGTSResult{
		Deposit: deposit,
		Fine:    fine,
		Total:   deposit.Add(fine),
	}
}

// =============================================================================
// DAE - Consolidated monthly government remittance
// =============================================================================

// DAEResult itemizes the single document the employer remits: every
// employer charge plus the taxes withheld from the employee.
type DAEResult struct {
	EmployerINSS decimal.Decimal
	SAT          decimal.Decimal
	FGTSDeposit  decimal.Decimal
	FGTSFine     decimal.Decimal
	EmployeeINSS decimal.Decimal
	EmployeeIRRF decimal.Decimal
	Total        decimal.Decimal
}

// ComputeDAE aggregates the month's remittance for a given gross and the
// already-computed employee withholdings.
func ComputeDAE(gross, inss, irrf decimal.Decimal, table Table) DAEResult {
	r := DAEResult{
		EmployerINSS: Cents(gross.Mul(table.EmployerINSS)),
		SAT:          Cents(gross.Mul(table.SAT)),
		FGTSDeposit:  Cents(gross.Mul(table.FGTSDeposit)),
		FGTSFine:     Cents(gross.Mul(table.FGTSFine)),
		EmployeeINSS: inss,
		EmployeeIRRF: irrf,
	}
	r.Total = r.EmployerINSS.Add(r.SAT).Add(r.FGTSDeposit).Add(r.FGTSFine).
		Add(r.EmployeeINSS).Add(r.EmployeeIRRF)
	return r
}
