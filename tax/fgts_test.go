package tax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/payroll-engine/tax"
)

func TestComputeFGTS(t *testing.T) {
	// GIVEN: A gross of 1000.00
	// WHEN: Computing FGTS
	// THEN: 8% deposit, 3.2% fine reference, 11.2% total

	res := tax.ComputeFGTS(dec("1000.00"), table2025(t))

	assertMoney(t, "80.00", res.Deposit)
	assertMoney(t, "32.00", res.Fine)
	assertMoney(t, "112.00", res.Total)
}

func TestComputeDAE_AggregatesEverything(t *testing.T) {
	// GIVEN: Gross 1000.00 with zero withholdings for clarity
	// WHEN: Computing the DAE
	// THEN: 8% patronal + 0.8% SAT + 8% deposit + 3.2% fine = 20% of gross

	res := tax.ComputeDAE(dec("1000.00"), dec("0"), dec("0"), table2025(t))

	assertMoney(t, "80.00", res.EmployerINSS)
	assertMoney(t, "8.00", res.SAT)
	assertMoney(t, "80.00", res.FGTSDeposit)
	assertMoney(t, "32.00", res.FGTSFine)
	assertMoney(t, "200.00", res.Total)
}

func TestComputeDAE_IncludesEmployeeWithholdings(t *testing.T) {
	// GIVEN: Gross 3000.00 with its actual INSS and IRRF
	// WHEN: Computing the DAE
	// THEN: The total covers employer charges plus both withholdings

	table := table2025(t)
	inss := tax.ComputeINSS(dec("3000.00"), table)
	irrf := tax.ComputeIRRF(dec("3000.00"), inss.Total, 0, table)

	res := tax.ComputeDAE(dec("3000.00"), inss.Total, irrf.Tax, table)

	expected := res.EmployerINSS.Add(res.SAT).Add(res.FGTSDeposit).Add(res.FGTSFine).
		Add(inss.Total).Add(irrf.Tax)
	assert.True(t, res.Total.Equal(expected))
	assertMoney(t, "253.41", res.EmployeeINSS)
	assertMoney(t, "13.20", res.EmployeeIRRF)
}
