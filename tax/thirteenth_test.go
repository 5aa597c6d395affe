package tax_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/tax"
)

func TestComputeThirteenth_FirstInstallment(t *testing.T) {
	// GIVEN: Gross 3000.00, a full 12 months worked
	// WHEN: Computing installment 1
	// THEN: Half of the full 13th, untaxed

	res, err := tax.ComputeThirteenth(dec("3000.00"), 1, 12, 0, table2025(t), decimal.Zero)
	require.NoError(t, err)

	assertMoney(t, "3000.00", res.Full)
	assertMoney(t, "1500.00", res.GrossPayable)
	assertMoney(t, "1500.00", res.Net)
	assert.True(t, res.INSS.Total.IsZero())
	assert.True(t, res.IRRF.Tax.IsZero())
}

func TestComputeThirteenth_SecondInstallmentTaxesTheFull(t *testing.T) {
	// GIVEN: The same employee in December, first installment already paid
	// WHEN: Computing installment 2
	// THEN: INSS and IRRF apply to the FULL 13th (a separate taxation pass
	//       from the monthly salary) and the first installment nets out

	res, err := tax.ComputeThirteenth(dec("3000.00"), 2, 12, 0, table2025(t), dec("1500.00"))
	require.NoError(t, err)

	assertMoney(t, "3000.00", res.Full)
	assertMoney(t, "253.41", res.INSS.Total)
	assertMoney(t, "13.20", res.IRRF.Tax)
	// 3000.00 - 253.41 - 13.20 - 1500.00
	assertMoney(t, "1233.39", res.Net)
}

func TestComputeThirteenth_Proportional(t *testing.T) {
	// GIVEN: Only 7 months worked in the year
	// WHEN: Computing installment 1
	// THEN: The full 13th is gross/12 x 7

	res, err := tax.ComputeThirteenth(dec("2400.00"), 1, 7, 0, table2025(t), decimal.Zero)
	require.NoError(t, err)

	assertMoney(t, "1400.00", res.Full)
	assertMoney(t, "700.00", res.Net)
}

func TestComputeThirteenth_RejectsBadInstallment(t *testing.T) {
	// GIVEN: An installment number outside {1, 2}
	// WHEN: Computing the 13th
	// THEN: The request is rejected

	_, err := tax.ComputeThirteenth(dec("3000.00"), 3, 12, 0, table2025(t), decimal.Zero)
	assert.ErrorIs(t, err, tax.ErrInvalidInstallment)
}
