package tax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/payroll-engine/tax"
)

func TestComputeProvisions(t *testing.T) {
	// GIVEN: A gross of 3000.00
	// WHEN: Computing the monthly provisions
	// THEN: Vacation and 13th accrue gross/12, one-third accrues a third of
	//       the vacation figure, and employer charges apply at 20%

	res := tax.ComputeProvisions(dec("3000.00"), table2025(t))

	assertMoney(t, "250.00", res.Vacation)
	assertMoney(t, "83.33", res.OneThird) // 3000/3/12 rounded per component
	assertMoney(t, "250.00", res.Thirteenth)
	assert.True(t, res.ChargeRate.Equal(dec("0.2")))
	assertMoney(t, "116.67", res.Charges) // 20% of 583.33
	assertMoney(t, "700.00", res.Total)
}

func TestComputeProvisions_ComponentsRoundedIndependently(t *testing.T) {
	// GIVEN: A gross that does not divide evenly
	// WHEN: Computing provisions
	// THEN: The total is the sum of the already-rounded components, not a
	//       rounding of the full-precision sum

	res := tax.ComputeProvisions(dec("1234.56"), table2025(t))

	base := res.Vacation.Add(res.OneThird).Add(res.Thirteenth)
	assert.True(t, res.Total.Equal(base.Add(res.Charges)),
		"total %s != components %s + charges %s", res.Total, base, res.Charges)
}
