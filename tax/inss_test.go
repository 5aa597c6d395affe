package tax_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/warp/payroll-engine/tax"
)

func TestComputeINSS_MinimumWage(t *testing.T) {
	// GIVEN: The 2025 table and a gross at the minimum wage (1518.00)
	// WHEN: Computing INSS
	// THEN: The whole gross sits in the 7.5% bracket

	res := tax.ComputeINSS(dec("1518.00"), table2025(t))

	assertMoney(t, "113.85", res.Total)
	assert.Len(t, res.Tranches, 1)
	assertMoney(t, "113.85", res.Tranches[0].Amount)
}

func TestComputeINSS_ThreeBrackets(t *testing.T) {
	// GIVEN: A gross of 3000.00 spanning three brackets
	// WHEN: Computing INSS
	// THEN: 7.5% + 9% + 12% tranches sum to 253.41

	res := tax.ComputeINSS(dec("3000.00"), table2025(t))

	assertMoney(t, "253.41", res.Total)
	assert.Len(t, res.Tranches, 3)
}

func TestComputeINSS_CappedAtCeiling(t *testing.T) {
	// GIVEN: A gross above the top bracket's ceiling
	// WHEN: Computing INSS
	// THEN: Earnings above the ceiling attract no contribution

	atCeiling := tax.ComputeINSS(dec("8157.41"), table2025(t))
	aboveCeiling := tax.ComputeINSS(dec("20000.00"), table2025(t))

	assert.True(t, atCeiling.Total.Equal(aboveCeiling.Total),
		"ceiling %s vs above %s", atCeiling.Total, aboveCeiling.Total)
}

func TestComputeINSS_BreakdownSumsToTotal(t *testing.T) {
	// GIVEN: Grosses landing on and around every bracket edge
	// WHEN: Computing INSS
	// THEN: The per-bracket amounts always sum exactly to the total

	table := table2025(t)
	grosses := []string{
		"0.01", "100.00", "1517.99", "1518.00", "1518.01",
		"2793.87", "2793.88", "2793.89", "3000.00", "4190.83",
		"4190.84", "5999.37", "8157.41", "8157.42", "12345.67",
	}

	for _, g := range grosses {
		res := tax.ComputeINSS(dec(g), table)
		sum := decimal.Zero
		for _, tr := range res.Tranches {
			sum = sum.Add(tr.Amount)
		}
		assert.True(t, sum.Equal(res.Total),
			"gross %s: tranches sum %s != total %s", g, sum, res.Total)
	}
}

func TestComputeINSS_ZeroAndNegative(t *testing.T) {
	// GIVEN: Non-positive gross values
	// WHEN: Computing INSS
	// THEN: Nothing is withheld and no tranches appear

	table := table2025(t)

	for _, g := range []string{"0", "-100.00"} {
		res := tax.ComputeINSS(dec(g), table)
		assert.True(t, res.Total.IsZero(), "gross %s", g)
		assert.Empty(t, res.Tranches)
	}
}

func TestComputeINSS_2024TableDiffers(t *testing.T) {
	// GIVEN: The same gross under the 2024 and 2025 vigencies
	// WHEN: Computing INSS
	// THEN: Different bracket limits produce different withholdings

	reg := tax.DefaultRegistry()
	t2024, _, err := reg.Resolve(date(2024, time.June, 15))
	assert.NoError(t, err)

	in2024 := tax.ComputeINSS(dec("3000.00"), t2024)
	in2025 := tax.ComputeINSS(dec("3000.00"), table2025(t))

	assert.False(t, in2024.Total.Equal(in2025.Total))
}
