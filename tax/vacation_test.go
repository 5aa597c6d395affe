package tax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/tax"
)

func TestComputeVacation_FullPeriod(t *testing.T) {
	// GIVEN: Gross 3000.00 and a full 30-day vacation, none sold
	// WHEN: Computing vacation pay
	// THEN: Pay is the full gross and the one-third follows

	res, err := tax.ComputeVacation(dec("3000.00"), 30, 0, table2025(t))
	require.NoError(t, err)

	assertMoney(t, "100.00", res.DailyRate)
	assertMoney(t, "3000.00", res.Pay)
	assertMoney(t, "1000.00", res.OneThird)
	assert.True(t, res.SoldDays.IsZero())
	assertMoney(t, "4000.00", res.Total)
}

func TestComputeVacation_WithSoldDays(t *testing.T) {
	// GIVEN: 20 days enjoyed and 10 sold
	// WHEN: Computing vacation pay
	// THEN: The one-third covers enjoyed plus sold days

	res, err := tax.ComputeVacation(dec("3000.00"), 20, 10, table2025(t))
	require.NoError(t, err)

	assertMoney(t, "2000.00", res.Pay)
	assertMoney(t, "1000.00", res.OneThird) // (20+10)/3 days at 100.00
	assertMoney(t, "1000.00", res.SoldDays)
	assertMoney(t, "4000.00", res.Total)
}

func TestComputeVacation_RejectsBadDayCounts(t *testing.T) {
	// GIVEN: Day counts violating each statutory bound
	// WHEN: Computing vacation pay
	// THEN: Each is rejected with a validation error, never clamped

	table := table2025(t)
	cases := []struct {
		name    string
		enjoyed int
		sold    int
	}{
		{"more than 30 enjoyed", 31, 0},
		{"more than 10 sold", 20, 11},
		{"combined above 30", 25, 10},
		{"negative enjoyed", -1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tax.ComputeVacation(dec("3000.00"), tc.enjoyed, tc.sold, table)
			assert.ErrorIs(t, err, tax.ErrInvalidVacationDays)
			assert.True(t, tax.IsValidation(err))

			var details *tax.VacationDaysError
			assert.ErrorAs(t, err, &details)
		})
	}
}
