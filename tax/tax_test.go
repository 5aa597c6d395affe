package tax_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/tax"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func table2025(t *testing.T) tax.Table {
	t.Helper()
	table, exact, err := tax.DefaultRegistry().Resolve(date(2025, time.January, 1))
	require.NoError(t, err)
	require.True(t, exact)
	return table
}

func table2026(t *testing.T) tax.Table {
	t.Helper()
	table, exact, err := tax.DefaultRegistry().Resolve(date(2026, time.March, 1))
	require.NoError(t, err)
	require.True(t, exact)
	return table
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return tax.MustParse(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	require.True(t, dec(want).Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}
