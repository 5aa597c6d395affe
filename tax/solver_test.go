package tax_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/warp/payroll-engine/tax"
)

func TestFindGrossFromNet_HitsTargetWithinOneCent(t *testing.T) {
	// GIVEN: A target net of 3000.00
	// WHEN: Inverting to gross and recomputing the net
	// THEN: The round trip lands within 0.01 of the target

	table := table2025(t)
	gross := tax.FindGrossFromNet(dec("3000.00"), 0, table)

	net := tax.NetFor(gross, 0, table)
	diff := net.Sub(dec("3000.00")).Abs()
	assert.True(t, diff.LessThanOrEqual(dec("0.01")),
		"gross %s nets %s, off by %s", gross, net, diff)
	assert.True(t, gross.GreaterThan(dec("3000.00")), "gross must exceed net")
}

func TestFindGrossFromNet_Deterministic(t *testing.T) {
	// GIVEN: The same target net
	// WHEN: Solving twice
	// THEN: The result is identical (fixed iterations, no randomness)

	table := table2025(t)
	first := tax.FindGrossFromNet(dec("2718.28"), 1, table)
	second := tax.FindGrossFromNet(dec("2718.28"), 1, table)

	assert.True(t, first.Equal(second))
}

func TestFindGrossFromNet_RoundTripAcrossBrackets(t *testing.T) {
	// GIVEN: Target nets landing the gross in every bracket region
	// WHEN: Inverting and recomputing
	// THEN: Every round trip stays within a cent

	table := table2025(t)
	targets := []string{
		"500.00", "1518.00", "2000.00", "2500.00", "3000.00",
		"3500.00", "4200.00", "5000.00", "7500.00", "10000.00",
	}

	for _, target := range targets {
		gross := tax.FindGrossFromNet(dec(target), 0, table)
		net := tax.NetFor(gross, 0, table)
		diff := net.Sub(dec(target)).Abs()
		assert.True(t, diff.LessThanOrEqual(dec("0.01")),
			"target %s: gross %s nets %s", target, gross, net)
	}
}

func TestFindGrossFromNet_NeverUnderDeliversWhenExactExists(t *testing.T) {
	// GIVEN: A target in the exempt region where net(gross) moves in
	//        exact 1-cent steps, so an exact match exists
	// WHEN: Solving
	// THEN: The delivered net is not below the target

	table := table2025(t)
	gross := tax.FindGrossFromNet(dec("1000.00"), 0, table)
	net := tax.Cents(tax.NetFor(gross, 0, table))

	assert.True(t, net.GreaterThanOrEqual(dec("1000.00")),
		"gross %s under-delivers net %s", gross, net)
}

func TestFindGrossFromNet_NonPositiveTarget(t *testing.T) {
	// GIVEN: Zero or negative targets
	// WHEN: Solving
	// THEN: Gross is zero

	table := table2025(t)
	assert.True(t, tax.FindGrossFromNet(decimal.Zero, 0, table).IsZero())
	assert.True(t, tax.FindGrossFromNet(dec("-10.00"), 0, table).IsZero())
}
