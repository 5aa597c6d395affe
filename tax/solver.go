/*
solver.go - Net to gross inversion

PURPOSE:
  Finds the gross salary that delivers a target net pay. The net(gross)
  function is piecewise-linear (bracket edges) with two-decimal rounding at
  every stage, so it is not algebraically invertible; inversion is numeric.

ALGORITHM:
  1. Binary search over [targetNet, targetNet x 2.5], 60 fixed iterations,
     rounding each candidate gross to cents before evaluating its net.
  2. A final refinement scans gross values in 1-cent steps within +-2.00 of
     the binary-search result and picks the one whose rounded net (integer
     cents) lands closest to the target. Ties prefer a gross that does NOT
     under-deliver (net >= target).

  The result is deterministic, converges in bounded time, and never
  silently returns a net below the target when an exact match exists.

SEE ALSO:
  - inss.go, irrf.go: the forward computation being inverted
*/
package tax

import (
	"github.com/shopspring/decimal"
)

var (
	solverUpperFactor = MustParse("2.5")
	solverScanRadius  = decimal.NewFromInt(2)
	oneCent           = MustParse("0.01")
)

const solverIterations = 60

// NetFor computes the net pay for a gross salary under a table:
// gross - INSS(gross) - IRRF(gross, INSS(gross)).
func NetFor(gross decimal.Decimal, dependents int, table Table) decimal.Decimal {
	inss := ComputeINSS(gross, table)
	irrf := ComputeIRRF(gross, inss.Total, dependents, table)
	return gross.Sub(inss.Total).Sub(irrf.Tax)
}

// FindGrossFromNet inverts NetFor numerically for a target net pay.
func FindGrossFromNet(targetNet decimal.Decimal, dependents int, table Table) decimal.Decimal {
	if !targetNet.IsPositive() {
		return decimal.Zero
	}

	lo := targetNet
	hi := targetNet.Mul(solverUpperFactor)
	for i := 0; i < solverIterations; i++ {
		mid := Cents(lo.Add(hi).Div(two))
		if NetFor(mid, dependents, table).LessThan(targetNet) {
			lo = mid
		} else {
			hi = mid
		}
	}

	return refineGross(Cents(hi), targetNet, dependents, table)
}

// refineGross scans 1-cent steps around the bisection result, selecting
// the gross whose rounded net is closest to the target in integer cents.
// Ties prefer a candidate whose net does not fall below the target.
func refineGross(center, targetNet decimal.Decimal, dependents int, table Table) decimal.Decimal {
	targetCents := Cents(targetNet).Mul(oneHundred).IntPart()

	best := center
	bestDist := int64(-1)
	bestCovers := false

	g := maxZero(center.Sub(solverScanRadius))
	end := center.Add(solverScanRadius)
	for ; g.LessThanOrEqual(end); g = g.Add(oneCent) {
		netCents := Cents(NetFor(g, dependents, table)).Mul(oneHundred).IntPart()
		dist := netCents - targetCents
		covers := dist >= 0
		if dist < 0 {
			dist = -dist
		}
		better := bestDist < 0 ||
			dist < bestDist ||
			(dist == bestDist && covers && !bestCovers)
		if better {
			best, bestDist, bestCovers = g, dist, covers
		}
	}
	return best
}
