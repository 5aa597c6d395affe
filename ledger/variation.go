package ledger

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// VARIATION APPLICATION - One application function per variant
// =============================================================================

// netAdjustment folds the net-impacting variations into a delta applied to
// the solver's target net before inversion.
func netAdjustment(variations []Variation) decimal.Decimal {
	delta := decimal.Zero
	for _, v := range variations {
		switch v.Kind {
		case VariationNetAdd:
			delta = delta.Add(v.Value)
		case VariationNetDeduct:
			delta = delta.Sub(v.Value)
		}
	}
	return delta
}

// grossAdjustment folds the gross-impacting variations into a delta
// applied to the solved gross after inversion.
func grossAdjustment(variations []Variation) decimal.Decimal {
	delta := decimal.Zero
	for _, v := range variations {
		switch v.Kind {
		case VariationGrossAdd:
			delta = delta.Add(v.Value)
		case VariationGrossDeduct:
			delta = delta.Sub(v.Value)
		}
	}
	return delta
}

// ValidVariationKind reports whether k is one of the closed set. The HTTP
// adapter rejects anything else before it reaches the ledger.
func ValidVariationKind(k VariationKind) bool {
	switch k {
	case VariationGrossAdd, VariationGrossDeduct, VariationNetAdd, VariationNetDeduct:
		return true
	}
	return false
}

// ValidPaymentKind reports whether k is a known payment kind.
func ValidPaymentKind(k PaymentKind) bool {
	for _, known := range PaymentKinds {
		if k == known {
			return true
		}
	}
	return false
}
