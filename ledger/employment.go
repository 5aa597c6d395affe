package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// EMPLOYMENT WINDOW - Pro-rata resolution against a 30-day divisor
// =============================================================================

var thirtyDays = decimal.NewFromInt(30)

// EmploymentWindow is the intersection of a calendar month with the
// employment interval, expressed against the fixed 30-day payroll divisor.
type EmploymentWindow struct {
	Employed      bool
	DaysWorked    int
	ProRataFactor decimal.Decimal
}

// ResolveEmployment intersects the month's calendar span with
// [admission, termination]. A fully-worked month counts 30 days regardless
// of calendar length; partial months count inclusive days in the
// intersection, clamped to [0, 30].
func ResolveEmployment(emp Employee, year int, month time.Month) EmploymentWindow {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	start := monthStart
	if admission := civil(emp.AdmissionDate); admission.After(start) {
		start = admission
	}
	end := monthEnd
	if emp.TerminationDate != nil {
		if term := civil(*emp.TerminationDate); term.Before(end) {
			end = term
		}
	}

	if end.Before(start) {
		return EmploymentWindow{ProRataFactor: decimal.Zero}
	}
	if start.Equal(monthStart) && end.Equal(monthEnd) {
		return EmploymentWindow{Employed: true, DaysWorked: 30, ProRataFactor: decimal.NewFromInt(1)}
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days > 30 {
		days = 30
	}
	if days < 0 {
		days = 0
	}
	return EmploymentWindow{
		Employed:      days > 0,
		DaysWorked:    days,
		ProRataFactor: decimal.NewFromInt(int64(days)).Div(thirtyDays),
	}
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// SALARY EVENT RESOLUTION - Latest event wins
// =============================================================================

// ResolveTargetNet returns the target net in force for a month: the most
// recent event whose effective month is on or before the month's first
// day. Zero when no event applies yet.
func ResolveTargetNet(events []SalaryEvent, year int, month time.Month) decimal.Decimal {
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	target := decimal.Zero
	best := time.Time{}
	for _, ev := range events {
		eff := civil(ev.EffectiveFrom)
		if eff.After(firstOfMonth) {
			continue
		}
		if best.IsZero() || eff.After(best) {
			best = eff
			target = ev.TargetNet
		}
	}
	return target
}

// sortEvents orders salary events chronologically in place.
func sortEvents(events []SalaryEvent) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].EffectiveFrom.Before(events[j].EffectiveFrom)
	})
}
