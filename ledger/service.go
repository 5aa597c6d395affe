/*
service.go - The per-employee orchestrator

PURPOSE:
  Service owns one employee's aggregate: the Employee record, the ordered
  SalaryEvents, and the year -> 12-entry ledger map. It is constructed
  with its tax-table registry injected and exposes command methods; there
  is no ambient global state.

CASCADING RECOMPUTATION:
  Every mutation recomputes the affected month forward through the rest of
  that year, every later year in full, then re-runs the bonus-pot fold
  chronologically across the ENTIRE history, then re-derives statuses.
  Months before the affected one are left untouched, so an edit to June
  never moves January's numbers.

CONCURRENCY:
  Single writer per employee. Commands read and rewrite the whole ledger
  history, so callers exposing this as a service must serialize mutations
  per employee. Reads of returned entries are safe once a command returns.

SEE ALSO:
  - entry.go: the per-month pipeline each cascade step runs
  - bonus.go: the fold the cascade finishes with
  - status.go: the per-kind due/paid derivation
*/
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/tax"
)

// Service owns the payroll ledger of a single employee.
type Service struct {
	registry *tax.Registry
	employee Employee
	events   []SalaryEvent
	years    map[int][]*Entry

	// OnTableFallback, when set, is invoked whenever a month resolved to
	// an extrapolated tax table. The adapter logs it; the computation
	// proceeds.
	OnTableFallback func(year int, month time.Month)
}

// NewService builds the orchestrator for one employee with its statutory
// tables injected.
func NewService(registry *tax.Registry, employee Employee) *Service {
	return &Service{
		registry: registry,
		employee: employee,
		years:    make(map[int][]*Entry),
	}
}

// Employee returns the current employee record.
func (s *Service) Employee() Employee { return s.employee }

// Events returns the salary events in chronological order.
func (s *Service) Events() []SalaryEvent {
	out := make([]SalaryEvent, len(s.events))
	copy(out, s.events)
	return out
}

// Year returns the 12 entries of a year, initializing and computing them
// on first access.
func (s *Service) Year(year int) []*Entry {
	if _, ok := s.years[year]; !ok {
		s.ensureYear(year)
		s.cascade(year, time.January)
	}
	return s.years[year]
}

// Entry returns one month's entry, initializing the year if needed.
func (s *Service) Entry(year int, month time.Month) (*Entry, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidMonth
	}
	return s.Year(year)[int(month)-1], nil
}

// =============================================================================
// COMMANDS - Each returns after the full cascade has run
// =============================================================================

// SetTargetNet records a salary event effective from the month's first
// day, superseding any event already anchored there.
func (s *Service) SetTargetNet(year int, month time.Month, net decimal.Decimal) error {
	if month < time.January || month > time.December {
		return ErrInvalidMonth
	}
	if !net.IsPositive() {
		return ErrNonPositiveAmount
	}

	effective := monthDate(year, month)
	replaced := false
	for i := range s.events {
		if civil(s.events[i].EffectiveFrom).Equal(effective) {
			s.events[i].TargetNet = net
			replaced = true
			break
		}
	}
	if !replaced {
		s.events = append(s.events, SalaryEvent{EffectiveFrom: effective, TargetNet: net})
		sortEvents(s.events)
	}

	s.ensureYear(year)
	s.cascade(year, month)
	return nil
}

// SetVacation toggles the vacation flag on a month. At most one vacation
// period exists per year: enabling it here disables it everywhere else in
// the same year. Day counts are validated, never clamped.
func (s *Service) SetVacation(year int, month time.Month, enabled bool, daysEnjoyed, daysSold int) error {
	if month < time.January || month > time.December {
		return ErrInvalidMonth
	}
	if enabled {
		if err := tax.ValidateVacationDays(daysEnjoyed, daysSold); err != nil {
			return err
		}
	}

	entries := s.Year(year)
	for _, e := range entries {
		if e.Month == month {
			e.Vacation = enabled
			if enabled {
				e.VacationEnjoyed = daysEnjoyed
				e.VacationSold = daysSold
			} else {
				e.VacationEnjoyed = 0
				e.VacationSold = 0
			}
			continue
		}
		if enabled && e.Vacation {
			e.Vacation = false
			e.VacationEnjoyed = 0
			e.VacationSold = 0
		}
	}

	// Another month may have lost its flag, so cascade from January.
	s.cascade(year, time.January)
	return nil
}

// SetHoliday toggles the worked-holiday flag on a month.
func (s *Service) SetHoliday(year int, month time.Month, enabled bool) error {
	e, err := s.Entry(year, month)
	if err != nil {
		return err
	}
	e.WorkedHoliday = enabled
	s.cascade(year, month)
	return nil
}

// SetThirteenth toggles a 13th-salary installment flag on a month.
func (s *Service) SetThirteenth(year int, month time.Month, installment int, enabled bool) error {
	if installment != 1 && installment != 2 {
		return tax.ErrInvalidInstallment
	}
	e, err := s.Entry(year, month)
	if err != nil {
		return err
	}
	if installment == 1 {
		e.ThirteenthFirst = enabled
	} else {
		e.ThirteenthSecond = enabled
	}
	s.cascade(year, month)
	return nil
}

// AddVariation attaches an ad-hoc adjustment to a month.
func (s *Service) AddVariation(year int, month time.Month, v Variation) error {
	if !ValidVariationKind(v.Kind) {
		return ErrInvalidVariationKind
	}
	if !v.Value.IsPositive() {
		return ErrNonPositiveAmount
	}
	e, err := s.Entry(year, month)
	if err != nil {
		return err
	}
	e.Variations = append(e.Variations, v)
	s.cascade(year, month)
	return nil
}

// RemoveVariation detaches a variation by id.
func (s *Service) RemoveVariation(year int, month time.Month, id string) error {
	e, err := s.Entry(year, month)
	if err != nil {
		return err
	}
	for i, v := range e.Variations {
		if v.ID == id {
			e.Variations = append(e.Variations[:i], e.Variations[i+1:]...)
			s.cascade(year, month)
			return nil
		}
	}
	return &NotFoundError{What: "variation", ID: id}
}

// AddPayment records a disbursement against a month.
func (s *Service) AddPayment(year int, month time.Month, p PaymentRecord) error {
	if !ValidPaymentKind(p.Kind) {
		return ErrInvalidPaymentKind
	}
	if !p.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	e, err := s.Entry(year, month)
	if err != nil {
		return err
	}
	e.Payments = append(e.Payments, p)
	s.cascade(year, month)
	return nil
}

// RemovePayment deletes a recorded disbursement by id.
func (s *Service) RemovePayment(year int, month time.Month, id string) error {
	e, err := s.Entry(year, month)
	if err != nil {
		return err
	}
	for i, p := range e.Payments {
		if p.ID == id {
			e.Payments = append(e.Payments[:i], e.Payments[i+1:]...)
			s.cascade(year, month)
			return nil
		}
	}
	return &NotFoundError{What: "payment", ID: id}
}

// UpdateEmployee replaces the employee record. Admission, termination,
// and dependents feed every month, so the whole history is rebuilt.
func (s *Service) UpdateEmployee(employee Employee) error {
	s.employee = employee
	s.Recompute()
	return nil
}

// InitYear materializes a year's 12 entries and computes them.
func (s *Service) InitYear(year int) {
	_ = s.Year(year)
}

// Recompute rebuilds the entire history from scratch: every initialized
// year, then the full pot fold, then statuses. Idempotent - recomputing
// an unchanged ledger yields identical entries.
func (s *Service) Recompute() {
	years := s.sortedYears()
	if len(years) == 0 {
		return
	}
	s.cascade(years[0], time.January)
}

// =============================================================================
// CASCADE - Affected month forward, then the global fold
// =============================================================================

// cascade recomputes (year, month) forward through the rest of that year,
// every later initialized year in full, then re-runs the pot fold across
// the whole history and re-derives every status.
func (s *Service) cascade(fromYear int, fromMonth time.Month) {
	for _, year := range s.sortedYears() {
		switch {
		case year < fromYear:
			continue
		case year == fromYear:
			s.rebuild(year, fromMonth)
		default:
			s.rebuild(year, time.January)
		}
	}
	s.refold()
}

// rebuild runs the per-month pipeline for a year from a starting month.
func (s *Service) rebuild(year int, from time.Month) {
	entries := s.years[year]
	if entries == nil {
		return
	}

	monthsWorked13 := s.monthsWorkedInYear(year)
	for _, e := range entries {
		if e.Month < from {
			continue
		}
		table, exact, err := s.registry.Resolve(monthDate(year, e.Month))
		if err != nil {
			s.zeroEntry(e)
			continue
		}
		if !exact {
			s.fallbackWarning(year, e.Month)
		}
		s.recomputeEntry(e, table, monthsWorked13, s.firstInstallmentFor(year, e.Month))
	}
}

// firstInstallmentFor resolves the amount already committed on the 13th's
// first installment, consulted when computing the second.
func (s *Service) firstInstallmentFor(year int, before time.Month) decimal.Decimal {
	for _, e := range s.years[year] {
		if e.ThirteenthFirst && e.Month < before {
			return e.ThirteenthDue
		}
	}
	return decimal.Zero
}

// refold re-runs the bonus-pot fold chronologically across every
// initialized year, writes the outcomes onto the entries, and finalizes
// dues and statuses. The fold cannot be computed month-in-isolation; this
// is the explicit sequential pass the state model demands.
func (s *Service) refold() {
	state := newPotState()
	for _, year := range s.sortedYears() {
		for _, e := range s.years[year] {
			in := potMonth{
				Month:        e.Month,
				Contribution: e.Bonus.MonthlyBonus.Add(e.ThirteenthBonus),
				FGTSDeposit:  e.monthFGTSDeposit,
				PaidBonus:    e.PaidFor(PayBonus),
			}
			if s.terminationMonth(year, e.Month) {
				in.IsTermination = true
				in.Termination = s.employee.TerminationType
				e.Entitlements = s.computeEntitlements(e)
			} else {
				e.Entitlements = nil
			}

			var out potOutcome
			state, out = potStep(state, in)

			e.ScheduledBonus = out.Scheduled
			e.BonusDue = out.BonusDue
			e.RunningBalance = out.BalanceAfter
			e.CarryDue = out.CarryAfter
			e.TerminationPayout = out.TerminationPayout
			e.TerminationFine = out.TerminationFine

			finalizeEntry(e)
		}
	}
}

// =============================================================================
// INTERNALS
// =============================================================================

func (s *Service) ensureYear(year int) {
	if _, ok := s.years[year]; ok {
		return
	}
	entries := make([]*Entry, 12)
	for m := time.January; m <= time.December; m++ {
		entries[int(m)-1] = &Entry{Year: year, Month: m}
	}
	s.years[year] = entries
}

func (s *Service) sortedYears() []int {
	years := make([]int, 0, len(s.years))
	for y := range s.years {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func (s *Service) fallbackWarning(year int, month time.Month) {
	if s.OnTableFallback != nil {
		s.OnTableFallback(year, month)
	}
}

func monthDate(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}
