/*
dto.go - Request and response data structures

PURPOSE:
  Defines the JSON shapes the REST API speaks. Monetary amounts cross the
  wire as fixed two-decimal strings ("1412.00"), never floats, so clients
  round-trip exact cents.

CONVENTIONS:
  - Dates are "2006-01-02" strings
  - Months are 1..12 integers
  - Amounts are decimal strings; parsing rejects anything else

SEE ALSO:
  - handlers.go: The handlers producing and consuming these shapes
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/ledger"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// EMPLOYEES
// =============================================================================

type EmployeeDTO struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	AdmissionDate   string `json:"admission_date"`
	TerminationDate string `json:"termination_date,omitempty"`
	TerminationType string `json:"termination_type,omitempty"`
	Dependents      int    `json:"dependents"`
}

type EmployeeRequest struct {
	Name            string `json:"name"`
	AdmissionDate   string `json:"admission_date"`
	TerminationDate string `json:"termination_date,omitempty"`
	TerminationType string `json:"termination_type,omitempty"`
	Dependents      int    `json:"dependents"`
}

// =============================================================================
// COMMANDS
// =============================================================================

type SalaryRequest struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	TargetNet string `json:"target_net"`
}

type VacationRequest struct {
	Year        int  `json:"year"`
	Month       int  `json:"month"`
	Enabled     bool `json:"enabled"`
	DaysEnjoyed int  `json:"days_enjoyed"`
	DaysSold    int  `json:"days_sold"`
}

type HolidayRequest struct {
	Year    int  `json:"year"`
	Month   int  `json:"month"`
	Enabled bool `json:"enabled"`
}

type ThirteenthRequest struct {
	Year        int  `json:"year"`
	Month       int  `json:"month"`
	Installment int  `json:"installment"`
	Enabled     bool `json:"enabled"`
}

type VariationRequest struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Kind        string `json:"kind"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

type PaymentRequest struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Kind   string `json:"kind"`
	Amount string `json:"amount"`
	Date   string `json:"date"`
	Method string `json:"method,omitempty"`
	Note   string `json:"note,omitempty"`
}

// CreatedResponse carries the server-minted id of a new record.
type CreatedResponse struct {
	ID string `json:"id"`
}

// =============================================================================
// LEDGER
// =============================================================================

type BonusBreakdownDTO struct {
	FGTSDeposit  string `json:"fgts_deposit"`
	FGTSFineRef  string `json:"fgts_fine_ref"`
	EmployerINSS string `json:"employer_inss"`
	SAT          string `json:"sat"`
	EmployeeINSS string `json:"employee_inss"`
	EmployeeIRRF string `json:"employee_irrf"`
	Provisions   string `json:"provisions"`
	SplitBase    string `json:"split_base"`
	TaxSplit     string `json:"tax_split"`
	MonthlyBonus string `json:"monthly_bonus"`
}

type EntitlementsDTO struct {
	Vacation   string `json:"vacation"`
	OneThird   string `json:"one_third"`
	Thirteenth string `json:"thirteenth"`
	Total      string `json:"total"`
}

type VariationDTO struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

type PaymentDTO struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Amount string `json:"amount"`
	Date   string `json:"date"`
	Method string `json:"method,omitempty"`
	Note   string `json:"note,omitempty"`
}

type EntryDTO struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	Employed      bool   `json:"employed"`
	DaysWorked    int    `json:"days_worked"`
	ProRataFactor string `json:"pro_rata_factor"`

	Vacation         bool `json:"vacation"`
	VacationEnjoyed  int  `json:"vacation_enjoyed,omitempty"`
	VacationSold     int  `json:"vacation_sold,omitempty"`
	WorkedHoliday    bool `json:"worked_holiday"`
	ThirteenthFirst  bool `json:"thirteenth_first"`
	ThirteenthSecond bool `json:"thirteenth_second"`

	TargetNet    string `json:"target_net"`
	ProratedNet  string `json:"prorated_net"`
	Gross        string `json:"gross"`
	Net          string `json:"net"`
	EmployeeINSS string `json:"employee_inss"`
	EmployeeIRRF string `json:"employee_irrf"`
	IRRFMethod   string `json:"irrf_method,omitempty"`
	DAETotal     string `json:"dae_total"`
	Provisions   string `json:"provisions"`

	ThirteenthDue   string `json:"thirteenth_due"`
	ThirteenthBonus string `json:"thirteenth_bonus"`

	Bonus          BonusBreakdownDTO `json:"bonus"`
	ScheduledBonus string            `json:"scheduled_bonus"`
	BonusDue       string            `json:"bonus_due"`
	RunningBalance string            `json:"running_balance"`
	CarryDue       string            `json:"carry_due"`

	TerminationPayout string           `json:"termination_payout"`
	TerminationFine   string           `json:"termination_fine"`
	Entitlements      *EntitlementsDTO `json:"entitlements,omitempty"`

	Variations []VariationDTO    `json:"variations"`
	Payments   []PaymentDTO      `json:"payments"`
	Due        map[string]string `json:"due"`
	Status     string            `json:"status"`
}

type LedgerResponse struct {
	EmployeeID string     `json:"employee_id"`
	Year       int        `json:"year"`
	Entries    []EntryDTO `json:"entries"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func toEmployeeDTO(e ledger.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:            e.ID,
		Name:          e.Name,
		AdmissionDate: e.AdmissionDate.Format("2006-01-02"),
		Dependents:    e.Dependents,
	}
	if e.TerminationDate != nil {
		dto.TerminationDate = e.TerminationDate.Format("2006-01-02")
		dto.TerminationType = string(e.TerminationType)
	}
	return dto
}

func toEntryDTO(e *ledger.Entry) EntryDTO {
	dto := EntryDTO{
		Year:  e.Year,
		Month: int(e.Month),

		Employed:      e.Employed,
		DaysWorked:    e.DaysWorked,
		ProRataFactor: e.ProRataFactor.String(),

		Vacation:         e.Vacation,
		VacationEnjoyed:  e.VacationEnjoyed,
		VacationSold:     e.VacationSold,
		WorkedHoliday:    e.WorkedHoliday,
		ThirteenthFirst:  e.ThirteenthFirst,
		ThirteenthSecond: e.ThirteenthSecond,

		TargetNet:    money(e.TargetNet),
		ProratedNet:  money(e.ProratedNet),
		Gross:        money(e.Gross),
		Net:          money(e.Net),
		EmployeeINSS: money(e.EmployeeINSS),
		EmployeeIRRF: money(e.EmployeeIRRF),
		IRRFMethod:   string(e.IRRFMethod),
		DAETotal:     money(e.DAETotal),
		Provisions:   money(e.Provisions),

		ThirteenthDue:   money(e.ThirteenthDue),
		ThirteenthBonus: money(e.ThirteenthBonus),

		Bonus: BonusBreakdownDTO{
			FGTSDeposit:  money(e.Bonus.FGTSDeposit),
			FGTSFineRef:  money(e.Bonus.FGTSFineRef),
			EmployerINSS: money(e.Bonus.EmployerINSS),
			SAT:          money(e.Bonus.SAT),
			EmployeeINSS: money(e.Bonus.EmployeeINSS),
			EmployeeIRRF: money(e.Bonus.EmployeeIRRF),
			Provisions:   money(e.Bonus.Provisions),
			SplitBase:    money(e.Bonus.SplitBase),
			TaxSplit:     money(e.Bonus.TaxSplit),
			MonthlyBonus: money(e.Bonus.MonthlyBonus),
		},
		ScheduledBonus: money(e.ScheduledBonus),
		BonusDue:       money(e.BonusDue),
		RunningBalance: money(e.RunningBalance),
		CarryDue:       money(e.CarryDue),

		TerminationPayout: money(e.TerminationPayout),
		TerminationFine:   money(e.TerminationFine),

		Variations: []VariationDTO{},
		Payments:   []PaymentDTO{},
		Due:        make(map[string]string),
		Status:     string(e.Status),
	}

	if e.Entitlements != nil {
		dto.Entitlements = &EntitlementsDTO{
			Vacation:   money(e.Entitlements.Vacation),
			OneThird:   money(e.Entitlements.OneThird),
			Thirteenth: money(e.Entitlements.Thirteenth),
			Total:      money(e.Entitlements.Total),
		}
	}
	for _, v := range e.Variations {
		dto.Variations = append(dto.Variations, VariationDTO{
			ID:          v.ID,
			Kind:        string(v.Kind),
			Value:       money(v.Value),
			Description: v.Description,
		})
	}
	for _, p := range e.Payments {
		dto.Payments = append(dto.Payments, PaymentDTO{
			ID:     p.ID,
			Kind:   string(p.Kind),
			Amount: money(p.Amount),
			Date:   p.Date.Format("2006-01-02"),
			Method: p.Method,
			Note:   p.Note,
		})
	}
	for kind, due := range e.Due {
		dto.Due[string(kind)] = money(due)
	}
	return dto
}
