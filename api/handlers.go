/*
handlers.go - HTTP API handlers for the payroll ledger

PURPOSE:
  Exposes the payroll engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the ledger service.

ENDPOINTS:
  Employees:
    GET    /api/employees                 List all employees
    POST   /api/employees                 Create employee
    GET    /api/employees/{id}            Get employee details
    PUT    /api/employees/{id}            Update employee (full recompute)
    DELETE /api/employees/{id}            Delete employee and history

  Commands:
    PUT    /api/employees/{id}/salary     Record a target-net salary event
    POST   /api/employees/{id}/vacation   Toggle the vacation period
    POST   /api/employees/{id}/holiday    Toggle the worked-holiday flag
    POST   /api/employees/{id}/thirteenth Toggle a 13th installment
    POST   /api/employees/{id}/variations Attach a monthly adjustment
    DELETE /api/employees/{id}/variations/{variationID}
    POST   /api/employees/{id}/payments   Record a disbursement
    DELETE /api/employees/{id}/payments/{paymentID}

  Queries:
    GET    /api/employees/{id}/ledger/{year}  Full 12-month ledger
    POST   /api/employees/{id}/recompute      Rebuild the whole history

ARCHITECTURE:
  Handler holds the store, the statutory-table registry, and a cache of
  live ledger.Service aggregates. On first touch an employee's aggregate
  is hydrated by replaying its stored inputs (salary events, month flags,
  variations, payments) through the service commands; after that every
  command runs against the live aggregate, the mutated input is persisted,
  and the recomputed entries are written back for the audit tables.

CONCURRENCY:
  The engine requires a single writer per employee. A single handler-wide
  mutex serializes all commands; the domestic-employer scale (a handful
  of employees) makes finer locking pointless.

ERROR HANDLING:
  - 400: Validation errors (day counts, kinds, non-positive amounts)
  - 404: Unknown employee, variation, or payment
  - 500: Storage failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - ledger/service.go: The aggregate behind every command
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/payroll-engine/ledger"
	"github.com/warp/payroll-engine/store/sqlite"
	"github.com/warp/payroll-engine/tax"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Registry *tax.Registry
	Log      *zap.Logger

	// Live aggregates, hydrated on first touch. Guarded by the router's
	// serializing middleware (see server.go).
	services map[string]*ledger.Service
}

// NewHandler creates a new handler with the given store and tables.
func NewHandler(store *sqlite.Store, registry *tax.Registry, log *zap.Logger) *Handler {
	return &Handler{
		Store:    store,
		Registry: registry,
		Log:      log,
		services: make(map[string]*ledger.Service),
	}
}

// serviceFor returns the live aggregate for an employee, hydrating it
// from the store on first access by replaying the recorded inputs.
func (h *Handler) serviceFor(r *http.Request, id string) (*ledger.Service, error) {
	if svc, ok := h.services[id]; ok {
		return svc, nil
	}

	ctx := r.Context()
	emp, err := h.Store.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, nil
	}

	svc := ledger.NewService(h.Registry, *emp)
	svc.OnTableFallback = func(year int, month time.Month) {
		h.Log.Warn("no statutory table in force, using nearest",
			zap.String("employee_id", id),
			zap.Int("year", year),
			zap.Stringer("month", month))
	}

	events, err := h.Store.GetSalaryEvents(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		if err := svc.SetTargetNet(ev.EffectiveFrom.Year(), ev.EffectiveFrom.Month(), ev.TargetNet); err != nil {
			return nil, fmt.Errorf("replay salary event: %w", err)
		}
	}

	flags, err := h.Store.GetMonthFlags(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, f := range flags {
		if f.Vacation {
			if err := svc.SetVacation(f.Year, f.Month, true, f.VacationEnjoyed, f.VacationSold); err != nil {
				return nil, fmt.Errorf("replay vacation: %w", err)
			}
		}
		if f.WorkedHoliday {
			if err := svc.SetHoliday(f.Year, f.Month, true); err != nil {
				return nil, fmt.Errorf("replay holiday: %w", err)
			}
		}
		if f.ThirteenthFirst {
			if err := svc.SetThirteenth(f.Year, f.Month, 1, true); err != nil {
				return nil, fmt.Errorf("replay thirteenth: %w", err)
			}
		}
		if f.ThirteenthSecond {
			if err := svc.SetThirteenth(f.Year, f.Month, 2, true); err != nil {
				return nil, fmt.Errorf("replay thirteenth: %w", err)
			}
		}
	}

	variations, err := h.Store.GetVariations(ctx, id)
	if err != nil {
		return nil, err
	}
	for year, months := range variations {
		for month, vs := range months {
			for _, v := range vs {
				if err := svc.AddVariation(year, month, v); err != nil {
					return nil, fmt.Errorf("replay variation %s: %w", v.ID, err)
				}
			}
		}
	}

	payments, err := h.Store.GetPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	for year, months := range payments {
		for month, ps := range months {
			for _, p := range ps {
				if err := svc.AddPayment(year, month, p); err != nil {
					return nil, fmt.Errorf("replay payment %s: %w", p.ID, err)
				}
			}
		}
	}

	h.services[id] = svc
	return svc, nil
}

// persistEntries writes the recomputed entries for all years the
// aggregate has touched back to the audit tables.
func (h *Handler) persistEntries(r *http.Request, svc *ledger.Service, extraYears ...int) {
	ctx := r.Context()
	id := svc.Employee().ID

	years, err := h.Store.Years(ctx, id)
	if err != nil {
		h.Log.Error("list persisted years", zap.String("employee_id", id), zap.Error(err))
		return
	}
	seen := make(map[int]bool)
	for _, y := range years {
		seen[y] = true
	}
	for _, y := range extraYears {
		seen[y] = true
	}

	for y := range seen {
		if err := h.Store.SaveEntries(ctx, id, y, svc.Year(y)); err != nil {
			h.Log.Error("persist ledger entries",
				zap.String("employee_id", id), zap.Int("year", y), zap.Error(err))
		}
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// CreateEmployee creates a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	emp, err := employeeFromRequest(uuid.NewString(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee", err)
		return
	}

	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}

	h.Log.Info("employee created", zap.String("employee_id", emp.ID), zap.String("name", emp.Name))
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// UpdateEmployee replaces an employee record and rebuilds its history.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	svc, err := h.serviceFor(r, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if svc == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	emp, err := employeeFromRequest(id, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee", err)
		return
	}

	if err := svc.UpdateEmployee(emp); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	h.persistEntries(r, svc)

	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// DeleteEmployee removes an employee and its entire recorded history.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}
	delete(h.services, id)
	h.Log.Info("employee deleted", zap.String("employee_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func employeeFromRequest(id string, req EmployeeRequest) (ledger.Employee, error) {
	if req.Name == "" {
		return ledger.Employee{}, errors.New("name is required")
	}
	admission, err := time.Parse("2006-01-02", req.AdmissionDate)
	if err != nil {
		return ledger.Employee{}, fmt.Errorf("bad admission_date: %w", err)
	}
	if req.Dependents < 0 {
		return ledger.Employee{}, errors.New("dependents must be >= 0")
	}

	emp := ledger.Employee{
		ID:            id,
		Name:          req.Name,
		AdmissionDate: admission,
		Dependents:    req.Dependents,
	}
	if req.TerminationDate != "" {
		term, err := time.Parse("2006-01-02", req.TerminationDate)
		if err != nil {
			return ledger.Employee{}, fmt.Errorf("bad termination_date: %w", err)
		}
		tt := ledger.TerminationType(req.TerminationType)
		if tt != ledger.TerminationByEmployer && tt != ledger.TerminationByEmployee {
			return ledger.Employee{}, errors.New("termination_type must be employer or employee")
		}
		emp.TerminationDate = &term
		emp.TerminationType = tt
	}
	return emp, nil
}

// =============================================================================
// SALARY AND MONTH FLAGS
// =============================================================================

// SetSalary records a target-net salary event.
// PUT /api/employees/{id}/salary
func (h *Handler) SetSalary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req SalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	net, err := decimal.NewFromString(req.TargetNet)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid target_net", err)
		return
	}

	svc, err := h.serviceFor(r, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if svc == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	if err := svc.SetTargetNet(req.Year, time.Month(req.Month), net); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Store.SaveSalaryEvents(r.Context(), id, svc.Events()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save salary event", err)
		return
	}
	h.persistEntries(r, svc, req.Year)

	h.Log.Info("salary event recorded",
		zap.String("employee_id", id), zap.Int("year", req.Year),
		zap.Int("month", req.Month), zap.String("target_net", net.StringFixed(2)))
	h.writeMonth(w, svc, req.Year, time.Month(req.Month))
}

// SetVacation toggles the vacation period of a month.
// POST /api/employees/{id}/vacation
func (h *Handler) SetVacation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req VacationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	svc, err := h.serviceFor(r, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if svc == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	if err := svc.SetVacation(req.Year, time.Month(req.Month), req.Enabled, req.DaysEnjoyed, req.DaysSold); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.saveFlags(r, svc, id, req.Year); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save month flags", err)
		return
	}
	h.persistEntries(r, svc, req.Year)
	h.writeMonth(w, svc, req.Year, time.Month(req.Month))
}

// SetHoliday toggles the worked-holiday flag of a month.
// POST /api/employees/{id}/holiday
func (h *Handler) SetHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req HolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	svc, err := h.serviceFor(r, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if svc == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	if err := svc.SetHoliday(req.Year, time.Month(req.Month), req.Enabled); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.saveFlags(r, svc, id, req.Year); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save month flags", err)
		return
	}
	h.persistEntries(r, svc, req.Year)
	h.writeMonth(w, svc, req.Year, time.Month(req.Month))
}

// SetThirteenth toggles a 13th-salary installment on a month.
// POST /api/employees/{id}/thirteenth
func (h *Handler) SetThirteenth(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ThirteenthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	svc, err := h.serviceFor(r, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if svc == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	if err := svc.SetThirteenth(req.Year, time.Month(req.Month), req.Installment, req.Enabled); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.saveFlags(r, svc, id, req.Year); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save month flags", err)
		return
	}
	h.persistEntries(r, svc, req.Year)
	h.writeMonth(w, svc, req.Year, time.Month(req.Month))
}

// saveFlags persists the (possibly cascaded) flag state of a whole year.
// Vacation exclusivity can clear another month's flag, so one month is
// never enough.
func (h *Handler) saveFlags(r *http.Request, svc *ledger.Service, id string, year int) error {
	for _, e := range svc.Year(year) {
		f := sqlite.MonthFlags{
			Year:             year,
			Month:            e.Month,
			Vacation:         e.Vacation,
			VacationEnjoyed:  e.VacationEnjoyed,
			VacationSold:     e.VacationSold,
			WorkedHoliday:    e.WorkedHoliday,
			ThirteenthFirst:  e.ThirteenthFirst,
			ThirteenthSecond: e.ThirteenthSecond,
		}
		if err := h.Store.SaveMonthFlags(r.Context(), id, f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// VARIATIONS AND PAYMENTS
// =============================================================================

// AddVariation attaches an ad-hoc adjustment to a month.
// POST /api/employees/{id}/variations
func (h *Handler) AddVariation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req VariationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	value, err := decimal.NewFromString(req.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid value", err)
		return
	}

	svc, err := h.serviceFor(r, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if svc == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	v := ledger.Variation{
		ID:          uuid.NewString(),
		Kind:        ledger.VariationKind(req.Kind),
		Value:       value,
		Description: req.Description,
	}
	if err := svc.AddVariation(req.Year, time.Month(req.Month), v); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Store.SaveVariation(r.Context(), id, req.Year, time.Month(req.Month), v); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save variation", err)
		return
	}
	h.persistEntries(r, svc, req.Year)
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: v.ID})
}

// RemoveVariation detaches a variation by id.
// DELETE /api/employees/{id}/variations/{variationID}
func (h *Handler) RemoveVariation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	variationID := chi.URLParam(r, "variationID")

	svc, err := h.serviceFor(r, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if svc == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	year, month, ok := h.locateVariation(r, id, variationID)
	if !ok {
		writeError(w, http.StatusNotFound, "Variation not found", nil)
		return
	}
	if err := svc.RemoveVariation(year, month, variationID); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Store.DeleteVariation(r.Context(), variationID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete variation", err)
		return
	}
	h.persistEntries(r, svc, year)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) locateVariation(r *http.Request, employeeID, variationID string) (int, time.Month, bool) {
	byYear, err := h.Store.GetVariations(r.Context(), employeeID)
	if err != nil {
		return 0, 0, false
	}
	for year, months := range byYear {
		for month, vs := range months {
			for _, v := range vs {
				if v.ID == variationID {
					return year, month, true
				}
			}
		}
	}
	return 0, 0, false
}

// AddPayment records a disbursement against a month.
// POST /api/employees/{id}/payments
func (h *Handler) AddPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}
	paidAt := time.Now().UTC()
	if req.Date != "" {
		paidAt, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date", err)
			return
		}
	}

	svc, err := h.serviceFor(r, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if svc == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	p := ledger.PaymentRecord{
		ID:     uuid.NewString(),
		Kind:   ledger.PaymentKind(req.Kind),
		Amount: amount,
		Date:   paidAt,
		Method: req.Method,
		Note:   req.Note,
	}
	if err := svc.AddPayment(req.Year, time.Month(req.Month), p); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Store.SavePayment(r.Context(), id, req.Year, time.Month(req.Month), p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save payment", err)
		return
	}
	h.persistEntries(r, svc, req.Year)

	h.Log.Info("payment recorded",
		zap.String("employee_id", id), zap.String("kind", req.Kind),
		zap.String("amount", amount.StringFixed(2)))
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: p.ID})
}

// RemovePayment deletes a recorded disbursement by id.
// DELETE /api/employees/{id}/payments/{paymentID}
func (h *Handler) RemovePayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	paymentID := chi.URLParam(r, "paymentID")

	svc, err := h.serviceFor(r, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if svc == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	year, month, ok := h.locatePayment(r, id, paymentID)
	if !ok {
		writeError(w, http.StatusNotFound, "Payment not found", nil)
		return
	}
	if err := svc.RemovePayment(year, month, paymentID); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Store.DeletePayment(r.Context(), paymentID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete payment", err)
		return
	}
	h.persistEntries(r, svc, year)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) locatePayment(r *http.Request, employeeID, paymentID string) (int, time.Month, bool) {
	byYear, err := h.Store.GetPayments(r.Context(), employeeID)
	if err != nil {
		return 0, 0, false
	}
	for year, months := range byYear {
		for month, ps := range months {
			for _, p := range ps {
				if p.ID == paymentID {
					return year, month, true
				}
			}
		}
	}
	return 0, 0, false
}

// =============================================================================
// QUERIES
// =============================================================================

// GetLedger returns the 12 computed entries of a year.
// GET /api/employees/{id}/ledger/{year}
func (h *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	svc, err := h.serviceFor(r, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if svc == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	entries := svc.Year(year)
	h.persistEntries(r, svc, year)

	resp := LedgerResponse{EmployeeID: id, Year: year, Entries: make([]EntryDTO, len(entries))}
	for i, e := range entries {
		resp.Entries[i] = toEntryDTO(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Recompute rebuilds an employee's whole history from its inputs.
// POST /api/employees/{id}/recompute
func (h *Handler) Recompute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Drop the cached aggregate so the rebuild replays from storage.
	delete(h.services, id)
	svc, err := h.serviceFor(r, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if svc == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	svc.Recompute()
	h.persistEntries(r, svc)
	h.Log.Info("history recomputed", zap.String("employee_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// writeMonth responds with the recomputed entry of one month.
func (h *Handler) writeMonth(w http.ResponseWriter, svc *ledger.Service, year int, month time.Month) {
	e, err := svc.Entry(year, month)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(e))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var notFound *ledger.NotFoundError
	switch {
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, "Not found", err)
	case ledger.IsClientError(err), tax.IsValidation(err):
		writeError(w, http.StatusBadRequest, "Validation failed", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
