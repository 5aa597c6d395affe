/*
handlers_test.go - End-to-end tests over the HTTP surface

Tests for:
- Employee lifecycle and the salary command
- Ledger queries and the bonus figures they expose
- Validation mapping (400/404)
- Payment recording and status derivation
- Rehydration: a fresh handler over the same store yields the same ledger
*/
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/warp/payroll-engine/store/sqlite"
	"github.com/warp/payroll-engine/tax"
)

func newTestServer(t *testing.T) (*Handler, http.Handler, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := NewHandler(store, tax.DefaultRegistry(), zap.NewNop())
	return h, NewRouter(h), store
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec
}

func createEmployee(t *testing.T, router http.Handler) string {
	t.Helper()
	var dto EmployeeDTO
	rec := doJSON(t, router, http.MethodPost, "/api/employees", EmployeeRequest{
		Name:          "Maria dos Santos",
		AdmissionDate: "2020-03-01",
	}, &dto)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, dto.ID)
	return dto.ID
}

func setSalary(t *testing.T, router http.Handler, id string, year, month int, net string) EntryDTO {
	t.Helper()
	var entry EntryDTO
	rec := doJSON(t, router, http.MethodPut, "/api/employees/"+id+"/salary", SalaryRequest{
		Year: year, Month: month, TargetNet: net,
	}, &entry)
	require.Equal(t, http.StatusOK, rec.Code)
	return entry
}

func TestSalaryCommand_ComputesTheMonth(t *testing.T) {
	// GIVEN: An employee admitted years ago
	_, router, _ := newTestServer(t)
	id := createEmployee(t, router)

	// WHEN: Setting the target net to 925.00 from January 2025
	entry := setSalary(t, router, id, 2025, 1, "925.00")

	// THEN: The solved salary chain comes back in the response
	assert.Equal(t, "1000.00", entry.Gross)
	assert.Equal(t, "925.00", entry.Net)
	assert.Equal(t, "75.00", entry.EmployeeINSS)
	assert.Equal(t, "0.00", entry.EmployeeIRRF)
	assert.Equal(t, "161.50", entry.Bonus.MonthlyBonus)
	assert.Equal(t, "pending", entry.Status)
}

func TestGetLedger_FullYearWithJulySchedule(t *testing.T) {
	// GIVEN: A steady 925.00 net through 2025
	_, router, _ := newTestServer(t)
	id := createEmployee(t, router)
	setSalary(t, router, id, 2025, 1, "925.00")

	// WHEN: Fetching the year
	var resp LedgerResponse
	rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/employees/%s/ledger/%d", id, 2025), nil, &resp)

	// THEN: 12 entries, with the mid-year payout scheduled in July
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Entries, 12)
	july := resp.Entries[6]
	assert.Equal(t, 7, july.Month)
	assert.Equal(t, "565.25", july.ScheduledBonus)
	assert.Equal(t, "565.25", july.BonusDue)
	december := resp.Entries[11]
	assert.Equal(t, 12, december.Month)
}

func TestVacation_RejectsBadDayCounts(t *testing.T) {
	// GIVEN: An employee with a salary
	_, router, _ := newTestServer(t)
	id := createEmployee(t, router)
	setSalary(t, router, id, 2025, 1, "925.00")

	// WHEN: Requesting 28 enjoyed + 10 sold days (sum over 30)
	rec := doJSON(t, router, http.MethodPost, "/api/employees/"+id+"/vacation", VacationRequest{
		Year: 2025, Month: 3, Enabled: true, DaysEnjoyed: 28, DaysSold: 10,
	}, nil)

	// THEN: 400, and the month keeps its plain salary
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp LedgerResponse
	doJSON(t, router, http.MethodGet, "/api/employees/"+id+"/ledger/2025", nil, &resp)
	assert.False(t, resp.Entries[2].Vacation)
	assert.Equal(t, "925.00", resp.Entries[2].Net)
}

func TestUnknownEmployee_Is404(t *testing.T) {
	// GIVEN: An empty system
	_, router, _ := newTestServer(t)

	// WHEN/THEN: Every employee-scoped route answers 404
	rec := doJSON(t, router, http.MethodGet, "/api/employees/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/employees/nope/salary", SalaryRequest{
		Year: 2025, Month: 1, TargetNet: "925.00",
	}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/employees/nope/ledger/2025", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPayment_SettlesTheSalary(t *testing.T) {
	// GIVEN: January 2025 owing a 925.00 net
	_, router, _ := newTestServer(t)
	id := createEmployee(t, router)
	setSalary(t, router, id, 2025, 1, "925.00")

	// WHEN: Recording the full salary disbursement
	var created CreatedResponse
	rec := doJSON(t, router, http.MethodPost, "/api/employees/"+id+"/payments", PaymentRequest{
		Year: 2025, Month: 1, Kind: "salary", Amount: "925.00", Date: "2025-02-05", Method: "pix",
	}, &created)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, created.ID)

	// THEN: The month flips to paid
	var resp LedgerResponse
	doJSON(t, router, http.MethodGet, "/api/employees/"+id+"/ledger/2025", nil, &resp)
	jan := resp.Entries[0]
	assert.Equal(t, "paid", jan.Status)
	require.Len(t, jan.Payments, 1)
	assert.Equal(t, created.ID, jan.Payments[0].ID)

	// WHEN: Deleting the payment again
	rec = doJSON(t, router, http.MethodDelete, "/api/employees/"+id+"/payments/"+created.ID, nil, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// THEN: The month reverts to pending
	doJSON(t, router, http.MethodGet, "/api/employees/"+id+"/ledger/2025", nil, &resp)
	assert.Equal(t, "pending", resp.Entries[0].Status)
}

func TestVariation_CreateAndRemove(t *testing.T) {
	// GIVEN: A plain 925.00 month
	_, router, _ := newTestServer(t)
	id := createEmployee(t, router)
	setSalary(t, router, id, 2025, 1, "925.00")

	// WHEN: Adding a 200.00 net deduction to March
	var created CreatedResponse
	rec := doJSON(t, router, http.MethodPost, "/api/employees/"+id+"/variations", VariationRequest{
		Year: 2025, Month: 3, Kind: "net_deduct", Value: "200.00", Description: "advance",
	}, &created)
	require.Equal(t, http.StatusCreated, rec.Code)

	// THEN: March resolves a lower net; other months are untouched
	var resp LedgerResponse
	doJSON(t, router, http.MethodGet, "/api/employees/"+id+"/ledger/2025", nil, &resp)
	assert.Equal(t, "725.00", resp.Entries[2].Net)
	assert.Equal(t, "925.00", resp.Entries[1].Net)

	// WHEN: Removing it
	rec = doJSON(t, router, http.MethodDelete, "/api/employees/"+id+"/variations/"+created.ID, nil, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	doJSON(t, router, http.MethodGet, "/api/employees/"+id+"/ledger/2025", nil, &resp)
	assert.Equal(t, "925.00", resp.Entries[2].Net)

	// AND: An unknown kind is rejected
	rec = doJSON(t, router, http.MethodPost, "/api/employees/"+id+"/variations", VariationRequest{
		Year: 2025, Month: 3, Kind: "mystery", Value: "10.00",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRehydration_FreshHandlerMatchesStoredInputs(t *testing.T) {
	// GIVEN: A populated year with a vacation and a payment
	_, router, store := newTestServer(t)
	id := createEmployee(t, router)
	setSalary(t, router, id, 2025, 1, "925.00")
	rec := doJSON(t, router, http.MethodPost, "/api/employees/"+id+"/vacation", VacationRequest{
		Year: 2025, Month: 4, Enabled: true, DaysEnjoyed: 30,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodPost, "/api/employees/"+id+"/payments", PaymentRequest{
		Year: 2025, Month: 1, Kind: "salary", Amount: "925.00", Date: "2025-02-05",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var before LedgerResponse
	doJSON(t, router, http.MethodGet, "/api/employees/"+id+"/ledger/2025", nil, &before)

	// WHEN: A brand-new handler over the same store serves the same year
	fresh := NewRouter(NewHandler(store, tax.DefaultRegistry(), zap.NewNop()))
	var after LedgerResponse
	rec2 := doJSON(t, fresh, http.MethodGet, "/api/employees/"+id+"/ledger/2025", nil, &after)

	// THEN: Replaying the stored inputs reproduces the ledger exactly
	require.Equal(t, http.StatusOK, rec2.Code)
	require.Len(t, after.Entries, 12)
	for i := range before.Entries {
		assert.Equal(t, before.Entries[i].Gross, after.Entries[i].Gross, "month %d gross", i+1)
		assert.Equal(t, before.Entries[i].Net, after.Entries[i].Net, "month %d net", i+1)
		assert.Equal(t, before.Entries[i].RunningBalance, after.Entries[i].RunningBalance, "month %d balance", i+1)
		assert.Equal(t, before.Entries[i].Status, after.Entries[i].Status, "month %d status", i+1)
	}
	assert.True(t, after.Entries[3].Vacation)
	assert.Equal(t, "paid", after.Entries[0].Status)
}

func TestRecompute_IsIdempotent(t *testing.T) {
	// GIVEN: A computed year
	_, router, _ := newTestServer(t)
	id := createEmployee(t, router)
	setSalary(t, router, id, 2025, 1, "925.00")

	var before LedgerResponse
	doJSON(t, router, http.MethodGet, "/api/employees/"+id+"/ledger/2025", nil, &before)

	// WHEN: Forcing a rebuild from storage
	rec := doJSON(t, router, http.MethodPost, "/api/employees/"+id+"/recompute", nil, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// THEN: Nothing moves
	var after LedgerResponse
	doJSON(t, router, http.MethodGet, "/api/employees/"+id+"/ledger/2025", nil, &after)
	assert.Equal(t, before, after)
}

func TestUpdateEmployee_DependentsCascade(t *testing.T) {
	// GIVEN: A 3000.00 net where the IRRF method matters
	_, router, _ := newTestServer(t)
	id := createEmployee(t, router)
	entryBefore := setSalary(t, router, id, 2025, 1, "3000.00")

	// WHEN: Granting three dependents
	var dto EmployeeDTO
	rec := doJSON(t, router, http.MethodPut, "/api/employees/"+id, EmployeeRequest{
		Name:          "Maria dos Santos",
		AdmissionDate: "2020-03-01",
		Dependents:    3,
	}, &dto)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, dto.Dependents)

	// THEN: The same net costs no more gross than before
	var resp LedgerResponse
	doJSON(t, router, http.MethodGet, "/api/employees/"+id+"/ledger/2025", nil, &resp)
	assert.Equal(t, "3000.00", resp.Entries[0].Net)
	grossBefore, err := decimal.NewFromString(entryBefore.Gross)
	require.NoError(t, err)
	grossAfter, err := decimal.NewFromString(resp.Entries[0].Gross)
	require.NoError(t, err)
	assert.True(t, grossAfter.LessThanOrEqual(grossBefore),
		"gross %s should not exceed %s", grossAfter, grossBefore)
}
