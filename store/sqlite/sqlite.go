/*
Package sqlite persists the payroll aggregates.

PURPOSE:
  Implements the persistence side of the adapter: employees, salary
  events, variations, payments, and the computed ledger entries the
  downstream audit tooling reads. The calculation engine never touches
  this package - the API layer loads an employee's aggregate, replays it
  into a ledger.Service, runs the command, and saves the result back.

KEY TABLES:
  employees:      The employee records
  salary_events:  Effective-dated target-net events
  variations:     Ad-hoc monthly adjustments
  payments:       Recorded disbursements
  ledger_entries: Computed monthly figures, breakdown serialized as JSON

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block, a single writer at a time.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. The single-writer-per-employee
  rule the engine demands is enforced one level up, in the API layer.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - ledger/service.go: the aggregate this package persists
  - api/handlers.go: load -> command -> save
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/ledger"
)

// Store implements the persistence interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		admission_date TEXT NOT NULL,
		termination_date TEXT,
		termination_type TEXT,
		dependents INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS salary_events (
		employee_id TEXT NOT NULL,
		effective_from TEXT NOT NULL,
		target_net TEXT NOT NULL,
		PRIMARY KEY (employee_id, effective_from)
	);

	CREATE TABLE IF NOT EXISTS variations (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		kind TEXT NOT NULL,
		value TEXT NOT NULL,
		description TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_variations_employee_month
		ON variations(employee_id, year, month);

	CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		kind TEXT NOT NULL,
		amount TEXT NOT NULL,
		paid_at TEXT NOT NULL,
		method TEXT,
		note TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_payments_employee_month
		ON payments(employee_id, year, month);

	-- Computed figures, persisted for audit tooling. Rewritten wholesale
	-- on every recompute; the engine is the source of truth.
	CREATE TABLE IF NOT EXISTS ledger_entries (
		employee_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		entry_json TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (employee_id, year, month)
	);

	-- Month flags live with the inputs, not the computed entry, so a
	-- reset never loses them.
	CREATE TABLE IF NOT EXISTS month_flags (
		employee_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		vacation INTEGER NOT NULL DEFAULT 0,
		vacation_enjoyed INTEGER NOT NULL DEFAULT 0,
		vacation_sold INTEGER NOT NULL DEFAULT 0,
		worked_holiday INTEGER NOT NULL DEFAULT 0,
		thirteenth_first INTEGER NOT NULL DEFAULT 0,
		thirteenth_second INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (employee_id, year, month)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) SaveEmployee(ctx context.Context, emp ledger.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var termDate, termType sql.NullString
	if emp.TerminationDate != nil {
		termDate = sql.NullString{String: emp.TerminationDate.Format("2006-01-02"), Valid: true}
		termType = sql.NullString{String: string(emp.TerminationType), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, admission_date, termination_date, termination_type, dependents, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			admission_date = excluded.admission_date,
			termination_date = excluded.termination_date,
			termination_type = excluded.termination_type,
			dependents = excluded.dependents`,
		emp.ID, emp.Name, emp.AdmissionDate.Format("2006-01-02"),
		termDate, termType, emp.Dependents, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*ledger.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, admission_date, termination_date, termination_type, dependents
		FROM employees WHERE id = ?`, id)

	var emp ledger.Employee
	var admission string
	var termDate, termType sql.NullString
	err := row.Scan(&emp.ID, &emp.Name, &admission, &termDate, &termType, &emp.Dependents)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	emp.AdmissionDate, err = time.Parse("2006-01-02", admission)
	if err != nil {
		return nil, fmt.Errorf("bad admission date for %s: %w", id, err)
	}
	if termDate.Valid {
		t, err := time.Parse("2006-01-02", termDate.String)
		if err != nil {
			return nil, fmt.Errorf("bad termination date for %s: %w", id, err)
		}
		emp.TerminationDate = &t
		emp.TerminationType = ledger.TerminationType(termType.String)
	}
	return &emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]ledger.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, admission_date, termination_date, termination_type, dependents
		FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Employee
	for rows.Next() {
		var emp ledger.Employee
		var admission string
		var termDate, termType sql.NullString
		if err := rows.Scan(&emp.ID, &emp.Name, &admission, &termDate, &termType, &emp.Dependents); err != nil {
			return nil, err
		}
		emp.AdmissionDate, err = time.Parse("2006-01-02", admission)
		if err != nil {
			return nil, err
		}
		if termDate.Valid {
			t, err := time.Parse("2006-01-02", termDate.String)
			if err != nil {
				return nil, err
			}
			emp.TerminationDate = &t
			emp.TerminationType = ledger.TerminationType(termType.String)
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM employees WHERE id = ?`,
		`DELETE FROM salary_events WHERE employee_id = ?`,
		`DELETE FROM variations WHERE employee_id = ?`,
		`DELETE FROM payments WHERE employee_id = ?`,
		`DELETE FROM ledger_entries WHERE employee_id = ?`,
		`DELETE FROM month_flags WHERE employee_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// =============================================================================
// SALARY EVENTS
// =============================================================================

func (s *Store) SaveSalaryEvents(ctx context.Context, employeeID string, events []ledger.SalaryEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM salary_events WHERE employee_id = ?`, employeeID); err != nil {
		return err
	}
	for _, ev := range events {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO salary_events (employee_id, effective_from, target_net)
			VALUES (?, ?, ?)`,
			employeeID, ev.EffectiveFrom.Format("2006-01-02"), ev.TargetNet.String())
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) GetSalaryEvents(ctx context.Context, employeeID string) ([]ledger.SalaryEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT effective_from, target_net FROM salary_events
		WHERE employee_id = ? ORDER BY effective_from`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.SalaryEvent
	for rows.Next() {
		var eff, net string
		if err := rows.Scan(&eff, &net); err != nil {
			return nil, err
		}
		ev := ledger.SalaryEvent{}
		ev.EffectiveFrom, err = time.Parse("2006-01-02", eff)
		if err != nil {
			return nil, err
		}
		ev.TargetNet, err = decimal.NewFromString(net)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// =============================================================================
// VARIATIONS AND PAYMENTS
// =============================================================================

func (s *Store) SaveVariation(ctx context.Context, employeeID string, year int, month time.Month, v ledger.Variation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO variations (id, employee_id, year, month, kind, value, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		v.ID, employeeID, year, int(month), string(v.Kind), v.Value.String(), v.Description)
	return err
}

func (s *Store) DeleteVariation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `DELETE FROM variations WHERE id = ?`, id)
	return err
}

func (s *Store) GetVariations(ctx context.Context, employeeID string) (map[int]map[time.Month][]ledger.Variation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, year, month, kind, value, description FROM variations
		WHERE employee_id = ? ORDER BY year, month`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]map[time.Month][]ledger.Variation)
	for rows.Next() {
		var v ledger.Variation
		var year, month int
		var value string
		if err := rows.Scan(&v.ID, &year, &month, (*string)(&v.Kind), &value, &v.Description); err != nil {
			return nil, err
		}
		v.Value, err = decimal.NewFromString(value)
		if err != nil {
			return nil, err
		}
		if out[year] == nil {
			out[year] = make(map[time.Month][]ledger.Variation)
		}
		out[year][time.Month(month)] = append(out[year][time.Month(month)], v)
	}
	return out, rows.Err()
}

func (s *Store) SavePayment(ctx context.Context, employeeID string, year int, month time.Month, p ledger.PaymentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payments (id, employee_id, year, month, kind, amount, paid_at, method, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, employeeID, year, int(month), string(p.Kind), p.Amount.String(),
		p.Date.Format("2006-01-02"), p.Method, p.Note)
	return err
}

func (s *Store) DeletePayment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id)
	return err
}

func (s *Store) GetPayments(ctx context.Context, employeeID string) (map[int]map[time.Month][]ledger.PaymentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, year, month, kind, amount, paid_at, method, note FROM payments
		WHERE employee_id = ? ORDER BY year, month, paid_at`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]map[time.Month][]ledger.PaymentRecord)
	for rows.Next() {
		var p ledger.PaymentRecord
		var year, month int
		var amount, paidAt string
		if err := rows.Scan(&p.ID, &year, &month, (*string)(&p.Kind), &amount, &paidAt, &p.Method, &p.Note); err != nil {
			return nil, err
		}
		p.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, err
		}
		p.Date, err = time.Parse("2006-01-02", paidAt)
		if err != nil {
			return nil, err
		}
		if out[year] == nil {
			out[year] = make(map[time.Month][]ledger.PaymentRecord)
		}
		out[year][time.Month(month)] = append(out[year][time.Month(month)], p)
	}
	return out, rows.Err()
}

// =============================================================================
// MONTH FLAGS
// =============================================================================

// MonthFlags is the persisted input state of one month.
type MonthFlags struct {
	Year             int
	Month            time.Month
	Vacation         bool
	VacationEnjoyed  int
	VacationSold     int
	WorkedHoliday    bool
	ThirteenthFirst  bool
	ThirteenthSecond bool
}

func (s *Store) SaveMonthFlags(ctx context.Context, employeeID string, f MonthFlags) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO month_flags (employee_id, year, month, vacation, vacation_enjoyed, vacation_sold,
			worked_holiday, thirteenth_first, thirteenth_second)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, year, month) DO UPDATE SET
			vacation = excluded.vacation,
			vacation_enjoyed = excluded.vacation_enjoyed,
			vacation_sold = excluded.vacation_sold,
			worked_holiday = excluded.worked_holiday,
			thirteenth_first = excluded.thirteenth_first,
			thirteenth_second = excluded.thirteenth_second`,
		employeeID, f.Year, int(f.Month), f.Vacation, f.VacationEnjoyed, f.VacationSold,
		f.WorkedHoliday, f.ThirteenthFirst, f.ThirteenthSecond)
	return err
}

func (s *Store) GetMonthFlags(ctx context.Context, employeeID string) ([]MonthFlags, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT year, month, vacation, vacation_enjoyed, vacation_sold,
			worked_holiday, thirteenth_first, thirteenth_second
		FROM month_flags WHERE employee_id = ? ORDER BY year, month`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthFlags
	for rows.Next() {
		var f MonthFlags
		var month int
		if err := rows.Scan(&f.Year, &month, &f.Vacation, &f.VacationEnjoyed, &f.VacationSold,
			&f.WorkedHoliday, &f.ThirteenthFirst, &f.ThirteenthSecond); err != nil {
			return nil, err
		}
		f.Month = time.Month(month)
		out = append(out, f)
	}
	return out, rows.Err()
}

// =============================================================================
// COMPUTED ENTRIES
// =============================================================================

// SaveEntries persists a year's computed entries as JSON documents.
func (s *Store) SaveEntries(ctx context.Context, employeeID string, year int, entries []*ledger.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, e := range entries {
		blob, err := json.Marshal(e)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO ledger_entries (employee_id, year, month, entry_json, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(employee_id, year, month) DO UPDATE SET
				entry_json = excluded.entry_json,
				updated_at = excluded.updated_at`,
			employeeID, year, int(e.Month), string(blob), now)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Years lists the years an employee has persisted entries for.
func (s *Store) Years(ctx context.Context, employeeID string) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT year FROM ledger_entries WHERE employee_id = ? ORDER BY year`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		out = append(out, y)
	}
	return out, rows.Err()
}
