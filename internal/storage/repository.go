package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"hostel/internal/core"
	"hostel/internal/ledger"
	"hostel/internal/log"

	_ "modernc.org/sqlite"
)

// memoryDSN keeps the whole database on one connection; nothing touches disk.
const memoryDSN = ":memory:"

// SQLiteRepository is a ledger.Repository backed by an in-memory SQLite
// database. Amounts are stored as decimal TEXT and dates as YYYY-MM-DD.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ledger.Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(ctx context.Context) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const insertRevenue = `INSERT INTO revenue (id, date, description, amount, resident, method) VALUES (?, ?, ?, ?, ?, ?)`

const insertExpense = `INSERT INTO expenses (id, date, category, description, amount, resident, staff) VALUES (?, ?, ?, ?, ?, ?, ?)`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func appendRevenue(ctx context.Context, ex execer, e core.RevenueEntry) error {
	_, err := ex.ExecContext(ctx, insertRevenue,
		e.ID, e.Date.String(), e.Description, e.Amount, e.Resident, string(e.Method))
	if err != nil {
		return fmt.Errorf("insert revenue: %w", err)
	}
	return nil
}

func appendExpense(ctx context.Context, ex execer, e core.ExpenseEntry) error {
	_, err := ex.ExecContext(ctx, insertExpense,
		e.ID, e.Date.String(), string(e.Category), e.Description, e.Amount, e.Resident, e.Staff)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) AppendRevenue(ctx context.Context, e core.RevenueEntry) error {
	if err := appendRevenue(ctx, r.db, e); err != nil {
		return err
	}
	slog.DebugContext(ctx, "Revenue saved to SQLite",
		log.FieldComponent, log.ComponentStorage,
		log.FieldOperation, log.OpRecordRevenue,
		log.FieldName, e.Description,
		log.FieldAmount, e.Amount.String(),
		log.FieldDate, e.Date.String())
	return nil
}

func (r *SQLiteRepository) AppendExpense(ctx context.Context, e core.ExpenseEntry) error {
	if err := appendExpense(ctx, r.db, e); err != nil {
		return err
	}
	slog.DebugContext(ctx, "Expense saved to SQLite",
		log.FieldComponent, log.ComponentStorage,
		log.FieldOperation, log.OpRecordExpense,
		log.FieldCategory, e.Category,
		log.FieldAmount, e.Amount.String(),
		log.FieldDate, e.Date.String())
	return nil
}

func (r *SQLiteRepository) Revenue(ctx context.Context) ([]core.RevenueEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, description, amount, resident, method FROM revenue ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list revenue: %w", err)
	}
	defer rows.Close()

	var out []core.RevenueEntry
	for rows.Next() {
		var (
			e            core.RevenueEntry
			date, method string
		)
		if err := rows.Scan(&e.ID, &date, &e.Description, &e.Amount, &e.Resident, &method); err != nil {
			return nil, fmt.Errorf("scan revenue: %w", err)
		}
		if e.Date, err = core.ParseDate(date); err != nil {
			return nil, fmt.Errorf("revenue %s: %w", e.ID, err)
		}
		e.Method = core.PaymentMethod(method)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) Expenses(ctx context.Context) ([]core.ExpenseEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, category, description, amount, resident, staff FROM expenses ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.ExpenseEntry
	for rows.Next() {
		var (
			e              core.ExpenseEntry
			date, category string
		)
		if err := rows.Scan(&e.ID, &date, &category, &e.Description, &e.Amount, &e.Resident, &e.Staff); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if e.Date, err = core.ParseDate(date); err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		e.Category = core.Category(category)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) InsertResident(ctx context.Context, res core.Resident) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := residentRow(ctx, tx, res.Name); err == nil {
			return fmt.Errorf("%w: resident %q", core.ErrDuplicateKey, res.Name)
		} else if !errors.Is(err, core.ErrUnknownResident) {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO residents (name, room, rent, paid) VALUES (?, ?, ?, ?)`,
			res.Name, res.Room, res.Rent, res.Paid)
		if err != nil {
			return fmt.Errorf("insert resident: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) UpdateResident(ctx context.Context, res core.Resident) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE residents SET room = ?, rent = ? WHERE name = ?`, res.Room, res.Rent, res.Name)
	if err != nil {
		return fmt.Errorf("update resident: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("update resident: %w", err)
	} else if n == 0 {
		return fmt.Errorf("%w: %q", core.ErrUnknownResident, res.Name)
	}
	return nil
}

func residentRow(ctx context.Context, ex execer, name string) (core.Resident, error) {
	var res core.Resident
	err := ex.QueryRowContext(ctx,
		`SELECT name, room, rent, paid FROM residents WHERE name = ?`, name).
		Scan(&res.Name, &res.Room, &res.Rent, &res.Paid)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Resident{}, fmt.Errorf("%w: %q", core.ErrUnknownResident, name)
	}
	if err != nil {
		return core.Resident{}, fmt.Errorf("get resident: %w", err)
	}
	return res, nil
}

func (r *SQLiteRepository) Resident(ctx context.Context, name string) (core.Resident, error) {
	return residentRow(ctx, r.db, name)
}

func (r *SQLiteRepository) Residents(ctx context.Context) ([]core.Resident, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, room, rent, paid FROM residents ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list residents: %w", err)
	}
	defer rows.Close()

	var out []core.Resident
	for rows.Next() {
		var res core.Resident
		if err := rows.Scan(&res.Name, &res.Room, &res.Rent, &res.Paid); err != nil {
			return nil, fmt.Errorf("scan resident: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// CreditResident raises paid and books the payment in one transaction.
func (r *SQLiteRepository) CreditResident(ctx context.Context, name string, payment core.RevenueEntry) (core.Resident, error) {
	var res core.Resident
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if res, err = residentRow(ctx, tx, name); err != nil {
			return err
		}
		res.Paid = res.Paid.Add(payment.Amount)
		if _, err := tx.ExecContext(ctx,
			`UPDATE residents SET paid = ? WHERE name = ?`, res.Paid, name); err != nil {
			return fmt.Errorf("update resident paid: %w", err)
		}
		return appendRevenue(ctx, tx, payment)
	})
	if err != nil {
		return core.Resident{}, err
	}
	slog.DebugContext(ctx, "Resident payment saved to SQLite",
		log.FieldComponent, log.ComponentStorage,
		log.FieldOperation, log.OpPayment,
		log.FieldName, name,
		log.FieldAmount, payment.Amount.String(),
		"paid", res.Paid.String())
	return res, nil
}

func (r *SQLiteRepository) InsertStaff(ctx context.Context, m core.StaffMember) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := staffRow(ctx, tx, m.Name); err == nil {
			return fmt.Errorf("%w: staff %q", core.ErrDuplicateKey, m.Name)
		} else if !errors.Is(err, core.ErrUnknownStaff) {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO staff (name, position, expected, paid) VALUES (?, ?, ?, ?)`,
			m.Name, m.Position, m.Expected, m.Paid)
		if err != nil {
			return fmt.Errorf("insert staff: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) UpdateStaff(ctx context.Context, m core.StaffMember) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE staff SET position = ?, expected = ? WHERE name = ?`, m.Position, m.Expected, m.Name)
	if err != nil {
		return fmt.Errorf("update staff: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("update staff: %w", err)
	} else if n == 0 {
		return fmt.Errorf("%w: %q", core.ErrUnknownStaff, m.Name)
	}
	return nil
}

func staffRow(ctx context.Context, ex execer, name string) (core.StaffMember, error) {
	var m core.StaffMember
	err := ex.QueryRowContext(ctx,
		`SELECT name, position, expected, paid FROM staff WHERE name = ?`, name).
		Scan(&m.Name, &m.Position, &m.Expected, &m.Paid)
	if errors.Is(err, sql.ErrNoRows) {
		return core.StaffMember{}, fmt.Errorf("%w: %q", core.ErrUnknownStaff, name)
	}
	if err != nil {
		return core.StaffMember{}, fmt.Errorf("get staff member: %w", err)
	}
	return m, nil
}

func (r *SQLiteRepository) StaffMember(ctx context.Context, name string) (core.StaffMember, error) {
	return staffRow(ctx, r.db, name)
}

func (r *SQLiteRepository) Staff(ctx context.Context) ([]core.StaffMember, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, position, expected, paid FROM staff ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()

	var out []core.StaffMember
	for rows.Next() {
		var m core.StaffMember
		if err := rows.Scan(&m.Name, &m.Position, &m.Expected, &m.Paid); err != nil {
			return nil, fmt.Errorf("scan staff member: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// CreditStaff raises paid and books the payout in one transaction.
func (r *SQLiteRepository) CreditStaff(ctx context.Context, name string, payout core.ExpenseEntry) (core.StaffMember, error) {
	var m core.StaffMember
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if m, err = staffRow(ctx, tx, name); err != nil {
			return err
		}
		m.Paid = m.Paid.Add(payout.Amount)
		if _, err := tx.ExecContext(ctx,
			`UPDATE staff SET paid = ? WHERE name = ?`, m.Paid, name); err != nil {
			return fmt.Errorf("update staff paid: %w", err)
		}
		return appendExpense(ctx, tx, payout)
	})
	if err != nil {
		return core.StaffMember{}, err
	}
	return m, nil
}

func (r *SQLiteRepository) AppendHistory(ctx context.Context, p core.HistoryPoint) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO rent_history (month, rent) VALUES (?, ?)`, p.Month, p.Rent)
	if err != nil {
		return fmt.Errorf("insert rent history: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ReplaceHistory(ctx context.Context, points []core.HistoryPoint) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM rent_history`); err != nil {
			return fmt.Errorf("clear rent history: %w", err)
		}
		for _, p := range points {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO rent_history (month, rent) VALUES (?, ?)`, p.Month, p.Rent); err != nil {
				return fmt.Errorf("insert rent history: %w", err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) History(ctx context.Context) ([]core.HistoryPoint, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT month, rent FROM rent_history ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list rent history: %w", err)
	}
	defer rows.Close()

	var out []core.HistoryPoint
	for rows.Next() {
		var p core.HistoryPoint
		if err := rows.Scan(&p.Month, &p.Rent); err != nil {
			return nil, fmt.Errorf("scan rent history: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// withTx runs fn inside a transaction. With a single connection every
// statement in fn must go through tx.
func (r *SQLiteRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) InsertTask(ctx context.Context, t core.Task) error {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE id = ?`, t.ID).Scan(&n); err != nil {
			return fmt.Errorf("get task: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("%w: task %q", core.ErrDuplicateKey, t.ID)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (id, description, assigned_to, due, repetition, last_done) VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, t.Description, t.AssignedTo, t.Due.String(), string(t.Repeat), t.LastDone.String())
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	slog.DebugContext(ctx, "Task saved to SQLite",
		log.FieldComponent, log.ComponentStorage,
		log.FieldOperation, log.OpScheduleTask,
		log.FieldName, t.Description,
		log.FieldDate, t.Due.String())
	return nil
}

const selectTask = `SELECT id, description, assigned_to, due, repetition, last_done FROM tasks`

func scanTask(scan func(dest ...any) error) (core.Task, error) {
	var (
		t                     core.Task
		due, repeat, lastDone string
	)
	if err := scan(&t.ID, &t.Description, &t.AssignedTo, &due, &repeat, &lastDone); err != nil {
		return core.Task{}, err
	}
	var err error
	if t.Due, err = core.ParseDate(due); err != nil {
		return core.Task{}, fmt.Errorf("task %s: %w", t.ID, err)
	}
	if lastDone != "" {
		if t.LastDone, err = core.ParseDate(lastDone); err != nil {
			return core.Task{}, fmt.Errorf("task %s: %w", t.ID, err)
		}
	}
	t.Repeat = core.Repetition(repeat)
	return t, nil
}

func (r *SQLiteRepository) Tasks(ctx context.Context) ([]core.Task, error) {
	rows, err := r.db.QueryContext(ctx, selectTask+` ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []core.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// MarkTaskDone updates last_done and reads the row back in one transaction.
func (r *SQLiteRepository) MarkTaskDone(ctx context.Context, id string, on core.Date) (core.Task, error) {
	var t core.Task
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `UPDATE tasks SET last_done = ? WHERE id = ?`, on.String(), id)
		if err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		if n, err := result.RowsAffected(); err != nil {
			return fmt.Errorf("update task: %w", err)
		} else if n == 0 {
			return fmt.Errorf("%w: %q", core.ErrUnknownTask, id)
		}
		t, err = scanTask(tx.QueryRowContext(ctx, selectTask+` WHERE id = ?`, id).Scan)
		if err != nil {
			return fmt.Errorf("get task: %w", err)
		}
		return nil
	})
	if err != nil {
		return core.Task{}, err
	}
	return t, nil
}
