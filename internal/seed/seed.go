// Package seed loads session fixtures from TOML and replays them into a
// ledger. It also generates the synthetic rent history used when a session
// has no real one.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"hostel/internal/core"
	"hostel/internal/ledger"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

type (
	File struct {
		Residents []Resident     `toml:"residents"`
		Staff     []Staff        `toml:"staff"`
		Revenue   []Revenue      `toml:"revenue"`
		Expenses  []Expense      `toml:"expenses"`
		Payments  []Payment      `toml:"payments"`
		Tasks     []Task         `toml:"tasks"`
		History   []History      `toml:"history"`
		Synthetic *SyntheticSpec `toml:"synthetic_history"`
	}

	Resident struct {
		Name string          `toml:"name"`
		Room string          `toml:"room"`
		Rent decimal.Decimal `toml:"rent"`
	}

	Staff struct {
		Name     string          `toml:"name"`
		Position string          `toml:"position"`
		Expected decimal.Decimal `toml:"expected"`
	}

	Revenue struct {
		Date        core.Date       `toml:"date"`
		Description string          `toml:"description"`
		Amount      decimal.Decimal `toml:"amount"`
	}

	Expense struct {
		Date        core.Date       `toml:"date"`
		Category    string          `toml:"category"`
		Description string          `toml:"description"`
		Amount      decimal.Decimal `toml:"amount"`
		Resident    string          `toml:"resident"`
	}

	// Payment names exactly one of Resident or Staff.
	Payment struct {
		Resident string          `toml:"resident"`
		Staff    string          `toml:"staff"`
		Amount   decimal.Decimal `toml:"amount"`
		Date     core.Date       `toml:"date"`
		Method   string          `toml:"method"`

		// Description overrides the generated revenue text. Resident
		// payments only.
		Description string `toml:"description"`
	}

	// Task is a chore or renewal. Repeat is once, daily, weekly, monthly
	// or yearly; empty means once.
	Task struct {
		Description string    `toml:"description"`
		AssignedTo  string    `toml:"assigned_to"`
		Due         core.Date `toml:"due"`
		Repeat      string    `toml:"repeat"`
	}

	History struct {
		Month int             `toml:"month"`
		Rent  decimal.Decimal `toml:"rent"`
	}

	SyntheticSpec struct {
		Months int    `toml:"months"`
		Min    int64  `toml:"min"`
		Max    int64  `toml:"max"`
		Seed   uint64 `toml:"seed"`
	}
)

// Recorder is the mutation surface Apply drives. services.LedgerService
// satisfies it.
type Recorder interface {
	RecordRevenue(ctx context.Context, date core.Date, description string, amount decimal.Decimal) (core.RevenueEntry, error)
	RecordExpense(ctx context.Context, date core.Date, category core.Category, description string, amount decimal.Decimal, residentRef string) (core.ExpenseEntry, error)
	RegisterResident(ctx context.Context, name, room string, rent decimal.Decimal) (core.Resident, error)
	RecordResidentPayment(ctx context.Context, name string, amount decimal.Decimal, date core.Date, opts ...ledger.PaymentOption) (core.RevenueEntry, error)
	RegisterStaff(ctx context.Context, name, position string, expected decimal.Decimal) (core.StaffMember, error)
	RecordStaffPayment(ctx context.Context, name string, amount decimal.Decimal, date core.Date) (core.ExpenseEntry, error)
	ScheduleTask(ctx context.Context, description, assignedTo string, due core.Date, repeat core.Repetition) (core.Task, error)
	ReplaceRentHistory(ctx context.Context, points []core.HistoryPoint) error
}

// Load reads a fixture file. Keys the fixture format does not know are an
// error so typos do not silently drop data.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return Parse(string(data))
}

func Parse(data string) (*File, error) {
	var f File
	md, err := toml.Decode(data, &f)
	if err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parsing seed file: unknown key %q", undecoded[0].String())
	}
	return &f, nil
}

// Apply replays f into r: residents, staff, revenue, expenses, payments,
// tasks and finally the rent history. Each section keeps file order. The first error
// stops the replay.
func Apply(ctx context.Context, r Recorder, f *File) error {
	for _, res := range f.Residents {
		if _, err := r.RegisterResident(ctx, res.Name, res.Room, res.Rent); err != nil {
			return fmt.Errorf("seed resident %q: %w", res.Name, err)
		}
	}
	for _, s := range f.Staff {
		if _, err := r.RegisterStaff(ctx, s.Name, s.Position, s.Expected); err != nil {
			return fmt.Errorf("seed staff %q: %w", s.Name, err)
		}
	}
	for i, e := range f.Revenue {
		if _, err := r.RecordRevenue(ctx, e.Date, e.Description, e.Amount); err != nil {
			return fmt.Errorf("seed revenue #%d: %w", i+1, err)
		}
	}
	for i, e := range f.Expenses {
		category, err := core.ParseCategory(e.Category)
		if err != nil {
			return fmt.Errorf("seed expense #%d: %w", i+1, err)
		}
		if _, err := r.RecordExpense(ctx, e.Date, category, e.Description, e.Amount, e.Resident); err != nil {
			return fmt.Errorf("seed expense #%d: %w", i+1, err)
		}
	}
	for i, p := range f.Payments {
		if err := applyPayment(ctx, r, p); err != nil {
			return fmt.Errorf("seed payment #%d: %w", i+1, err)
		}
	}
	for i, t := range f.Tasks {
		repeat, err := core.ParseRepetition(t.Repeat)
		if err != nil {
			return fmt.Errorf("seed task #%d: %w", i+1, err)
		}
		if _, err := r.ScheduleTask(ctx, t.Description, t.AssignedTo, t.Due, repeat); err != nil {
			return fmt.Errorf("seed task #%d: %w", i+1, err)
		}
	}

	history, err := f.RentHistory()
	if err != nil {
		return err
	}
	if len(history) > 0 {
		if err := r.ReplaceRentHistory(ctx, history); err != nil {
			return fmt.Errorf("seed rent history: %w", err)
		}
	}
	return nil
}

func applyPayment(ctx context.Context, r Recorder, p Payment) error {
	switch {
	case p.Resident != "" && p.Staff != "":
		return fmt.Errorf("payment names both resident %q and staff %q", p.Resident, p.Staff)
	case p.Resident != "":
		var opts []ledger.PaymentOption
		if p.Method != "" {
			opts = append(opts, ledger.WithMethod(core.PaymentMethod(p.Method)))
		}
		if p.Description != "" {
			opts = append(opts, ledger.WithDescription(p.Description))
		}
		_, err := r.RecordResidentPayment(ctx, p.Resident, p.Amount, p.Date, opts...)
		return err
	case p.Staff != "":
		if p.Description != "" {
			return fmt.Errorf("staff payment to %q cannot carry a description", p.Staff)
		}
		_, err := r.RecordStaffPayment(ctx, p.Staff, p.Amount, p.Date)
		return err
	default:
		return errors.New("payment names neither a resident nor a staff member")
	}
}

// RentHistory returns the explicit history, or the synthetic one when the
// fixture asks for it. Explicit points win.
func (f *File) RentHistory() ([]core.HistoryPoint, error) {
	if len(f.History) > 0 {
		out := make([]core.HistoryPoint, len(f.History))
		for i, h := range f.History {
			out[i] = core.HistoryPoint{Month: h.Month, Rent: h.Rent}
		}
		return out, nil
	}
	if f.Synthetic == nil {
		return nil, nil
	}
	s := f.Synthetic
	months := s.Months
	if months == 0 {
		months = DefaultSyntheticMonths
	}
	lo, hi := s.Min, s.Max
	if lo == 0 && hi == 0 {
		lo, hi = DefaultSyntheticMin, DefaultSyntheticMax
	}
	rng := rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15))
	return SyntheticRentHistory(rng, months, lo, hi)
}
