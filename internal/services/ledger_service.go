// Package services orchestrates ledger mutations, event publishing and the
// derived views handed to the command-line collaborator.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hostel/internal/balance"
	"hostel/internal/core"
	"hostel/internal/events"
	"hostel/internal/forecast"
	"hostel/internal/ledger"
	"hostel/internal/log"
	"hostel/internal/report"

	"github.com/shopspring/decimal"
)

// LedgerService wraps a Ledger. Every successful mutation is followed by an
// event; a failed publish is logged and never fails the mutation.
type LedgerService struct {
	ledger    *ledger.Ledger
	publisher events.Publisher
	logger    *log.Logger
	session   string
	taxRate   decimal.Decimal
	months    []time.Month
}

type Option func(*LedgerService)

func WithPublisher(p events.Publisher) Option {
	return func(s *LedgerService) {
		if p != nil {
			s.publisher = p
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *LedgerService) {
		if l != nil {
			s.logger = l.WithComponent(log.ComponentLedger)
		}
	}
}

// WithSession labels published events and log records.
func WithSession(name string) Option {
	return func(s *LedgerService) {
		s.session = name
	}
}

func WithTaxRate(rate decimal.Decimal) Option {
	return func(s *LedgerService) {
		s.taxRate = rate
	}
}

// WithTrendMonths overrides the Jan..Jun labels of the dashboard trend.
func WithTrendMonths(months []time.Month) Option {
	return func(s *LedgerService) {
		s.months = months
	}
}

func NewLedgerService(l *ledger.Ledger, opts ...Option) *LedgerService {
	s := &LedgerService{
		ledger:    l,
		publisher: events.Nop{},
		logger:    log.Discard(),
		taxRate:   balance.DefaultTaxRate,
		months:    report.DefaultTrendMonths,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ledger exposes the wrapped ledger for read-only queries.
func (s *LedgerService) Ledger() *ledger.Ledger {
	return s.ledger
}

func (s *LedgerService) RecordRevenue(ctx context.Context, date core.Date, description string, amount decimal.Decimal) (core.RevenueEntry, error) {
	e, err := s.ledger.RecordRevenue(ctx, date, description, amount)
	if err != nil {
		return core.RevenueEntry{}, err
	}
	s.logMutation(ctx, log.OpRecordRevenue, e.Description, e.Amount, e.Date.String())
	s.publish(ctx, events.RevenueEvent(e))
	return e, nil
}

func (s *LedgerService) RecordExpense(ctx context.Context, date core.Date, category core.Category, description string, amount decimal.Decimal, residentRef string) (core.ExpenseEntry, error) {
	e, err := s.ledger.RecordExpense(ctx, date, category, description, amount, residentRef)
	if err != nil {
		return core.ExpenseEntry{}, err
	}
	s.logMutation(ctx, log.OpRecordExpense, e.Description, e.Amount, e.Date.String())
	s.publish(ctx, events.ExpenseEvent(e))
	return e, nil
}

func (s *LedgerService) RegisterResident(ctx context.Context, name, room string, rent decimal.Decimal) (core.Resident, error) {
	r, err := s.ledger.RegisterResident(ctx, name, room, rent)
	if err != nil {
		return core.Resident{}, err
	}
	s.logMutation(ctx, log.OpRegister, r.Name, r.Rent, "")
	s.publish(ctx, events.ResidentEvent(events.ResidentRegistered, r))
	return r, nil
}

func (s *LedgerService) UpdateResident(ctx context.Context, name, room string, rent decimal.Decimal) (core.Resident, error) {
	r, err := s.ledger.UpdateResident(ctx, name, room, rent)
	if err != nil {
		return core.Resident{}, err
	}
	s.logMutation(ctx, log.OpUpdate, r.Name, r.Rent, "")
	s.publish(ctx, events.ResidentEvent(events.ResidentUpdated, r))
	return r, nil
}

func (s *LedgerService) RecordResidentPayment(ctx context.Context, name string, amount decimal.Decimal, date core.Date, opts ...ledger.PaymentOption) (core.RevenueEntry, error) {
	e, err := s.ledger.RecordResidentPayment(ctx, name, amount, date, opts...)
	if err != nil {
		return core.RevenueEntry{}, err
	}
	s.logMutation(ctx, log.OpPayment, e.Resident, e.Amount, e.Date.String())
	s.publish(ctx, events.ResidentPaymentEvent(e))
	return e, nil
}

func (s *LedgerService) RegisterStaff(ctx context.Context, name, position string, expected decimal.Decimal) (core.StaffMember, error) {
	m, err := s.ledger.RegisterStaff(ctx, name, position, expected)
	if err != nil {
		return core.StaffMember{}, err
	}
	s.logMutation(ctx, log.OpRegister, m.Name, m.Expected, "")
	s.publish(ctx, events.StaffEvent(events.StaffRegistered, m))
	return m, nil
}

func (s *LedgerService) UpdateStaff(ctx context.Context, name, position string, expected decimal.Decimal) (core.StaffMember, error) {
	m, err := s.ledger.UpdateStaff(ctx, name, position, expected)
	if err != nil {
		return core.StaffMember{}, err
	}
	s.logMutation(ctx, log.OpUpdate, m.Name, m.Expected, "")
	s.publish(ctx, events.StaffEvent(events.StaffUpdated, m))
	return m, nil
}

func (s *LedgerService) RecordStaffPayment(ctx context.Context, name string, amount decimal.Decimal, date core.Date) (core.ExpenseEntry, error) {
	e, err := s.ledger.RecordStaffPayment(ctx, name, amount, date)
	if err != nil {
		return core.ExpenseEntry{}, err
	}
	s.logMutation(ctx, log.OpPayment, e.Staff, e.Amount, e.Date.String())
	s.publish(ctx, events.StaffPaymentEvent(e))
	return e, nil
}

func (s *LedgerService) AppendRentHistory(ctx context.Context, p core.HistoryPoint) error {
	if err := s.ledger.AppendRentHistory(ctx, p); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "Rent history point appended",
		log.FieldOperation, log.OpAppendHistory,
		"month", p.Month,
		log.FieldAmount, p.Rent.StringFixed(2))
	return nil
}

func (s *LedgerService) ReplaceRentHistory(ctx context.Context, points []core.HistoryPoint) error {
	if err := s.ledger.ReplaceRentHistory(ctx, points); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "Rent history replaced",
		log.FieldOperation, log.OpReplaceHistory,
		"points", len(points))
	return nil
}

func (s *LedgerService) ScheduleTask(ctx context.Context, description, assignedTo string, due core.Date, repeat core.Repetition) (core.Task, error) {
	t, err := s.ledger.ScheduleTask(ctx, description, assignedTo, due, repeat)
	if err != nil {
		return core.Task{}, err
	}
	s.logger.DebugContext(ctx, "Task scheduled",
		log.FieldOperation, log.OpScheduleTask,
		log.FieldName, t.Description,
		log.FieldDate, t.Due.String(),
		"repeat", t.Repeat.String())
	s.publish(ctx, events.TaskEvent(events.TaskScheduled, t))
	return t, nil
}

func (s *LedgerService) CompleteTask(ctx context.Context, id string, on core.Date) (core.Task, error) {
	t, err := s.ledger.CompleteTask(ctx, id, on)
	if err != nil {
		return core.Task{}, err
	}
	s.logger.DebugContext(ctx, "Task completed",
		log.FieldOperation, log.OpCompleteTask,
		log.FieldName, t.Description,
		log.FieldDate, on.String())
	s.publish(ctx, events.TaskEvent(events.TaskCompleted, t))
	return t, nil
}

// DueTasks returns the tasks that need doing on the calendar day of now, in
// the order they were scheduled.
func (s *LedgerService) DueTasks(ctx context.Context, now time.Time) ([]core.Task, error) {
	tasks, err := s.ledger.Tasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	var due []core.Task
	for _, t := range tasks {
		ok, err := TaskDue(t, now)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", t.ID, err)
		}
		if ok {
			due = append(due, t)
		}
	}
	return due, nil
}

// logMutation records a successful mutation at debug level.
func (s *LedgerService) logMutation(ctx context.Context, op, name string, amount decimal.Decimal, date string) {
	s.logger.DebugContext(ctx, "Ledger updated",
		log.NewFields().
			WithOperation(op).
			WithEntry(name, amount, date).
			ToSlice()...)
}

func (s *LedgerService) publish(ctx context.Context, e events.Event) {
	e.Session = s.session
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish ledger event",
			log.NewFields().
				WithOperation(log.OpPublish).
				WithEvent(e.ID, string(e.Type)).
				WithEntry(e.Name, e.Amount, e.Date).
				WithError(err).
				ToSlice()...)
	}
}

// Dashboard is the snapshot a dashboard front end renders.
type Dashboard struct {
	Sheet        core.BalanceSheet
	Roll         core.RentRoll
	TaxRate      decimal.Decimal
	EstimatedTax decimal.Decimal
	Residents    []core.ResidentStatus
	Staff        []core.StaffStatus
	ByCategory   []core.CategoryAmount
	ByResident   []core.PartyAmount
	ByStaff      []core.PartyAmount
	RevenueTrend []core.MonthAmount
	ExpenseTrend []core.MonthAmount
}

func (s *LedgerService) Dashboard(ctx context.Context) (Dashboard, error) {
	revenue, err := s.ledger.Revenue(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list revenue: %w", err)
	}
	expenses, err := s.ledger.Expenses(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list expenses: %w", err)
	}
	residents, err := s.ledger.ResidentStatuses(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	staff, err := s.ledger.StaffStatuses(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	roll, err := s.ledger.RentRoll(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Sheet:        balance.Sheet(revenue, expenses),
		Roll:         roll,
		TaxRate:      s.taxRate,
		EstimatedTax: balance.EstimatedTax(revenue, s.taxRate),
		Residents:    residents,
		Staff:        staff,
		ByCategory:   report.GroupByCategory(expenses),
		ByResident:   report.GroupByResident(revenue),
		ByStaff:      report.GroupByStaff(expenses),
		RevenueTrend: report.MonthlyTrend(revenue, s.months),
		ExpenseTrend: report.MonthlyTrend(expenses, s.months),
	}, nil
}

// ForecastResult carries the history the model was fitted on.
type ForecastResult struct {
	History     []core.HistoryPoint
	FromLedger  bool // history derived from resident payments
	Model       forecast.Model
	Projections []forecast.Projection
}

// Forecast fits the stored rent history and projects horizon months. With no
// stored history it falls back to monthly resident payment totals.
func (s *LedgerService) Forecast(ctx context.Context, horizon int) (ForecastResult, error) {
	if horizon <= 0 {
		horizon = forecast.DefaultHorizon
	}
	history, err := s.ledger.RentHistory(ctx)
	if err != nil {
		return ForecastResult{}, fmt.Errorf("list rent history: %w", err)
	}
	res := ForecastResult{History: history}
	if len(history) == 0 {
		revenue, err := s.ledger.Revenue(ctx)
		if err != nil {
			return ForecastResult{}, fmt.Errorf("list revenue: %w", err)
		}
		res.History = report.RentHistoryFromPayments(revenue)
		res.FromLedger = true
	}

	res.Model, res.Projections, err = forecast.Forecast(res.History, horizon)
	if err != nil {
		if errors.Is(err, core.ErrInsufficientData) {
			s.logger.WarnContext(ctx, "Not enough rent history to forecast",
				"points", len(res.History))
		}
		return res, fmt.Errorf("forecast rent: %w", err)
	}
	return res, nil
}
