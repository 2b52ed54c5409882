package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	CategoryRent        Category = "Rent"
	CategoryLaundry     Category = "Laundry"
	CategoryInternet    Category = "Internet"
	CategoryMess        Category = "Mess"
	CategoryMaintenance Category = "Maintenance"
	CategoryUtilities   Category = "Utilities"
	CategorySalary      Category = "Salary"
	CategoryOther       Category = "Other"
)

const (
	MethodCash     PaymentMethod = "Cash"
	MethodTransfer PaymentMethod = "Bank Transfer"
	MethodOnline   PaymentMethod = "Online Payment"
)

type (
	Category      string
	PaymentMethod string

	Date struct {
		time.Time
	}

	RevenueEntry struct {
		ID          string
		Date        Date
		Description string
		Amount      decimal.Decimal
		Resident    string        // set when the entry is a resident payment
		Method      PaymentMethod // optional
	}

	ExpenseEntry struct {
		ID          string
		Date        Date
		Category    Category
		Description string
		Amount      decimal.Decimal
		Resident    string // optional resident reference
		Staff       string // set when the entry is a staff payout
	}

	Resident struct {
		Name string
		Room string
		Rent decimal.Decimal
		Paid decimal.Decimal
	}

	StaffMember struct {
		Name     string
		Position string
		Expected decimal.Decimal
		Paid     decimal.Decimal
	}

	// HistoryPoint is one observed monthly rent collection used as forecaster
	// input. Month is a 1-based index; 1..12 is one year of history and later
	// indices continue the series.
	HistoryPoint struct {
		Month int
		Rent  decimal.Decimal
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidMethod    = errors.New("invalid payment method")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidMonth     = errors.New("invalid month index")
	ErrEmptyName        = errors.New("empty name")
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrUnknownResident  = errors.New("unknown resident")
	ErrUnknownStaff     = errors.New("unknown staff member")
	ErrInsufficientData = errors.New("insufficient data")
)

var categories = []Category{
	CategoryRent,
	CategoryLaundry,
	CategoryInternet,
	CategoryMess,
	CategoryMaintenance,
	CategoryUtilities,
	CategorySalary,
	CategoryOther,
}

// Categories returns the recognised expense categories in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ParseCategory matches s case-insensitively against the recognised categories
// and returns the canonical spelling.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

func (c Category) Validate() error {
	for _, known := range categories {
		if c == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidCategory, string(c))
}

// ParsePaymentMethod accepts an empty string (method not recorded) or one of
// the known methods, case-insensitively.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, m := range []PaymentMethod{MethodCash, MethodTransfer, MethodOnline} {
		if strings.EqualFold(string(m), s) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMethod, s)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("%w: date cannot be zero", ErrInvalidDate)
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(time.DateOnly)
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// MarshalText renders the date as YYYY-MM-DD.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts YYYY-MM-DD or an RFC 3339 timestamp, which is how
// TOML and JSON decoders hand over date values.
func (d *Date) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if parsed, err := ParseDate(s); err == nil {
		*d = parsed
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	*d = DateOf(t)
	return nil
}

func (e RevenueEntry) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (e ExpenseEntry) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Category.Validate(); err != nil {
		return err
	}
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (r Resident) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if err := ValidateAmount(r.Rent); err != nil {
		return fmt.Errorf("rent: %w", err)
	}
	return nil
}

func (s StaffMember) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if err := ValidateAmount(s.Expected); err != nil {
		return fmt.Errorf("expected payment: %w", err)
	}
	return nil
}

func (p HistoryPoint) Validate() error {
	if p.Month < 1 {
		return fmt.Errorf("%w: %d (months start at 1)", ErrInvalidMonth, p.Month)
	}
	if err := ValidateAmount(p.Rent); err != nil {
		return fmt.Errorf("month %d: %w", p.Month, err)
	}
	return nil
}

// EntryDate and EntryAmount let both entry kinds feed the same aggregations.
func (e RevenueEntry) EntryDate() Date              { return e.Date }
func (e RevenueEntry) EntryAmount() decimal.Decimal { return e.Amount }
func (e ExpenseEntry) EntryDate() Date              { return e.Date }
func (e ExpenseEntry) EntryAmount() decimal.Decimal { return e.Amount }

// Entry is implemented by RevenueEntry and ExpenseEntry.
type Entry interface {
	EntryDate() Date
	EntryAmount() decimal.Decimal
}
