package log

import "github.com/shopspring/decimal"

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldSession   = "session"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldEventType = "event_type"
	FieldEventID   = "event_id"
	FieldName      = "name"
	FieldAmount    = "amount"
	FieldCategory  = "category"
	FieldDate      = "date"
	FieldBackend   = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentEvents  = "events"
	ComponentExport  = "export"
	ComponentSeed    = "seed"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpRecordRevenue  = "record_revenue"
	OpRecordExpense  = "record_expense"
	OpRegister       = "register"
	OpUpdate         = "update"
	OpPayment        = "payment"
	OpReplaceHistory = "replace_history"
	OpAppendHistory  = "append_history"
	OpScheduleTask   = "schedule_task"
	OpCompleteTask   = "complete_task"
	OpPublish        = "publish"
	OpExport         = "export"
	OpSeed           = "seed"
	OpShutdown       = "shutdown"
	OpStartup        = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds the component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds the error message when err is not nil
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds the operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithEntry adds the fields that identify a ledger entry or payment.
func (f LogFields) WithEntry(name string, amount decimal.Decimal, date string) LogFields {
	f[FieldName] = name
	f[FieldAmount] = amount.StringFixed(2)
	if date != "" {
		f[FieldDate] = date
	}
	return f
}

// WithEvent adds event id and type fields
func (f LogFields) WithEvent(id, eventType string) LogFields {
	f[FieldEventID] = id
	f[FieldEventType] = eventType
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
