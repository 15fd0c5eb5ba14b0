// Package logging provides a small structured-logging abstraction so
// the aggregation packages stay decoupled from the concrete logging
// framework and can be exercised in tests with a mock.
package logging

// Logger is the structured logging interface used by the pipeline
// components.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger
}

// Field is a key-value pair attached to a log message.
type Field struct {
	Key   string
	Value interface{}
}

// Standardized field names used across the pipeline's log output.
const (
	FieldFile     = "file"
	FieldPayer    = "payer"
	FieldPeriod   = "period"
	FieldYear     = "year"
	FieldSheet    = "sheet"
	FieldWorkbook = "workbook"
	FieldCategory = "category"
	FieldCount    = "count"
	FieldReason   = "reason"
)
