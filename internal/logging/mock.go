package logging

// MockLogger captures log entries for verification in tests.
type MockLogger struct {
	Entries       []LogEntry
	pendingError  error
	pendingFields []Field
}

// LogEntry is a single log entry captured by MockLogger.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	allFields := append(m.pendingFields, fields...)
	m.Entries = append(m.Entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  allFields,
		Error:   m.pendingError,
	})
}

// Debug logs a debug-level message with optional fields.
func (m *MockLogger) Debug(msg string, fields ...Field) {
	m.record("DEBUG", msg, fields)
}

// Info logs an info-level message with optional fields.
func (m *MockLogger) Info(msg string, fields ...Field) {
	m.record("INFO", msg, fields)
}

// Warn logs a warning-level message with optional fields.
func (m *MockLogger) Warn(msg string, fields ...Field) {
	m.record("WARN", msg, fields)
}

// Error logs an error-level message with optional fields.
func (m *MockLogger) Error(msg string, fields ...Field) {
	m.record("ERROR", msg, fields)
}

// WithError returns a new logger with an error field attached.
// Entries recorded through the child land in the parent's slice only
// until the parent appends again, so tests should keep a single chain.
func (m *MockLogger) WithError(err error) Logger {
	return &childLogger{parent: m.root(), pendingError: err, pendingFields: m.pendingFields}
}

// WithField returns a new logger with a single field attached.
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

// WithFields returns a new logger with multiple fields attached.
func (m *MockLogger) WithFields(fields ...Field) Logger {
	allFields := append(append([]Field{}, m.pendingFields...), fields...)
	return &childLogger{parent: m.root(), pendingError: m.pendingError, pendingFields: allFields}
}

func (m *MockLogger) root() *MockLogger { return m }

// childLogger forwards records to the root MockLogger so every entry
// in a With* chain is visible from the logger the test created.
type childLogger struct {
	parent        *MockLogger
	pendingError  error
	pendingFields []Field
}

func (c *childLogger) record(level, msg string, fields []Field) {
	allFields := append(append([]Field{}, c.pendingFields...), fields...)
	c.parent.Entries = append(c.parent.Entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  allFields,
		Error:   c.pendingError,
	})
}

func (c *childLogger) Debug(msg string, fields ...Field) { c.record("DEBUG", msg, fields) }
func (c *childLogger) Info(msg string, fields ...Field)  { c.record("INFO", msg, fields) }
func (c *childLogger) Warn(msg string, fields ...Field)  { c.record("WARN", msg, fields) }
func (c *childLogger) Error(msg string, fields ...Field) { c.record("ERROR", msg, fields) }

func (c *childLogger) WithError(err error) Logger {
	return &childLogger{parent: c.parent, pendingError: err, pendingFields: c.pendingFields}
}

func (c *childLogger) WithField(key string, value interface{}) Logger {
	return c.WithFields(Field{Key: key, Value: value})
}

func (c *childLogger) WithFields(fields ...Field) Logger {
	allFields := append(append([]Field{}, c.pendingFields...), fields...)
	return &childLogger{parent: c.parent, pendingError: c.pendingError, pendingFields: allFields}
}

// GetEntriesByLevel returns all captured entries of a specific level.
func (m *MockLogger) GetEntriesByLevel(level string) []LogEntry {
	var entries []LogEntry
	for _, entry := range m.Entries {
		if entry.Level == level {
			entries = append(entries, entry)
		}
	}
	return entries
}

// HasEntry checks if an entry with the given level and message exists.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, entry := range m.Entries {
		if entry.Level == level && entry.Message == message {
			return true
		}
	}
	return false
}

// Clear removes all captured entries.
func (m *MockLogger) Clear() {
	m.Entries = nil
}
