// Package testutil provides common test utilities for clinextract.
package testutil

import (
	"sync"

	"github.com/cortexmed/clinextract/internal/infrastructure/monitoring/logging"
)

// MockLogger implements logging.Logger for testing purposes.
// It records log messages and can be used to verify logging behavior.
type MockLogger struct {
	mu       sync.Mutex
	name     string
	Messages []LogMessage
}

var _ logging.Logger = (*MockLogger)(nil)

// LogMessage represents a single log entry captured by MockLogger.
type LogMessage struct {
	Level   string
	Logger  string
	Message string
	Fields  []logging.Field
}

// NewMockLogger creates a new MockLogger instance.
func NewMockLogger() *MockLogger {
	return &MockLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (m *MockLogger) log(level, logger, msg string, fields []logging.Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, LogMessage{
		Level:   level,
		Logger:  logger,
		Message: msg,
		Fields:  fields,
	})
}

func (m *MockLogger) Debug(msg string, fields ...logging.Field) {
	m.log("debug", m.name, msg, fields)
}

func (m *MockLogger) Info(msg string, fields ...logging.Field) {
	m.log("info", m.name, msg, fields)
}

func (m *MockLogger) Warn(msg string, fields ...logging.Field) {
	m.log("warn", m.name, msg, fields)
}

func (m *MockLogger) Error(msg string, fields ...logging.Field) {
	m.log("error", m.name, msg, fields)
}

func (m *MockLogger) Fatal(msg string, fields ...logging.Field) {
	m.log("fatal", m.name, msg, fields)
}

// With returns the same recorder; field accumulation is not simulated.
func (m *MockLogger) With(fields ...logging.Field) logging.Logger {
	return m
}

// Named returns a child recorder that writes into the parent's message
// buffer, so a test can assert on entries from any component under one mock.
func (m *MockLogger) Named(name string) logging.Logger {
	joined := name
	if m.name != "" {
		joined = m.name + "." + name
	}
	return &namedMockLogger{root: m.root(), name: joined}
}

func (m *MockLogger) root() *MockLogger { return m }

// namedMockLogger forwards to its root recorder with a logger name attached.
type namedMockLogger struct {
	root *MockLogger
	name string
}

var _ logging.Logger = (*namedMockLogger)(nil)

func (n *namedMockLogger) Debug(msg string, fields ...logging.Field) {
	n.root.log("debug", n.name, msg, fields)
}

func (n *namedMockLogger) Info(msg string, fields ...logging.Field) {
	n.root.log("info", n.name, msg, fields)
}

func (n *namedMockLogger) Warn(msg string, fields ...logging.Field) {
	n.root.log("warn", n.name, msg, fields)
}

func (n *namedMockLogger) Error(msg string, fields ...logging.Field) {
	n.root.log("error", n.name, msg, fields)
}

func (n *namedMockLogger) Fatal(msg string, fields ...logging.Field) {
	n.root.log("fatal", n.name, msg, fields)
}

func (n *namedMockLogger) With(fields ...logging.Field) logging.Logger { return n }

func (n *namedMockLogger) Named(name string) logging.Logger {
	return &namedMockLogger{root: n.root, name: n.name + "." + name}
}

// GetMessages returns a copy of all logged messages.
func (m *MockLogger) GetMessages() []LogMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]LogMessage, len(m.Messages))
	copy(result, m.Messages)
	return result
}

// Clear removes all logged messages.
func (m *MockLogger) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = m.Messages[:0]
}

// HasMessage checks if a message with the given level and content was logged.
func (m *MockLogger) HasMessage(level, msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, logged := range m.Messages {
		if logged.Level == level && logged.Message == msg {
			return true
		}
	}
	return false
}
