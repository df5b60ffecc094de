package logger

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogComponent represents different system components for filtering
type LogComponent string

const (
	ComponentEngine LogComponent = "engine"
	ComponentCLI    LogComponent = "cli"
	ComponentConfig LogComponent = "config"
)

// LogContext holds structured context information for logs
type LogContext struct {
	CorrelationID string
	Component     LogComponent
	Regime        string
	Operation     string
	Duration      time.Duration
	Fields        map[string]interface{}
}

// StructuredLogger provides enhanced logging with structured context
type StructuredLogger struct {
	logger    *zap.Logger
	component LogComponent
	context   LogContext
}

// NewStructuredLogger creates a new structured logger for a specific component
func NewStructuredLogger(component LogComponent) *StructuredLogger {
	return NewStructuredLoggerWith(Log, component)
}

// NewStructuredLoggerWith binds a structured logger to an explicit zap logger.
func NewStructuredLoggerWith(base *zap.Logger, component LogComponent) *StructuredLogger {
	if base == nil {
		base = zap.NewNop()
	}
	return &StructuredLogger{
		logger:    base,
		component: component,
		context:   LogContext{Component: component, Fields: make(map[string]interface{})},
	}
}

// WithField adds a field to the log context
func (sl *StructuredLogger) WithField(key string, value interface{}) *StructuredLogger {
	newLogger := sl.clone()
	newLogger.context.Fields[key] = value
	return newLogger
}

// WithCorrelationID adds correlation ID to the log context
func (sl *StructuredLogger) WithCorrelationID(correlationID string) *StructuredLogger {
	newLogger := sl.clone()
	newLogger.context.CorrelationID = correlationID
	return newLogger
}

// WithRegime adds the tax regime to the log context
func (sl *StructuredLogger) WithRegime(regime string) *StructuredLogger {
	newLogger := sl.clone()
	newLogger.context.Regime = regime
	return newLogger
}

// WithOperation adds operation name to the log context
func (sl *StructuredLogger) WithOperation(operation string) *StructuredLogger {
	newLogger := sl.clone()
	newLogger.context.Operation = operation
	return newLogger
}

// WithDuration adds duration to the log context
func (sl *StructuredLogger) WithDuration(duration time.Duration) *StructuredLogger {
	newLogger := sl.clone()
	newLogger.context.Duration = duration
	return newLogger
}

func (sl *StructuredLogger) clone() *StructuredLogger {
	newFields := make(map[string]interface{}, len(sl.context.Fields))
	for k, v := range sl.context.Fields {
		newFields[k] = v
	}

	return &StructuredLogger{
		logger:    sl.logger,
		component: sl.component,
		context: LogContext{
			CorrelationID: sl.context.CorrelationID,
			Component:     sl.context.Component,
			Regime:        sl.context.Regime,
			Operation:     sl.context.Operation,
			Duration:      sl.context.Duration,
			Fields:        newFields,
		},
	}
}

func (sl *StructuredLogger) buildFields() []zapcore.Field {
	fields := make([]zapcore.Field, 0, 5+len(sl.context.Fields))

	if sl.context.Component != "" {
		fields = append(fields, zap.String("component", string(sl.context.Component)))
	}
	if sl.context.CorrelationID != "" {
		fields = append(fields, zap.String("correlation_id", sl.context.CorrelationID))
	}
	if sl.context.Regime != "" {
		fields = append(fields, zap.String("regime", sl.context.Regime))
	}
	if sl.context.Operation != "" {
		fields = append(fields, zap.String("operation", sl.context.Operation))
	}
	if sl.context.Duration > 0 {
		fields = append(fields, zap.Duration("duration", sl.context.Duration))
	}

	for key, value := range sl.context.Fields {
		fields = append(fields, zap.Any(key, value))
	}

	return fields
}

// Debug logs a debug message with structured context
func (sl *StructuredLogger) Debug(msg string) {
	sl.logger.Debug(msg, sl.buildFields()...)
}

// Info logs an info message with structured context
func (sl *StructuredLogger) Info(msg string) {
	sl.logger.Info(msg, sl.buildFields()...)
}

// Warn logs a warning message with structured context
func (sl *StructuredLogger) Warn(msg string) {
	sl.logger.Warn(msg, sl.buildFields()...)
}

// Error logs an error message with structured context
func (sl *StructuredLogger) Error(msg string, err error) {
	fields := sl.buildFields()
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	sl.logger.Error(msg, fields...)
}

// LogOperation logs the start and end of an operation with timing
func (sl *StructuredLogger) LogOperation(operation string, fn func() error) error {
	start := time.Now()
	opLogger := sl.WithOperation(operation)

	opLogger.Debug("Operation started")

	err := fn()
	finalLogger := opLogger.WithDuration(time.Since(start))

	if err != nil {
		// Input errors are expected in an interactive session.
		finalLogger.Warn("Operation failed: " + err.Error())
	} else {
		finalLogger.Debug("Operation completed")
	}

	return err
}
