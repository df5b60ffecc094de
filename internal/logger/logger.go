package logger

import (
	"os"
	"strings"

	"github.com/taxwise/taxcalc/internal/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process logger. It discards everything until InitLogger or
// InitLoggerWithLevel runs.
var Log = zap.NewNop()

// InitLogger installs an info-level logger for stage
func InitLogger(stage string) {
	InitLoggerWithLevel(stage, "")
}

// InitLoggerWithLevel installs the process logger for a stage and a level
// name such as config.Config.LogLevel. Stdout belongs to the calculator's
// output, so log lines always go to stderr.
func InitLoggerWithLevel(stage, level string) {
	Log = New(stage, ParseLevel(level), zapcore.Lock(os.Stderr))
}

// New builds a logger writing to sink. The prod stage emits JSON lines tagged
// with the service and stage; every other stage gets a console layout,
// coloured unless running under tests.
func New(stage string, level zapcore.Level, sink zapcore.WriteSyncer) *zap.Logger {
	var encoder zapcore.Encoder
	opts := []zap.Option{zap.AddCaller(), zap.ErrorOutput(sink)}

	if stage == constants.ProdEnvironment {
		encoder = zapcore.NewJSONEncoder(jsonEncoding())
		opts = append(opts, zap.Fields(
			zap.String("service", constants.ServiceName),
			zap.String("stage", stage),
		))
		if level == zapcore.DebugLevel {
			opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
		}
	} else {
		encoder = zapcore.NewConsoleEncoder(consoleEncoding(stage != constants.TestEnvironment))
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}

	return zap.New(zapcore.NewCore(encoder, sink, level), opts...)
}

func jsonEncoding() zapcore.EncoderConfig {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.MessageKey = "message"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	return enc
}

func consoleEncoding(color bool) zapcore.EncoderConfig {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeCaller = zapcore.ShortCallerEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	if color {
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return enc
}

// ParseLevel maps a level name onto a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case constants.ErrorLevel:
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Info logs on the process logger
func Info(msg string, fields ...zapcore.Field) {
	Log.Info(msg, fields...)
}

// Error logs on the process logger
func Error(msg string, fields ...zapcore.Field) {
	Log.Error(msg, fields...)
}

// Debug logs on the process logger
func Debug(msg string, fields ...zapcore.Field) {
	Log.Debug(msg, fields...)
}

// Sync flushes buffered entries
func Sync() error {
	return Log.Sync()
}
