// Package logger holds the process-wide structured logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the global logger. It discards everything until Initialize
	// is called.
	Logger *zap.SugaredLogger
	// JSONOutput reports whether Initialize selected JSON output.
	JSONOutput bool
)

func init() {
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger. JSON output uses the zap production
// config; otherwise a console encoder writes to stderr so generated text on
// stdout stays clean.
func Initialize(jsonOutput, verbose bool) error {
	JSONOutput = jsonOutput

	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		config.OutputPaths = []string{"stderr"}

		zapLogger, err := config.Build()
		if err != nil {
			return err
		}

		Logger = zapLogger.Sugar()

		return nil
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	Logger = zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		level,
	)).Sugar()

	return nil
}

// Cleanup flushes buffered log entries.
func Cleanup() {
	_ = Logger.Sync()
}

// Component returns a child logger tagged with a component name.
func Component(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// Infow logs a message with key-value pairs at info level.
func Infow(msg string, keysAndValues ...any) {
	Logger.Infow(msg, keysAndValues...)
}

// Debugw logs a message with key-value pairs at debug level.
func Debugw(msg string, keysAndValues ...any) {
	Logger.Debugw(msg, keysAndValues...)
}

// Warnw logs a message with key-value pairs at warn level.
func Warnw(msg string, keysAndValues ...any) {
	Logger.Warnw(msg, keysAndValues...)
}

// Errorw logs a message with key-value pairs at error level.
func Errorw(msg string, keysAndValues ...any) {
	Logger.Errorw(msg, keysAndValues...)
}
