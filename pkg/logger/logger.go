package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

var base = newBase(os.Getenv("ENVIRONMENT"))

func newBase(environment string) *slog.Logger {
	level := slog.LevelInfo
	if environment == "development" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// Configure rebuilds the process logger for the given environment.
func Configure(environment string) {
	base = newBase(environment)
	slog.SetDefault(base)
}

func Info(format string, v ...interface{}) {
	base.Info(fmt.Sprintf(format, v...))
}

func Error(format string, v ...interface{}) {
	base.Error(fmt.Sprintf(format, v...))
}

func Debug(format string, v ...interface{}) {
	base.Debug(fmt.Sprintf(format, v...))
}

func Warn(format string, v ...interface{}) {
	base.Warn(fmt.Sprintf(format, v...))
}

// With returns a structured logger carrying the given key/value pairs.
func With(args ...any) *slog.Logger {
	return base.With(args...)
}

// LogOrderError records a failed order side effect without interrupting the caller.
func LogOrderError(orderID, action string, err error) {
	With("order_id", orderID, "action", strings.ToLower(action)).Warn("Order side effect failed", "error", err)
}
