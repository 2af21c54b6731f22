package common

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// logger holds the package-wide structured logger. It defaults to a no-op
// handler so library consumers opt in to output explicitly.
var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(nopHandler{}))
}

// SetLogger installs a structured logger used by all engine packages.
// Passing nil restores the default no-op logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	logger.Store(l)
}

// Logger returns the currently installed structured logger.
func Logger() *slog.Logger {
	return logger.Load()
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }
