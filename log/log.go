// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"math"
	"os"
	"runtime"
	"sync/atomic"
	"time"
)

// Log levels, aliased from slog with trace added below debug.
const (
	LevelTrace slog.Level = -8
	LevelDebug            = slog.LevelDebug
	LevelInfo             = slog.LevelInfo
	LevelWarn             = slog.LevelWarn
	LevelError            = slog.LevelError

	levelMaxVerbosity slog.Level = math.MinInt
)

// FromLegacyLevel converts the legacy numeric verbosity (0=error .. 5=trace)
// into a slog level.
func FromLegacyLevel(lvl int) slog.Level {
	switch lvl {
	case 0:
		return LevelError
	case 1:
		return LevelWarn
	case 2:
		return LevelInfo
	case 3:
		return LevelDebug
	default:
		return LevelTrace
	}
}

// Logger writes key/value pairs to a Handler.
type Logger interface {
	// New returns a new Logger that has this logger's attributes plus the given attributes.
	New(ctx ...any) Logger

	// Enabled reports whether l emits log records at the given context and level.
	Enabled(ctx context.Context, level slog.Level) bool

	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)

	// Write logs a message at the specified level.
	Write(level slog.Level, msg string, attrs ...any)

	// Handler returns the underlying handler of the inner logger.
	Handler() slog.Handler
}

type logger struct {
	inner *slog.Logger
}

// NewLogger returns a logger with the specified handler set.
func NewLogger(h slog.Handler) Logger {
	return &logger{slog.New(h)}
}

func (l *logger) Handler() slog.Handler {
	return l.inner.Handler()
}

func (l *logger) Write(level slog.Level, msg string, attrs ...any) {
	if !l.inner.Enabled(context.Background(), level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	if len(attrs)%2 != 0 {
		attrs = append(attrs, nil, "LOG_ERROR", "Normalized odd number of arguments by adding nil")
	}
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(attrs...)
	l.inner.Handler().Handle(context.Background(), r)
}

func (l *logger) New(ctx ...any) Logger {
	return &logger{l.inner.With(ctx...)}
}

func (l *logger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.inner.Enabled(ctx, level)
}

func (l *logger) Trace(msg string, ctx ...any) {
	l.Write(LevelTrace, msg, ctx...)
}

func (l *logger) Debug(msg string, ctx ...any) {
	l.Write(LevelDebug, msg, ctx...)
}

func (l *logger) Info(msg string, ctx ...any) {
	l.Write(LevelInfo, msg, ctx...)
}

func (l *logger) Warn(msg string, ctx ...any) {
	l.Write(LevelWarn, msg, ctx...)
}

func (l *logger) Error(msg string, ctx ...any) {
	l.Write(LevelError, msg, ctx...)
}

// rootHandler delegates to a swappable handler, so that loggers derived
// from the root before SetDefault still follow the swap.
type rootHandler struct {
	current *atomic.Pointer[slog.Handler]
	attrs   []slog.Attr
}

func (h *rootHandler) load() slog.Handler {
	return *h.current.Load()
}

func (h *rootHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.load().Enabled(ctx, level)
}

func (h *rootHandler) Handle(ctx context.Context, r slog.Record) error {
	target := h.load()
	if len(h.attrs) > 0 {
		target = target.WithAttrs(h.attrs)
	}
	return target.Handle(ctx, r)
}

func (h *rootHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &rootHandler{current: h.current, attrs: merged}
}

func (h *rootHandler) WithGroup(name string) slog.Handler {
	// groups are not used by this codebase
	return h
}

var rootCurrent = func() *atomic.Pointer[slog.Handler] {
	var p atomic.Pointer[slog.Handler]
	initial := DiscardHandler()
	p.Store(&initial)
	return &p
}()

var root = &logger{slog.New(&rootHandler{current: rootCurrent})}

// SetDefault sets the handler every root-derived logger writes to.
func SetDefault(l Logger) {
	h := l.Handler()
	rootCurrent.Store(&h)
}

// Root returns the root logger.
func Root() Logger { return root }

// New returns a new logger with the given context, using the root handler.
func New(ctx ...any) Logger { return root.New(ctx...) }

// Trace is a convenient alias for Root().Trace.
func Trace(msg string, ctx ...any) { root.Write(LevelTrace, msg, ctx...) }

// Debug is a convenient alias for Root().Debug.
func Debug(msg string, ctx ...any) { root.Write(LevelDebug, msg, ctx...) }

// Info is a convenient alias for Root().Info.
func Info(msg string, ctx ...any) { root.Write(LevelInfo, msg, ctx...) }

// Warn is a convenient alias for Root().Warn.
func Warn(msg string, ctx ...any) { root.Write(LevelWarn, msg, ctx...) }

// Error is a convenient alias for Root().Error.
func Error(msg string, ctx ...any) { root.Write(LevelError, msg, ctx...) }

// Crit logs a message at the error level and exits.
func Crit(msg string, ctx ...any) {
	root.Write(LevelError, msg, ctx...)
	os.Exit(1)
}
