// Package logging provides the structured logger used throughout the
// planning core, adapted from the teacher's zap-backed logging package:
// a small Logger interface over a *zap.SugaredLogger, writing through one
// or more Appenders (see appender.go).
package logging

import (
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging surface every planner and space implementation is
// handed at construction time. It never blocks and never returns an error;
// logging failures are not planning failures.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// Sublogger returns a child logger with the given name appended to the
	// existing name, carrying along any With-bound fields.
	Sublogger(name string) Logger
	// With returns a logger with the given key/value pairs attached to
	// every subsequent log line. Used to thread a per-solve correlation id
	// through an entire planning run.
	With(keysAndValues ...interface{}) Logger
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

func (l *zapLogger) Debugw(msg string, kv ...interface{}) { l.sugar.Debugw(msg, kv...) }
func (l *zapLogger) Infow(msg string, kv ...interface{})  { l.sugar.Infow(msg, kv...) }
func (l *zapLogger) Warnw(msg string, kv ...interface{})  { l.sugar.Warnw(msg, kv...) }
func (l *zapLogger) Errorw(msg string, kv ...interface{}) { l.sugar.Errorw(msg, kv...) }

func (l *zapLogger) Sublogger(name string) Logger {
	return &zapLogger{sugar: l.sugar.Named(name)}
}

func (l *zapLogger) With(kv ...interface{}) Logger {
	return &zapLogger{sugar: l.sugar.With(kv...)}
}

// appenderCore is a minimal zapcore.Core that fans every entry out to a set
// of Appenders, matching the teacher's Appender abstraction rather than
// zapcore's own encoder/WriteSyncer split.
type appenderCore struct {
	level     zapcore.Level
	appenders []Appender
	fields    []zapcore.Field
}

func newAppenderCore(level zapcore.Level, appenders ...Appender) zapcore.Core {
	return &appenderCore{level: level, appenders: appenders}
}

func (c *appenderCore) Enabled(lvl zapcore.Level) bool { return lvl >= c.level }

func (c *appenderCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &appenderCore{level: c.level, appenders: c.appenders, fields: merged}
}

func (c *appenderCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return ce.AddCore(entry, c)
	}
	return ce
}

func (c *appenderCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	all := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	all = append(all, c.fields...)
	all = append(all, fields...)
	for _, a := range c.appenders {
		if err := a.Write(entry, all); err != nil {
			return err
		}
	}
	return nil
}

func (c *appenderCore) Sync() error {
	for _, a := range c.appenders {
		if err := a.Sync(); err != nil {
			return err
		}
	}
	return nil
}

func newSugared(name string, appenders ...Appender) *zap.SugaredLogger {
	core := newAppenderCore(zapcore.DebugLevel, appenders...)
	return zap.New(core, zap.AddCaller()).Sugar().Named(name)
}

// NewDevelopmentLogger returns a console-appending logger named for the
// package or component that owns it. Intended for library consumers who
// have not wired in their own zap core.
func NewDevelopmentLogger(name string) Logger {
	return &zapLogger{sugar: newSugared(name, NewStdoutAppender())}
}

// NewTestLogger returns a logger that writes through t.Log, matching the
// teacher's golog.NewTestLogger(t) test convention.
func NewTestLogger(t *testing.T) Logger {
	t.Helper()
	return &zapLogger{sugar: newSugared(t.Name(), NewWriterAppender(testWriter{t}))}
}

// NewCorrelatedLogger attaches a fresh short correlation id to base, so
// that concurrently running planner instances (spec.md §5: independent
// planners may share a process) can be told apart in interleaved logs.
func NewCorrelatedLogger(base Logger) Logger {
	return base.With("solveID", uuid.NewString()[:8])
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}
