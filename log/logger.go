// Package log is a thin structured-logging wrapper in the teacher's own
// style: every call site names the emitting subsystem instance as the
// first argument (so logs can be grepped per-PIT, per-CS, per-forwarder)
// followed by a message and key/value pairs. It wraps log/slog because the
// teacher repo itself pulls in no third-party logging library.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
)

var base = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.Level(LevelInfo),
}))

// SetLevel adjusts the minimum level emitted by the default logger.
func SetLevel(level Level) {
	base = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(level.slog()),
	}))
}

// Module is implemented by anything that names itself for logging, e.g. a
// PIT, a CS, or a forwarder instance.
type Module interface {
	String() string
}

func moduleAttr(mod any) slog.Attr {
	if m, ok := mod.(Module); ok {
		return slog.String("module", m.String())
	}
	return slog.String("module", fmt.Sprintf("%T", mod))
}

// Trace logs at TRACE level.
func Trace(mod any, msg string, kvs ...any) { log(LevelTrace, mod, msg, kvs...) }

// Debug logs at DEBUG level.
func Debug(mod any, msg string, kvs ...any) { log(LevelDebug, mod, msg, kvs...) }

// Info logs at INFO level.
func Info(mod any, msg string, kvs ...any) { log(LevelInfo, mod, msg, kvs...) }

// Warn logs at WARN level.
func Warn(mod any, msg string, kvs ...any) { log(LevelWarn, mod, msg, kvs...) }

// Error logs at ERROR level.
func Error(mod any, msg string, kvs ...any) { log(LevelError, mod, msg, kvs...) }

// Fatal logs at FATAL level, dumps every goroutine's stack to stderr, then
// exits the process — the forwarder's single dispatch goroutine has no
// supervisor to restart it, so whatever state led here is worth capturing
// before the process dies.
func Fatal(mod any, msg string, kvs ...any) {
	log(LevelFatal, mod, msg, kvs...)
	printStackTrace()
	os.Exit(1)
}

func printStackTrace() {
	buf := make([]byte, 1<<20)
	n := runtime.Stack(buf, true)
	fmt.Fprintf(os.Stderr, "*** goroutine dump...\n%s\n*** end\n", buf[:n])
}

func log(level Level, mod any, msg string, kvs ...any) {
	attrs := make([]slog.Attr, 0, len(kvs)/2+1)
	attrs = append(attrs, moduleAttr(mod))
	for i := 0; i+1 < len(kvs); i += 2 {
		key, _ := kvs[i].(string)
		attrs = append(attrs, slog.Any(key, kvs[i+1]))
	}
	base.LogAttrs(context.Background(), slog.Level(level.slog()), msg, attrs...)
}
