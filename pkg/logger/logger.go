// Package logger is the process-wide structured logger.
//
// Call sites pass a message followed by key/value pairs:
//
//	logger.Info("Server starting", "address", addr)
//	logger.Error("Failed to load dataset", err)
//
// A lone error argument is logged under the "error" key.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

func init() {
	log = newLogger("production", os.Stderr)
}

// Init configures the global logger for the given environment.
// "development" and "local" get a human readable console writer at debug
// level; anything else logs JSON at info level.
func Init(env string) {
	mu.Lock()
	defer mu.Unlock()
	log = newLogger(env, os.Stderr)
}

// SetOutput redirects log output, keeping the current level.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log = log.Output(w)
}

func newLogger(env string, w io.Writer) zerolog.Logger {
	switch strings.ToLower(env) {
	case "development", "local", "dev":
		cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		return zerolog.New(cw).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	case "test":
		return zerolog.New(w).Level(zerolog.WarnLevel).With().Timestamp().Logger()
	default:
		return zerolog.New(w).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
}

func get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

func Debug(msg string, args ...any) {
	emit(get().Debug(), msg, args)
}

func Info(msg string, args ...any) {
	emit(get().Info(), msg, args)
}

func Warn(msg string, args ...any) {
	emit(get().Warn(), msg, args)
}

func Error(msg string, args ...any) {
	emit(get().Error(), msg, args)
}

// Fatal logs and exits the process.
func Fatal(msg string, args ...any) {
	emit(get().Fatal(), msg, args)
}

func emit(ev *zerolog.Event, msg string, args []any) {
	if ev == nil {
		return
	}
	for i := 0; i < len(args); {
		if err, ok := args[i].(error); ok {
			ev = ev.AnErr("error", err)
			i++
			continue
		}
		key, ok := args[i].(string)
		if !ok || i+1 >= len(args) {
			ev = ev.Interface(fmt.Sprintf("arg%d", i), args[i])
			i++
			continue
		}
		if err, ok := args[i+1].(error); ok {
			ev = ev.AnErr(key, err)
		} else {
			ev = ev.Interface(key, args[i+1])
		}
		i += 2
	}
	ev.Msg(msg)
}
