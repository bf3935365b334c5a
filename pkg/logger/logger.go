// Package logger owns the process-wide zerolog instance. main calls Init
// exactly once; everything else receives the logger through constructors, so
// Get exists only for code paths with no injection point.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how the process logger is built.
type Options struct {
	// Level is the minimum level to emit (trace, debug, info, warn, error).
	// Unknown or empty values fall back to info.
	Level string
	// Pretty switches from JSON lines to a human console format. Leave off
	// in production.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu    sync.Mutex
	root  zerolog.Logger
	ready bool
)

// Init builds the process logger. Calls after the first are no-ops and return
// the logger built by the first call.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if ready {
		return root
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl := levelFrom(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	root = zerolog.New(out).Level(lvl).With().Timestamp().Caller().Logger()
	ready = true
	return root
}

// Get returns the process logger. Panics when Init has not run.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !ready {
		panic("logger: Get() called before Init()")
	}
	return root
}

// Reset discards the current logger so the next Init rebuilds it. Test hook.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	root = zerolog.Logger{}
	ready = false
}

func levelFrom(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
