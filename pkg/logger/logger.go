// Package logger holds the process-wide zerolog logger of the odontocare
// binaries. Each subcommand calls Init once with its service name; packages
// that need their own tag derive a child with Component.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures Init.
type Options struct {
	// Level is trace, debug, info, warn or error. Anything else means info.
	Level string
	// Pretty switches to coloured console output for local development.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service is stamped on every line as "service".
	Service string
}

var (
	mu    sync.RWMutex
	once  sync.Once
	root  zerolog.Logger
	ready bool
)

// Init builds the root logger. Later calls return the first logger unchanged.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		var out io.Writer = os.Stdout
		if opts.Output != nil {
			out = opts.Output
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05.000"}
		}

		zerolog.TimeFieldFormat = time.RFC3339Nano
		level := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(level)

		fields := zerolog.New(out).Level(level).With().Timestamp()
		if opts.Service != "" {
			fields = fields.Str("service", opts.Service)
		}

		mu.Lock()
		root = fields.Caller().Logger()
		ready = true
		mu.Unlock()
	})
	return Get()
}

// Get returns the root logger and panics when Init has not run.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if !ready {
		panic("logger: Get() called before Init()")
	}
	return root
}

// Component returns a child of the root logger tagged with name.
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// Reset forgets the root logger. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	once = sync.Once{}
	root = zerolog.Logger{}
	ready = false
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil || s == "" || level > zerolog.ErrorLevel || level < zerolog.TraceLevel {
		return zerolog.InfoLevel
	}
	return level
}
