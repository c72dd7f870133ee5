// Package logger holds the process-wide zerolog logger.
//
// cmd/securepass builds it once from config; everything else asks for a
// component-scoped child.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the root logger.
type Options struct {
	Level   string    // zerolog level name; unknown or empty means info
	Pretty  bool      // console output instead of JSON lines
	Output  io.Writer // nil means os.Stdout
	Service string    // value of the "service" field, omitted when empty
}

type root struct {
	once   sync.Once
	ready  bool
	logger zerolog.Logger
}

var global = &root{}

// New builds a logger from opts without touching the process-wide one.
func New(opts Options) zerolog.Logger {
	w := opts.Output
	if w == nil {
		w = os.Stdout
	}
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	fields := zerolog.New(w).Level(parseLevel(opts.Level)).With().Timestamp().Caller()
	if opts.Service != "" {
		fields = fields.Str("service", opts.Service)
	}
	return fields.Logger()
}

// Init installs the process-wide logger. Later calls return the logger
// installed by the first one and ignore their options.
func Init(opts Options) zerolog.Logger {
	global.once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		zerolog.SetGlobalLevel(parseLevel(opts.Level))
		global.logger = New(opts)
		global.ready = true
	})
	return global.logger
}

// Get returns the logger installed by Init and panics without one.
func Get() zerolog.Logger {
	if !global.ready {
		panic("logger: Get() called before Init()")
	}
	return global.logger
}

// Reset drops the installed logger. Tests only.
func Reset() {
	global = &root{}
}

// Component returns a child logger carrying a "component" field.
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
