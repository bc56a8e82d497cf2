// Package log wraps go-logging with the console format and level handling
// shared by every juliette package.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

// Level orders verbosity from most (Debug) to least (Error) chatty.
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levels = []struct {
	name    string
	backend logging.Level
}{
	Debug:   {"debug", logging.DEBUG},
	Info:    {"info", logging.INFO},
	Notice:  {"notice", logging.NOTICE},
	Warning: {"warning", logging.WARNING},
	Error:   {"error", logging.ERROR},
}

func (l Level) String() string {
	if l < Debug || l > Error {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levels[l].name
}

// ParseLevel accepts the lower-case level names.
func ParseLevel(s string) (Level, error) {
	for i, l := range levels {
		if strings.EqualFold(s, l.name) {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// Logger is the leveled logging surface used by every package.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns the logger for a package; name fills the [module] column.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

var (
	format = logging.MustStringFormatter(
		`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
	)

	backend logging.LeveledBackend
	// per-module overrides survive SetSink
	overrides = map[string]Level{}
	global    = Notice
)

// SetSink sends every logger's output to w.
func SetSink(w io.Writer) {
	backend = logging.AddModuleLevel(logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), format))
	logging.SetBackend(backend)
	apply()
}

// SetLevel sets the default verbosity.
func SetLevel(l Level) {
	global = l
	apply()
}

// SetModuleLevel overrides the verbosity of one named logger.
func SetModuleLevel(module string, l Level) {
	overrides[module] = l
	apply()
}

// ParseModuleLevel applies a "module=level" override.
func ParseModuleLevel(s string) error {
	module, name, ok := strings.Cut(s, "=")
	if !ok || module == "" {
		return fmt.Errorf("log override %q: want module=level", s)
	}
	l, err := ParseLevel(name)
	if err != nil {
		return fmt.Errorf("log override %q: %w", s, err)
	}
	SetModuleLevel(module, l)
	return nil
}

func apply() {
	backend.SetLevel(levels[global].backend, "")
	for module, l := range overrides {
		backend.SetLevel(levels[l].backend, module)
	}
}

func init() {
	SetSink(os.Stdout)
}
