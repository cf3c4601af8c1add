// Package sysutil holds process-level helpers used by the server entrypoint
// and by configuration loading.
package sysutil

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// ParseLogLevel maps a LOG_LEVEL value (case-insensitive, trimmed) to a
// zerolog level. Empty means info and "warning" is an alias of warn. Only
// debug through panic are accepted; anything else returns info and an error.
func ParseLogLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return zerolog.InfoLevel, nil
	case "warning":
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl < zerolog.DebugLevel || lvl > zerolog.PanicLevel {
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

// SetLogLevel sets the global zerolog level from s. An unknown level leaves
// the global level at info and is returned as an error for the caller to
// report.
func SetLogLevel(s string) error {
	lvl, err := ParseLogLevel(s)
	zerolog.SetGlobalLevel(lvl)
	return err
}

// ConfigureLogger prepares the global logger for the server. Error stacks
// captured with pkg/errors are rendered under "stack", and pretty switches
// log.Logger to human-readable console output on w.
func ConfigureLogger(level string, pretty bool, w io.Writer) error {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"})
	}
	return SetLogLevel(level)
}

// FirstNonEmpty returns the first value that is not blank, unmodified, or ""
// when every value is blank.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
