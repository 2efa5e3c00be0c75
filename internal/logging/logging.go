package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/thoreinstein/airules/internal/errors"
)

// Format is the console rendering selected with --log-format.
type Format string

const (
	// FormatText is the colorized one-line-per-record output.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per record.
	FormatJSON Format = "json"
)

// ParseFormat validates a --log-format value. The empty string is text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", errors.Newf("unknown log format %q (want text or json)", s)
	}
}

// Config describes the logger a command run needs.
type Config struct {
	// Verbosity is the number of -v flags.
	Verbosity int
	// Quiet limits output to errors. It wins over Verbosity.
	Quiet bool
	// Format selects the console rendering.
	Format Format
	// Output receives console records. Nil means os.Stderr.
	Output io.Writer
	// File, when set, receives a JSON copy of every record.
	File io.Writer
	// Getenv reads DebugEnv. Nil means os.LookupEnv.
	Getenv func(string) (string, bool)
}

// Level returns the minimum level for c.
func (c Config) Level() slog.Level {
	if c.Quiet {
		return slog.LevelError
	}
	v := c.Verbosity
	if v == 0 {
		lookup := c.Getenv
		if lookup == nil {
			lookup = os.LookupEnv
		}
		if val, ok := lookup(DebugEnv); ok {
			v = verbosityFromEnv(val)
		}
	}
	return LevelFromVerbosity(v)
}

// New builds the logger described by c.
func New(c Config) *slog.Logger {
	out := c.Output
	if out == nil {
		out = os.Stderr
	}
	level := c.Level()

	var console slog.Handler
	switch c.Format {
	case FormatJSON:
		console = newJSONHandler(out, level)
	default:
		console = NewHandler(out, level)
	}

	if c.File == nil {
		return slog.New(console)
	}
	return slog.New(newFanout(console, newJSONHandler(c.File, level)))
}

func newJSONHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactAttr,
	})
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// ForTest returns a trace-level logger that writes through t.Log, so
// records show up only for failing tests or with go test -v.
func ForTest(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(NewHandler(testWriter{t: t}, LevelTrace))
}
