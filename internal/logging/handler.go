package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

type palette struct {
	level map[string]*color.Color
	key   *color.Color
}

func newPalette() *palette {
	return &palette{
		level: map[string]*color.Color{
			"ERROR": color.New(color.FgRed, color.Bold),
			"WARN":  color.New(color.FgYellow),
			"INFO":  color.New(color.FgGreen),
			"DEBUG": color.New(color.FgMagenta),
			"TRACE": color.New(color.FgHiBlack),
		},
		key: color.New(color.FgCyan),
	}
}

// Handler writes one line per record:
//
//	WARN  unmapped section; applying everywhere section="Go Style" file=instructions.md
//
// There is no timestamp; records belong to a single short command run.
// Keys of grouped attributes are joined with dots, values with spaces are
// quoted, and secrets are masked. Colors are used only when the writer
// supports them.
type Handler struct {
	level  slog.Leveler
	out    io.Writer
	mu     *sync.Mutex
	colors *palette

	// preformatted holds attributes added with WithAttrs.
	preformatted string
	prefix       string
}

// NewHandler returns a Handler writing records at or above level to out.
// A nil level means slog.LevelInfo.
func NewHandler(out io.Writer, level slog.Leveler) *Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	h := &Handler{level: level, out: out, mu: &sync.Mutex{}}
	if SupportsColor(out) {
		h.colors = newPalette()
	}
	return h
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	label := levelLabel(r.Level)
	padded := fmt.Sprintf("%-5s", label)
	if h.colors != nil {
		padded = h.colors.level[label].Sprint(padded)
	}
	b.WriteString(padded)
	b.WriteByte(' ')
	b.WriteString(r.Message)
	b.WriteString(h.preformatted)
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&b, h.prefix, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *Handler) writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			h.writeAttr(b, p, ga)
		}
		return
	}

	a = redactAttr(nil, a)
	key := prefix + a.Key
	if h.colors != nil {
		key = h.colors.key.Sprint(key)
	}
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindString:
		s = v.String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		return v.String()
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.preformatted)
	for _, a := range attrs {
		h.writeAttr(&b, h.prefix, a)
	}
	h2 := *h
	h2.preformatted = b.String()
	return &h2
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}
