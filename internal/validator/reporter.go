package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/airules/internal/errors"
)

// Format specifies the output format for reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON:
		return Format(s), nil
	}
	return "", errors.Newf("invalid format %q (valid: text, json)", s)
}

// Reporter formats and writes results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Report writes the result to the output.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(result)
	default:
		return r.reportText(result)
	}
}

func (r *Reporter) reportJSON(result *Result) error {
	out := *result
	if out.Issues == nil {
		out.Issues = []Issue{}
	}
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(out), "encoding JSON report")
}

func (r *Reporter) reportText(result *Result) error {
	name := result.File
	if name == "" {
		name = "input"
	}

	if len(result.Issues) == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ %s: no issues", name))
		return nil
	}

	groups := []struct {
		issues []Issue
		label  string
		color  color.Attribute
	}{
		{result.Errors(), "error(s)", color.FgRed},
		{result.Warnings(), "warning(s)", color.FgYellow},
		{result.Infos(), "info", color.FgCyan},
	}

	var summary []string
	for _, g := range groups {
		if len(g.issues) > 0 {
			summary = append(summary, color.New(g.color).Sprintf("%d %s", len(g.issues), g.label))
		}
	}
	fmt.Fprintf(r.out, "%s: %s\n\n", name, strings.Join(summary, ", "))

	for _, g := range groups {
		for _, i := range g.issues {
			r.printIssue(i, g.color)
		}
	}
	return nil
}

func (r *Reporter) printIssue(i Issue, c color.Attribute) {
	printer := color.New(c).SprintFunc()

	// Format:  • 12 [section] message (context)
	var sb strings.Builder
	sb.WriteString("  • ")

	if i.Line > 0 {
		fmt.Fprintf(&sb, "%d ", i.Line)
	}
	if i.Section != "" {
		sb.WriteString(printer(i.Section))
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)

	if len(i.Context) > 0 {
		var ctxParts []string
		for k, v := range i.Context {
			ctxParts = append(ctxParts, fmt.Sprintf("%s=%s", k, v))
		}
		sort.Strings(ctxParts)

		sb.WriteString(" ")
		sb.WriteString(color.New(color.FgHiBlack).Sprintf("(%s)", strings.Join(ctxParts, ", ")))
	}

	fmt.Fprintln(r.out, sb.String())
}
