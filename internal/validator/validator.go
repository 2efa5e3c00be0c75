package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/thoreinstein/airules/internal/errors"
)

// Severity represents the impact of a finding.
type Severity int

const (
	// SeverityError indicates a blocking failure.
	SeverityError Severity = iota
	// SeverityWarning indicates input that probably does not do what the
	// author meant.
	SeverityWarning
	// SeverityInfo indicates an informational note.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return errors.Newf("unknown severity %q", b)
	}
	return nil
}

// Issue is a single finding.
type Issue struct {
	Severity Severity `json:"severity"`
	// Line is 1-based; 0 means the finding is about the whole file.
	Line int `json:"line,omitempty"`
	// Section is the heading the finding belongs to, if any.
	Section string `json:"section,omitempty"`
	Message string `json:"message"`
	// Context holds extra key/value detail.
	Context map[string]string `json:"context,omitempty"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if i.Line > 0 {
		fmt.Fprintf(&sb, "line %d: ", i.Line)
	}
	if i.Section != "" {
		fmt.Fprintf(&sb, "section %q: ", i.Section)
	}
	sb.WriteString(i.Message)
	return sb.String()
}

// Result aggregates the findings for one file.
type Result struct {
	File   string  `json:"file"`
	Issues []Issue `json:"issues"`
}

// HasErrors returns true if any issue has SeverityError.
func (r *Result) HasErrors() bool {
	return r.count(SeverityError) > 0
}

// HasWarnings returns true if any issue has SeverityWarning.
func (r *Result) HasWarnings() bool {
	return r.count(SeverityWarning) > 0
}

// AddError adds an error issue to the result.
func (r *Result) AddError(line int, section, message string) {
	r.add(SeverityError, line, section, message)
}

// AddWarning adds a warning issue to the result.
func (r *Result) AddWarning(line int, section, message string) {
	r.add(SeverityWarning, line, section, message)
}

// AddInfo adds an info issue to the result.
func (r *Result) AddInfo(line int, section, message string) {
	r.add(SeverityInfo, line, section, message)
}

func (r *Result) add(sev Severity, line int, section, message string) {
	r.Issues = append(r.Issues, Issue{Severity: sev, Line: line, Section: section, Message: message})
}

// Errors returns all issues with SeverityError.
func (r *Result) Errors() []Issue { return r.filter(SeverityError) }

// Warnings returns all issues with SeverityWarning.
func (r *Result) Warnings() []Issue { return r.filter(SeverityWarning) }

// Infos returns all issues with SeverityInfo.
func (r *Result) Infos() []Issue { return r.filter(SeverityInfo) }

// Sort orders issues by line. Whole-file issues come last; ties keep
// insertion order.
func (r *Result) Sort() {
	sort.SliceStable(r.Issues, func(a, b int) bool {
		la, lb := r.Issues[a].Line, r.Issues[b].Line
		if la == 0 || lb == 0 {
			return la != 0 && lb == 0
		}
		return la < lb
	})
}

func (r *Result) filter(sev Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == sev {
			res = append(res, i)
		}
	}
	return res
}

func (r *Result) count(sev Severity) int {
	return len(r.filter(sev))
}
