package section

import (
	"regexp"
	"strings"
)

// Kind identifies how a section is distributed.
type Kind int

const (
	// KindAlways applies the section everywhere. It is the policy of a
	// section without a directive.
	KindAlways Kind = iota
	// KindManual opts the section out of automatic distribution.
	KindManual
	// KindGlob scopes the section to files matching a pattern.
	KindGlob
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindManual:
		return "manual"
	case KindGlob:
		return "glob"
	default:
		return "always"
	}
}

// ManualValue is the directive value that marks a section as manual.
const ManualValue = "manual"

// Directive is the distribution policy of a section. The zero value is
// Always. A glob directive never has an empty pattern.
type Directive struct {
	kind    Kind
	pattern string
}

// Always returns the apply-everywhere directive.
func Always() Directive { return Directive{} }

// Manual returns the manual directive.
func Manual() Directive { return Directive{kind: KindManual} }

// Glob returns a glob directive for pattern. A blank pattern yields Always.
func Glob(pattern string) Directive {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return Always()
	}
	return Directive{kind: KindGlob, pattern: pattern}
}

// ParseDirective interprets a directive value: "manual" is Manual, a blank
// value is Always, anything else is a glob pattern taken verbatim.
func ParseDirective(value string) Directive {
	value = strings.TrimSpace(value)
	if value == ManualValue {
		return Manual()
	}
	return Glob(value)
}

// Kind returns the directive's kind.
func (d Directive) Kind() Kind { return d.kind }

// Pattern returns the glob pattern, or "" unless the kind is KindGlob.
func (d Directive) Pattern() string { return d.pattern }

// IsAlways reports whether d is the apply-everywhere directive.
func (d Directive) IsAlways() bool { return d.kind == KindAlways }

// IsManual reports whether d is the manual directive.
func (d Directive) IsManual() bool { return d.kind == KindManual }

// IsGlob reports whether d scopes a section to a pattern.
func (d Directive) IsGlob() bool { return d.kind == KindGlob }

// Value returns the text written after "globs:" for this directive, or ""
// for Always, which has no inline form.
func (d Directive) Value() string {
	switch d.kind {
	case KindManual:
		return ManualValue
	case KindGlob:
		return d.pattern
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (d Directive) String() string {
	if d.kind == KindAlways {
		return "always"
	}
	return d.Value()
}

// Line renders the directive as it appears under a heading, including the
// trailing newline. Always renders as "".
func (d Directive) Line() string {
	if d.kind == KindAlways {
		return ""
	}
	return "globs: " + d.Value() + "\n"
}

// The keyword must be followed by a space; "globs:\t" stays body text.
var directiveRe = regexp.MustCompile(`(?i)^globs: \s*(\S.*)$`)

// matchDirective reports whether line is a directive line and returns its
// value.
func matchDirective(line string) (string, bool) {
	m := directiveRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// LooksLikeDirective reports whether line starts with the directive
// keyword but is missing the whitespace after the colon, so the parser
// keeps it as body text.
func LooksLikeDirective(line string) bool {
	t := strings.TrimSpace(line)
	if len(t) <= len("globs:") || !strings.EqualFold(t[:len("globs:")], "globs:") {
		return false
	}
	_, ok := matchDirective(t)
	return !ok
}
