package section

import "strings"

// HeadingPrefix opens a level-2 heading.
const HeadingPrefix = "## "

// Section is a named block of a document. Content holds the raw lines,
// line endings included, starting with the heading line. A recognized
// directive line is not part of Content.
type Section struct {
	Name      string
	Content   []string
	Directive Directive
}

// Body returns the section content without its heading line.
func (s *Section) Body() []string {
	if len(s.Content) == 0 {
		return nil
	}
	return s.Content[1:]
}

// Empty reports whether the section has nothing but blank lines after its
// heading.
func (s *Section) Empty() bool {
	return IsBlank(s.Body())
}

// Document is a parsed markdown document.
type Document struct {
	// General holds the lines before the first heading, verbatim.
	General []string
	// Sections maps a heading name to its section.
	Sections map[string]*Section

	order []string
}

// Names returns section names in order of first appearance.
func (d *Document) Names() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Get returns the named section.
func (d *Document) Get(name string) (*Section, bool) {
	s, ok := d.Sections[name]
	return s, ok
}

// Len returns the number of distinct sections.
func (d *Document) Len() int { return len(d.order) }

// Ordered returns the sections in order of first appearance.
func (d *Document) Ordered() []*Section {
	out := make([]*Section, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.Sections[name])
	}
	return out
}

// HeadingName returns the heading text of line and true if line is a
// level-2 heading.
func HeadingName(line string) (string, bool) {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, HeadingPrefix) {
		return "", false
	}
	return strings.TrimSpace(t[len(HeadingPrefix):]), true
}

// Heading renders a heading line for name.
func Heading(name string) string {
	return HeadingPrefix + name + "\n"
}

// SplitLines splits text into lines, each keeping its line ending. The
// last line has no ending if text does not end with a newline.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// IsBlankLine reports whether line holds only whitespace.
func IsBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsBlank reports whether every line is blank.
func IsBlank(lines []string) bool {
	for _, l := range lines {
		if !IsBlankLine(l) {
			return false
		}
	}
	return true
}
