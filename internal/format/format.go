package format

import (
	"strings"

	"github.com/thoreinstein/airules/internal/section"
)

// DescriptionPrefix marks a description line in a section body.
const DescriptionPrefix = "Description:"

// Unit is one section on its way to or from a file.
type Unit struct {
	// Name is the section heading. Empty for the general block, and for a
	// decoded file that carried no name of its own.
	Name string
	// Directive is the distribution policy. Only front-matter rules
	// record it.
	Directive section.Directive
	// Description is a short summary. On decode it is set only when it
	// was lifted out of the body on encode and should be put back.
	Description string
	// Body holds the content lines after the heading.
	Body []string
}

// Codec reads and writes one file family.
type Codec interface {
	// Ext is the file extension, including any ".instructions" or
	// ".prompt" infix.
	Ext() string
	// Encode renders u as file contents.
	Encode(u Unit) ([]byte, error)
	// Decode parses file contents. stem is the filename without Ext.
	Decode(stem string, data []byte) (Unit, error)
}

// TrimBlank drops leading and trailing blank lines. Interior blank lines
// are kept. The result shares lines' backing array.
func TrimBlank(lines []string) []string {
	start := 0
	for start < len(lines) && section.IsBlankLine(lines[start]) {
		start++
	}
	end := len(lines)
	for end > start && section.IsBlankLine(lines[end-1]) {
		end--
	}
	return lines[start:end]
}

// ExtractDescription looks for a description on the first line that is
// neither blank nor a heading. If that line starts with "Description:",
// its remainder is returned and the line is removed from the content.
// Otherwise the search stops there and the trimmed content is returned
// as is.
func ExtractDescription(lines []string) (string, []string) {
	trimmed := TrimBlank(lines)
	for i, line := range trimmed {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		if !strings.HasPrefix(t, DescriptionPrefix) {
			break
		}
		desc := strings.TrimSpace(t[len(DescriptionPrefix):])
		if desc == "" {
			break
		}
		rest := make([]string, 0, len(trimmed)-1)
		rest = append(rest, trimmed[:i]...)
		rest = append(rest, trimmed[i+1:]...)
		return desc, TrimBlank(rest)
	}
	return "", trimmed
}

// DescriptionLine renders a description line for a bundled section.
func DescriptionLine(desc string) string {
	return DescriptionPrefix + " " + desc + "\n"
}

// Join concatenates lines and guarantees a single trailing newline.
// Blank input yields "".
func Join(lines []string) string {
	s := strings.TrimRight(strings.Join(lines, ""), "\r\n")
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s + "\n"
}

// withHeading prepends a heading for name and one blank line to the
// trimmed body. A blank name adds nothing.
func withHeading(name string, body []string) []string {
	body = TrimBlank(body)
	if name == "" {
		return body
	}
	out := make([]string, 0, len(body)+2)
	out = append(out, section.Heading(name))
	if len(body) > 0 {
		out = append(out, "\n")
		out = append(out, body...)
	}
	return out
}

// splitHeading removes a leading heading from trimmed content.
func splitHeading(lines []string) (string, []string) {
	lines = TrimBlank(lines)
	if len(lines) == 0 {
		return "", lines
	}
	name, ok := section.HeadingName(lines[0])
	if !ok {
		return "", lines
	}
	return name, TrimBlank(lines[1:])
}
