package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes a front matter block.
const Delimiter = "---"

// Field is a single key/value line of a front matter block.
type Field struct {
	Key   string
	Value string
}

// Split separates a leading front matter block from the body.
//
// header holds the lines between the delimiters, body everything after
// the closing delimiter. If content does not open with a delimiter line,
// or the block is never closed, ok is false and body is content unchanged.
func Split(content string) (header, body string, ok bool) {
	lines := strings.SplitAfter(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != Delimiter {
		return "", content, false
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == Delimiter {
			return strings.Join(lines[1:i], ""), strings.Join(lines[i+1:], ""), true
		}
	}

	return "", content, false
}

// Strip returns content without its front matter block.
func Strip(content string) string {
	_, body, _ := Split(content)
	return body
}

// Fields decodes a front matter header into string values.
// Scalars are rendered with fmt; empty values yield "".
func Fields(header string) map[string]string {
	var raw map[string]any
	if err := yaml.Unmarshal([]byte(header), &raw); err == nil {
		out := make(map[string]string, len(raw))
		for k, v := range raw {
			if v == nil {
				out[k] = ""
				continue
			}
			out[k] = fmt.Sprint(v)
		}
		return out
	}
	return lineFields(header, true)
}

// RawFields reads one "key: value" pair per line and keeps every value as
// written. Use it for headers whose values are not YAML, such as unquoted
// glob patterns that YAML would read as tags, flow maps or dates.
func RawFields(header string) map[string]string {
	return lineFields(header, false)
}

// lineFields reads one "key: value" pair per line, unquoting values
// wrapped in matching single or double quotes when unq is set.
func lineFields(header string, unq bool) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(header, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" || strings.HasPrefix(key, "#") {
			continue
		}
		value = strings.TrimSpace(value)
		if unq {
			value = unquote(value)
		}
		out[key] = value
	}
	return out
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// Format renders fields as a front matter block followed by body.
// A field with an empty value is written as "key:" with nothing after it.
func Format(fields []Field, body string) string {
	var b strings.Builder
	b.WriteString(Delimiter + "\n")
	for _, f := range fields {
		b.WriteString(f.Key)
		b.WriteString(":")
		if f.Value != "" {
			b.WriteString(" ")
			b.WriteString(f.Value)
		}
		b.WriteString("\n")
	}
	b.WriteString(Delimiter + "\n")
	b.WriteString(body)
	return b.String()
}
