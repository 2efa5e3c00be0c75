package format

import (
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/registry"
	"github.com/thoreinstein/airules/internal/section"
)

// Table is the codec for TOML command files with a name, a description
// and a multi-line prompt.
type Table struct {
	Extension string
}

type tableCommand struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Prompt      string `toml:"prompt,omitempty"`
}

type tableFile struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Prompt      string `toml:"prompt"`
	// Command holds the prompt in files written before the prompt key
	// existed.
	Command struct {
		Shell string `toml:"shell"`
	} `toml:"command"`
}

// Ext implements Codec.
func (c Table) Ext() string { return c.Extension }

// Encode implements Codec. A description line in the body becomes the
// description key; without one the section name is used.
func (c Table) Encode(u Unit) ([]byte, error) {
	desc, body := ExtractDescription(u.Body)
	switch {
	case desc == "":
		desc = u.Name
	case nameLike(u.Name, registry.Filename(u.Name), desc):
		// Decode reads this description as the name fallback, so the
		// line stays in the prompt.
		body = TrimBlank(u.Body)
	}
	prompt := strings.TrimRight(Join(body), "\n")

	quoted, ok := multiline(prompt)
	if !ok {
		// Neither multi-line form holds the prompt verbatim; let the
		// encoder escape it.
		data, err := toml.Marshal(tableCommand{Name: u.Name, Description: desc, Prompt: prompt})
		if err != nil {
			return nil, errors.Wrap(err, "marshaling command")
		}
		return data, nil
	}

	head, err := toml.Marshal(tableCommand{Name: u.Name, Description: desc})
	if err != nil {
		return nil, errors.Wrap(err, "marshaling command header")
	}

	var b strings.Builder
	b.Write(head)
	b.WriteString("prompt = ")
	b.WriteString(quoted)
	b.WriteString("\n")
	return []byte(b.String()), nil
}

// multiline renders s as a TOML multi-line string written verbatim.
// Basic strings are preferred; a literal string is used when s contains
// backslashes or triple double quotes.
func multiline(s string) (string, bool) {
	switch {
	case !strings.Contains(s, `\`) && !strings.Contains(s, `"""`):
		return "\"\"\"\n" + s + "\n\"\"\"", true
	case !strings.Contains(s, "'''"):
		return "'''\n" + s + "\n'''", true
	default:
		return "", false
	}
}

// Decode implements Codec. Unparseable TOML is read as a plain body.
func (c Table) Decode(stem string, data []byte) (Unit, error) {
	text := strings.TrimSpace(string(data))

	var f tableFile
	if err := toml.Unmarshal([]byte(text), &f); err != nil {
		return Unit{Body: TrimBlank(section.SplitLines(text))}, nil
	}

	prompt := f.Prompt
	if prompt == "" {
		prompt = f.Command.Shell
	}
	if prompt == "" && f.Name == "" {
		return Unit{Body: TrimBlank(section.SplitLines(text))}, nil
	}

	u := Unit{Body: TrimBlank(section.SplitLines(strings.TrimSpace(prompt)))}
	// Older files stored the filename as the name; leave those to the
	// registry lookup.
	if f.Name != stem {
		u.Name = f.Name
	}
	if d := f.Description; d != "" && !nameLike(f.Name, stem, d) {
		u.Description = d
	}
	return u, nil
}

// nameLike reports whether desc is indistinguishable from the description
// Encode falls back to when a section has none. Older files used the
// filename as the name and the section name as the description.
func nameLike(name, stem, desc string) bool {
	return desc == name || (name == stem && registry.Filename(desc) == stem)
}
