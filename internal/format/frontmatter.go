package format

import (
	"strings"

	"github.com/thoreinstein/airules/internal/section"
	"github.com/thoreinstein/airules/pkg/frontmatter"
)

// Style selects the metadata fields a FrontMatter codec writes.
type Style int

const (
	// CursorRule writes description, globs and alwaysApply.
	CursorRule Style = iota
	// GitHubRule writes applyTo. Manual rules get no block at all.
	GitHubRule
	// GitHubPrompt writes mode and description.
	GitHubPrompt
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case GitHubRule:
		return "github-rule"
	case GitHubPrompt:
		return "github-prompt"
	default:
		return "cursor-rule"
	}
}

// applyToAll is the GitHub applyTo value for always-apply rules.
const applyToAll = "**"

// FrontMatter is the codec for files that open with a metadata block and
// keep their heading in the body.
type FrontMatter struct {
	Style     Style
	Extension string
}

// Ext implements Codec.
func (c FrontMatter) Ext() string { return c.Extension }

// Encode implements Codec. The heading is written into the body so the
// file stays self-describing without its metadata.
func (c FrontMatter) Encode(u Unit) ([]byte, error) {
	body := u.Body
	desc := u.Description
	if c.Style == GitHubPrompt && desc == "" {
		desc, body = ExtractDescription(body)
	}
	text := Join(withHeading(u.Name, body))

	fields := c.fields(u.Directive, desc)
	if fields == nil {
		return []byte(text), nil
	}
	return []byte(frontmatter.Format(fields, text)), nil
}

func (c FrontMatter) fields(d section.Directive, desc string) []frontmatter.Field {
	switch c.Style {
	case GitHubRule:
		switch {
		case d.IsGlob():
			return []frontmatter.Field{{Key: "applyTo", Value: doubleQuote(d.Pattern())}}
		case d.IsManual():
			return nil
		default:
			return []frontmatter.Field{{Key: "applyTo", Value: doubleQuote(applyToAll)}}
		}
	case GitHubPrompt:
		return []frontmatter.Field{
			{Key: "mode", Value: singleQuote("agent")},
			{Key: "description", Value: singleQuote(desc)},
		}
	default:
		fields := []frontmatter.Field{{Key: "description", Value: desc}}
		switch {
		case d.IsGlob():
			fields = append(fields,
				frontmatter.Field{Key: "globs", Value: d.Pattern()},
				frontmatter.Field{Key: "alwaysApply", Value: "false"})
		case d.IsManual():
			fields = append(fields, frontmatter.Field{Key: "alwaysApply", Value: "false"})
		default:
			fields = append(fields, frontmatter.Field{Key: "alwaysApply", Value: "true"})
		}
		return fields
	}
}

// Decode implements Codec.
func (c FrontMatter) Decode(_ string, data []byte) (Unit, error) {
	header, body, ok := frontmatter.Split(strings.TrimSpace(string(data)))

	var fields map[string]string
	switch {
	case !ok:
	case c.Style == CursorRule:
		// Cursor writes globs unquoted; a YAML decode would rewrite
		// patterns like "{a,b}" or "!**/vendor/**".
		fields = frontmatter.RawFields(header)
	default:
		fields = frontmatter.Fields(header)
	}

	var u Unit
	u.Name, u.Body = splitHeading(section.SplitLines(body))

	switch c.Style {
	case GitHubRule:
		u.Directive = githubDirective(ok, fields)
	case GitHubPrompt:
		u.Description = fields["description"]
	default:
		u.Directive = cursorDirective(fields)
	}

	return u, nil
}

func cursorDirective(fields map[string]string) section.Directive {
	if g := strings.TrimSpace(fields["globs"]); g != "" {
		return section.ParseDirective(g)
	}
	if strings.EqualFold(strings.TrimSpace(fields["alwaysApply"]), "false") {
		return section.Manual()
	}
	return section.Always()
}

func githubDirective(hasEnvelope bool, fields map[string]string) section.Directive {
	applyTo, set := fields["applyTo"]
	if !hasEnvelope || !set {
		return section.Manual()
	}
	applyTo = strings.TrimSpace(applyTo)
	if applyTo == "" {
		return section.Manual()
	}
	if applyTo == applyToAll {
		return section.Always()
	}
	return section.Glob(applyTo)
}

func doubleQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func singleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
