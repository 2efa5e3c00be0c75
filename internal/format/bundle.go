package format

import (
	"strings"

	"github.com/thoreinstein/airules/internal/section"
)

// RenderOptions controls how Render writes sections.
type RenderOptions struct {
	// Directives writes a "globs:" line under each heading whose
	// directive is not Always.
	Directives bool
}

// Render assembles a document: the general block unwrapped, then each
// unit as
//
//	## <name>
//	[globs: <value>]
//	[Description: <description>]
//
//	<body>
//
// Units with a blank body are skipped. The result ends with a single
// newline, or is "" if there is nothing to write.
func Render(general []string, units []Unit, opts RenderOptions) string {
	var b strings.Builder

	if g := Join(TrimBlank(general)); g != "" {
		b.WriteString(g)
		b.WriteString("\n")
	}

	for _, u := range units {
		text := Join(TrimBlank(u.Body))
		if text == "" && u.Description == "" {
			continue
		}
		b.WriteString(section.Heading(u.Name))
		if opts.Directives {
			b.WriteString(u.Directive.Line())
		}
		b.WriteString("\n")
		if u.Description != "" {
			b.WriteString(DescriptionLine(u.Description))
			if text != "" {
				b.WriteString("\n")
			}
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	out := strings.TrimRight(b.String(), "\r\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}
