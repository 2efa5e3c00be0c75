package section

// Parse splits text into its general block and sections.
//
// A document without headings has no sections and its general block is
// the whole text. When a heading repeats, the later block replaces the
// earlier one but keeps its position.
func Parse(text string) *Document {
	lines := SplitLines(text)
	doc := &Document{Sections: make(map[string]*Section)}

	type start struct {
		line int
		name string
	}
	var starts []start
	for i, line := range lines {
		if name, ok := HeadingName(line); ok {
			starts = append(starts, start{line: i, name: name})
		}
	}

	if len(starts) == 0 {
		doc.General = lines
		return doc
	}

	doc.General = lines[:starts[0].line]
	for i, s := range starts {
		end := len(lines)
		if i+1 < len(starts) {
			end = starts[i+1].line
		}

		sec := newSection(s.name, lines[s.line:end])
		if _, seen := doc.Sections[s.name]; !seen {
			doc.order = append(doc.order, s.name)
		}
		doc.Sections[s.name] = sec
	}

	return doc
}

// newSection builds a section from its raw line range, lifting out the
// directive if the first non-blank line after the heading is one.
func newSection(name string, raw []string) *Section {
	content := make([]string, len(raw))
	copy(content, raw)
	sec := &Section{Name: name, Content: content}

	for i := 1; i < len(content); i++ {
		if IsBlankLine(content[i]) {
			continue
		}
		if value, ok := matchDirective(content[i]); ok {
			sec.Directive = ParseDirective(value)
			sec.Content = append(content[:i:i], content[i+1:]...)
		}
		break
	}

	return sec
}
