// Package lint reports constructs in an instructions document that the
// section splitter handles differently from a markdown reader.
//
// The splitter is a line scanner. Lint parses the same text with a
// CommonMark parser and flags the places where the two disagree, plus
// directive typos, duplicate headings and sections the registry does not
// know.
package lint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/thoreinstein/airules/internal/registry"
	"github.com/thoreinstein/airules/internal/section"
	"github.com/thoreinstein/airules/internal/validator"
)

// Messages for each finding.
const (
	MsgHeadingInCode  = "heading inside a code block still starts a section"
	MsgSetextHeading  = "underlined heading is not split into a section; use \"## \""
	MsgDirectiveSpace = "globs: needs a space after the colon; kept as body text"
	MsgDuplicate      = "duplicate heading; the last one wins"
	MsgUnmapped       = "section is not in the registry; it will always apply"
	MsgAbsent         = "registry section not present"
	MsgEmpty          = "section is empty and produces no files"
	MsgNoSections     = "no \"## \" headings; only the general file will be written"
	MsgNoCommands     = "no \"## \" headings; no commands will be written"
)

// Linter checks documents against a registry.
type Linter struct {
	Registry *registry.Registry
	// Commands lints a commands document: registry checks are skipped.
	Commands bool
}

// Lint checks src and returns its findings sorted by line.
func (l *Linter) Lint(file string, src []byte) *validator.Result {
	result := &validator.Result{File: file}

	content := string(src)
	lines := section.SplitLines(content)
	idx := newLineIndex(src)
	md := scan(src, idx)

	type heading struct {
		line int
		name string
	}
	var headings []heading
	seen := make(map[string]int)

	for i, line := range lines {
		name, ok := section.HeadingName(line)
		if !ok {
			continue
		}
		if md.code[i] {
			result.AddWarning(i+1, name, MsgHeadingInCode)
		}
		if first, dup := seen[name]; dup {
			result.Issues = append(result.Issues, validator.Issue{
				Severity: validator.SeverityWarning,
				Line:     i + 1,
				Section:  name,
				Message:  MsgDuplicate,
				Context:  map[string]string{"first": fmt.Sprint(first + 1)},
			})
		} else {
			seen[name] = i
		}
		headings = append(headings, heading{line: i, name: name})
	}

	for _, line := range md.setext {
		result.AddWarning(line+1, strings.TrimSpace(lines[line]), MsgSetextHeading)
	}

	for n, h := range headings {
		end := len(lines)
		if n+1 < len(headings) {
			end = headings[n+1].line
		}
		for i := h.line + 1; i < end; i++ {
			if section.IsBlankLine(lines[i]) {
				continue
			}
			if section.LooksLikeDirective(lines[i]) {
				result.Issues = append(result.Issues, validator.Issue{
					Severity: validator.SeverityWarning,
					Line:     i + 1,
					Section:  h.name,
					Message:  MsgDirectiveSpace,
					Context:  map[string]string{"text": strings.TrimSpace(lines[i])},
				})
			}
			break
		}
	}

	doc := section.Parse(content)
	if doc.Len() == 0 {
		msg := MsgNoSections
		if l.Commands {
			msg = MsgNoCommands
		}
		result.AddInfo(0, "", msg)
	}

	// last[name] is the heading line of the block that wins.
	last := make(map[string]int, len(headings))
	for _, h := range headings {
		last[h.name] = h.line + 1
	}
	for _, sec := range doc.Ordered() {
		if sec.Empty() {
			result.AddInfo(last[sec.Name], sec.Name, MsgEmpty)
		}
		if !l.Commands && l.Registry != nil && !l.Registry.Contains(sec.Name) {
			result.AddWarning(last[sec.Name], sec.Name, MsgUnmapped)
		}
	}

	if !l.Commands && l.Registry != nil && doc.Len() > 0 {
		for _, name := range l.Registry.Names() {
			if _, ok := doc.Get(name); !ok {
				result.AddInfo(0, name, MsgAbsent)
			}
		}
	}

	result.Sort()
	return result
}

// markdown is what the CommonMark parser saw, by 0-based line.
type markdown struct {
	// code marks lines inside fenced or indented code blocks.
	code map[int]bool
	// setext lists the text lines of underlined level-2 headings.
	setext []int
}

func scan(src []byte, idx lineIndex) markdown {
	md := markdown{code: make(map[int]bool)}
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			segs := node.Lines()
			for i := 0; i < segs.Len(); i++ {
				md.code[idx.line(segs.At(i).Start)] = true
			}
			return ast.WalkSkipChildren, nil
		case *ast.Heading:
			if node.Level != 2 || node.Lines().Len() == 0 {
				break
			}
			segs := node.Lines()
			last := idx.line(segs.At(segs.Len() - 1).Start)
			if underline(idx.text(src, last+1)) {
				md.setext = append(md.setext, idx.line(segs.At(0).Start))
			}
		}
		return ast.WalkContinue, nil
	})
	return md
}

// underline reports whether line is a level-2 setext underline.
func underline(line string) bool {
	t := strings.TrimSpace(line)
	return t != "" && strings.Trim(t, "-") == ""
}

// lineIndex maps byte offsets to 0-based line numbers.
type lineIndex []int

func newLineIndex(src []byte) lineIndex {
	starts := lineIndex{0}
	for i, b := range src {
		if b == '\n' && i+1 < len(src) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (idx lineIndex) line(offset int) int {
	return sort.Search(len(idx), func(i int) bool { return idx[i] > offset }) - 1
}

func (idx lineIndex) text(src []byte, line int) string {
	if line < 0 || line >= len(idx) {
		return ""
	}
	end := len(src)
	if line+1 < len(idx) {
		end = idx[line+1]
	}
	return string(src[idx[line]:end])
}
