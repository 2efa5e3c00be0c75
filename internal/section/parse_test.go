package section

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_Sections(t *testing.T) {
	input := "# Project rules\n\nBe concise.\n\n## Python\nglobs: **/*.py\n\nUse type hints.\n\n## React\n\nUse hooks.\n"

	doc := Parse(input)

	wantGeneral := []string{"# Project rules\n", "\n", "Be concise.\n", "\n"}
	if diff := cmp.Diff(wantGeneral, doc.General); diff != "" {
		t.Errorf("General mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"Python", "React"}, doc.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	py, ok := doc.Get("Python")
	if !ok {
		t.Fatal("Python section missing")
	}
	if !py.Directive.IsGlob() || py.Directive.Pattern() != "**/*.py" {
		t.Errorf("Python directive = %v, want glob **/*.py", py.Directive)
	}
	wantPy := []string{"## Python\n", "\n", "Use type hints.\n", "\n"}
	if diff := cmp.Diff(wantPy, py.Content); diff != "" {
		t.Errorf("Python content mismatch (-want +got):\n%s", diff)
	}

	react, _ := doc.Get("React")
	if !react.Directive.IsAlways() {
		t.Errorf("React directive = %v, want always", react.Directive)
	}
}

func TestParse_Directives(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantKind    Kind
		wantPattern string
		wantInBody  string
	}{
		{
			name:        "glob",
			input:       "## Python\nglobs: **/*.py\n\nbody\n",
			wantKind:    KindGlob,
			wantPattern: "**/*.py",
		},
		{
			name:     "manual",
			input:    "## Secrets\nglobs: manual\n\nbody\n",
			wantKind: KindManual,
		},
		{
			name:        "uppercase keyword",
			input:       "## Python\nGLOBS: **/*.py\nbody\n",
			wantKind:    KindGlob,
			wantPattern: "**/*.py",
		},
		{
			name:        "several spaces after colon",
			input:       "## Python\nglobs:   **/*.py  \nbody\n",
			wantKind:    KindGlob,
			wantPattern: "**/*.py",
		},
		{
			name:       "tab after colon is body text",
			input:      "## Python\nglobs:\t**/*.py\nbody\n",
			wantKind:   KindAlways,
			wantInBody: "globs:\t**/*.py\n",
		},
		{
			name:        "space then tab after colon",
			input:       "## Python\nglobs: \t**/*.py\nbody\n",
			wantKind:    KindGlob,
			wantPattern: "**/*.py",
		},
		{
			name:        "blank lines before directive",
			input:       "## Python\n\n\nglobs: **/*.py\nbody\n",
			wantKind:    KindGlob,
			wantPattern: "**/*.py",
		},
		{
			name:       "no space is body text",
			input:      "## Python\nglobs:**/*.py\nbody\n",
			wantKind:   KindAlways,
			wantInBody: "globs:**/*.py\n",
		},
		{
			name:       "not adjacent to heading",
			input:      "## Python\nIntro.\nglobs: **/*.py\n",
			wantKind:   KindAlways,
			wantInBody: "globs: **/*.py\n",
		},
		{
			name:       "keyword without value",
			input:      "## Python\nglobs: \nbody\n",
			wantKind:   KindAlways,
			wantInBody: "globs: \n",
		},
		{
			name:        "comma separated patterns",
			input:       "## TypeScript\nglobs: **/*.ts,**/*.tsx\n",
			wantKind:    KindGlob,
			wantPattern: "**/*.ts,**/*.tsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.input)
			if doc.Len() != 1 {
				t.Fatalf("Len() = %d, want 1", doc.Len())
			}
			sec := doc.Ordered()[0]

			if got := sec.Directive.Kind(); got != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", got, tt.wantKind)
			}
			if got := sec.Directive.Pattern(); got != tt.wantPattern {
				t.Errorf("Pattern() = %q, want %q", got, tt.wantPattern)
			}

			joined := strings.Join(sec.Content, "")
			if tt.wantInBody != "" && !strings.Contains(joined, tt.wantInBody) {
				t.Errorf("content %q does not contain %q", joined, tt.wantInBody)
			}
			if tt.wantKind != KindAlways && strings.Contains(strings.ToLower(joined), "globs:") {
				t.Errorf("directive line left in content: %q", joined)
			}
		})
	}
}

func TestParse_NoHeadings(t *testing.T) {
	input := "# Title\n\nJust text.\n### Not a section\n"
	doc := Parse(input)

	if doc.Len() != 0 {
		t.Errorf("Len() = %d, want 0", doc.Len())
	}
	if got := strings.Join(doc.General, ""); got != input {
		t.Errorf("General = %q, want whole input", got)
	}
}

func TestParse_Empty(t *testing.T) {
	doc := Parse("")
	if doc.Len() != 0 || len(doc.General) != 0 {
		t.Errorf("Parse(\"\") = %+v, want empty document", doc)
	}
}

func TestParse_RepeatedHeading(t *testing.T) {
	input := "## Python\nfirst\n## React\nhooks\n## Python\nsecond\n"
	doc := Parse(input)

	if diff := cmp.Diff([]string{"Python", "React"}, doc.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	py, _ := doc.Get("Python")
	if diff := cmp.Diff([]string{"## Python\n", "second\n"}, py.Content); diff != "" {
		t.Errorf("last occurrence should win (-want +got):\n%s", diff)
	}
}

func TestParse_HeadingForms(t *testing.T) {
	input := "  ## Indented  \nA\n##NoSpace\n## \nB\n### Deeper\n"
	doc := Parse(input)

	// "## " with nothing after it trims to "##", which is not a heading.
	if diff := cmp.Diff([]string{"Indented"}, doc.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_HeadingInCodeFence(t *testing.T) {
	input := "## Shell\n\n```sh\n## not a heading\n```\n"
	doc := Parse(input)

	// The line scan does not track fences.
	if doc.Len() != 2 {
		t.Errorf("Len() = %d, want 2", doc.Len())
	}
}

func TestParse_KeepsCRLF(t *testing.T) {
	doc := Parse("intro\r\n## Python\r\nglobs: **/*.py\r\nbody\r\n")
	py, ok := doc.Get("Python")
	if !ok {
		t.Fatal("Python section missing")
	}
	if py.Directive.Pattern() != "**/*.py" {
		t.Errorf("Pattern() = %q", py.Directive.Pattern())
	}
	if diff := cmp.Diff([]string{"## Python\r\n", "body\r\n"}, py.Content); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestSection_Empty(t *testing.T) {
	doc := Parse("## Empty\nglobs: **/*.md\n\n   \n## Full\ntext\n")

	empty, _ := doc.Get("Empty")
	if !empty.Empty() {
		t.Error("Empty section should report Empty()")
	}
	full, _ := doc.Get("Full")
	if full.Empty() {
		t.Error("Full section should not report Empty()")
	}
}
