package validator

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestReporter_Report(t *testing.T) {
	result := &Result{File: "instructions.md"}
	result.AddError(0, "", "sections file is invalid")
	result.AddWarning(12, "Python", "globs: needs a space after the colon")
	result.AddInfo(20, "Secrets", "section is empty")
	result.Issues[1].Context = map[string]string{"line": "globs:**/*.py"}

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatText).Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"instructions.md:",
			"1 error(s)",
			"1 warning(s)",
			"1 info",
			"sections file is invalid",
			"12 Python: globs: needs a space after the colon",
			"(line=globs:**/*.py)",
			"20 Secrets: section is empty",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatJSON).Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		var decoded Result
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode JSON output: %v", err)
		}
		if len(decoded.Issues) != 3 {
			t.Fatalf("decoded issues count = %d, want 3", len(decoded.Issues))
		}
		if decoded.Issues[1].Severity != SeverityWarning || decoded.Issues[1].Line != 12 {
			t.Errorf("second issue = %+v", decoded.Issues[1])
		}
		if !strings.Contains(buf.String(), `"severity": "warning"`) {
			t.Errorf("severity not written as text:\n%s", buf.String())
		}
	})

	t.Run("empty result json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatJSON).Report(&Result{File: "x.md"}); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), `"issues": []`) {
			t.Errorf("empty issues should be an array:\n%s", buf.String())
		}
	})

	t.Run("empty result text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatText).Report(&Result{File: "x.md"}); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), "x.md: no issues") {
			t.Errorf("output missing success message:\n%s", buf.String())
		}
	})
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}
