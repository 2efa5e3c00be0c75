package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/thoreinstein/airules/internal/errors"
)

var agents = []Option{
	{Name: "cursor", Description: ".cursor/rules"},
	{Name: "github", Description: ".github/instructions"},
	{Name: "claude"},
}

func TestSelect_EmptyList(t *testing.T) {
	t.Parallel()

	s := NewSelectorWithIO(strings.NewReader(""), &bytes.Buffer{})
	if _, err := s.Select("Agent", nil); !errors.Is(err, ErrNoOptions) {
		t.Errorf("expected ErrNoOptions, got: %v", err)
	}
}

func TestSelect_SingleItem(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &buf)

	result, err := s.Select("Agent", agents[:1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Name != "cursor" {
		t.Errorf("expected 'cursor', got %q", result.Name)
	}
	if buf.Len() > 0 {
		t.Errorf("expected no output for single item, got: %s", buf.String())
	}
}

func TestSelect_ValidSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantName string
	}{
		{name: "explicit first", input: "1\n", wantName: "cursor"},
		{name: "explicit third", input: "3\n", wantName: "claude"},
		{name: "default on empty", input: "\n", wantName: "cursor"},
		{name: "whitespace trimmed", input: "  2  \n", wantName: "github"},
		{name: "by name", input: "claude\n", wantName: "claude"},
		{name: "no trailing newline", input: "2", wantName: "github"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			s := NewSelectorWithIO(strings.NewReader(tt.input), &buf)
			result, err := s.Select("Agent", agents)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Name != tt.wantName {
				t.Errorf("got %q, want %q", result.Name, tt.wantName)
			}
			if !strings.Contains(buf.String(), "[1] cursor (.cursor/rules)") || !strings.Contains(buf.String(), "[3] claude\n") {
				t.Errorf("unexpected prompt:\n%s", buf.String())
			}
		})
	}
}

func TestSelect_InvalidSelection(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"0\n", "4\n", "vim\n"} {
		s := NewSelectorWithIO(strings.NewReader(input), &bytes.Buffer{})
		if _, err := s.Select("Agent", agents); !errors.Is(err, ErrInvalidSelection) {
			t.Errorf("Select(%q) error = %v, want ErrInvalidSelection", input, err)
		}
	}
}

func TestSelect_Cancelled(t *testing.T) {
	t.Parallel()

	s := NewSelectorWithIO(strings.NewReader(""), &bytes.Buffer{})
	if _, err := s.Select("Agent", agents); !errors.Is(err, ErrSelectionCancelled) {
		t.Errorf("expected ErrSelectionCancelled, got: %v", err)
	}
}

func TestSelect_Finder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &buf)
	s.find = func(options []Option) (int, error) { return 1, nil }

	if !s.Interactive() {
		t.Error("selector with a finder should be interactive")
	}
	result, err := s.Select("Agent", agents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Name != "github" {
		t.Errorf("got %q, want github", result.Name)
	}
	if buf.Len() > 0 {
		t.Errorf("finder should not print the numbered list, got: %s", buf.String())
	}

	s.find = func([]Option) (int, error) { return 0, ErrSelectionCancelled }
	if _, err := s.Select("Agent", agents); !errors.Is(err, ErrSelectionCancelled) {
		t.Errorf("expected ErrSelectionCancelled, got: %v", err)
	}
}
