// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"golang.org/x/term"

	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/logging"
)

// Sentinel errors for selection.
var (
	ErrNoOptions          = errors.New("nothing to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Option is one selectable entry.
type Option struct {
	Name        string
	Description string
}

// Selector asks the user to pick one option.
type Selector struct {
	reader io.Reader
	writer io.Writer
	// find runs the full-screen picker. Nil selects the numbered prompt.
	find func(options []Option) (int, error)
}

// NewSelector creates a Selector on stdin and stdout. On a terminal it
// uses a fuzzy finder; otherwise it prints a numbered list.
func NewSelector() *Selector {
	s := &Selector{reader: os.Stdin, writer: os.Stdout}
	if term.IsTerminal(int(os.Stdin.Fd())) && logging.IsTTY(os.Stdout) {
		s.find = fuzzyFind
	}
	return s
}

// NewSelectorWithIO creates a numbered-prompt Selector with custom reader
// and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{reader: r, writer: w}
}

// Interactive reports whether the selector can prompt on a terminal.
func (s *Selector) Interactive() bool {
	return s.find != nil
}

// Select prompts the user to choose from options.
//
// Returns:
//   - ErrNoOptions if the list is empty
//   - The option if only one exists (auto-selects without prompting)
//   - ErrInvalidSelection if the selection is out of range
//   - ErrSelectionCancelled if input ends or the finder is aborted
func (s *Selector) Select(title string, options []Option) (*Option, error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}
	if len(options) == 1 {
		return &options[0], nil
	}

	if s.find != nil {
		idx, err := s.find(options)
		if err != nil {
			return nil, err
		}
		return &options[idx], nil
	}

	fmt.Fprintf(s.writer, "%s:\n", title)
	for i, o := range options {
		if o.Description != "" {
			fmt.Fprintf(s.writer, "  [%d] %s (%s)\n", i+1, o.Name, o.Description)
		} else {
			fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, o.Name)
		}
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(input) == "" {
			return nil, ErrSelectionCancelled
		}
		if !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "reading selection")
		}
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return &options[0], nil
	}

	// A name is accepted as well as a number.
	for i := range options {
		if options[i].Name == input {
			return &options[i], nil
		}
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number or option", input)
	}
	if selection < 1 || selection > len(options) {
		return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(options))
	}
	return &options[selection-1], nil
}

func fuzzyFind(options []Option) (int, error) {
	idx, err := fuzzyfinder.Find(
		options,
		func(i int) string { return options[i].Name },
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return fmt.Sprintf("%s\n\n%s", options[i].Name, options[i].Description)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return 0, ErrSelectionCancelled
		}
		return 0, errors.Wrap(err, "interactive selection failed")
	}
	return idx, nil
}
