package config

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/paths"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates a version this build cannot read.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidAgent indicates an unrecognized agent name.
	ErrInvalidAgent = errors.New("invalid agent")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != 1 {
		errs = append(errs, &FieldError{Field: "version", Value: strconv.Itoa(cfg.Version), Err: ErrUnsupportedVersion})
	}

	for _, a := range cfg.Agents {
		if a == paths.AgentAll {
			continue
		}
		if !paths.ValidAgent(a) {
			errs = append(errs, &FieldError{Field: "agents", Value: a, Err: ErrInvalidAgent})
		}
	}

	pathFields := []struct {
		field, value string
		required     bool
	}{
		{"instructions_file", cfg.InstructionsFile, true},
		{"commands_file", cfg.CommandsFile, true},
		{"sections_file", cfg.SectionsFile, false},
	}
	for _, f := range pathFields {
		if f.value == "" && !f.required {
			continue
		}
		if err := validatePath(f.value); err != nil {
			errs = append(errs, &FieldError{Field: f.field, Value: f.value, Err: err})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists.
func validatePath(path string) error {
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	cleaned := filepath.Clean(path)
	if path == "" || cleaned == "." {
		return ErrInvalidPath
	}
	return nil
}

// FieldError is a validation failure for one config field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + strconv.Quote(e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
