package mcp

import (
	"fmt"
	"slices"
	"sort"

	"github.com/thoreinstein/airules/internal/errors"
)

// Sentinel errors for validation failures.
var (
	// ErrEmptyConfig indicates the config has no servers defined.
	ErrEmptyConfig = errors.New("config has no servers")

	// ErrMissingCommand indicates a local server has no command.
	ErrMissingCommand = errors.New("local server requires command")

	// ErrMissingURL indicates a remote server has no URL.
	ErrMissingURL = errors.New("remote server requires URL")

	// ErrInvalidTransport indicates an unrecognized type value.
	ErrInvalidTransport = errors.New("invalid transport value")

	// ErrEmptyKey indicates an env or header entry with an empty key.
	ErrEmptyKey = errors.New("empty key")
)

var validTransports = []string{TransportStdio, TransportSSE, TransportHTTP, ""}

// Severity indicates whether a validation issue is an error or warning.
type Severity int

const (
	// SeverityError makes the config unusable.
	SeverityError Severity = iota

	// SeverityWarning is reported but does not stop a write.
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Issue is one validation finding.
type Issue struct {
	// Server is empty for config-level issues.
	Server   string
	Field    string
	Message  string
	Severity Severity
	Err      error
}

// Error implements the error interface.
func (e *Issue) Error() string {
	switch {
	case e.Server != "" && e.Field != "":
		return fmt.Sprintf("%s: server %q field %q: %s", e.Severity, e.Server, e.Field, e.Message)
	case e.Server != "":
		return fmt.Sprintf("%s: server %q: %s", e.Severity, e.Server, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Severity, e.Message)
	}
}

// Unwrap returns the underlying sentinel error.
func (e *Issue) Unwrap() error {
	return e.Err
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []*Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate checks cfg. Issues come back ordered by server name.
func Validate(cfg *Config) []*Issue {
	if cfg == nil || len(cfg.Servers) == 0 {
		return []*Issue{{Message: "config has no servers", Severity: SeverityError, Err: ErrEmptyConfig}}
	}

	names := make([]string, 0, len(cfg.Servers))
	for name := range cfg.Servers {
		names = append(names, name)
	}
	sort.Strings(names)

	var issues []*Issue
	for _, name := range names {
		issues = append(issues, validateServer(name, cfg.Servers[name])...)
	}
	return issues
}

func validateServer(name string, s *Server) []*Issue {
	var issues []*Issue
	add := func(field, msg string, sev Severity, err error) {
		issues = append(issues, &Issue{Server: name, Field: field, Message: msg, Severity: sev, Err: err})
	}

	if !slices.Contains(validTransports, s.Type) {
		add("type", "type must be 'stdio', 'sse', 'http', or empty", SeverityError, ErrInvalidTransport)
	}

	switch {
	case s.Type == TransportStdio && s.Command == "":
		add("command", "stdio transport requires command", SeverityError, ErrMissingCommand)
	case (s.Type == TransportSSE || s.Type == TransportHTTP) && s.URL == "":
		add("url", s.Type+" transport requires URL", SeverityError, ErrMissingURL)
	case s.Type == "" && s.Command == "" && s.URL == "":
		add("command/url", "server must have command (for local) or URL (for remote)", SeverityError, ErrMissingCommand)
	}

	if s.Command != "" && s.URL != "" {
		msg := "server has both command and URL; URL will be used"
		if !s.IsRemote() {
			msg = "server has both command and URL; command will be used"
		}
		add("", msg, SeverityWarning, nil)
	}

	for k := range s.Env {
		if k == "" {
			add("env", "environment variable key is empty", SeverityError, ErrEmptyKey)
		}
	}
	for k := range s.Headers {
		if k == "" {
			add("headers", "header key is empty", SeverityError, ErrEmptyKey)
		}
	}
	return issues
}
