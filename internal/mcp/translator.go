package mcp

import (
	"encoding/json"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/errors"
)

// Translator converts one server between the unified format and an
// agent's format. Fields the agent format cannot hold are dropped.
type Translator interface {
	// Encode returns the value written under the server's name.
	Encode(s *Server) any

	// Decode reads one server entry from an agent file.
	Decode(raw json.RawMessage) (*Server, error)
}

// For returns the translator for an agent.
func For(a *agent.Agent) Translator {
	if a.MCPOpenCode {
		return OpenCode{}
	}
	return Standard{}
}

// Standard is the shape used by Claude, Cursor, Gemini and VS Code.
type Standard struct{}

type standardServer struct {
	Type    string            `json:"type,omitempty"`
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// Encode implements Translator. Remote servers lose command and args;
// local servers lose url and headers.
func (Standard) Encode(s *Server) any {
	out := standardServer{Type: s.Type, Env: s.Env}
	if s.IsRemote() {
		out.URL = s.URL
		out.Headers = s.Headers
	} else {
		out.Command = s.Command
		out.Args = s.Args
	}
	return out
}

// Decode implements Translator.
func (Standard) Decode(raw json.RawMessage) (*Server, error) {
	var in standardServer
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, errors.Wrap(err, "decoding server")
	}
	return &Server{
		Command: in.Command,
		Args:    in.Args,
		URL:     in.URL,
		Type:    in.Type,
		Env:     in.Env,
		Headers: in.Headers,
	}, nil
}

// OpenCode type values.
const (
	openCodeLocal  = "local"
	openCodeRemote = "remote"
)

// OpenCode is OpenCode's shape: the command and its arguments in one
// array, "environment" instead of "env" and an "enabled" flag.
type OpenCode struct{}

type openCodeServer struct {
	Type        string            `json:"type"`
	Command     []string          `json:"command,omitempty"`
	URL         string            `json:"url,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Environment map[string]string `json:"environment,omitempty"`
	Enabled     *bool             `json:"enabled,omitempty"`
}

// Encode implements Translator. Servers are always written enabled.
func (OpenCode) Encode(s *Server) any {
	enabled := true
	out := openCodeServer{Environment: s.Env, Enabled: &enabled}
	if s.IsRemote() {
		out.Type = openCodeRemote
		out.URL = s.URL
		out.Headers = s.Headers
	} else {
		out.Type = openCodeLocal
		out.Command = append([]string{s.Command}, s.Args...)
	}
	return out
}

// Decode implements Translator. "sse" is read as remote for files
// written by older tools.
func (OpenCode) Decode(raw json.RawMessage) (*Server, error) {
	var in openCodeServer
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, errors.Wrap(err, "decoding server")
	}

	s := &Server{Env: in.Environment}
	switch {
	case in.Type == openCodeRemote, in.Type == TransportSSE, in.Type == "" && in.URL != "" && len(in.Command) == 0:
		s.URL = in.URL
		s.Headers = in.Headers
	default:
		if len(in.Command) > 0 {
			s.Command = in.Command[0]
			if len(in.Command) > 1 {
				s.Args = in.Command[1:]
			}
		}
	}
	return s, nil
}
