package mcp

import (
	"maps"
	"sort"
)

// Transport values for the "type" field.
const (
	// TransportStdio runs the server as a local process.
	TransportStdio = "stdio"

	// TransportSSE connects to a remote server via Server-Sent Events.
	TransportSSE = "sse"

	// TransportHTTP connects to a remote server via streamable HTTP.
	TransportHTTP = "http"
)

// Server is one MCP server in the unified format.
type Server struct {
	// Command is the executable for local servers.
	Command string `json:"command,omitempty"`

	// Args are passed to Command.
	Args []string `json:"args,omitempty"`

	// URL is the endpoint for remote servers.
	URL string `json:"url,omitempty"`

	// Type is the transport: "stdio", "sse", "http" or empty to infer it.
	Type string `json:"type,omitempty"`

	// Env is passed to the server process.
	Env map[string]string `json:"env,omitempty"`

	// Headers are sent with remote requests.
	Headers map[string]string `json:"headers,omitempty"`
}

// IsRemote reports whether the server is reached over the network. A URL
// makes a server remote unless the type says stdio.
func (s *Server) IsRemote() bool {
	switch s.Type {
	case TransportStdio:
		return false
	case TransportSSE, TransportHTTP:
		return true
	}
	return s.URL != ""
}

// Clone returns a deep copy of s.
func (s *Server) Clone() *Server {
	c := *s
	c.Args = append([]string(nil), s.Args...)
	c.Env = maps.Clone(s.Env)
	c.Headers = maps.Clone(s.Headers)
	return &c
}

// Config is the unified mcp.json document.
type Config struct {
	Servers map[string]*Server `json:"servers"`
}

// NewConfig creates a new Config with initialized maps.
func NewConfig() *Config {
	return &Config{Servers: make(map[string]*Server)}
}

// Names returns the server names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Servers))
	for n := range c.Servers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
