package mcp

import (
	"log/slog"

	"github.com/spf13/afero"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/paths"
	"github.com/thoreinstein/airules/pkg/fileutil"
	"github.com/thoreinstein/airules/pkg/jsonc"
)

// Scope selects which agent config files are touched.
type Scope string

// Scopes.
const (
	ScopeProject Scope = "project"
	ScopeGlobal  Scope = "global"
	ScopeBoth    Scope = "both"
)

// ParseScope validates a scope flag value.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeProject, ScopeGlobal, ScopeBoth:
		return Scope(s), nil
	}
	return "", errors.Newf("invalid scope %q (valid: project, global, both)", s)
}

// Syncer reads and writes agent MCP files.
type Syncer struct {
	Fs     afero.Fs
	Logger *slog.Logger
	// Root is the project directory.
	Root string
}

// Paths returns the agent's config files for scope. Agents without a
// file for a scope are skipped.
func (s *Syncer) Paths(a *agent.Agent, scope Scope) []string {
	var out []string
	if scope == ScopeProject || scope == ScopeBoth {
		if p := paths.MCPProjectPath(a.Name, s.Root); p != "" {
			out = append(out, p)
		}
	}
	if scope == ScopeGlobal || scope == ScopeBoth {
		if p := paths.MCPGlobalPath(a.Name); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Explode writes cfg into every agent file for scope and returns the
// files written. Existing files keep everything but the agent's server
// key.
func (s *Syncer) Explode(cfg *Config, agents []*agent.Agent, scope Scope) ([]string, error) {
	log := s.logger()

	var written []string
	for _, a := range agents {
		if !a.HasMCP() {
			log.Debug("agent has no MCP config", "agent", a.Name)
			continue
		}

		value := encodeServers(For(a), cfg)
		targets := s.Paths(a, scope)
		if len(targets) == 0 {
			log.Warn("no MCP config file for scope", "agent", a.Name, "scope", scope)
			continue
		}

		for _, p := range targets {
			if err := s.writeKey(p, a.MCPKey, value); err != nil {
				return written, err
			}
			log.Info("wrote MCP config", "agent", a.Name, "path", p)
			written = append(written, p)
		}
	}
	return written, nil
}

// Implode reads the agent's servers for scope back into a unified
// config. scope must be project or global.
func (s *Syncer) Implode(a *agent.Agent, scope Scope) (*Config, error) {
	if !a.HasMCP() {
		return nil, errors.Wrapf(errors.ErrUnsupported, "%s has no MCP config", a.Name)
	}
	if scope == ScopeBoth {
		return nil, errors.New("implode reads a single scope: project or global")
	}

	targets := s.Paths(a, scope)
	if len(targets) == 0 {
		return nil, errors.Wrapf(errors.ErrUnsupported, "%s has no %s MCP config", a.Name, scope)
	}
	p := targets[0]
	if !fileutil.Exists(s.Fs, p) {
		return nil, errors.Wrapf(errors.ErrNotFound, "MCP config %s", p)
	}

	data, err := fileutil.ReadFileWithLimit(s.Fs, p)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", p)
	}
	entries, err := jsonc.Entries(data, a.MCPKey)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", p)
	}
	if len(entries) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "no MCP servers under %q in %s", a.MCPKey, p)
	}

	t := For(a)
	cfg := NewConfig()
	for name, raw := range entries {
		srv, err := t.Decode(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "server %q in %s", name, p)
		}
		cfg.Servers[name] = srv
	}
	return cfg, nil
}

func (s *Syncer) writeKey(path, key string, value any) error {
	var existing []byte
	if fileutil.Exists(s.Fs, path) {
		data, err := fileutil.ReadFileWithLimit(s.Fs, path)
		if err != nil {
			return errors.Wrapf(err, "reading %s", path)
		}
		existing = data
	}

	out, err := jsonc.SetKey(existing, key, value)
	if err != nil {
		return errors.Wrapf(err, "updating %s", path)
	}
	return fileutil.WriteFileAll(s.Fs, path, out)
}

func (s *Syncer) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// encodeServers translates every server, keyed by name. The map marshals
// with sorted keys.
func encodeServers(t Translator, cfg *Config) map[string]any {
	out := make(map[string]any, len(cfg.Servers))
	for name, srv := range cfg.Servers {
		out[name] = t.Encode(srv)
	}
	return out
}
