// Package settings points agents that read their own settings file at
// AGENTS.md.
//
// Keys are only ever added. A key that is already present is left alone
// whatever its value, and comments in the file are kept.
package settings

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/paths"
	"github.com/thoreinstein/airules/pkg/fileutil"
	"github.com/thoreinstein/airules/pkg/jsonc"
)

// GeminiContextKey is the Gemini CLI setting naming the instruction
// files it loads.
const GeminiContextKey = "contextFileName"

// geminiContextFiles is written when the key is missing. GEMINI.md stays
// in the list so existing setups keep working.
var geminiContextFiles = []string{"AGENTS.md", "GEMINI.md"}

// Requirement is a key an agent's settings file must carry.
type Requirement struct {
	Agent string
	// Path is relative to the project root.
	Path  string
	Key   string
	Value any
}

var requirements = []Requirement{
	{
		Agent: paths.AgentGemini,
		Path:  filepath.Join(".gemini", "settings.json"),
		Key:   GeminiContextKey,
		Value: geminiContextFiles,
	},
}

// For returns the requirements for an agent. Most agents have none.
func For(agent string) []Requirement {
	var out []Requirement
	for _, r := range requirements {
		if r.Agent == agent {
			out = append(out, r)
		}
	}
	return out
}

// Configurer checks and updates settings files under Root.
type Configurer struct {
	Fs     afero.Fs
	Logger *slog.Logger
	Root   string
}

// Missing returns the requirements of agent not yet met.
func (c *Configurer) Missing(agent string) ([]Requirement, error) {
	var out []Requirement
	for _, r := range For(agent) {
		ok, err := c.has(r)
		if err != nil {
			return nil, err
		}
		if !ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// Configure adds every missing key for agent and returns the files it
// changed.
func (c *Configurer) Configure(agent string) ([]string, error) {
	missing, err := c.Missing(agent)
	if err != nil {
		return nil, err
	}

	var changed []string
	for _, r := range missing {
		p := filepath.Join(c.Root, r.Path)
		existing, err := c.read(p)
		if err != nil {
			return changed, err
		}
		out, err := jsonc.SetKey(existing, r.Key, r.Value)
		if err != nil {
			return changed, errors.Wrapf(err, "updating %s", p)
		}
		if err := fileutil.WriteFileAll(c.Fs, p, out); err != nil {
			return changed, err
		}
		c.logger().Info("added setting", "agent", agent, "path", p, "setting", r.Key)
		changed = append(changed, p)
	}
	return changed, nil
}

func (c *Configurer) has(r Requirement) (bool, error) {
	p := filepath.Join(c.Root, r.Path)
	data, err := c.read(p)
	if err != nil {
		return false, err
	}
	ok, err := jsonc.HasKey(data, r.Key)
	if err != nil {
		return false, errors.Wrapf(err, "parsing %s", p)
	}
	return ok, nil
}

// read returns nil for a missing file.
func (c *Configurer) read(path string) ([]byte, error) {
	if !fileutil.Exists(c.Fs, path) {
		return nil, nil
	}
	data, err := fileutil.ReadFileWithLimit(c.Fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return data, nil
}

func (c *Configurer) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
