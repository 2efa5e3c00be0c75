package agent

import (
	"path/filepath"
	"strings"

	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/format"
	"github.com/thoreinstein/airules/internal/paths"
)

// GeneralDescription is the description given to a general rules file
// whose format carries one.
const GeneralDescription = "General Instructions"

// Target is a directory of per-section files sharing one format.
type Target struct {
	// Dir is relative to the project root, slash separated.
	Dir   string
	Codec format.Codec
}

// Path returns the file for a section stem under root.
func (t *Target) Path(root, stem string) string {
	return filepath.Join(root, filepath.FromSlash(t.Dir), stem+t.Codec.Ext())
}

// DirPath returns the target directory under root.
func (t *Target) DirPath(root string) string {
	return filepath.Join(root, filepath.FromSlash(t.Dir))
}

// Stem returns the section stem of a filename in this target, or false
// if the name does not carry the target's extension.
func (t *Target) Stem(filename string) (string, bool) {
	ext := t.Codec.Ext()
	if !strings.HasSuffix(filename, ext) || len(filename) == len(ext) {
		return "", false
	}
	return strings.TrimSuffix(filename, ext), true
}

// File is a single file with a fixed location.
type File struct {
	// Path is relative to the project root, slash separated.
	Path  string
	Codec format.Codec
}

// Abs returns the file location under root.
func (f *File) Abs(root string) string {
	return filepath.Join(root, filepath.FromSlash(f.Path))
}

// Agent describes one AI coding assistant.
type Agent struct {
	Name string

	// Rules receives one file per instruction section. Nil if the agent
	// has no per-section rules.
	Rules *Target
	// General receives the general block. Nil if the agent has none.
	General *File
	// Commands receives one file per command section.
	Commands *Target

	// RootDoc is the instruction document the agent reads from the
	// project root, or "".
	RootDoc string
	// SplitRootDoc places glob-scoped sections in root documents next to
	// the files they match instead of in the project root.
	SplitRootDoc bool

	// MCPKey is the JSON key holding MCP servers, or "" if the agent has
	// no MCP support.
	MCPKey string
	// MCPOpenCode selects OpenCode's server shape.
	MCPOpenCode bool
}

// HasRules reports whether the agent takes per-section rule files.
func (a *Agent) HasRules() bool { return a.Rules != nil }

// HasCommands reports whether the agent takes command files.
func (a *Agent) HasCommands() bool { return a.Commands != nil }

// HasMCP reports whether the agent reads MCP server configuration.
func (a *Agent) HasMCP() bool { return a.MCPKey != "" }

var agents = []*Agent{
	{
		Name:     paths.AgentCursor,
		Rules:    &Target{Dir: ".cursor/rules", Codec: format.FrontMatter{Style: format.CursorRule, Extension: ".mdc"}},
		General:  &File{Path: ".cursor/rules/general.mdc", Codec: format.FrontMatter{Style: format.CursorRule, Extension: ".mdc"}},
		Commands: &Target{Dir: ".cursor/commands", Codec: format.Plain{Extension: ".md"}},
		MCPKey:   "mcpServers",
	},
	{
		Name:     paths.AgentGitHub,
		Rules:    &Target{Dir: ".github/instructions", Codec: format.FrontMatter{Style: format.GitHubRule, Extension: ".instructions.md"}},
		General:  &File{Path: ".github/copilot-instructions.md", Codec: format.Plain{Extension: ".md"}},
		Commands: &Target{Dir: ".github/prompts", Codec: format.FrontMatter{Style: format.GitHubPrompt, Extension: ".prompt.md"}},
		MCPKey:   "servers",
	},
	{
		Name:     paths.AgentClaude,
		Commands: &Target{Dir: ".claude/commands", Codec: format.Plain{Extension: ".md"}},
		RootDoc:  paths.RootDocFilename(paths.AgentClaude),
		MCPKey:   "mcpServers",
	},
	{
		Name:     paths.AgentGemini,
		Commands: &Target{Dir: ".gemini/commands", Codec: format.Table{Extension: ".toml"}},
		RootDoc:  paths.RootDocFilename(paths.AgentGemini),
		MCPKey:   "mcpServers",
	},
	{
		Name:        paths.AgentOpenCode,
		Commands:    &Target{Dir: ".opencode/commands", Codec: format.Plain{Extension: ".md"}},
		MCPKey:      "mcp",
		MCPOpenCode: true,
	},
	{
		Name:         paths.AgentAgents,
		RootDoc:      paths.RootDocFilename(paths.AgentAgents),
		SplitRootDoc: true,
	},
}

// All returns every agent in canonical order.
func All() []*Agent {
	out := make([]*Agent, len(agents))
	copy(out, agents)
	return out
}

// Names returns every agent name in canonical order.
func Names() []string {
	return paths.Agents()
}

// Get returns the named agent.
func Get(name string) (*Agent, error) {
	for _, a := range agents {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrUnknownAgent, "%q (valid: %s, %s)", name, strings.Join(Names(), ", "), paths.AgentAll)
}

// Resolve expands names into agents. "all" selects every agent; an
// empty list selects every agent too. Duplicates are dropped and the
// result follows canonical order.
func Resolve(names ...string) ([]*Agent, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if n == paths.AgentAll {
			return All(), nil
		}
		if _, err := Get(n); err != nil {
			return nil, err
		}
		want[n] = true
	}
	if len(want) == 0 {
		return All(), nil
	}

	out := make([]*Agent, 0, len(want))
	for _, a := range agents {
		if want[a.Name] {
			out = append(out, a)
		}
	}
	return out, nil
}

// WithMCP filters agents down to those with MCP support.
func WithMCP(in []*Agent) []*Agent {
	out := make([]*Agent, 0, len(in))
	for _, a := range in {
		if a.HasMCP() {
			out = append(out, a)
		}
	}
	return out
}
