package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// Agent identifiers for supported AI coding assistants.
const (
	AgentCursor   = "cursor"
	AgentGitHub   = "github"
	AgentClaude   = "claude"
	AgentGemini   = "gemini"
	AgentOpenCode = "opencode"
	AgentAgents   = "agents"
)

// AgentAll is the pseudo agent name selecting every agent.
const AgentAll = "all"

// agentRootDocs maps agents to the instruction document they read from the
// project root. Agents not listed have no root document of their own.
var agentRootDocs = map[string]string{
	AgentClaude: "CLAUDE.md",
	AgentGemini: "GEMINI.md",
	AgentAgents: "AGENTS.md",
}

// agentMCPProject maps agents to their project-scoped MCP config file,
// relative to the project root.
var agentMCPProject = map[string]string{
	AgentCursor:   filepath.Join(".cursor", "mcp.json"),
	AgentGitHub:   filepath.Join(".vscode", "mcp.json"),
	AgentClaude:   ".mcp.json",
	AgentGemini:   filepath.Join(".gemini", "settings.json"),
	AgentOpenCode: "opencode.json",
}

// agentMCPGlobal maps agents to their user-level MCP config file,
// relative to the home directory.
var agentMCPGlobal = map[string]string{
	AgentCursor:   filepath.Join(".cursor", "mcp.json"),
	AgentClaude:   ".claude.json",
	AgentGemini:   filepath.Join(".gemini", "settings.json"),
	AgentOpenCode: filepath.Join(".config", "opencode", "opencode.json"),
}

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the permission for newly created agent directories.
// Generated rule files are meant to be committed, so they are world-readable.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or an empty string when it cannot
// be determined. Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// AppConfigDir returns the directory holding the airules config file.
// Returns: <ConfigHome>/airules/
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), "airules")
}

// BackupDir returns the directory holding file snapshots taken before
// airules removes or overwrites files.
// Returns: <DataHome>/airules/backups/
func BackupDir() string {
	return filepath.Join(xdg.DataHome, "airules", "backups")
}

// ValidAgent returns true if the agent name is recognized.
// The pseudo agent "all" is not a valid agent on its own.
func ValidAgent(agent string) bool {
	for _, a := range Agents() {
		if a == agent {
			return true
		}
	}
	return false
}

// Agents returns all supported agent identifiers in their canonical order.
func Agents() []string {
	return []string{
		AgentCursor,
		AgentGitHub,
		AgentClaude,
		AgentGemini,
		AgentOpenCode,
		AgentAgents,
	}
}

// RootDocFilename returns the root instruction document an agent reads,
// or an empty string if the agent has none.
//
//   - claude: CLAUDE.md
//   - gemini: GEMINI.md
//   - agents: AGENTS.md
func RootDocFilename(agent string) string {
	return agentRootDocs[agent]
}

// MCPProjectPath returns the project-scoped MCP config path for an agent.
// Returns an empty string for agents without MCP support or an empty projectRoot.
func MCPProjectPath(agent, projectRoot string) string {
	if projectRoot == "" {
		return ""
	}
	rel, ok := agentMCPProject[agent]
	if !ok {
		return ""
	}
	return filepath.Join(projectRoot, rel)
}

// MCPGlobalPath returns the user-level MCP config path for an agent.
// Returns an empty string for agents without a global MCP file or when the
// home directory cannot be resolved.
//
// Claude is special: its user MCP servers live in ~/.claude.json, not in
// the .claude directory.
func MCPGlobalPath(agent string) string {
	rel, ok := agentMCPGlobal[agent]
	if !ok {
		return ""
	}
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, rel)
}
