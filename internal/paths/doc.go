// Package paths provides path resolution for the agents airules writes to.
//
// It names the supported agents, the root instruction document each one
// reads, and where each keeps its MCP configuration, both per project and
// per user. It also wraps github.com/adrg/xdg for the location of the
// airules config file.
//
//	| Agent    | Root doc  | MCP (project)          | MCP (global)                      |
//	|----------|-----------|------------------------|-----------------------------------|
//	| cursor   |           | .cursor/mcp.json       | ~/.cursor/mcp.json                |
//	| github   |           | .vscode/mcp.json       |                                   |
//	| claude   | CLAUDE.md | .mcp.json              | ~/.claude.json                    |
//	| gemini   | GEMINI.md | .gemini/settings.json  | ~/.gemini/settings.json           |
//	| opencode |           | opencode.json          | ~/.config/opencode/opencode.json  |
//	| agents   | AGENTS.md |                        |                                   |
//
// Rules and commands directories are part of each agent's target
// definition in the agent package, since they travel with the codec that
// writes them.
package paths
