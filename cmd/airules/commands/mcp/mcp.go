// Package mcp provides the mcp command group for syncing MCP server
// configurations.
package mcp

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/airules/cmd/airules/commands/flags"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/logging"
	"github.com/thoreinstein/airules/internal/mcp"
)

var (
	scopeFlag  string
	sourceFlag string
)

func init() {
	Cmd.PersistentFlags().StringVarP(&scopeFlag, "scope", "s", string(mcp.ScopeProject),
		"config files to use: project, global, both")
	Cmd.PersistentFlags().StringVar(&sourceFlag, "source", mcp.DefaultFile,
		"unified MCP config file")
}

// Cmd is the mcp command that groups all MCP-related subcommands.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Sync MCP server configurations",
	Long: `Keep Model Context Protocol (MCP) servers in one mcp.json and write them
into each agent's own config file.

mcp.json holds a "servers" object. Each server has either a command (with
args and env) or a url (with type and headers). Comments and trailing
commas are allowed.

Agent files are merged, not replaced: only the agent's server key is
rewritten; other settings and comments are kept.`,
	Example: `  # Write servers into every agent's project config
  airules mcp explode

  # Write into the user-level configs too
  airules mcp explode --scope both

  # Rebuild mcp.json from Cursor's config
  airules mcp implode cursor

  See Also:
    airules mcp explode  - Write agent MCP configs
    airules mcp implode  - Rebuild mcp.json from an agent`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// newSyncer returns a syncer rooted at the project directory.
func newSyncer(cmd *cobra.Command) (*mcp.Syncer, error) {
	root, err := flags.WorkDir()
	if err != nil {
		return nil, errors.NewSystemError(err, "")
	}
	return &mcp.Syncer{
		Fs:     flags.Fs(),
		Logger: logging.FromContext(cmd.Context()),
		Root:   root,
	}, nil
}

// sourcePath resolves the --source flag against the project root.
func sourcePath(root string) string {
	if filepath.IsAbs(sourceFlag) {
		return sourceFlag
	}
	return filepath.Join(root, sourceFlag)
}

func parseScope() (mcp.Scope, error) {
	scope, err := mcp.ParseScope(scopeFlag)
	if err != nil {
		return "", errors.NewUserError(err, "Use --scope project, global or both")
	}
	return scope, nil
}
