package mcp

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/airules/cmd/airules/commands/flags"
	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/mcp"
)

func init() {
	Cmd.AddCommand(explodeCmd)
}

var explodeCmd = &cobra.Command{
	Use:   "explode",
	Short: "Write MCP servers into each agent's config",
	Long: `Read the unified mcp.json and write its servers into the config file of
every selected agent that supports MCP, translated to that agent's shape.

Agents without a config file for the chosen scope are skipped with a
warning (GitHub has no user-level file).`,
	Example: `  # Project configs for every agent
  airules mcp explode

  # Only Claude, user-level config
  airules mcp explode -a claude --scope global

  See Also: airules mcp implode`,
	Args: cobra.NoArgs,
	RunE: runExplode,
}

func runExplode(cmd *cobra.Command, _ []string) error {
	scope, err := parseScope()
	if err != nil {
		return err
	}
	s, err := newSyncer(cmd)
	if err != nil {
		return err
	}
	log := s.Logger

	src := sourcePath(s.Root)
	cfg, err := mcp.LoadFile(s.Fs, src)
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrNotFound):
			return errors.NewUserError(err, "Create "+mcp.DefaultFile+" or pass --source <file>")
		case errors.Is(err, errors.ErrInvalidConfig), errors.Is(err, mcp.ErrInvalidJSON):
			return errors.NewUserError(err, "Fix the JSON in "+src)
		}
		return errors.NewSystemError(err, "")
	}

	issues := mcp.Validate(cfg)
	for _, issue := range issues {
		if issue.Severity == mcp.SeverityWarning {
			log.Warn(issue.Message, "server", issue.Server, "field", issue.Field)
		}
	}
	if mcp.HasErrors(issues) {
		for _, issue := range issues {
			if issue.Severity == mcp.SeverityError {
				fmt.Fprintf(cmd.ErrOrStderr(), "  • %s\n", issue.Error())
			}
		}
		return errors.NewUserError(errors.Mark(errors.Newf("%s is invalid", src), errors.ErrInvalidConfig),
			"Fix the issues above and re-run")
	}

	for _, name := range cfg.Names() {
		srv := cfg.Servers[name]
		log.Debug("server", "name", name, "remote", srv.IsRemote(), "env", srv.Env, "headers", srv.Headers)
	}

	agents, err := flags.Agents()
	if err != nil {
		return errors.NewUserError(err, "Run 'airules --help' to see valid agents")
	}
	agents = agent.WithMCP(agents)
	if len(agents) == 0 {
		return errors.NewUserError(errors.Wrap(errors.ErrUnsupported, "no selected agent supports MCP"),
			"Select one of: claude, cursor, gemini, github, opencode")
	}

	written, err := s.Explode(cfg, agents, scope)
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	w := cmd.OutOrStdout()
	for _, p := range written {
		if rel, err := filepath.Rel(s.Root, p); err == nil && !strings.HasPrefix(rel, "..") {
			p = rel
		}
		fmt.Fprintf(w, "✓ Wrote %s\n", p)
	}
	return nil
}
