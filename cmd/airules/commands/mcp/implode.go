package mcp

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/mcp"
	"github.com/thoreinstein/airules/pkg/fileutil"
)

var implodeStdout bool

func init() {
	implodeCmd.Flags().BoolVar(&implodeStdout, "stdout", false, "print the config instead of writing --source")
	Cmd.AddCommand(implodeCmd)
}

var implodeCmd = &cobra.Command{
	Use:   "implode <agent>",
	Short: "Rebuild mcp.json from an agent's config",
	Long: `Read the MCP servers from one agent's config file and write them to the
unified mcp.json, translated back to the common shape.

--scope must be project or global. The source file is overwritten.`,
	Example: `  # Rebuild mcp.json from the project's Cursor config
  airules mcp implode cursor

  # Print Claude's user-level servers
  airules mcp implode claude --scope global --stdout

  See Also: airules mcp explode`,
	Args: cobra.ExactArgs(1),
	RunE: runImplode,
}

func runImplode(cmd *cobra.Command, args []string) error {
	scope, err := parseScope()
	if err != nil {
		return err
	}
	if scope == mcp.ScopeBoth {
		return errors.NewUserError(errors.New("implode reads a single scope"), "Use --scope project or --scope global")
	}

	a, err := agent.Get(args[0])
	if err != nil {
		return errors.NewUserError(err, "Run 'airules --help' to see valid agents")
	}

	s, err := newSyncer(cmd)
	if err != nil {
		return err
	}

	cfg, err := s.Implode(a, scope)
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrUnsupported):
			return errors.NewUserError(err, "")
		case errors.Is(err, errors.ErrNotFound):
			return errors.NewUserError(err, "Run 'airules mcp explode -a "+a.Name+"' first, or pick another scope")
		}
		return errors.NewSystemError(err, "")
	}

	if implodeStdout {
		data, err := mcp.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return errors.Wrap(err, "writing config")
	}

	dst := sourcePath(s.Root)
	if err := fileutil.AtomicWriteJSON(s.Fs, dst, cfg); err != nil {
		return errors.NewSystemError(err, "")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d server(s) from %s to %s\n", len(cfg.Servers), a.Name, dst)
	return nil
}
