package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/cli/prompt"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/implode"
	"github.com/thoreinstein/airules/pkg/fileutil"
)

// newSelector is replaced in tests.
var newSelector = prompt.NewSelector

func init() {
	rootCmd.AddCommand(implodeCmd)
}

var implodeCmd = &cobra.Command{
	Use:   "implode [agent] [output]",
	Short: "Bundle an agent's files back into the source documents",
	Long: `Read one agent's rule files and bundle them into a single instructions
document, and its command files into a commands document.

Sections are ordered by the section registry, then alphabetically. The
general file comes first. Rule files keep their globs as "globs:" lines.

Without an agent argument, an interactive picker is shown when running in
a terminal. The instructions are written to output, or the configured
instructions file; commands go to the configured commands file.`,
	Example: `  # Bundle Cursor rules into instructions.md
  airules implode cursor

  # Bundle GitHub instructions into a different file
  airules implode github rules.md

  See Also: airules explode`,
	Args: cobra.MaximumNArgs(2),
	RunE: runImplode,
}

func runImplode(cmd *cobra.Command, args []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}

	a, err := implodeAgent(args)
	if err != nil {
		return err
	}

	output := p.instructionsPath()
	if len(args) > 1 {
		output = p.path(args[1])
	}

	b := &implode.Bundler{Registry: p.registry, Fs: p.fs, Logger: p.logger}
	w := cmd.OutOrStdout()
	wrote := 0
	var missing error

	rules, err := b.Rules(p.root, a)
	switch {
	case err == nil:
		if err := p.backup("implode", []string{output}); err != nil {
			return err
		}
		if err := fileutil.WriteFileAll(p.fs, output, []byte(rules)); err != nil {
			return errors.NewSystemError(err, "")
		}
		wrote++
		if !quiet {
			fmt.Fprintf(w, "✓ Bundled %s rules into %s\n", a.Name, output)
		}
	case errors.Is(err, errors.ErrUnsupported):
		p.logger.Debug("agent has no rule files", "agent", a.Name)
	case errors.Is(err, errors.ErrNotFound):
		p.logger.Warn("no rule files found", "agent", a.Name)
		missing = err
	case errors.Is(err, errors.ErrNothingToBundle):
		p.logger.Warn("no rules to bundle", "agent", a.Name)
	default:
		return errors.NewSystemError(err, "")
	}

	cmds, err := b.Commands(p.root, a)
	switch {
	case err == nil:
		path := p.commandsPath()
		if err := p.backup("implode", []string{path}); err != nil {
			return err
		}
		if err := fileutil.WriteFileAll(p.fs, path, []byte(cmds)); err != nil {
			return errors.NewSystemError(err, "")
		}
		wrote++
		if !quiet {
			fmt.Fprintf(w, "✓ Bundled %s commands into %s\n", a.Name, path)
		}
	case errors.Is(err, errors.ErrUnsupported), errors.Is(err, errors.ErrNothingToBundle):
		p.logger.Debug("no commands to bundle", "agent", a.Name)
	default:
		return errors.NewSystemError(err, "")
	}

	if wrote == 0 && missing != nil {
		return errors.NewUserError(missing, "Run 'airules explode -a "+a.Name+"' first")
	}
	if wrote == 0 {
		return errors.NewUserError(errors.Wrapf(errors.ErrNothingToBundle, "agent %s", a.Name),
			"Check that the agent's files exist and are not empty")
	}
	return nil
}

// implodeAgent returns the agent named by args, or asks for one.
func implodeAgent(args []string) (*agent.Agent, error) {
	if len(args) > 0 {
		a, err := agent.Get(args[0])
		if err != nil {
			return nil, errors.NewUserError(err, "Run 'airules --help' to see valid agents")
		}
		return a, nil
	}

	var options []prompt.Option
	for _, a := range agent.All() {
		if a.HasRules() || a.HasCommands() {
			options = append(options, prompt.Option{Name: a.Name, Description: targets(a)})
		}
	}

	s := newSelector()
	if !s.Interactive() {
		return nil, errors.NewUserError(errors.New("agent is required"),
			"Usage: airules implode <agent> [output]")
	}
	choice, err := s.Select("Agent to implode", options)
	if err != nil {
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			return nil, errors.NewUserError(err, "")
		}
		return nil, errors.NewSystemError(err, "")
	}
	return agent.Get(choice.Name)
}

// targets describes where an agent's files live.
func targets(a *agent.Agent) string {
	var parts []string
	if a.Rules != nil {
		parts = append(parts, "rules: "+a.Rules.Dir)
	}
	if a.Commands != nil {
		parts = append(parts, "commands: "+a.Commands.Dir)
	}
	return strings.Join(parts, "\n")
}
