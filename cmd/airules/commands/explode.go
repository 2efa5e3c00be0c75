package commands

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/paths"
	"github.com/thoreinstein/airules/internal/settings"
	"github.com/thoreinstein/airules/internal/watch"
)

var explodeWatch bool

func init() {
	explodeCmd.Flags().BoolVarP(&explodeWatch, "watch", "w", false,
		"re-run when the instructions or commands document changes")
	rootCmd.AddCommand(explodeCmd)
}

var explodeCmd = &cobra.Command{
	Use:   "explode",
	Short: "Write every agent's rule and command files",
	Long: `Split the instructions and commands documents into the files each
selected agent reads.

Each "## " section of the instructions document becomes one rule file per
agent with per-section rules (Cursor, GitHub), and is collected into the
root documents (CLAUDE.md, GEMINI.md, AGENTS.md). Each section of the
commands document becomes one command file per agent. Existing files are
overwritten.`,
	Example: `  # Explode for every configured agent
  airules explode

  # Only Cursor, re-running on every save
  airules explode -a cursor --watch

  See Also: airules ignores, airules delete, airules implode`,
	Args: cobra.NoArgs,
	RunE: runExplode,
}

func runExplode(cmd *cobra.Command, _ []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}

	if err := explodeOnce(p, cmd.OutOrStdout()); err != nil {
		return err
	}
	warnGeminiContext(p)

	if !explodeWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := &watch.Watcher{
		Files:  []string{p.instructionsPath(), p.commandsPath()},
		Logger: p.logger,
		OnChange: func(_ context.Context, changed []string) error {
			p.logger.Info("documents changed", "files", changed)
			return explodeOnce(p, cmd.OutOrStdout())
		},
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s and %s (Ctrl+C to stop)\n",
			p.cfg.InstructionsFile, p.cfg.CommandsFile)
	}
	return w.Run(ctx)
}

func explodeOnce(p *project, w io.Writer) error {
	plan, err := p.plan()
	if err != nil {
		return err
	}
	if err := plan.Write(p.fs); err != nil {
		return err
	}

	p.logger.Debug("exploded", "files", len(plan.Files))
	if !quiet {
		fmt.Fprintf(w, "✓ Wrote %d file(s) for %s\n", len(plan.Files), agentList(p.agents))
	}
	return nil
}

// warnGeminiContext warns when Gemini is selected but not configured
// to read AGENTS.md.
func warnGeminiContext(p *project) {
	for _, a := range p.agents {
		if a.Name != paths.AgentGemini {
			continue
		}
		c := &settings.Configurer{Fs: p.fs, Logger: p.logger, Root: p.root}
		missing, err := c.Missing(a.Name)
		if err != nil {
			p.logger.Warn("could not check gemini settings", "error", err)
			return
		}
		if len(missing) > 0 {
			p.logger.Warn("gemini does not read AGENTS.md; run 'airules config gemini'",
				"key", settings.GeminiContextKey)
		}
		return
	}
}

func agentList(agents []*agent.Agent) string {
	names := make([]string, len(agents))
	for i, a := range agents {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}
