package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/config"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/settings"
)

var configShow bool

func init() {
	configCmd.Flags().BoolVar(&configShow, "show", false, "print the effective airules configuration instead")
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [agent]",
	Short: "Configure agents to read AGENTS.md",
	Long: `Update agent settings files so the agent reads AGENTS.md.

Only missing keys are added. Existing values and comments are kept; a key
that is already present is never changed, even if its value differs.

Currently Gemini needs configuring: ".gemini/settings.json" gets a
contextFileName listing AGENTS.md and GEMINI.md. Agents that need nothing
are reported as configured.

With --show, prints the effective airules configuration as YAML.`,
	Example: `  # Configure every selected agent
  airules config

  # Configure Gemini only
  airules config gemini

  # Print the effective configuration
  airules config --show

See Also: airules explode`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	if configShow {
		return runConfigShow(cmd)
	}

	p, err := loadProject(cmd)
	if err != nil {
		return err
	}

	agents := p.agents
	if len(args) > 0 {
		a, err := agent.Get(args[0])
		if err != nil {
			return errors.NewUserError(err, "Run 'airules --help' to see valid agents")
		}
		agents = []*agent.Agent{a}
	}

	c := &settings.Configurer{Fs: p.fs, Logger: p.logger, Root: p.root}
	w := cmd.OutOrStdout()
	for _, a := range agents {
		if len(settings.For(a.Name)) == 0 {
			p.logger.Debug("agent needs no settings", "agent", a.Name)
			continue
		}
		changed, err := c.Configure(a.Name)
		if err != nil {
			return errors.NewSystemError(errors.Wrapf(err, "configuring %s", a.Name),
				"Check that the settings file is valid JSON")
		}
		if quiet {
			continue
		}
		if len(changed) == 0 {
			fmt.Fprintf(w, "✓ %s already configured\n", a.Name)
			continue
		}
		for _, path := range changed {
			fmt.Fprintf(w, "✓ Updated %s\n", p.rel(path))
		}
	}
	return nil
}

func runConfigShow(cmd *cobra.Command) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(p.cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	w := cmd.OutOrStdout()
	if used := config.ConfigFileUsed(); used != "" {
		fmt.Fprintf(w, "# %s\n", used)
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "writing config")
}
