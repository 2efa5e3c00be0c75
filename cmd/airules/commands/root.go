// Package commands implements the CLI commands for airules.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/airules/cmd"
	"github.com/thoreinstein/airules/cmd/airules/commands/flags"
	"github.com/thoreinstein/airules/cmd/airules/commands/mcp"
	"github.com/thoreinstein/airules/internal/config"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/logging"
	"github.com/thoreinstein/airules/internal/paths"
)

// agentFlag holds the value of the --agent flag.
var agentFlag []string

// configFlag holds the value of the --config flag.
var configFlag string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// noBackup holds the value of the --no-backup flag.
var noBackup bool

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringSliceVarP(&agentFlag, "agent", "a", nil,
		`target agent(s): `+strings.Join(paths.Agents(), ", ")+`, all (default: from config)`)
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "",
		"config file (default: ./airules.yaml, then the user config directory)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noBackup, "no-backup", false,
		"do not snapshot files before delete or implode changes them")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("airules version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(mcp.Cmd)
}

func initConfig() {
	config.Init()
	var cfg *config.Config
	cfg, configLoadErr = config.Load(configFlag)
	flags.SetConfig(cfg)
}

var rootCmd = &cobra.Command{
	Use:   "airules",
	Short: "Keep AI IDE rules in one markdown file",
	Long: `airules keeps the instructions and commands for AI coding assistants in
two markdown documents and explodes them into each agent's native layout:
Cursor rules, GitHub Copilot instructions and prompts, Claude, Gemini and
OpenCode commands, and CLAUDE.md, GEMINI.md and AGENTS.md root documents.

Every "## " heading is one section. A "globs:" line right under the heading
scopes the section to matching files; "globs: manual" makes it opt-in.

implode reverses the process and bundles an agent's files back into a
single document.`,
	Example: `  # Write every agent's files from instructions.md and commands.md
  airules explode

  # Only Cursor and Claude, re-running on every save
  airules explode --agent cursor,claude --watch

  # Bundle the Cursor rules back into instructions.md
  airules implode cursor

  See Also: airules lint, airules sections, airules mcp`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return validateAgentFlag(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging builds the logger for this run from the verbosity flags
// and stores it in the command context.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("conflicting flags"), "cannot use --quiet and --verbose together")
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}

	cfg := logging.Config{
		Verbosity: verbosity,
		Quiet:     quiet,
		Format:    format,
		Output:    cmd.ErrOrStderr(),
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		cfg.File = f
	}

	logger := logging.New(cfg)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// validateAgentFlag checks that all specified agents are valid.
func validateAgentFlag(cmd *cobra.Command, _ []string) error {
	// Skip validation for help and version commands
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}

	// Check for config load errors first
	if configLoadErr != nil {
		return errors.NewExitErrorWithSuggestion(configLoadErr, errors.ExitUser,
			"Check airules.yaml or pass --config <file>")
	}

	flags.SetAgentFlag(agentFlag)
	if len(agentFlag) == 0 {
		return nil
	}

	var invalid []string
	for _, a := range agentFlag {
		if a != paths.AgentAll && !paths.ValidAgent(a) {
			invalid = append(invalid, a)
		}
	}

	if len(invalid) > 0 {
		err := errors.Mark(errors.Newf("invalid agent(s): %s (valid: %s, %s)",
			strings.Join(invalid, ", "),
			strings.Join(paths.Agents(), ", "), paths.AgentAll), errors.ErrUnknownAgent)
		return errors.NewUserError(err, "Run 'airules --help' to see valid agents")
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return errors.Wrap(rootCmd.Execute(), "executing root command")
}

// PrintError writes err and its suggestion, if any, to w.
func PrintError(w io.Writer, err error) {
	msg := err.Error()
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		msg = exitErr.Error()
	}

	red := color.New(color.FgRed, color.Bold)
	if !logging.SupportsColor(w) {
		red.DisableColor()
	}
	fmt.Fprintf(w, "%s %s\n", red.Sprint("Error:"), msg)

	if exitErr != nil && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
	}
}
