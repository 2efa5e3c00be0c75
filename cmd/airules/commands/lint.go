package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/lint"
	"github.com/thoreinstein/airules/internal/validator"
	"github.com/thoreinstein/airules/pkg/fileutil"
)

var (
	lintFormat   string
	lintCommands bool
)

func init() {
	lintCmd.Flags().StringVarP(&lintFormat, "format", "f", string(validator.FormatText), "output format: text, json")
	lintCmd.Flags().BoolVar(&lintCommands, "commands", false, "treat the file as a commands document")
	rootCmd.AddCommand(lintCmd)
}

var lintCmd = &cobra.Command{
	Use:   "lint [file]",
	Short: "Report sections explode would split unexpectedly",
	Long: `Check a document for constructs the section splitter reads differently
from a markdown renderer: "## " lines inside code blocks, setext headings,
"globs:" lines without a space, and repeated headings. Instruction
documents are also checked against the section registry.

Without a file, the configured instructions and commands documents are
checked. Findings are warnings or info; the command fails only on errors.`,
	Example: `  # Lint the configured documents
  airules lint

  # Lint a file and emit JSON
  airules lint docs/rules.md --format json

  See Also: airules sections`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

func runLint(cmd *cobra.Command, args []string) error {
	format, err := validator.ParseFormat(lintFormat)
	if err != nil {
		return errors.NewUserError(err, "")
	}

	p, err := loadProject(cmd)
	if err != nil {
		return err
	}

	type target struct {
		path     string
		commands bool
		required bool
	}
	var targets []target
	if len(args) > 0 {
		path := p.path(args[0])
		targets = append(targets, target{path: path, commands: lintCommands || path == p.commandsPath(), required: true})
	} else {
		targets = append(targets,
			target{path: p.instructionsPath(), required: true},
			target{path: p.commandsPath(), commands: true},
		)
	}

	reporter := validator.NewReporter(cmd.OutOrStdout(), format)
	failed := false
	for _, t := range targets {
		src, err := fileutil.ReadFileWithLimit(p.fs, t.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				if !t.required {
					continue
				}
				return errors.NewUserError(errors.Wrapf(errors.ErrNotFound, "%s", t.path), "Check the file path")
			}
			return errors.NewSystemError(errors.Wrapf(err, "reading %s", t.path), "")
		}

		l := &lint.Linter{Registry: p.registry, Commands: t.commands}
		result := l.Lint(p.rel(t.path), src)
		if err := reporter.Report(result); err != nil {
			return errors.NewSystemError(err, "")
		}
		failed = failed || result.HasErrors()
	}

	if failed {
		return errors.NewExitError(errors.New("lint found errors"), errors.ExitUser)
	}
	return nil
}
