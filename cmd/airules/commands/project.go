package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/airules/cmd/airules/commands/flags"
	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/backup"
	"github.com/thoreinstein/airules/internal/config"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/explode"
	"github.com/thoreinstein/airules/internal/logging"
	"github.com/thoreinstein/airules/internal/registry"
	"github.com/thoreinstein/airules/internal/section"
	"github.com/thoreinstein/airules/pkg/fileutil"
)

// project is the state shared by the document commands: where the
// documents live, which agents are selected, and the section registry.
type project struct {
	fs       afero.Fs
	root     string
	cfg      *config.Config
	registry *registry.Registry
	agents   []*agent.Agent
	logger   *slog.Logger
}

func loadProject(cmd *cobra.Command) (*project, error) {
	root, err := flags.WorkDir()
	if err != nil {
		return nil, errors.NewSystemError(err, "")
	}

	agents, err := flags.Agents()
	if err != nil {
		return nil, errors.NewUserError(err, "Run 'airules --help' to see valid agents")
	}

	p := &project{
		fs:     flags.Fs(),
		root:   root,
		cfg:    flags.Config(),
		agents: agents,
		logger: logging.FromContext(cmd.Context()),
	}

	reg, err := registry.Load(p.fs, p.path(p.cfg.SectionsFile))
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	p.registry = reg
	return p, nil
}

// backup snapshots the existing files among files before operation
// removes or overwrites them.
func (p *project) backup(operation string, files []string) error {
	if noBackup {
		return nil
	}
	mgr := backup.NewManager(p.fs)
	manifest, err := mgr.Backup(operation, p.root, files)
	switch {
	case errors.Is(err, backup.ErrNothingToBackUp):
		return nil
	case err != nil && manifest == nil:
		return errors.NewSystemError(errors.Wrap(err, "backing up files"), "Pass --no-backup to skip the backup")
	case err != nil:
		p.logger.Warn("backup taken but pruning failed", "error", err)
	}
	p.logger.Info("backed up files", "operation", operation, "files", len(manifest.Files),
		"dir", mgr.Dir(operation, manifest.ID))
	return nil
}

// path resolves name against the project root. Empty and absolute
// names are returned unchanged.
func (p *project) path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.root, name)
}

func (p *project) instructionsPath() string { return p.path(p.cfg.InstructionsFile) }

func (p *project) commandsPath() string { return p.path(p.cfg.CommandsFile) }

// readDocument parses the document at path. A missing file is an
// ErrNotFound error.
func (p *project) readDocument(path string) (*section.Document, error) {
	data, err := fileutil.ReadFileWithLimit(p.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(errors.ErrNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return section.Parse(string(data)), nil
}

// plan reads both documents and computes the explode plan. The
// instructions document is required; the commands document is not.
func (p *project) plan() (*explode.Plan, error) {
	instructions, err := p.readDocument(p.instructionsPath())
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NewUserError(err,
				"Create "+p.cfg.InstructionsFile+" or set instructions_file in airules.yaml")
		}
		return nil, errors.NewSystemError(err, "")
	}

	commands, err := p.readDocument(p.commandsPath())
	switch {
	case errors.Is(err, errors.ErrNotFound):
		p.logger.Debug("no commands document", "path", p.commandsPath())
		commands = nil
	case err != nil:
		return nil, errors.NewSystemError(err, "")
	}

	planner := &explode.Planner{
		Registry: p.registry,
		Agents:   p.agents,
		Fs:       p.fs,
		Logger:   p.logger,
	}
	plan, err := planner.Plan(p.root, instructions, commands)
	if err != nil {
		return nil, errors.Wrap(err, "planning explode")
	}
	return plan, nil
}
