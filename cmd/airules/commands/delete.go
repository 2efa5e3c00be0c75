package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/explode"
	"github.com/thoreinstein/airules/pkg/fileutil"
)

var (
	deleteDryRun     bool
	deleteEverything bool
)

func init() {
	deleteCmd.Flags().BoolVarP(&deleteDryRun, "dry-run", "n", false, "print what would be removed without removing it")
	deleteCmd.Flags().BoolVarP(&deleteEverything, "everything", "e", false,
		"also remove agent files explode no longer writes; works without the instructions file")
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the files explode writes",
	Long: `Remove every file explode would write for the selected agents, then
remove agent directories left empty.

The file list is computed from the instructions and commands documents, so
the instructions file must exist, and files written for sections that have
since been removed from it are not found. Pass --everything to also remove
every file in an agent's rules and commands directories that carries the
directory's extension, along with general files and root documents. With
--everything a missing instructions file is not an error.

Other files are never touched.`,
	Example: `  # Preview what would be removed
  airules delete --dry-run

  # Remove only the Cursor files
  airules delete -a cursor

  # Remove leftovers of deleted sections too
  airules delete --everything

  See Also: airules explode, airules ignores`,
	Args: cobra.NoArgs,
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, _ []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}

	var planned, dirs []string
	plan, err := p.plan()
	switch {
	case err == nil:
		planned = plan.Paths()
		dirs = agentDirs(plan)
	case deleteEverything && errors.Is(err, errors.ErrNotFound):
		p.logger.Debug("no instructions document; removing agent files only", "path", p.instructionsPath())
	default:
		return err
	}

	if deleteEverything {
		swept, sweptDirs, err := p.sweep()
		if err != nil {
			return errors.NewSystemError(err, "")
		}
		planned = append(planned, swept...)
		dirs = append(dirs, sweptDirs...)
	}

	var existing []string
	seen := make(map[string]bool)
	for _, path := range planned {
		if seen[path] || !fileutil.Exists(p.fs, path) {
			continue
		}
		seen[path] = true
		existing = append(existing, path)
	}
	if !deleteDryRun {
		if err := p.backup("delete", existing); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	removed := 0
	for _, path := range existing {
		rel := p.rel(path)
		if deleteDryRun {
			fmt.Fprintf(w, "would remove %s\n", rel)
			removed++
			continue
		}
		if err := p.fs.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.NewSystemError(errors.Wrapf(err, "removing %s", path), "")
		}
		p.logger.Debug("removed", "path", path)
		removed++
	}

	if !deleteDryRun {
		for _, dir := range pruneDirs(p.root, dirs) {
			empty, err := afero.IsEmpty(p.fs, dir)
			if err != nil || !empty {
				continue
			}
			if err := p.fs.Remove(dir); err != nil {
				p.logger.Warn("could not remove directory", "path", dir, "error", err)
				continue
			}
			p.logger.Debug("removed empty directory", "path", dir)
		}
	}

	if !quiet && !deleteDryRun {
		fmt.Fprintf(w, "✓ Removed %d file(s)\n", removed)
	}
	return nil
}

// agentDirs returns the directories holding per-section files. Root
// documents live in project directories, which are never pruned.
func agentDirs(plan *explode.Plan) []string {
	var dirs []string
	for _, f := range plan.Files {
		if f.Kind != explode.KindRootDoc {
			dirs = append(dirs, filepath.Dir(f.Path))
		}
	}
	return dirs
}

// sweep lists the agent files on disk regardless of the documents: every
// file in a rules or commands directory carrying its extension, each
// general file and each root document. It also returns the directories
// that may be left empty.
func (p *project) sweep() ([]string, []string, error) {
	var files, dirs []string
	for _, a := range p.agents {
		for _, t := range []*agent.Target{a.Rules, a.Commands} {
			if t == nil {
				continue
			}
			dir := t.DirPath(p.root)
			entries, err := afero.ReadDir(p.fs, dir)
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return nil, nil, errors.Wrapf(err, "listing %s", dir)
			}
			for _, e := range entries {
				if e.IsDir() {
					continue
				}
				if _, ok := t.Stem(e.Name()); ok {
					files = append(files, filepath.Join(dir, e.Name()))
				}
			}
			dirs = append(dirs, dir)
		}
		if a.General != nil {
			path := a.General.Abs(p.root)
			files = append(files, path)
			dirs = append(dirs, filepath.Dir(path))
		}
		if a.RootDoc != "" {
			files = append(files, filepath.Join(p.root, a.RootDoc))
		}
	}
	return files, dirs, nil
}

func (p *project) rel(path string) string {
	if rel, err := filepath.Rel(p.root, path); err == nil {
		return rel
	}
	return path
}

// pruneDirs returns dirs and their ancestors below root, deepest first,
// so that children are removed before their parents.
func pruneDirs(root string, dirs []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range dirs {
		for d != root && strings.HasPrefix(d, root+string(filepath.Separator)) {
			if seen[d] {
				break
			}
			seen[d] = true
			out = append(out, d)
			d = filepath.Dir(d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if di, dj := strings.Count(out[i], string(filepath.Separator)), strings.Count(out[j], string(filepath.Separator)); di != dj {
			return di > dj
		}
		return out[i] < out[j]
	})
	return out
}
