package implode

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/format"
	"github.com/thoreinstein/airules/internal/registry"
	"github.com/thoreinstein/airules/internal/section"
	"github.com/thoreinstein/airules/pkg/fileutil"
)

// Bundler reassembles documents from agent files.
type Bundler struct {
	Registry *registry.Registry
	Fs       afero.Fs
	Logger   *slog.Logger
}

type entry struct {
	stem string
	unit format.Unit
}

// Rules bundles the agent's rule files and general file under root.
// A missing rules directory contributes nothing. It fails with
// ErrNotFound if neither the rules directory nor the general file exists
// and with ErrNothingToBundle if no file has content.
func (b *Bundler) Rules(root string, a *agent.Agent) (string, error) {
	if !a.HasRules() {
		return "", errors.Wrapf(errors.ErrUnsupported, "%s has no rule files", a.Name)
	}

	var general []string
	generalPath := ""
	if a.General != nil {
		generalPath = a.General.Abs(root)
		u, ok, err := b.decode(generalPath, "general", a.General.Codec)
		if err != nil {
			return "", err
		}
		if ok {
			general = u.Body
		}
	}

	dir := a.Rules.DirPath(root)
	var entries []entry
	switch {
	case b.isDir(dir):
		var err error
		if entries, err = b.readTarget(dir, a.Rules, generalPath); err != nil {
			return "", err
		}
	case generalPath == "" || !fileutil.Exists(b.Fs, generalPath):
		return "", errors.Wrapf(errors.ErrNotFound, "rules directory %s", dir)
	default:
		b.logger().Debug("no rules directory; bundling the general file only", "agent", a.Name, "dir", dir)
	}

	text := format.Render(general, b.units(entries), format.RenderOptions{Directives: true})
	if text == "" {
		return "", errors.Wrapf(errors.ErrNothingToBundle, "%s rules", a.Name)
	}
	return text, nil
}

// Commands bundles the agent's command files under root. A missing
// commands directory is ErrNothingToBundle, not an error of its own.
func (b *Bundler) Commands(root string, a *agent.Agent) (string, error) {
	if !a.HasCommands() {
		return "", errors.Wrapf(errors.ErrUnsupported, "%s has no command files", a.Name)
	}

	dir := a.Commands.DirPath(root)
	if !b.isDir(dir) {
		return "", errors.Wrapf(errors.ErrNothingToBundle, "%s commands: no directory %s", a.Name, dir)
	}

	entries, err := b.readTarget(dir, a.Commands, "")
	if err != nil {
		return "", err
	}

	text := format.Render(nil, b.units(entries), format.RenderOptions{})
	if text == "" {
		return "", errors.Wrapf(errors.ErrNothingToBundle, "%s commands", a.Name)
	}
	return text, nil
}

// readTarget decodes every file in dir carrying the target's extension,
// skipping the file at skip.
func (b *Bundler) readTarget(dir string, t *agent.Target, skip string) ([]entry, error) {
	infos, err := afero.ReadDir(b.Fs, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", dir)
	}

	var out []entry
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		stem, ok := t.Stem(info.Name())
		if !ok {
			continue
		}
		p := filepath.Join(dir, info.Name())
		if p == skip {
			continue
		}
		u, ok, err := b.decode(p, stem, t.Codec)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, entry{stem: stem, unit: u})
	}
	return out, nil
}

// decode reads and decodes one file. ok is false when the file is absent
// or blank.
func (b *Bundler) decode(path, stem string, codec format.Codec) (format.Unit, bool, error) {
	data, err := fileutil.ReadFileWithLimit(b.Fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return format.Unit{}, false, nil
		}
		return format.Unit{}, false, errors.Wrapf(err, "reading %s", path)
	}
	if strings.TrimSpace(string(data)) == "" {
		b.logger().Debug("skipping empty file", "path", path)
		return format.Unit{}, false, nil
	}

	u, err := codec.Decode(stem, data)
	if err != nil {
		return format.Unit{}, false, errors.Wrapf(err, "decoding %s", path)
	}
	if section.IsBlank(u.Body) && u.Description == "" {
		return format.Unit{}, false, nil
	}
	return u, true, nil
}

// units names and orders decoded entries.
func (b *Bundler) units(entries []entry) []format.Unit {
	ordered := registry.Order(b.Registry, entries, func(e entry) string { return e.stem })

	out := make([]format.Unit, 0, len(ordered))
	for _, e := range ordered {
		u := e.unit
		if u.Name == "" {
			u.Name = b.Registry.HeaderForStem(e.stem)
		}
		if !b.Registry.Contains(u.Name) {
			b.logger().Warn("section not in registry", "section", u.Name, "file", e.stem)
		}
		out = append(out, u)
	}
	return out
}

func (b *Bundler) isDir(path string) bool {
	info, err := b.Fs.Stat(path)
	return err == nil && info.IsDir()
}

func (b *Bundler) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}
