package explode

import (
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/format"
	"github.com/thoreinstein/airules/internal/registry"
	"github.com/thoreinstein/airules/internal/section"
	"github.com/thoreinstein/airules/pkg/fileutil"
)

// Kind classifies a planned file.
type Kind string

// Planned file kinds.
const (
	KindGeneral Kind = "general"
	KindRule    Kind = "rule"
	KindCommand Kind = "command"
	KindRootDoc Kind = "rootdoc"
)

// File is one file explode will write.
type File struct {
	Path  string
	Data  []byte
	Agent string
	Kind  Kind
}

// Plan is the full set of files for one explode run.
type Plan struct {
	Root  string
	Files []File
}

// Paths returns the planned paths in plan order.
func (p *Plan) Paths() []string {
	out := make([]string, len(p.Files))
	for i, f := range p.Files {
		out[i] = f.Path
	}
	return out
}

// RelPaths returns the planned paths relative to base, falling back to
// the absolute path when no relative form exists.
func (p *Plan) RelPaths(base string) []string {
	out := make([]string, len(p.Files))
	for i, f := range p.Files {
		rel, err := filepath.Rel(base, f.Path)
		if err != nil {
			rel = f.Path
		}
		out[i] = rel
	}
	return out
}

// Dirs returns the distinct parent directories of the planned files,
// sorted so parents come before children.
func (p *Plan) Dirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, f := range p.Files {
		d := filepath.Dir(f.Path)
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	sort.Strings(dirs)
	return dirs
}

// Write creates the planned directories, then writes every file
// atomically.
func (p *Plan) Write(fs afero.Fs) error {
	for _, d := range p.Dirs() {
		if err := fs.MkdirAll(d, 0o755); err != nil {
			return errors.Wrapf(err, "creating directory %s", d)
		}
	}
	for _, f := range p.Files {
		if err := fileutil.AtomicWriteFile(fs, f.Path, f.Data, fileutil.DefaultFilePerm); err != nil {
			return errors.Wrapf(err, "writing %s", f.Path)
		}
	}
	return nil
}

// Planner computes explode plans.
type Planner struct {
	Registry *registry.Registry
	Agents   []*agent.Agent
	// Fs is consulted for existing directories when placing nested
	// AGENTS.md files.
	Fs     afero.Fs
	Logger *slog.Logger
}

// rule is an instruction section with its directive resolved.
type rule struct {
	name      string
	stem      string
	directive section.Directive
	body      []string
}

// Plan computes every file the planner's agents need. commands may be
// nil.
func (p *Planner) Plan(root string, instructions, commands *section.Document) (*Plan, error) {
	if instructions == nil {
		return nil, errors.New("instructions document is required")
	}
	log := p.logger()
	plan := &Plan{Root: root}

	rules := p.resolveRules(instructions)
	var cmds []rule
	if commands != nil {
		cmds = p.collect(commands, "command")
	}

	for _, a := range p.Agents {
		if a.General != nil && !section.IsBlank(instructions.General) {
			u := format.Unit{Description: agent.GeneralDescription, Body: instructions.General}
			if err := plan.add(a, KindGeneral, a.General.Abs(root), a.General.Codec, u); err != nil {
				return nil, err
			}
		}

		if a.HasRules() {
			for _, r := range rules {
				u := format.Unit{Name: r.name, Directive: r.directive, Body: r.body}
				if err := plan.add(a, KindRule, a.Rules.Path(root, r.stem), a.Rules.Codec, u); err != nil {
					return nil, err
				}
			}
		}

		if a.HasCommands() {
			for _, c := range cmds {
				u := format.Unit{Name: c.name, Body: c.body}
				if err := plan.add(a, KindCommand, a.Commands.Path(root, c.stem), a.Commands.Codec, u); err != nil {
					return nil, err
				}
			}
		}

		if a.RootDoc != "" {
			docs := p.rootDocs(a, root, instructions.General, rules)
			for _, d := range docs {
				plan.Files = append(plan.Files, File{Path: d.path, Data: []byte(d.text), Agent: a.Name, Kind: KindRootDoc})
			}
		}
	}

	log.Debug("planned explode", "files", len(plan.Files), "rules", len(rules), "commands", len(cmds))
	return plan, nil
}

func (plan *Plan) add(a *agent.Agent, kind Kind, path string, codec format.Codec, u format.Unit) error {
	data, err := codec.Encode(u)
	if err != nil {
		return errors.Wrapf(err, "encoding %s for %s", path, a.Name)
	}
	if len(data) == 0 {
		return nil
	}
	plan.Files = append(plan.Files, File{Path: path, Data: data, Agent: a.Name, Kind: kind})
	return nil
}

// resolveRules collects instruction sections in canonical order and
// resolves each directive.
func (p *Planner) resolveRules(doc *section.Document) []rule {
	log := p.logger()
	rules := p.collect(doc, "rule")

	for i := range rules {
		r := &rules[i]
		entry, registered := p.Registry.Lookup(r.name)
		if !registered {
			log.Warn("section not in registry", "section", r.name, "directive", r.directive.String())
		}
		if r.directive.IsAlways() && registered {
			r.directive = entry.Directive
		}
	}

	for _, name := range p.Registry.Names() {
		if _, ok := doc.Get(name); !ok {
			log.Debug("registry section not in input", "section", name)
		}
	}

	return rules
}

// collect gathers the non-empty sections of doc in canonical order.
func (p *Planner) collect(doc *section.Document, what string) []rule {
	log := p.logger()
	stems := make(map[string]string)
	var out []rule

	for _, sec := range doc.Ordered() {
		if sec.Empty() {
			continue
		}
		stem := registry.Filename(sec.Name)
		if stem == "" {
			log.Warn("section has no usable name, skipping", "kind", what)
			continue
		}
		if stem == "general" && what == "rule" {
			log.Warn("section file collides with the general instructions file", "section", sec.Name)
		}
		if prev, dup := stems[stem]; dup {
			log.Warn("sections share a filename, the later one wins", "first", prev, "second", sec.Name, "file", stem)
			out = removeStem(out, stem)
		}
		stems[stem] = sec.Name
		out = append(out, rule{name: sec.Name, stem: stem, directive: sec.Directive, body: sec.Body()})
	}

	return registry.Order(p.Registry, out, func(r rule) string { return r.stem })
}

func removeStem(rules []rule, stem string) []rule {
	out := rules[:0]
	for _, r := range rules {
		if r.stem != stem {
			out = append(out, r)
		}
	}
	return out
}

func (p *Planner) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
