package explode

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/format"
)

type rootDoc struct {
	path string
	text string
}

// rootDocs renders an agent's root documents. Manual sections never
// appear. Agents that split their root document get one file per glob
// directory; all others get a single file with everything.
func (p *Planner) rootDocs(a *agent.Agent, root string, general []string, rules []rule) []rootDoc {
	if !a.SplitRootDoc {
		text := format.Render(general, units(rules), format.RenderOptions{})
		if text == "" {
			return nil
		}
		return []rootDoc{{path: filepath.Join(root, a.RootDoc), text: text}}
	}

	byDir := make(map[string][]rule)
	var dirs []string
	for _, r := range rules {
		if r.directive.IsManual() {
			continue
		}
		dir := ""
		if r.directive.IsGlob() {
			dir = p.existingDir(root, GlobDir(r.directive.Pattern()))
		}
		if _, ok := byDir[dir]; !ok {
			dirs = append(dirs, dir)
		}
		byDir[dir] = append(byDir[dir], r)
	}

	var docs []rootDoc
	if text := format.Render(general, units(byDir[""]), format.RenderOptions{}); text != "" {
		docs = append(docs, rootDoc{path: filepath.Join(root, a.RootDoc), text: text})
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		text := format.Render(nil, units(byDir[dir]), format.RenderOptions{})
		if text == "" {
			continue
		}
		docs = append(docs, rootDoc{
			path: filepath.Join(root, filepath.FromSlash(dir), a.RootDoc),
			text: text,
		})
	}
	return docs
}

func units(rules []rule) []format.Unit {
	out := make([]format.Unit, 0, len(rules))
	for _, r := range rules {
		if r.directive.IsManual() {
			continue
		}
		out = append(out, format.Unit{Name: r.name, Directive: r.directive, Body: r.body})
	}
	return out
}

// GlobDir returns the directory a glob pattern is anchored in: the
// leading path components before the first one holding a wildcard,
// excluding the file name. Comma-separated patterns share their longest
// common directory. "" means the project root.
//
//	frontend/src/**/*.ts      -> frontend/src
//	**/*.py                   -> ""
//	app/a/*.py,app/b/**/*.py  -> app
func GlobDir(pattern string) string {
	var common []string
	first := true
	for _, p := range strings.Split(pattern, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		dir := staticDir(p)
		if first {
			common, first = dir, false
			continue
		}
		common = commonPrefix(common, dir)
	}
	return strings.Join(common, "/")
}

func staticDir(pattern string) []string {
	pattern = strings.TrimPrefix(path.Clean(strings.ReplaceAll(pattern, "\\", "/")), "./")
	parts := strings.Split(pattern, "/")
	var out []string
	// The last component names files, never a directory.
	for _, part := range parts[:len(parts)-1] {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, "*?[{") {
			break
		}
		out = append(out, part)
	}
	return out
}

func commonPrefix(a, b []string) []string {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return a[:n]
}

// existingDir walks dir up to the nearest directory that exists under
// root. It returns "" when none does.
func (p *Planner) existingDir(root, dir string) string {
	if p.Fs == nil {
		return dir
	}
	for dir != "" {
		info, err := p.Fs.Stat(filepath.Join(root, filepath.FromSlash(dir)))
		if err == nil && info.IsDir() {
			return dir
		}
		parent := path.Dir(dir)
		if parent == "." || parent == "/" {
			parent = ""
		}
		dir = parent
	}
	return ""
}
