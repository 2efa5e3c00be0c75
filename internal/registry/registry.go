package registry

import (
	_ "embed"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/section"
)

//go:embed default_sections.json
var defaultSections []byte

// Entry is a registered section name and its default directive.
type Entry struct {
	Name      string
	Directive section.Directive
}

// Registry is an ordered, immutable set of known sections.
type Registry struct {
	entries []Entry
	byName  map[string]int
	byStem  map[string]int
}

// New builds a registry from entries in canonical order.
// Duplicate or blank names are rejected with ErrInvalidConfig.
func New(entries []Entry) (*Registry, error) {
	r := &Registry{
		entries: make([]Entry, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
		byStem:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			return nil, errors.Wrap(errors.ErrInvalidConfig, "section name cannot be empty")
		}
		if _, dup := r.byName[e.Name]; dup {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "section %q declared twice", e.Name)
		}
		idx := len(r.entries)
		r.entries = append(r.entries, e)
		r.byName[e.Name] = idx
		// First declaration wins when two names share a filename.
		if _, ok := r.byStem[Filename(e.Name)]; !ok {
			r.byStem[Filename(e.Name)] = idx
		}
	}
	return r, nil
}

// Default returns the registry embedded in the binary.
func Default() *Registry {
	r, err := Parse(defaultSections)
	if err != nil {
		panic("registry: invalid embedded default: " + err.Error())
	}
	return r
}

// Empty returns a registry with no entries.
func Empty() *Registry {
	r, _ := New(nil)
	return r
}

// Len returns the number of entries.
func (r *Registry) Len() int { return len(r.entries) }

// Entries returns the entries in canonical order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Names returns the registered names in canonical order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Name
	}
	return out
}

// Lookup returns the entry registered under exactly name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return Entry{}, false
	}
	return r.entries[idx], true
}

// Contains reports whether name is registered.
func (r *Registry) Contains(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// LookupStem returns the entry whose filename form equals stem.
func (r *Registry) LookupStem(stem string) (Entry, bool) {
	idx, ok := r.byStem[stem]
	if !ok {
		return Entry{}, false
	}
	return r.entries[idx], true
}

// HeaderForStem recovers a heading from a filename stem. A registered
// name whose filename form matches is returned verbatim; otherwise the
// stem is title-cased.
func (r *Registry) HeaderForStem(stem string) string {
	if e, ok := r.LookupStem(stem); ok {
		return e.Name
	}
	return TitleFromFilename(stem)
}

// Filename returns the filename form of a section name: lower-cased with
// spaces replaced by hyphens.
func Filename(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// TitleFromFilename reverses Filename as far as it can: hyphens become
// spaces and each word is title-cased. Acronyms do not survive.
func TitleFromFilename(stem string) string {
	words := strings.Split(strings.ReplaceAll(stem, "-", " "), " ")
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	first, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToUpper(first)) + strings.ToLower(w[size:])
}
