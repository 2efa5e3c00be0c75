package registry

import (
	"bytes"
	"os"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/section"
	"github.com/thoreinstein/airules/pkg/fileutil"
)

// RootKey is the top-level key of a registry file.
const RootKey = "section_globs"

// Load reads a registry override from path. An empty path returns the
// embedded default. A missing file is an ErrNotFound error.
func Load(fs afero.Fs, path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := fileutil.ReadFileWithLimit(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(errors.ErrNotFound, "sections file %s", path)
		}
		return nil, errors.Wrapf(err, "reading sections file %s", path)
	}

	r, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing sections file %s", path)
	}
	return r, nil
}

// Parse decodes a registry document. JSON and YAML are both accepted; key
// order under RootKey becomes the canonical order.
func Parse(data []byte) (*Registry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "sections file is empty")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decoding sections"), errors.ErrInvalidConfig)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "sections file has no content")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "sections file must be a mapping")
	}

	globs := mappingValue(root, RootKey)
	if globs == nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "missing top-level key %q", RootKey)
	}
	if globs.Kind != yaml.MappingNode {
		// An explicitly empty or null mapping is allowed.
		if globs.ShortTag() == "!!null" {
			return Empty(), nil
		}
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "%q must be a mapping", RootKey)
	}

	entries := make([]Entry, 0, len(globs.Content)/2)
	for i := 0; i+1 < len(globs.Content); i += 2 {
		key, val := globs.Content[i], globs.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "line %d: section name must be a string", key.Line)
		}
		d, err := directiveFromNode(key.Value, val)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Name: key.Value, Directive: d})
	}

	return New(entries)
}

func directiveFromNode(name string, val *yaml.Node) (section.Directive, error) {
	if val.Kind != yaml.ScalarNode {
		return section.Directive{}, errors.Wrapf(errors.ErrInvalidConfig,
			"line %d: section %q must map to a glob string or null", val.Line, name)
	}
	if val.ShortTag() == "!!null" {
		return section.Manual(), nil
	}
	if strings.TrimSpace(val.Value) == "" {
		return section.Directive{}, errors.Wrapf(errors.ErrInvalidConfig,
			"line %d: section %q has an empty glob; use null for manual sections", val.Line, name)
	}
	return section.ParseDirective(val.Value), nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}
