package mcp

import (
	"encoding/json"

	"github.com/spf13/afero"

	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/pkg/fileutil"
	"github.com/thoreinstein/airules/pkg/jsonc"
)

// DefaultFile is the unified config filename.
const DefaultFile = "mcp.json"

// ErrInvalidJSON indicates input that is not JSON even with comments
// allowed.
var ErrInvalidJSON = jsonc.ErrInvalid

// Parse reads a unified config. Comments and trailing commas are
// accepted.
func Parse(data []byte) (*Config, error) {
	std, err := jsonc.Standardize(data)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(std, &cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decoding MCP config"), errors.ErrInvalidConfig)
	}
	if cfg.Servers == nil {
		cfg.Servers = make(map[string]*Server)
	}
	for name, s := range cfg.Servers {
		if s == nil {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "server %q is null", name)
		}
	}
	return &cfg, nil
}

// LoadFile reads a unified config from fs. A missing file is ErrNotFound.
func LoadFile(fs afero.Fs, path string) (*Config, error) {
	if !fileutil.Exists(fs, path) {
		return nil, errors.Wrapf(errors.ErrNotFound, "MCP config %s", path)
	}

	data, err := fileutil.ReadFileWithLimit(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return cfg, nil
}

// Marshal renders cfg as indented JSON with a trailing newline.
func Marshal(cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling MCP config")
	}
	return append(data, '\n'), nil
}
