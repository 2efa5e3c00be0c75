package mcp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/thoreinstein/airules/internal/errors"
)

func TestParse(t *testing.T) {
	data := []byte(`{
  // shared servers
  "servers": {
    "github": {
      "command": "npx",
      "args": ["-y", "@modelcontextprotocol/server-github"],
      "env": {"GITHUB_TOKEN": "${GITHUB_TOKEN}"},
    },
    "docs": {"url": "https://docs.example.com/mcp", "type": "http"},
  },
}`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := map[string]*Server{
		"github": {
			Command: "npx",
			Args:    []string{"-y", "@modelcontextprotocol/server-github"},
			Env:     map[string]string{"GITHUB_TOKEN": "${GITHUB_TOKEN}"},
		},
		"docs": {URL: "https://docs.example.com/mcp", Type: TransportHTTP},
	}
	if diff := cmp.Diff(want, cfg.Servers); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"docs", "github"}, cfg.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{name: "not json", data: `{"servers": `, want: ErrInvalidJSON},
		{name: "wrong shape", data: `{"servers": []}`, want: errors.ErrInvalidConfig},
		{name: "null server", data: `{"servers": {"a": null}}`, want: errors.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParse_NoServers(t *testing.T) {
	cfg, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Servers == nil || len(cfg.Servers) != 0 {
		t.Errorf("Servers = %v, want empty map", cfg.Servers)
	}
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	if _, err := LoadFile(fs, "/project/mcp.json"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("LoadFile() missing error = %v, want ErrNotFound", err)
	}

	if err := afero.WriteFile(fs, "/project/mcp.json", []byte(`{"servers": {"a": {"command": "a"}}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(fs, "/project/mcp.json")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Servers["a"].Command != "a" {
		t.Errorf("Servers[a] = %+v", cfg.Servers["a"])
	}
}

func TestMarshal(t *testing.T) {
	cfg := NewConfig()
	cfg.Servers["a"] = &Server{Command: "run", Args: []string{"--stdio"}}

	got, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{
  "servers": {
    "a": {
      "command": "run",
      "args": [
        "--stdio"
      ]
    }
  }
}
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Marshal() mismatch (-want +got):\n%s", diff)
	}
}
