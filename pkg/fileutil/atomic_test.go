package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{
			name: "successful write",
			data: []byte("## Python\n\nUse type hints.\n"),
			perm: 0o644,
		},
		{
			name: "empty data",
			data: []byte{},
			perm: 0o644,
		},
		{
			name: "restricted permissions",
			data: []byte("{}\n"),
			perm: 0o600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			fs := afero.NewOsFs()
			path := filepath.Join(dir, "test-file")

			if err := AtomicWriteFile(fs, path, tt.data, tt.perm); err != nil {
				t.Fatalf("AtomicWriteFile() error = %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading file: %v", err)
			}
			if string(got) != string(tt.data) {
				t.Errorf("content = %q, want %q", got, tt.data)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stating file: %v", err)
			}
			if gotPerm := info.Mode().Perm(); gotPerm != tt.perm {
				t.Errorf("permissions = %o, want %o", gotPerm, tt.perm)
			}
		})
	}
}

func TestAtomicWriteFile_MemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/project/.cursor/rules", 0o755); err != nil {
		t.Fatal(err)
	}

	path := "/project/.cursor/rules/python.mdc"
	if err := AtomicWriteFile(fs, path, []byte("first\n"), 0o644); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}
	if err := AtomicWriteFile(fs, path, []byte("second\n"), 0o644); err != nil {
		t.Fatalf("AtomicWriteFile() overwrite error = %v", err)
	}

	got, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(got) != "second\n" {
		t.Errorf("content = %q, want %q", got, "second\n")
	}

	entries, err := afero.ReadDir(fs, "/project/.cursor/rules")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1 (temp file left behind?)", len(entries))
	}
}

func TestAtomicWriteFile_DirectoryNotExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent", "subdir", "file.txt")

	if err := AtomicWriteFile(afero.NewOsFs(), path, []byte("data"), 0o600); err == nil {
		t.Error("AtomicWriteFile() expected error for nonexistent directory")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading directory: %v", err)
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestAtomicWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantJSON string
		wantErr  bool
	}{
		{
			name:     "map",
			value:    map[string]int{"count": 42},
			wantJSON: "{\n  \"count\": 42\n}\n",
		},
		{
			name:     "slice",
			value:    []string{"a", "b"},
			wantJSON: "[\n  \"a\",\n  \"b\"\n]\n",
		},
		{
			name:    "unmarshalable channel",
			value:   make(chan int),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if err := fs.MkdirAll("/out", 0o755); err != nil {
				t.Fatal(err)
			}
			path := "/out/mcp.json"

			err := AtomicWriteJSON(fs, path, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AtomicWriteJSON() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				if Exists(fs, path) {
					t.Error("file should not exist after marshal error")
				}
				return
			}

			got, err := afero.ReadFile(fs, path)
			if err != nil {
				t.Fatalf("reading file: %v", err)
			}
			if string(got) != tt.wantJSON {
				t.Errorf("content = %q, want %q", got, tt.wantJSON)
			}
		})
	}
}

func TestWriteFileAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/project/frontend/src/AGENTS.md"

	if err := WriteFileAll(fs, path, []byte("# rules\n")); err != nil {
		t.Fatalf("WriteFileAll() error = %v", err)
	}
	if !Exists(fs, path) {
		t.Fatalf("%s was not written", path)
	}
}
