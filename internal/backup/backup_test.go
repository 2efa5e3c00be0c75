package backup

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/thoreinstein/airules/internal/errors"
)

const (
	testRoot   = "/project"
	backupRoot = "/backups"
)

func testManager(t *testing.T, fs afero.Fs, opts ...Option) *Manager {
	t.Helper()
	m := NewManager(fs, append([]Option{WithBackupDir(backupRoot)}, opts...)...)
	clock := time.Date(2026, 1, 23, 10, 7, 12, 0, time.UTC)
	m.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return m
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestBackup(t *testing.T) {
	fs := afero.NewMemMapFs()
	rules := filepath.Join(testRoot, ".cursor", "rules", "python.mdc")
	writeFile(t, fs, rules, "## Python\n")
	missing := filepath.Join(testRoot, ".cursor", "rules", "react.mdc")

	m := testManager(t, fs)
	manifest, err := m.Backup("delete", testRoot, []string{rules, missing})
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}

	if manifest.ID != "20260123T100713" {
		t.Errorf("ID = %q", manifest.ID)
	}
	if len(manifest.Files) != 1 {
		t.Fatalf("Files = %v, want only the existing file", manifest.Files)
	}
	f := manifest.Files[0]
	if f.RelPath != ".cursor/rules/python.mdc" {
		t.Errorf("RelPath = %q", f.RelPath)
	}
	// sha256("## Python\n")
	if len(f.SHA256Hash) != 64 {
		t.Errorf("SHA256Hash = %q", f.SHA256Hash)
	}

	copied, err := afero.ReadFile(fs, filepath.Join(m.Dir("delete", manifest.ID), ".cursor", "rules", "python.mdc"))
	if err != nil {
		t.Fatalf("reading copy: %v", err)
	}
	if string(copied) != "## Python\n" {
		t.Errorf("copy = %q", copied)
	}

	data, err := afero.ReadFile(fs, filepath.Join(m.Dir("delete", manifest.ID), "manifest.json"))
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}
	var stored Manifest
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("manifest is not JSON: %v", err)
	}
	if stored.Operation != "delete" || stored.Root != testRoot || stored.Version != ManifestVersion {
		t.Errorf("stored manifest = %+v", stored)
	}
}

func TestBackup_NothingToBackUp(t *testing.T) {
	m := testManager(t, afero.NewMemMapFs())
	_, err := m.Backup("delete", testRoot, []string{filepath.Join(testRoot, "gone.md")})
	if !errors.Is(err, ErrNothingToBackUp) {
		t.Errorf("expected ErrNothingToBackUp, got %v", err)
	}
}

func TestBackup_Collision(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := filepath.Join(testRoot, "instructions.md")
	writeFile(t, fs, src, "test content")

	m := testManager(t, fs)
	m.now = func() time.Time { return time.Date(2026, 1, 23, 10, 7, 12, 0, time.UTC) }

	first, err := m.Backup("implode", testRoot, []string{src})
	if err != nil {
		t.Fatalf("first backup failed: %v", err)
	}
	second, err := m.Backup("implode", testRoot, []string{src})
	if err != nil {
		t.Fatalf("second backup failed: %v", err)
	}

	if first.ID == second.ID {
		t.Errorf("backup IDs collided: %s", first.ID)
	}
	if second.ID != "20260123T100712-1" {
		t.Errorf("second ID = %q", second.ID)
	}
}

func TestBackup_Retention(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := filepath.Join(testRoot, "instructions.md")
	writeFile(t, fs, src, "v1")

	m := testManager(t, fs, WithRetentionCount(2))
	var ids []string
	for range 4 {
		manifest, err := m.Backup("implode", testRoot, []string{src})
		if err != nil {
			t.Fatalf("Backup() error = %v", err)
		}
		ids = append(ids, manifest.ID)
	}

	list, err := m.List("implode")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List() = %d snapshots, want 2", len(list))
	}
	if list[0].ID != ids[3] || list[1].ID != ids[2] {
		t.Errorf("List() = %s, %s; want newest first %s, %s", list[0].ID, list[1].ID, ids[3], ids[2])
	}
}

func TestList_Empty(t *testing.T) {
	m := testManager(t, afero.NewMemMapFs())
	if _, err := m.List("delete"); !errors.Is(err, ErrNoBackupsFound) {
		t.Errorf("expected ErrNoBackupsFound, got %v", err)
	}
	if err := m.Prune("delete", 1); err != nil {
		t.Errorf("Prune() with nothing stored: %v", err)
	}
}

func TestRelPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/project/.cursor/rules/a.mdc", ".cursor/rules/a.mdc"},
		{"/project/instructions.md", "instructions.md"},
		{"/elsewhere/rules.md", "external/elsewhere/rules.md"},
	}
	for _, tt := range tests {
		if got := filepath.ToSlash(relPath(testRoot, filepath.FromSlash(tt.path))); got != tt.want {
			t.Errorf("relPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
