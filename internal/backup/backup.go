package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/paths"
	"github.com/thoreinstein/airules/pkg/fileutil"
)

// ManifestVersion is the current manifest format version.
const ManifestVersion = 1

// DefaultRetentionCount is the number of snapshots kept per operation.
const DefaultRetentionCount = 10

const (
	manifestFile = "manifest.json"
	externalDir  = "external"
	idLayout     = "20060102T150405"
)

var (
	// ErrNothingToBackUp indicates none of the requested files exist.
	ErrNothingToBackUp = errors.New("nothing to back up")

	// ErrNoBackupsFound indicates no snapshots exist for an operation.
	ErrNoBackupsFound = errors.New("no backups found")
)

// Manifest describes one snapshot. It is stored as manifest.json.
type Manifest struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Operation string    `json:"operation"`
	// Root is the project directory the files were relative to.
	Root  string `json:"root"`
	Files []File `json:"files"`

	// ID is the snapshot directory name. It is not stored in JSON.
	ID string `json:"-"`
}

// File is one file in a snapshot.
type File struct {
	// RelPath is relative to Manifest.Root and to the snapshot directory.
	// Files from outside the root are under external/.
	RelPath    string      `json:"rel_path"`
	SHA256Hash string      `json:"sha256_hash"`
	Mode       fs.FileMode `json:"mode"`
}

// Manager creates and prunes snapshots.
type Manager struct {
	fs             afero.Fs
	rootDir        string
	retentionCount int
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of snapshots kept per operation.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// NewManager creates a Manager storing snapshots on fs.
func NewManager(fs afero.Fs, opts ...Option) *Manager {
	m := &Manager{
		fs:             fs,
		rootDir:        paths.BackupDir(),
		retentionCount: DefaultRetentionCount,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Backup copies the existing files among files into a new snapshot for
// operation and prunes old snapshots. files must be under root.
func (m *Manager) Backup(operation, root string, files []string) (*Manifest, error) {
	if operation == "" {
		return nil, errors.New("operation is required")
	}

	var existing []string
	for _, f := range files {
		if fileutil.Exists(m.fs, f) {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil, ErrNothingToBackUp
	}

	now := m.now()
	id, dir, err := m.newSnapshotDir(operation, now)
	if err != nil {
		return nil, err
	}

	manifest := &Manifest{
		Version:   ManifestVersion,
		CreatedAt: now.UTC(),
		Operation: operation,
		Root:      root,
		ID:        id,
	}
	for _, src := range existing {
		rel := relPath(root, src)
		hash, mode, err := m.copyFile(src, filepath.Join(dir, rel))
		if err != nil {
			return nil, errors.Wrapf(err, "backing up %s", src)
		}
		manifest.Files = append(manifest.Files, File{RelPath: filepath.ToSlash(rel), SHA256Hash: hash, Mode: mode})
	}

	if err := fileutil.AtomicWriteJSON(m.fs, filepath.Join(dir, manifestFile), manifest); err != nil {
		return nil, errors.Wrap(err, "writing manifest")
	}

	if err := m.Prune(operation, m.retentionCount); err != nil {
		return manifest, errors.Wrap(err, "pruning old backups")
	}
	return manifest, nil
}

// newSnapshotDir creates a fresh directory for a snapshot taken at t.
// Snapshots within the same second get a numeric suffix.
func (m *Manager) newSnapshotDir(operation string, t time.Time) (string, string, error) {
	base := t.Format(idLayout)
	id := base
	for i := 1; fileutil.Exists(m.fs, m.backupPath(operation, id)); i++ {
		id = fmt.Sprintf("%s-%d", base, i)
	}
	dir := m.backupPath(operation, id)
	if err := m.fs.MkdirAll(dir, 0o755); err != nil {
		return "", "", errors.Wrap(err, "creating backup directory")
	}
	return id, dir, nil
}

// List returns the snapshots for operation, newest first.
func (m *Manager) List(operation string) ([]Manifest, error) {
	entries, err := afero.ReadDir(m.fs, m.operationDir(operation))
	if err != nil || len(entries) == 0 {
		return nil, errors.Wrapf(ErrNoBackupsFound, "operation %s", operation)
	}

	var manifests []Manifest
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		data, err := fileutil.ReadFileWithLimit(m.fs, filepath.Join(m.backupPath(operation, e.Name()), manifestFile))
		if err != nil {
			continue
		}
		var manifest Manifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			continue
		}
		manifest.ID = e.Name()
		manifests = append(manifests, manifest)
	}
	if len(manifests) == 0 {
		return nil, errors.Wrapf(ErrNoBackupsFound, "operation %s", operation)
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return manifests, nil
}

// Prune removes snapshots for operation beyond the newest keep.
func (m *Manager) Prune(operation string, keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	manifests, err := m.List(operation)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil
		}
		return err
	}

	for i := keep; i < len(manifests); i++ {
		if err := m.fs.RemoveAll(m.backupPath(operation, manifests[i].ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}
	return nil
}

// Dir returns the directory holding a snapshot.
func (m *Manager) Dir(operation, id string) string {
	return m.backupPath(operation, id)
}

func (m *Manager) backupPath(operation, id string) string {
	return filepath.Join(m.operationDir(operation), id)
}

func (m *Manager) operationDir(operation string) string {
	return filepath.Join(m.rootDir, operation)
}

// copyFile copies src to dst and returns the content hash and mode.
func (m *Manager) copyFile(src, dst string) (string, fs.FileMode, error) {
	in, err := m.fs.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}
	mode := info.Mode().Perm()

	if err := m.fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", 0, errors.Wrap(err, "creating parent directory")
	}
	out, err := m.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination file")
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
		out.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}
	if err := out.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing destination file")
	}
	return hex.EncodeToString(h.Sum(nil)), mode, nil
}

// relPath returns path relative to root. Files outside root are stored
// under external/ by their absolute path.
func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return rel
	}
	clean := filepath.Clean(path)
	clean = strings.TrimPrefix(clean, filepath.VolumeName(clean))
	return filepath.Join(externalDir, strings.TrimLeft(clean, string(filepath.Separator)))
}
