// Package backup snapshots project files before airules removes or
// overwrites them.
//
// Each snapshot is a timestamped directory under a per-operation
// directory:
//
//	<DataHome>/airules/backups/
//	└── {operation}/
//	    └── {timestamp}/
//	        ├── manifest.json
//	        └── {files, relative to the project root}
//
// manifest.json records the project root and, per file, its relative
// path, mode and SHA256 hash. Only the newest snapshots per operation are
// kept; older ones are pruned after every snapshot.
//
// Use [Manager.Backup] before a destructive write:
//
//	mgr := backup.NewManager(fs)
//	manifest, err := mgr.Backup("delete", root, paths)
//
// Paths that do not exist are skipped. When none exist no snapshot is
// taken and Backup returns ErrNothingToBackUp.
package backup
