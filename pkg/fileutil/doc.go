// Package fileutil provides file system helpers shared by the airules
// commands: atomic writes and size-limited reads.
//
// Every helper takes an afero.Fs so callers can run against the real disk
// (afero.NewOsFs) or an in-memory filesystem in tests (afero.NewMemMapFs).
package fileutil
