package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/airules/cmd/airules/commands/flags"
	"github.com/thoreinstein/airules/internal/validator"
)

const testRoot = "/project"

const instructions = `# Team rules

Be concise.

## Python
globs: **/*.py

Use type hints.

## React
globs: **/*.tsx

Use hooks.

## Secrets
globs: manual

Never commit keys.

## Code Review

Keep diffs small.
`

const commandsDoc = `## Review
Description: Review the diff

Look for bugs.
`

// setupProject installs an in-memory project with files relative to
// testRoot and points the commands at it.
func setupProject(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for rel, content := range files {
		require.NoError(t, afero.WriteFile(fs, projectPath(rel), []byte(content), 0o644))
	}
	flags.SetFs(fs)
	flags.SetWorkDir(testRoot)
	t.Cleanup(func() {
		flags.SetFs(afero.NewOsFs())
		flags.SetWorkDir("")
	})
	return fs
}

func projectPath(rel string) string {
	return filepath.Join(testRoot, filepath.FromSlash(rel))
}

// resetFlags restores every flag variable between executions of the
// shared root command.
func resetFlags() {
	agentFlag = nil
	configFlag = ""
	verbosity = 0
	quiet = false
	logFormat = "text"
	logFile = ""
	explodeWatch = false
	deleteDryRun = false
	deleteEverything = false
	lintFormat = string(validator.FormatText)
	lintCommands = false
	configShow = false
	noBackup = false
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	t.Logf("stderr: %s", errOut.String())
	return out.String(), err
}

func readFile(t *testing.T, fs afero.Fs, rel string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, projectPath(rel))
	require.NoError(t, err)
	return string(data)
}

func exists(t *testing.T, fs afero.Fs, rel string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, projectPath(rel))
	require.NoError(t, err)
	return ok
}
