// Package flags provides shared flag accessors for CLI commands.
// This package exists to avoid import cycles between the root command
// and noun subpackages (mcp).
package flags

import (
	"os"

	"github.com/spf13/afero"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/config"
	"github.com/thoreinstein/airules/internal/errors"
)

var (
	// agentFlag holds the value of the --agent flag.
	agentFlag []string

	cfg     *config.Config
	fs      afero.Fs = afero.NewOsFs()
	workDir string
)

// GetAgentFlag returns the current value of the --agent flag.
func GetAgentFlag() []string {
	return agentFlag
}

// SetAgentFlag sets the agent flag value.
func SetAgentFlag(agents []string) {
	agentFlag = agents
}

// Config returns the loaded configuration, or the defaults if none was
// loaded.
func Config() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// SetConfig records the configuration loaded by the root command.
func SetConfig(c *config.Config) {
	cfg = c
}

// Fs returns the filesystem commands operate on.
func Fs() afero.Fs {
	return fs
}

// SetFs replaces the filesystem. Tests use an in-memory one.
func SetFs(f afero.Fs) {
	fs = f
}

// WorkDir returns the project root: the override if set, otherwise the
// process working directory.
func WorkDir() (string, error) {
	if workDir != "" {
		return workDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "getting working directory")
	}
	return wd, nil
}

// SetWorkDir overrides the project root.
func SetWorkDir(dir string) {
	workDir = dir
}

// Agents resolves the --agent flag, falling back to the configured
// agents.
func Agents() ([]*agent.Agent, error) {
	names := agentFlag
	if len(names) == 0 {
		names = Config().Agents
	}
	return agent.Resolve(names...)
}
