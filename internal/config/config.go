package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = "airules"

// ConfigDirEnv overrides the directory searched for the config file.
const ConfigDirEnv = "AIRULES_CONFIG_DIR"

// Defaults for the document locations.
const (
	DefaultInstructionsFile = "instructions.md"
	DefaultCommandsFile     = "commands.md"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version          int      `mapstructure:"version" yaml:"version"`
	InstructionsFile string   `mapstructure:"instructions_file" yaml:"instructions_file"`
	CommandsFile     string   `mapstructure:"commands_file" yaml:"commands_file"`
	SectionsFile     string   `mapstructure:"sections_file" yaml:"sections_file,omitempty"`
	Agents           []string `mapstructure:"agents" yaml:"agents"`
}

// Init resets Viper and installs the search paths and defaults.
// Call this once at application startup before accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName(AppName)
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		viper.AddConfigPath(dir)
	} else {
		viper.AddConfigPath(paths.AppConfigDir())
	}

	viper.SetEnvPrefix(strings.ToUpper(AppName))
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("instructions_file", DefaultInstructionsFile)
	viper.SetDefault("commands_file", DefaultCommandsFile)
	viper.SetDefault("sections_file", "")
	viper.SetDefault("agents", []string{paths.AgentAll})
}

// Load reads and validates the configuration file.
// If path is provided, it reads from that specific file and a missing
// file is an error. If path is empty, the default locations are searched
// and defaults are used when nothing is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
		case errors.As(err, &notFound), os.IsNotExist(err), errors.Is(err, os.ErrNotExist):
			return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
		default:
			return nil, errors.Mark(errors.Wrap(err, "reading config file"), errors.ErrInvalidConfig)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "unmarshaling config"), errors.ErrInvalidConfig)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, errors.Mark(errors.Newf("validating config: %s", strings.Join(msgs, "; ")), errors.ErrInvalidConfig)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version:          1,
		InstructionsFile: DefaultInstructionsFile,
		CommandsFile:     DefaultCommandsFile,
		Agents:           []string{paths.AgentAll},
	}
}

// ConfigFileUsed returns the file Load read, or "".
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
