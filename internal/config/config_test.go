package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/thoreinstein/airules/internal/errors"
)

func TestInit(t *testing.T) {
	t.Setenv(ConfigDirEnv, t.TempDir())
	Init()

	if viper.GetInt("version") != 1 {
		t.Errorf("expected version default 1, got %d", viper.GetInt("version"))
	}
	if got := viper.GetString("instructions_file"); got != DefaultInstructionsFile {
		t.Errorf("instructions_file default = %q, want %q", got, DefaultInstructionsFile)
	}
	if got := viper.GetStringSlice("agents"); len(got) != 1 || got[0] != "all" {
		t.Errorf("agents default = %v, want [all]", got)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv(ConfigDirEnv, t.TempDir())
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.InstructionsFile != DefaultInstructionsFile || cfg.CommandsFile != DefaultCommandsFile {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	t.Setenv(ConfigDirEnv, t.TempDir())
	Init()

	configPath := filepath.Join(t.TempDir(), "airules.yaml")
	content := []byte("instructions_file: docs/rules.md\nagents:\n  - cursor\n  - claude\n")
	if err := os.WriteFile(configPath, content, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.InstructionsFile != "docs/rules.md" {
		t.Errorf("InstructionsFile = %q, want docs/rules.md", cfg.InstructionsFile)
	}
	if cfg.CommandsFile != DefaultCommandsFile {
		t.Errorf("CommandsFile = %q, want default", cfg.CommandsFile)
	}
	if len(cfg.Agents) != 2 {
		t.Errorf("expected 2 agents, got %v", cfg.Agents)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv(ConfigDirEnv, t.TempDir())
	t.Setenv("AIRULES_COMMANDS_FILE", "prompts.md")
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.CommandsFile != "prompts.md" {
		t.Errorf("CommandsFile = %q, want prompts.md", cfg.CommandsFile)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv(ConfigDirEnv, t.TempDir())
	Init()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "invalid version",
			content: "version: 2\n",
			wantErr: `version: unsupported config version: "2"`,
		},
		{
			name:    "invalid agent",
			content: "agents:\n  - vim\n",
			wantErr: `agents: invalid agent: "vim"`,
		},
		{
			name:    "empty instructions file",
			content: "instructions_file: \"\"\n",
			wantErr: `instructions_file: invalid path: ""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigDirEnv, t.TempDir())
			Init()

			configPath := filepath.Join(t.TempDir(), "airules.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}

			_, err := Load(configPath)
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if want := "validating config: " + tt.wantErr; err.Error() != want {
				t.Errorf("Load() error = %v, want %v", err, want)
			}
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("Load() error should match ErrInvalidConfig")
			}
		})
	}
}

func TestInit_ClearsPreviousState(t *testing.T) {
	dir := t.TempDir()
	fileA := filepath.Join(dir, "config_a.yaml")
	if err := os.WriteFile(fileA, []byte("version: 1\nagents: [cursor]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigDirEnv, t.TempDir())
	Init()
	if _, err := Load(fileA); err != nil {
		t.Fatalf("first Load failed: %v", err)
	}

	dirB := t.TempDir()
	t.Setenv(ConfigDirEnv, dirB)
	fileB := filepath.Join(dirB, AppName+".yaml")
	if err := os.WriteFile(fileB, []byte("version: 1\nagents: [opencode]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	Init()
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if len(cfg.Agents) != 1 || cfg.Agents[0] != "opencode" {
		t.Errorf("expected agents from %s, got %v (file used: %s)", fileB, cfg.Agents, ConfigFileUsed())
	}
}

func TestValidate(t *testing.T) {
	if errs := Validate(Default()); len(errs) != 0 {
		t.Errorf("Validate(Default()) = %v, want none", errs)
	}
	if errs := Validate(nil); len(errs) != 1 {
		t.Errorf("Validate(nil) = %v, want one error", errs)
	}

	cfg := Default()
	cfg.Agents = []string{"cursor", "bogus"}
	cfg.SectionsFile = "bad\x00path"
	errs := Validate(cfg)
	if len(errs) != 2 {
		t.Fatalf("Validate() = %v, want 2 errors", errs)
	}
	if !errors.Is(errs[0], ErrInvalidAgent) {
		t.Errorf("errs[0] = %v, want ErrInvalidAgent", errs[0])
	}
	if !errors.Is(errs[1], ErrInvalidPath) {
		t.Errorf("errs[1] = %v, want ErrInvalidPath", errs[1])
	}
}
