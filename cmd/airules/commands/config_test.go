package commands

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/airules/internal/settings"
)

func TestConfig_Gemini(t *testing.T) {
	fs := setupProject(t, map[string]string{
		".gemini/settings.json": "{\n  // keep me\n  \"theme\": \"dark\"\n}\n",
	})

	out, err := execute(t, "config", "gemini")
	require.NoError(t, err)
	require.Contains(t, out, "Updated .gemini/settings.json")

	got := readFile(t, fs, ".gemini/settings.json")
	require.Contains(t, got, "// keep me")
	require.Contains(t, got, `"theme": "dark"`)
	require.Contains(t, got, settings.GeminiContextKey)

	out, err = execute(t, "config", "gemini")
	require.NoError(t, err)
	require.Contains(t, out, "gemini already configured")
	require.Equal(t, got, readFile(t, fs, ".gemini/settings.json"), "second run changes nothing")
}

func TestConfig_AgentsWithoutSettings(t *testing.T) {
	fs := setupProject(t, nil)

	out, err := execute(t, "config", "-a", "cursor,claude")
	require.NoError(t, err)
	require.Empty(t, out)
	require.False(t, exists(t, fs, ".gemini/settings.json"))
}

func TestConfig_Show(t *testing.T) {
	setupProject(t, nil)

	out, err := execute(t, "config", "--show")
	require.NoError(t, err)
	require.Contains(t, out, "instructions_file: instructions.md")
	require.Contains(t, out, "commands_file: commands.md")
	require.Contains(t, out, "- all")
}

func TestExplode_WarnsWhenGeminiNotConfigured(t *testing.T) {
	setupProject(t, map[string]string{"instructions.md": instructions})

	// The warning goes to the log; the run itself succeeds.
	_, err := execute(t, "explode", "-a", "gemini")
	require.NoError(t, err)

	_, err = execute(t, "config", "gemini")
	require.NoError(t, err)
	_, err = execute(t, "explode", "-a", "gemini")
	require.NoError(t, err)
}
