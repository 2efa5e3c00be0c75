package implode

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/explode"
	"github.com/thoreinstein/airules/internal/logging"
	"github.com/thoreinstein/airules/internal/paths"
	"github.com/thoreinstein/airules/internal/registry"
	"github.com/thoreinstein/airules/internal/section"
)

const testRoot = "/project"

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r, err := registry.New([]registry.Entry{
		{Name: "Python", Directive: section.Glob("**/*.py")},
		{Name: "FastAPI", Directive: section.Glob("app/routes/**/*.py")},
		{Name: "React", Directive: section.Glob("**/*.tsx")},
		{Name: "Secrets", Directive: section.Manual()},
	})
	if err != nil {
		t.Fatalf("registry.New() error = %v", err)
	}
	return r
}

func testBundler(t *testing.T, fs afero.Fs) *Bundler {
	t.Helper()
	return &Bundler{Registry: testRegistry(t), Fs: fs, Logger: logging.ForTest(t)}
}

func mustAgent(t *testing.T, name string) *agent.Agent {
	t.Helper()
	a, err := agent.Get(name)
	if err != nil {
		t.Fatalf("agent.Get(%q) error = %v", name, err)
	}
	return a
}

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(testRoot, filepath.FromSlash(rel))
		if err := afero.WriteFile(fs, p, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", p, err)
		}
	}
}

func explodeInto(t *testing.T, fs afero.Fs, instructions, commands string, agents ...string) {
	t.Helper()
	resolved, err := agent.Resolve(agents...)
	if err != nil {
		t.Fatalf("agent.Resolve() error = %v", err)
	}
	p := &explode.Planner{
		Registry: testRegistry(t),
		Agents:   resolved,
		Fs:       fs,
		Logger:   logging.ForTest(t),
	}
	plan, err := p.Plan(testRoot, section.Parse(instructions), section.Parse(commands))
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if err := plan.Write(fs); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
}

// canonical is already in registry order with every directive explicit,
// so a round trip reproduces it byte for byte.
const canonical = `# Team rules

Be concise.

## Python
globs: **/*.py

Use type hints.

## FastAPI
globs: app/routes/**/*.py

Use routers.

## React
globs: **/*.tsx

Use hooks.

## Secrets
globs: manual

Never commit keys.

## Code Review

Keep diffs small.
`

func TestRules_RoundTrip(t *testing.T) {
	for _, name := range []string{paths.AgentCursor, paths.AgentGitHub} {
		t.Run(name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			explodeInto(t, fs, canonical, "", name)

			got, err := testBundler(t, fs).Rules(testRoot, mustAgent(t, name))
			if err != nil {
				t.Fatalf("Rules() error = %v", err)
			}
			if diff := cmp.Diff(canonical, got); diff != "" {
				t.Errorf("Rules() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRules_RegistryOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		".cursor/rules/zeta.mdc":    "---\ndescription: zeta\nalwaysApply: true\n---\nZeta body.\n",
		".cursor/rules/react.mdc":   "---\ndescription: React\nglobs: **/*.tsx\nalwaysApply: false\n---\n## React\n\nUse hooks.\n",
		".cursor/rules/alpha.mdc":   "---\ndescription: alpha\nalwaysApply: true\n---\nAlpha body.\n",
		".cursor/rules/python.mdc":  "---\ndescription: Python\nglobs: **/*.py\nalwaysApply: false\n---\n## Python\n\nUse type hints.\n",
		".cursor/rules/notes.txt":   "ignored\n",
		".cursor/rules/fastapi.mdc": "---\ndescription: FastAPI\nglobs: app/routes/**/*.py\nalwaysApply: false\n---\nUse routers.\n",
	})

	got, err := testBundler(t, fs).Rules(testRoot, mustAgent(t, paths.AgentCursor))
	if err != nil {
		t.Fatalf("Rules() error = %v", err)
	}

	want := `## Python
globs: **/*.py

Use type hints.

## FastAPI
globs: app/routes/**/*.py

Use routers.

## React
globs: **/*.tsx

Use hooks.

## Alpha

Alpha body.

## Zeta

Zeta body.
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rules() mismatch (-want +got):\n%s", diff)
	}
}

func TestRules_HeadingPreservesCasing(t *testing.T) {
	fs := afero.NewMemMapFs()
	explodeInto(t, fs, "## my Weird-Name\n\nKeep it.\n", "", paths.AgentCursor)

	got, err := testBundler(t, fs).Rules(testRoot, mustAgent(t, paths.AgentCursor))
	if err != nil {
		t.Fatalf("Rules() error = %v", err)
	}
	want := "## my Weird-Name\n\nKeep it.\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rules() mismatch (-want +got):\n%s", diff)
	}
}

func TestRules_MalformedEnvelope(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		".cursor/rules/broken.mdc": "---\ndescription: never closed\n\nBody text.\n",
	})

	got, err := testBundler(t, fs).Rules(testRoot, mustAgent(t, paths.AgentCursor))
	if err != nil {
		t.Fatalf("Rules() error = %v", err)
	}
	want := "## Broken\n\n---\ndescription: never closed\n\nBody text.\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rules() mismatch (-want +got):\n%s", diff)
	}
}

func TestRules_Empty(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		".cursor/rules/blank.mdc": "\n\n",
	})

	_, err := testBundler(t, fs).Rules(testRoot, mustAgent(t, paths.AgentCursor))
	if !errors.Is(err, errors.ErrNothingToBundle) {
		t.Errorf("Rules() error = %v, want ErrNothingToBundle", err)
	}
}

func TestRules_MissingDir(t *testing.T) {
	_, err := testBundler(t, afero.NewMemMapFs()).Rules(testRoot, mustAgent(t, paths.AgentGitHub))
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Rules() error = %v, want ErrNotFound", err)
	}
}

func TestRules_GeneralWithoutRulesDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		".github/copilot-instructions.md": "Be concise.\n",
	})

	got, err := testBundler(t, fs).Rules(testRoot, mustAgent(t, paths.AgentGitHub))
	if err != nil {
		t.Fatalf("Rules() error = %v", err)
	}
	if diff := cmp.Diff("Be concise.\n", got); diff != "" {
		t.Errorf("Rules() mismatch (-want +got):\n%s", diff)
	}
}

func TestRules_Unsupported(t *testing.T) {
	_, err := testBundler(t, afero.NewMemMapFs()).Rules(testRoot, mustAgent(t, paths.AgentClaude))
	if !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("Rules() error = %v, want ErrUnsupported", err)
	}
}

const commands = `## Review

Description: Review the current diff

Look for bugs.

## Write Tests

Cover the edge cases.
`

func TestCommands_RoundTrip(t *testing.T) {
	for _, name := range []string{paths.AgentGitHub, paths.AgentGemini} {
		t.Run(name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			explodeInto(t, fs, "", commands, name)

			got, err := testBundler(t, fs).Commands(testRoot, mustAgent(t, name))
			if err != nil {
				t.Fatalf("Commands() error = %v", err)
			}
			if diff := cmp.Diff(commands, got); diff != "" {
				t.Errorf("Commands() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCommands_PlainUsesFilename(t *testing.T) {
	fs := afero.NewMemMapFs()
	explodeInto(t, fs, "", commands, paths.AgentClaude)

	got, err := testBundler(t, fs).Commands(testRoot, mustAgent(t, paths.AgentClaude))
	if err != nil {
		t.Fatalf("Commands() error = %v", err)
	}
	want := `## Review

Description: Review the current diff

Look for bugs.

## Write Tests

Cover the edge cases.
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Commands() mismatch (-want +got):\n%s", diff)
	}
}

func TestCommands_MissingDir(t *testing.T) {
	_, err := testBundler(t, afero.NewMemMapFs()).Commands(testRoot, mustAgent(t, paths.AgentCursor))
	if !errors.Is(err, errors.ErrNothingToBundle) {
		t.Errorf("Commands() error = %v, want ErrNothingToBundle", err)
	}
}
