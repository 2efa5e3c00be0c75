// Package agent describes the AI coding assistants airules writes for.
//
// Each agent is plain data: where its rule files live and in which
// format, where its general instructions go, where its command files
// live, which root document it reads, and how its MCP configuration is
// keyed. The set is closed; [Get] looks an agent up by name and
// [Resolve] expands the pseudo agent "all".
//
//	| Agent    | Rules                                   | Commands                   |
//	|----------|-----------------------------------------|----------------------------|
//	| cursor   | .cursor/rules/*.mdc                     | .cursor/commands/*.md      |
//	| github   | .github/instructions/*.instructions.md  | .github/prompts/*.prompt.md|
//	| claude   |                                         | .claude/commands/*.md      |
//	| gemini   |                                         | .gemini/commands/*.toml    |
//	| opencode |                                         | .opencode/commands/*.md    |
//	| agents   |                                         |                            |
package agent
