// Package format converts sections to and from the per-agent file
// formats.
//
// Agents share three file families, each behind the [Codec] interface:
//
//   - [FrontMatter]: a "---" metadata block followed by the section with
//     its heading. Cursor .mdc rules, GitHub .instructions.md rules and
//     GitHub .prompt.md prompts.
//   - [Plain]: the section body alone, heading dropped. Cursor, Claude
//     and OpenCode command files.
//   - [Table]: a TOML document with name, description and a triple-quoted
//     prompt. Gemini command files.
//
// Decoding is lenient. A malformed envelope is read as no envelope, and a
// heading found at the top of the body wins over the filename.
package format
