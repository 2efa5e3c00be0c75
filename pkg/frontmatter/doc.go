// Package frontmatter splits, reads and writes the metadata block that
// leads rule files such as Cursor's .mdc and GitHub's .instructions.md.
//
// A block is delimited by lines containing only "---": the first line of
// the file opens it and the next such line closes it. Anything else,
// including an opening delimiter that is never closed, is treated as a
// file without front matter; Split reports ok=false and returns the input
// unchanged.
//
// # Reading
//
// Values written by editors are not always valid YAML. Cursor writes
// globs unquoted, so a line like
//
//	globs: **/*.py
//
// trips the YAML alias syntax. [Fields] decodes the block with
// gopkg.in/yaml.v3 first and falls back to reading one "key: value" per
// line when that fails.
//
// # Writing
//
// [Format] emits fields in the given order with values verbatim. Callers
// quote values themselves when their target expects quotes:
//
//	out := frontmatter.Format([]frontmatter.Field{
//		{Key: "applyTo", Value: `"**/*.py"`},
//	}, "## Python\n\nUse type hints.\n")
package frontmatter
