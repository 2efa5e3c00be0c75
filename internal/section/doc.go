// Package section splits a markdown document into a general preamble and
// named sections delimited by level-2 headings.
//
// The scan is line oriented: any line whose trimmed form starts with "## "
// opens a section, including one inside a fenced code block. The lint
// package reports that case.
//
// A section may carry a distribution directive on the first non-blank
// line after its heading:
//
//	## Python
//	globs: **/*.py
//
// The keyword is case-insensitive and needs at least one whitespace
// character after the colon. "globs:**/*.py" is not a directive and stays
// in the section body. "globs: manual" marks the section as manual.
package section
