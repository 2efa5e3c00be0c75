// Package registry holds the Known-Sections Registry: the ordered list of
// section names airules knows about, each with a default directive.
//
// The registry supplies two things. Its order is the canonical order in
// which sections are written back into a bundled document, and its names
// are the canonical casing used when a heading has to be recovered from a
// filename ("fastapi" becomes "FastAPI", not "Fastapi").
//
// A registry is built once per invocation, either from the embedded
// default or from an override file, and never changes afterwards. Pass it
// by parameter.
//
// # File format
//
// JSON or YAML with a single top-level key. Key order is significant.
//
//	{
//	  "section_globs": {
//	    "Python": "**/*.py",
//	    "FastAPI": "app/routes/**/*.py",
//	    "Secrets": null
//	  }
//	}
//
// A null value or the string "manual" declares a manual section.
package registry
