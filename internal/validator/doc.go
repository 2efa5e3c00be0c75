// Package validator collects findings about an input document and
// writes them as text or JSON.
//
//	result := &validator.Result{File: "instructions.md"}
//	result.AddWarning(12, "Python", "globs: needs a space after the colon")
//
//	if result.HasErrors() {
//		// exit non-zero
//	}
package validator
