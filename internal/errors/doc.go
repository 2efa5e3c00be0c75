// Package errors provides error handling conventions for the airules CLI.
//
// The package re-exports the constructors of github.com/cockroachdb/errors
// so callers import a single errors package, defines sentinel errors for
// common failure conditions, an ExitError type for CLI exit code handling,
// and exit code constants following standard Unix conventions.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrNothingToBundle) {
//	    // nothing was written
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (missing input, invalid configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion:
//
//	err := errors.NewUserError(errors.ErrNotFound, "Check the input path")
//	os.Exit(errors.ExitCode(err))
package errors
