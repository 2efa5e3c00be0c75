// Package logging sets up the slog loggers used by airules.
//
// Commands never build handlers themselves. The root command turns its
// flags into a [Config], calls [New] once and stores the logger in the
// command context; everything below reads it back with [FromContext]:
//
//	logger := logging.New(logging.Config{
//		Verbosity: 2,                // -vv
//		Format:    logging.FormatText,
//		Output:    cmd.ErrOrStderr(),
//		File:      logFile,          // --log-file, always JSON
//	})
//	ctx := logging.NewContext(cmd.Context(), logger)
//
// Warnings are visible by default because unmapped sections and skipped
// files are reported at that level. Each -v lowers the threshold one step
// down to [LevelTrace]; AIRULES_DEBUG does the same when no -v is given.
//
// Both the text and JSON outputs mask attribute values that look like
// credentials, so MCP server environments can be logged as they are.
//
// Tests use [ForTest], which routes records through t.Log.
package logging
