// Package config loads the airules configuration file.
//
// The file is named airules.yaml and is searched for in the working
// directory and then in $XDG_CONFIG_HOME/airules (or $AIRULES_CONFIG_DIR).
// Every key can also be set from the environment with the AIRULES_ prefix.
//
//	version: 1
//	instructions_file: instructions.md
//	commands_file: commands.md
//	sections_file: sections.yaml   # optional registry override
//	agents: [cursor, claude]
//
// Call [Init] once, then [Load]. Loaded configurations are validated; use
// [Validate] to check one built by hand.
package config
