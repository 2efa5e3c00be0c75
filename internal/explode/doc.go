// Package explode turns an instructions document and an optional commands
// document into the files each agent reads.
//
// Planning and writing are separate. [Planner.Plan] computes every path
// and its contents without touching the disk; [Plan.Write] writes them.
// The ignores and delete commands reuse the plan without writing.
//
// Directive resolution for each instruction section: an inline directive
// wins, then the registry default for a registered name, then apply
// always.
package explode
