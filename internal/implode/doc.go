// Package implode bundles an agent's per-section files back into a
// single document.
//
// Each file is decoded by the agent's codec. A heading found in the body
// names the section; otherwise the filename does, using the registry's
// casing when the filename matches a registered name. Sections are
// written in canonical order with the general file first and unwrapped.
package implode
