// Package component provides the central plugin registry for the config core.
//
// The registry stores mappings between the string type identifiers used in
// configuration fragments (e.g. "demo_logs", "console") and factory functions
// producing the concrete Go config structs that implement them. The config
// core never inspects those concrete shapes; it stores them behind the
// interfaces declared here, forwards them to the compile step, and round-trips
// them through JSON for structural duplication.
//
// Registration happens at init time from the built-in component packages
// (see components/), mirroring how database/sql drivers self-register.
// Registering the same type name twice is a programmer error and panics.
package component
