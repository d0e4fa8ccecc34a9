/*
Package componentid provides the identity type for pipeline components.

An ID is either global (a plain name, valid anywhere in the topology) or
scoped (a name qualified by the pipeline macro that declared it). The
canonical string form is `name` for global ids and `pipeline/name` for
scoped ids; `/` is reserved as the separator and rejected inside names.

This package enforces the identifier schema and centralizes all formatting
and parsing logic. Every entity collection in the config builder is keyed
by an ID, so equality and hashing are defined over the full qualified value:
two scoped ids with the same local name but different owning pipelines are
distinct.
*/
package componentid
