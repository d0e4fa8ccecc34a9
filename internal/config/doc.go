/*
Package config implements the configuration-assembly core of the pipeline:
the mutable Builder aggregate, the merge engine that folds independently
authored fragments into one builder, the pipeline-macro expansion engine,
and the compile step that validates the merged topology and freezes it into
a runtime Config.

A Builder is an exclusively-owned in-memory value: it is created from one
deserialized fragment (see internal/format), by programmatic construction,
or by converting a compiled Config back to editable form. It is mutated only
by Append, the Add* operations, and MergePipelines, and is logically retired
by Build.

Both the merge engine and the expansion engine accumulate every problem they
find and report the full list, rather than failing fast: operators editing
large configurations need to see all naming and wiring mistakes in one pass.
*/
package config
