package config

import (
	"github.com/vk/pipeweld/internal/componentid"
	"github.com/vk/pipeweld/internal/ordered"
)

// Config is the validated, frozen runtime configuration produced by a
// successful Build. It carries no provider and no pending pipelines: both
// are pre-compile constructs. To edit a compiled configuration
// programmatically, convert it back with NewBuilderFromConfig.
type Config struct {
	Global       GlobalOptions
	API          APIOptions
	Healthchecks HealthcheckOptions

	EnrichmentTables *ordered.Map[componentid.ID, *EnrichmentTableOuter]
	Sources          *ordered.Map[componentid.ID, *SourceOuter]
	Sinks            *ordered.Map[componentid.ID, *SinkOuter]
	Transforms       *ordered.Map[componentid.ID, *TransformOuter]

	Tests []TestDefinition
}
