package configloader

import (
	"slices"

	"github.com/yaklabco/doclex/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Dialect != "" {
		result.Dialect = override.Dialect
	}
	if override.TabStop != 0 {
		result.TabStop = override.TabStop
	}
	if override.TagIntroducer != "" {
		result.TagIntroducer = override.TagIntroducer
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.View != "" {
		result.View = override.View
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Color != "" {
		result.Color = override.Color
	}

	// Booleans can only be switched on by a higher layer.
	if override.Strict {
		result.Strict = true
	}

	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
