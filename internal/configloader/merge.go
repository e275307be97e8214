package configloader

import (
	"maps"

	"github.com/yaklabco/depexport/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
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

	if override.Language != "" {
		result.Language = override.Language
	}
	if override.ModuleName != "" {
		result.ModuleName = override.ModuleName
	}
	if override.Anchor != "" {
		result.Anchor = override.Anchor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// CLI-only switches can only be turned on.
	if override.Write {
		result.Write = true
	}
	if override.Yes {
		result.Yes = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if override.Backups.Enabled != nil {
		enabled := *override.Backups.Enabled
		result.Backups.Enabled = &enabled
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	result.Templates = mergeTemplates(base.Templates, override.Templates)

	if override.Targets != nil {
		result.Targets = override.Targets
	}
	if override.Exclude != nil {
		result.Exclude = override.Exclude
	}

	return &result
}

// mergeTemplates returns a new map holding base overlaid with override.
func mergeTemplates(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]string, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
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
