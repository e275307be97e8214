package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/depexport/pkg/config"
)

// envVarPrefix is the prefix for all depexport environment variables.
const envVarPrefix = "DEPEXPORT_"

// envVar describes one supported environment variable.
type envVar struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

// envVars maps environment variable names (without prefix) to setters.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"LANGUAGE": {
		description: "Force the language profile (rust, go, typescript, javascript, python)",
		apply: func(cfg *config.Config, v string) error {
			cfg.Language = v
			return nil
		},
	},
	"MODULE_NAME": {
		description: "Name of the generated re-export module",
		apply: func(cfg *config.Config, v string) error {
			cfg.ModuleName = v
			return nil
		},
	},
	"EXCLUDE": {
		description: "Comma-separated dependency names never re-exported",
		apply: func(cfg *config.Config, v string) error {
			cfg.Exclude = parseSliceValue(v)
			return nil
		},
	},
	"ANCHOR": {
		description: "Where a new block goes: start or end",
		apply: func(cfg *config.Config, v string) error {
			anchor, err := config.ParseAnchor(v)
			if err != nil {
				return err
			}
			cfg.Anchor = anchor
			return nil
		},
	},
	"FORMAT": {
		description: "Output format: text, diff, or json",
		apply: func(cfg *config.Config, v string) error {
			format, err := config.ParseOutputFormat(v)
			if err != nil {
				return err
			}
			cfg.Format = format
			return nil
		},
	},
	"JOBS": {
		description: "Number of targets processed concurrently (0 = auto)",
		apply: func(cfg *config.Config, v string) error {
			jobs, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid integer %q", v)
			}
			cfg.Jobs = jobs
			return nil
		},
	},
	"BACKUPS_ENABLED": {
		description: "Write backups next to patched files: true or false",
		apply: func(cfg *config.Config, v string) error {
			enabled, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
			}
			cfg.Backups.Enabled = &enabled
			return nil
		},
	},
	"BACKUPS_MODE": {
		description: "Backup mode: sidecar or none",
		apply: func(cfg *config.Config, v string) error {
			cfg.Backups.Mode = v
			return nil
		},
	},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with DEPEXPORT_ (e.g., DEPEXPORT_ANCHOR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range sortedEnvSuffixes() {
		name := envVarPrefix + suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}

		if err := envVars[suffix].apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func sortedEnvSuffixes() []string {
	suffixes := make([]string, 0, len(envVars))
	for suffix := range envVars {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envVars))
	for suffix, v := range envVars {
		vars[envVarPrefix+suffix] = v.description
	}
	return vars
}
