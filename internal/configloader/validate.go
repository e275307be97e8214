package configloader

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/yaklabco/depexport/pkg/config"
	"github.com/yaklabco/depexport/pkg/generate"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "targets[0].entry").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// identPattern matches module names usable in every supported language.
//
//nolint:gochecknoglobals // Compiled once.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	config.BackupModeSidecar: true,
	config.BackupModeNone:    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	languages := generate.Languages()

	if cfg.Language != "" && !slices.Contains(languages, strings.ToLower(cfg.Language)) {
		result.fail("language", cfg.Language, "unsupported language %q; must be one of: %s",
			cfg.Language, strings.Join(languages, ", "))
	}

	if cfg.ModuleName != "" && !identPattern.MatchString(cfg.ModuleName) {
		result.fail("module_name", cfg.ModuleName, "module name %q is not a valid identifier", cfg.ModuleName)
	}

	if cfg.Anchor != "" && !cfg.Anchor.IsValid() {
		result.fail("anchor", cfg.Anchor, "invalid anchor %q; must be one of: start, end", cfg.Anchor)
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, diff, json", cfg.Format)
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.fail("backups.mode", cfg.Backups.Mode, "invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	validateTemplates(cfg, languages, result)
	validateTargets(cfg, result)

	return result
}

// validateTemplates checks that template overrides parse and name a
// known language.
func validateTemplates(cfg *config.Config, languages []string, result *ValidationResult) {
	for lang, text := range cfg.Templates {
		field := "templates." + lang
		if !slices.Contains(languages, lang) {
			result.warn(field, lang, "unknown language %q; the template will be ignored", lang)
			continue
		}
		if err := generate.CheckTemplate(lang, text); err != nil {
			result.fail(field, text, "%v", err)
		}
	}
}

// validateTargets checks that every target names an entry file.
func validateTargets(cfg *config.Config, result *ValidationResult) {
	for i, target := range cfg.Targets {
		field := fmt.Sprintf("targets[%d]", i)
		if target.Entry == "" {
			result.fail(field+".entry", "", "entry is required")
			continue
		}
		if target.DocModel == "" && target.Manifest == "" && target.GoMod == "" {
			result.warn(field, target.Entry, "no doc_model, manifest, or go_mod; the target will fail")
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
