// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldTarget     = "target"
	FieldTargets    = "targets"
	FieldWorkingDir = "working_dir"
	FieldFiles      = "files"

	// Discovery and generation.
	FieldLanguage = "language"
	FieldSource   = "source"
	FieldDeps     = "deps"
	FieldFiltered = "filtered"
	FieldModule   = "module"
	FieldAnchor   = "anchor"

	// Patching.
	FieldSuggestions = "suggestions"
	FieldEdits       = "edits"
	FieldAdditions   = "additions"
	FieldDeletions   = "deletions"
	FieldWritten     = "written"
	FieldBackup      = "backup"
	FieldJobs        = "jobs"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
	FieldGo      = "go"
)
