// Package config defines core configuration types for depexport.
// These types are pure data structures with no dependency on the loader.
package config

// Anchor selects where a new re-export block is inserted.
type Anchor string

const (
	// AnchorStart inserts the block at the top of the entry file,
	// after a leading shebang line if there is one.
	AnchorStart Anchor = "start"

	// AnchorEnd appends the block to the end of the entry file.
	AnchorEnd Anchor = "end"
)

// IsValid returns true if the anchor is known.
func (a Anchor) IsValid() bool {
	switch a {
	case AnchorStart, AnchorEnd:
		return true
	default:
		return false
	}
}

// Target describes one project whose entry file gets a re-export block.
type Target struct {
	// Name identifies the target in output. Defaults to the entry path.
	Name string `yaml:"name,omitempty"`

	// Entry is the source file to patch (e.g. src/lib.rs).
	Entry string `yaml:"entry"`

	// DocModel is a rustdoc-style JSON documentation model.
	DocModel string `yaml:"doc_model,omitempty"`

	// Manifest is a Cargo.toml used to locate the doc model when DocModel is empty.
	Manifest string `yaml:"manifest,omitempty"`

	// GoMod is a go.mod whose direct requirements are used as dependencies.
	GoMod string `yaml:"go_mod,omitempty"`
}

// DisplayName returns Name, falling back to Entry.
func (t Target) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Entry
}

// BackupsConfig controls backup behavior when writing patched files.
// A nil Enabled means enabled, so a lower-precedence file cannot be
// overridden back on by omission.
type BackupsConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Mode    string `yaml:"mode,omitempty"` // "sidecar" or "none"
}

// Config is the root configuration structure for depexport.
type Config struct {
	// Targets lists the entry files to patch.
	Targets []Target `yaml:"targets,omitempty"`

	// Language forces the language profile instead of detecting it.
	Language string `yaml:"language,omitempty"`

	// ModuleName is the name of the generated re-export module.
	ModuleName string `yaml:"module_name,omitempty"`

	// Exclude lists dependency names that are never re-exported.
	Exclude []string `yaml:"exclude,omitempty"`

	// Anchor selects where a new block is inserted.
	Anchor Anchor `yaml:"anchor,omitempty"`

	// Templates overrides the block template per language.
	Templates map[string]string `yaml:"templates,omitempty"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `yaml:"backups,omitempty"`

	// Jobs limits how many targets are processed concurrently. 0 means auto.
	Jobs int `yaml:"jobs,omitempty"`

	// CLI-level options (not persisted to config files).

	// Write writes patched files back to disk.
	Write bool `yaml:"-"`

	// Yes skips the confirmation prompt when writing.
	Yes bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `yaml:"-"`
}

// Backup modes.
const (
	BackupModeSidecar = "sidecar"
	BackupModeNone    = "none"
)

// DefaultModuleName is the module name used when none is configured.
const DefaultModuleName = "deps"

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		ModuleName: DefaultModuleName,
		Anchor:     AnchorStart,
		Templates:  make(map[string]string),
		Backups: BackupsConfig{
			Mode: BackupModeSidecar,
		},
		Format: FormatText,
	}
}

// BackupsEnabled reports whether backups should be written.
func (c *Config) BackupsEnabled() bool {
	if c.NoBackups || c.Backups.Mode == BackupModeNone {
		return false
	}
	return c.Backups.Enabled == nil || *c.Backups.Enabled
}
