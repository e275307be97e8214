package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every option, including the built-in block
	// templates. If false, generates a minimal template.
	Full bool

	// Templates are the built-in block templates keyed by language.
	// Only used when Full is set.
	Templates map[string]string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Entry files to patch. Each target needs a dependency source:
# doc_model (rustdoc JSON), manifest (Cargo.toml, doc model found under
# target/doc), or go_mod.
targets:
  - entry: src/lib.rs
    manifest: Cargo.toml

# Force a language instead of detecting it from the entry file.
# language: rust

# Name of the generated module (languages that have one).
# module_name: deps

# Dependencies that are never re-exported.
# exclude:
#   - serde_derive

# Where a new block goes: start or end.
# anchor: start
`)

	if !opts.Full {
		return buf.Bytes()
	}

	buf.WriteString(`
# Number of targets processed concurrently (0 = auto).
jobs: 0

# Backups written next to patched files.
backups:
  enabled: true
  mode: sidecar

# Block templates per language (Go text/template; .Module and .Deps).
# templates:
`)

	langs := make([]string, 0, len(opts.Templates))
	for lang := range opts.Templates {
		langs = append(langs, lang)
	}
	slices.Sort(langs)

	for _, lang := range langs {
		fmt.Fprintf(&buf, "#   %s: |\n", lang)
		for line := range strings.SplitSeq(strings.TrimRight(opts.Templates[lang], "\n"), "\n") {
			fmt.Fprintf(&buf, "#     %s\n", line)
		}
	}

	return buf.Bytes()
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# depexport configuration
# See: https://github.com/yaklabco/depexport`
}
