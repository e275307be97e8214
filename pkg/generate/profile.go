// Package generate renders re-export blocks and turns them into patch
// suggestions for an entry file.
package generate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language identifiers.
const (
	LangRust       = "rust"
	LangGo         = "go"
	LangTypeScript = "typescript"
	LangJavaScript = "javascript"
	LangPython     = "python"
)

// Profile describes how a re-export block looks in one language.
type Profile struct {
	// Language is the lowercase language identifier.
	Language string

	// CommentPrefix starts a line comment; used for the block markers.
	CommentPrefix string

	// Template is a text/template rendered with a Block.
	Template string

	// ExportPattern finds names already re-exported by hand.
	// Capture group 1 is the dependency name.
	ExportPattern *regexp.Regexp

	// HeaderPattern matches leading lines that must stay above the block,
	// such as shebangs, inner attributes or a package clause.
	HeaderPattern *regexp.Regexp
}

const rustTemplate = `pub mod {{.Module}} {
{{- range .Deps}}
    pub use {{.}};
{{- end}}
}
`

const goTemplate = `import (
{{- range .Deps}}
	_ "{{.}}"
{{- end}}
)
`

const esTemplate = `{{range .Deps}}export * as {{ident .}} from "{{.}}";
{{end}}`

const pythonTemplate = `{{range .Deps}}import {{ident .}} as {{ident .}}
{{end}}`

//nolint:gochecknoglobals // Read-only lookup table.
var profiles = map[string]Profile{
	LangRust: {
		Language:      LangRust,
		CommentPrefix: "//",
		Template:      rustTemplate,
		ExportPattern: regexp.MustCompile(`(?m)^\s*pub use (?:::)?([A-Za-z_][A-Za-z0-9_]*)\s*;`),
		HeaderPattern: regexp.MustCompile(`^\s*(//!.*|#!\[.*|#!/.*)?$`),
	},
	LangGo: {
		Language:      LangGo,
		CommentPrefix: "//",
		Template:      goTemplate,
		ExportPattern: regexp.MustCompile(`(?m)^\s*_ "([^"]+)"`),
		HeaderPattern: regexp.MustCompile(`^\s*(//.*|package\s+\w+.*)?$`),
	},
	LangTypeScript: {
		Language:      LangTypeScript,
		CommentPrefix: "//",
		Template:      esTemplate,
		ExportPattern: regexp.MustCompile(`(?m)^\s*export \* as \w+ from ["']([^"']+)["']`),
		HeaderPattern: regexp.MustCompile(`^\s*(#!.*|["']use strict["'];?)?$`),
	},
	LangJavaScript: {
		Language:      LangJavaScript,
		CommentPrefix: "//",
		Template:      esTemplate,
		ExportPattern: regexp.MustCompile(`(?m)^\s*export \* as \w+ from ["']([^"']+)["']`),
		HeaderPattern: regexp.MustCompile(`^\s*(#!.*|["']use strict["'];?)?$`),
	},
	LangPython: {
		Language:      LangPython,
		CommentPrefix: "#",
		Template:      pythonTemplate,
		ExportPattern: regexp.MustCompile(`(?m)^import (\w+) as \w+`),
		HeaderPattern: regexp.MustCompile(`^(#.*|from __future__ import .*)?$`),
	},
}

// Languages returns the supported language identifiers, sorted.
func Languages() []string {
	langs := make([]string, 0, len(profiles))
	for lang := range profiles {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// ProfileFor returns the profile for language (case-insensitive).
func ProfileFor(language string) (Profile, error) {
	profile, ok := profiles[strings.ToLower(language)]
	if !ok {
		return Profile{}, fmt.Errorf("unsupported language %q (supported: %s)",
			language, strings.Join(Languages(), ", "))
	}
	return profile, nil
}

// DetectLanguage guesses the language of an entry file from its name and
// content. Returns "" when the language is unknown to go-enry.
func DetectLanguage(fileName string, content []byte) string {
	return strings.ToLower(enry.GetLanguage(fileName, content))
}

// ResolveProfile returns the profile for a forced language, or detects it
// from the entry file. A template in overrides keyed by the resolved
// language replaces the built-in one.
func ResolveProfile(forced, fileName string, content []byte, overrides map[string]string) (Profile, error) {
	language := forced
	if language == "" {
		language = DetectLanguage(fileName, content)
		if language == "" {
			return Profile{}, fmt.Errorf("%s: cannot detect language; set one explicitly", fileName)
		}
	}

	profile, err := ProfileFor(language)
	if err != nil {
		return Profile{}, fmt.Errorf("%s: %w", fileName, err)
	}

	if tmpl := overrides[profile.Language]; tmpl != "" {
		profile.Template = tmpl
	}
	return profile, nil
}

// DefaultTemplates returns the built-in block template of every language.
func DefaultTemplates() map[string]string {
	templates := make(map[string]string, len(profiles))
	for lang, profile := range profiles {
		templates[lang] = profile.Template
	}
	return templates
}
