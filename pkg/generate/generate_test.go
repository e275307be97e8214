package generate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/depexport/pkg/config"
	"github.com/yaklabco/depexport/pkg/generate"
	"github.com/yaklabco/depexport/pkg/patch"
	"github.com/yaklabco/depexport/pkg/suggest"
)

func rustProfile(t *testing.T) generate.Profile {
	t.Helper()

	profile, err := generate.ProfileFor("Rust")
	require.NoError(t, err)
	return profile
}

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		language string
		deps     []string
		want     string
	}{
		{
			language: generate.LangRust,
			deps:     []string{"serde", "anyhow", "serde"},
			want: "// depexport:begin\n" +
				"pub mod deps {\n" +
				"    pub use anyhow;\n" +
				"    pub use serde;\n" +
				"}\n" +
				"// depexport:end\n",
		},
		{
			language: generate.LangRust,
			deps:     nil,
			want:     "// depexport:begin\npub mod deps {\n}\n// depexport:end\n",
		},
		{
			language: generate.LangGo,
			deps:     []string{"github.com/spf13/cobra"},
			want:     "// depexport:begin\nimport (\n\t_ \"github.com/spf13/cobra\"\n)\n// depexport:end\n",
		},
		{
			language: generate.LangTypeScript,
			deps:     []string{"lodash-es", "@scope/pkg"},
			want: "// depexport:begin\n" +
				"export * as pkg from \"@scope/pkg\";\n" +
				"export * as lodash_es from \"lodash-es\";\n" +
				"// depexport:end\n",
		},
		{
			language: generate.LangPython,
			deps:     []string{"requests"},
			want:     "# depexport:begin\nimport requests as requests\n# depexport:end\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			t.Parallel()

			profile, err := generate.ProfileFor(tt.language)
			require.NoError(t, err)

			got, err := generate.Render(profile, generate.NewBlock("", tt.deps))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_TemplateOverride(t *testing.T) {
	t.Parallel()

	profile, err := generate.ResolveProfile("", "lib.rs", []byte("fn f() {}\n"),
		map[string]string{generate.LangRust: "{{range .Deps}}extern crate {{.}};{{end}}"})
	require.NoError(t, err)

	got, err := generate.Render(profile, generate.NewBlock("reexports", []string{"log"}))
	require.NoError(t, err)
	assert.Equal(t, "// depexport:begin\nextern crate log;\n// depexport:end\n", got)

	profile.Template = "{{.Missing"
	_, err = generate.Render(profile, generate.NewBlock("", nil))
	assert.Error(t, err)
}

func TestProfileFor_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := generate.ProfileFor("cobol")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rust")
}

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, generate.LangRust, generate.DetectLanguage("src/main.rs", []byte("fn main() {}\n")))
	assert.Equal(t, generate.LangGo, generate.DetectLanguage("main.go", []byte("package main\n")))
	assert.Equal(t, generate.LangPython, generate.DetectLanguage("app/__init__.py", []byte("import os\n")))
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	block := "// depexport:begin\npub mod deps {\n    pub use serde;\n}\n// depexport:end\n"

	tests := []struct {
		name   string
		source string
		anchor config.Anchor
		want   string
	}{
		{
			name:   "insert at start",
			source: "fn main() {}\n",
			anchor: config.AnchorStart,
			want:   block + "\nfn main() {}\n",
		},
		{
			name:   "empty file",
			source: "",
			anchor: config.AnchorStart,
			want:   block,
		},
		{
			name:   "after inner attributes and doc comments",
			source: "#![deny(missing_docs)]\n//! Crate docs.\n\nuse std::io;\n",
			anchor: config.AnchorStart,
			want:   "#![deny(missing_docs)]\n//! Crate docs.\n" + block + "\nuse std::io;\n",
		},
		{
			name:   "after shebang without newline",
			source: "#!/usr/bin/env run-cargo-script",
			anchor: config.AnchorStart,
			want:   "#!/usr/bin/env run-cargo-script\n" + block,
		},
		{
			name:   "append at end",
			source: "fn main() {}\n",
			anchor: config.AnchorEnd,
			want:   "fn main() {}\n\n" + block,
		},
		{
			name:   "append at end without trailing newline",
			source: "fn main() {}",
			anchor: config.AnchorEnd,
			want:   "fn main() {}\n\n" + block,
		},
		{
			name:   "replace existing block",
			source: "// depexport:begin\npub mod deps {\n    pub use log;\n}\n// depexport:end\n\nfn main() {}\n",
			anchor: config.AnchorEnd,
			want:   block + "\nfn main() {}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sugg, err := generate.Suggest("main.rs", tt.source, block, rustProfile(t), tt.anchor)
			require.NoError(t, err)

			got, err := patch.Apply(tt.source, []suggest.Suggestion{sugg})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggest_Idempotent(t *testing.T) {
	t.Parallel()

	profile := rustProfile(t)
	block, err := generate.Render(profile, generate.NewBlock("deps", []string{"serde"}))
	require.NoError(t, err)

	source := "fn main() {}\n"
	for range 2 {
		sugg, err := generate.Suggest("main.rs", source, block, profile, config.AnchorStart)
		require.NoError(t, err)

		source, err = patch.Apply(source, []suggest.Suggestion{sugg})
		require.NoError(t, err)
	}

	assert.Equal(t, block+"\nfn main() {}\n", source)
}

func TestSuggest_UnterminatedBlock(t *testing.T) {
	t.Parallel()

	_, err := generate.Suggest("main.rs", "// depexport:begin\npub mod deps {}\n", "x", rustProfile(t), config.AnchorStart)
	assert.ErrorIs(t, err, generate.ErrUnterminatedBlock)
}

func TestStripBlock(t *testing.T) {
	t.Parallel()

	profile := rustProfile(t)
	source := "pub use anyhow;\n// depexport:begin\npub mod deps {\n    pub use serde;\n}\n// depexport:end\nfn main() {}\n"

	assert.Equal(t, "pub use anyhow;\nfn main() {}\n", generate.StripBlock(source, profile))
	assert.Equal(t, "fn main() {}\n", generate.StripBlock("fn main() {}\n", profile))
}
