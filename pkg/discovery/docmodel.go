// Package discovery finds the external libraries a project exposes.
//
// The primary source is a rustdoc-style JSON documentation model, whose
// "external_crates" table lists every crate referenced by the public API.
// A go.mod file can be used instead for Go projects.
package discovery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"
)

// docModel is the subset of a rustdoc JSON document we read.
type docModel struct {
	FormatVersion  int                      `json:"format_version"`
	ExternalCrates map[string]externalCrate `json:"external_crates"`
}

type externalCrate struct {
	Name        string `json:"name"`
	HTMLRootURL string `json:"html_root_url,omitempty"`
}

// ParseDocModel returns the sorted, de-duplicated external crate names of
// a documentation model.
func ParseDocModel(data []byte) ([]string, error) {
	var model docModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("parse doc model: %w", err)
	}

	names := make([]string, 0, len(model.ExternalCrates))
	for _, krate := range model.ExternalCrates {
		if krate.Name != "" {
			names = append(names, krate.Name)
		}
	}

	slices.Sort(names)
	return slices.Compact(names), nil
}

// ReadDocModel reads and parses the documentation model at path.
func ReadDocModel(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read doc model: %w", err)
	}
	return ParseDocModel(data)
}

// cargoManifest is the subset of Cargo.toml we read.
type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Lib struct {
		Name string `toml:"name"`
	} `toml:"lib"`
}

// CrateName returns the crate name declared by a Cargo.toml, as it appears
// in generated documentation ('-' replaced by '_'). A [lib] name wins over
// the package name.
func CrateName(manifestPath string) (string, error) {
	var manifest cargoManifest
	if _, err := toml.DecodeFile(manifestPath, &manifest); err != nil {
		return "", fmt.Errorf("decode manifest %s: %w", manifestPath, err)
	}

	name := manifest.Lib.Name
	if name == "" {
		name = manifest.Package.Name
	}
	if name == "" {
		return "", fmt.Errorf("manifest %s: no package name", manifestPath)
	}

	return strings.ReplaceAll(name, "-", "_"), nil
}

// DocModelPath returns the conventional location of the JSON doc model for
// the crate described by manifestPath: target/doc/<crate>.json next to it.
func DocModelPath(manifestPath string) (string, error) {
	crate, err := CrateName(manifestPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(manifestPath), "target", "doc", crate+".json"), nil
}

// ModuleRequires returns the sorted direct requirements of a go.mod file.
// Indirect requirements are skipped.
func ModuleRequires(goModPath string) ([]string, error) {
	data, err := os.ReadFile(goModPath)
	if err != nil {
		return nil, fmt.Errorf("read go.mod: %w", err)
	}

	file, err := modfile.Parse(goModPath, data, nil)
	if err != nil {
		return nil, fmt.Errorf("parse go.mod: %w", err)
	}

	names := make([]string, 0, len(file.Require))
	for _, req := range file.Require {
		if req.Indirect {
			continue
		}
		names = append(names, req.Mod.Path)
	}

	slices.Sort(names)
	return slices.Compact(names), nil
}
