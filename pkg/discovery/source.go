package discovery

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/depexport/pkg/config"
)

// ErrNoSource is returned when a target names no dependency source.
var ErrNoSource = errors.New("target has no doc_model, manifest, or go_mod")

// Source yields the dependency names of a project.
type Source interface {
	Dependencies(ctx context.Context) ([]string, error)
}

// DocModelSource reads a JSON documentation model.
// When Path is empty it is derived from Manifest.
type DocModelSource struct {
	Path     string
	Manifest string
}

// Dependencies implements Source.
func (s DocModelSource) Dependencies(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("doc model: %w", err)
	}

	path := s.Path
	if path == "" {
		var err error
		path, err = DocModelPath(s.Manifest)
		if err != nil {
			return nil, err
		}
	}

	return ReadDocModel(path)
}

// GoModSource reads direct requirements from a go.mod file.
type GoModSource struct {
	Path string
}

// Dependencies implements Source.
func (s GoModSource) Dependencies(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("go.mod: %w", err)
	}
	return ModuleRequires(s.Path)
}

// SourceFor picks the dependency source configured for target.
// An explicit doc model wins over a manifest, which wins over go.mod.
func SourceFor(target config.Target) (Source, error) {
	switch {
	case target.DocModel != "" || target.Manifest != "":
		return DocModelSource{Path: target.DocModel, Manifest: target.Manifest}, nil
	case target.GoMod != "":
		return GoModSource{Path: target.GoMod}, nil
	default:
		return nil, fmt.Errorf("%s: %w", target.DisplayName(), ErrNoSource)
	}
}

// Discover returns the dependency names for target.
func Discover(ctx context.Context, target config.Target) ([]string, error) {
	src, err := SourceFor(target)
	if err != nil {
		return nil, err
	}
	return src.Dependencies(ctx)
}
