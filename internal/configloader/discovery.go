package configloader

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigPaths holds the config file found for each layer. An empty
// string means the layer has no file.
type ConfigPaths struct {
	System   string // /etc/depexport/config.yaml
	User     string // $XDG_CONFIG_HOME/depexport/config.yaml
	Project  string // nearest .depexport.yml at or above the working directory
	Explicit string // --config
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	projectConfigFiles = []string{".depexport.yml", ".depexport.yaml", "depexport.yml", "depexport.yaml"}
	layerConfigFiles   = []string{"config.yaml", "config.yml"}
	vcsRootMarkers     = []string{".git", ".hg", ".svn", ".jj"}
)

const systemConfigDir = "/etc/depexport"

// DiscoverPaths finds the system, user and project config files for a
// run started in workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir, layerConfigFiles),
		User:    firstFile(userConfigDir(), layerConfigFiles),
		Project: project,
	}, nil
}

func userConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "depexport")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "depexport")
}

// FindProjectConfig returns the nearest project config file at or above
// startDir. The search ends at the first workspace root: a VCS checkout,
// a Cargo workspace manifest, a go.work file, or the home directory. A
// config above that root belongs to another project and is not used.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()

	for dir := range ancestors(absDir) {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}
		if path := firstFile(dir, projectConfigFiles); path != "" {
			return path, nil
		}
		if dir == home || isWorkspaceRoot(dir) {
			break
		}
	}

	return "", nil
}

// ancestors yields dir and each of its parents up to the filesystem root.
func ancestors(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			if !yield(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}

// isWorkspaceRoot reports whether dir is the top of a project tree.
func isWorkspaceRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	if isRegularFile(filepath.Join(dir, "go.work")) {
		return true
	}
	return isCargoWorkspace(filepath.Join(dir, "Cargo.toml"))
}

// isCargoWorkspace reports whether the manifest at path declares a
// [workspace] table. Member crates keep searching upward to it.
func isCargoWorkspace(path string) bool {
	if !isRegularFile(path) {
		return false
	}
	var manifest map[string]toml.Primitive
	md, err := toml.DecodeFile(path, &manifest)
	if err != nil {
		return false
	}
	return md.IsDefined("workspace")
}

func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		if path := filepath.Join(dir, name); isRegularFile(path) {
			return path
		}
	}
	return ""
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
