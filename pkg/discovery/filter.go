package discovery

import (
	"regexp"
	"slices"
)

// Filter narrows a list of dependency names.
// Filters must not modify their input slice.
type Filter func(names []string) []string

// SysrootCrates are crates shipped with the Rust toolchain. They show up in
// documentation models but cannot be re-exported as dependencies.
//
//nolint:gochecknoglobals // Read-only lookup table.
var SysrootCrates = []string{"alloc", "core", "proc_macro", "std", "test"}

// ExcludeNames drops every name in excluded.
func ExcludeNames(excluded ...string) Filter {
	return func(names []string) []string {
		return slices.DeleteFunc(slices.Clone(names), func(name string) bool {
			return slices.Contains(excluded, name)
		})
	}
}

// NotExportedIn drops names that pattern already finds in source.
// The first capture group of pattern must be the exported name.
// A nil pattern keeps every name.
func NotExportedIn(source string, pattern *regexp.Regexp) Filter {
	return func(names []string) []string {
		if pattern == nil {
			return slices.Clone(names)
		}

		exported := make(map[string]bool)
		for _, match := range pattern.FindAllStringSubmatch(source, -1) {
			if len(match) > 1 {
				exported[match[1]] = true
			}
		}

		return slices.DeleteFunc(slices.Clone(names), func(name string) bool {
			return exported[name]
		})
	}
}

// Chain applies filters in order.
func Chain(filters ...Filter) Filter {
	return func(names []string) []string {
		out := slices.Clone(names)
		for _, filter := range filters {
			if filter != nil {
				out = filter(out)
			}
		}
		return out
	}
}
