package config

import "fmt"

// OutputFormat specifies how results are reported.
type OutputFormat string

const (
	// FormatText prints the patched entry file.
	FormatText OutputFormat = "text"
	FormatDiff OutputFormat = "diff"
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat parses a format string. Empty means FormatText.
func ParseOutputFormat(s string) (OutputFormat, error) {
	if s == "" {
		return FormatText, nil
	}
	format := OutputFormat(s)
	if !format.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: text, diff, json", s)
	}
	return format, nil
}

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatDiff, FormatJSON:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f OutputFormat) String() string {
	return string(f)
}

// ParseAnchor parses an anchor string. Empty means AnchorStart.
func ParseAnchor(s string) (Anchor, error) {
	if s == "" {
		return AnchorStart, nil
	}
	anchor := Anchor(s)
	if !anchor.IsValid() {
		return "", fmt.Errorf("unknown anchor %q; valid anchors: start, end", s)
	}
	return anchor, nil
}
