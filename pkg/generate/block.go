package generate

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"text/template"
	"unicode"

	"github.com/yaklabco/depexport/pkg/config"
	"github.com/yaklabco/depexport/pkg/suggest"
)

// Marker comments delimiting a generated block.
const (
	markerBegin = "depexport:begin"
	markerEnd   = "depexport:end"
)

// ErrUnterminatedBlock is returned when a begin marker has no end marker.
var ErrUnterminatedBlock = errors.New("generated block has no end marker")

// Block is the data a profile template is rendered with.
type Block struct {
	// Module names the generated module where the language has one.
	Module string

	// Deps are the dependency names, sorted.
	Deps []string
}

// NewBlock returns a Block with sorted, de-duplicated deps.
func NewBlock(module string, deps []string) Block {
	sorted := slices.Clone(deps)
	slices.Sort(sorted)
	if module == "" {
		module = config.DefaultModuleName
	}
	return Block{Module: module, Deps: slices.Compact(sorted)}
}

// ident turns a dependency name into a valid identifier.
func ident(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	out := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return '_'
	}, name)
	if out == "" || unicode.IsDigit(rune(out[0])) {
		out = "_" + out
	}
	return out
}

func parseTemplate(language, text string) (*template.Template, error) {
	tmpl, err := template.New(language).
		Funcs(template.FuncMap{"ident": ident}).
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse %s template: %w", language, err)
	}
	return tmpl, nil
}

// CheckTemplate reports whether text parses as a block template.
func CheckTemplate(language, text string) error {
	_, err := parseTemplate(language, text)
	return err
}

// Render renders block with profile's template and wraps it in marker
// comments. The result always ends with a newline.
func Render(profile Profile, block Block) (string, error) {
	tmpl, err := parseTemplate(profile.Language, profile.Template)
	if err != nil {
		return "", err
	}

	var body strings.Builder
	if err := tmpl.Execute(&body, block); err != nil {
		return "", fmt.Errorf("render %s template: %w", profile.Language, err)
	}

	var out strings.Builder
	out.WriteString(profile.CommentPrefix + " " + markerBegin + "\n")
	out.WriteString(body.String())
	if body.Len() > 0 && !strings.HasSuffix(body.String(), "\n") {
		out.WriteByte('\n')
	}
	out.WriteString(profile.CommentPrefix + " " + markerEnd + "\n")

	return out.String(), nil
}

// FindBlock locates a previously generated block in source. The range
// spans from the start of the begin marker line to the end of the end
// marker line, including its newline. ok is false when there is no block.
func FindBlock(source string, profile Profile) (rng suggest.ByteRange, ok bool, err error) {
	begin := strings.Index(source, profile.CommentPrefix+" "+markerBegin)
	if begin < 0 {
		return suggest.ByteRange{}, false, nil
	}
	begin = strings.LastIndexByte(source[:begin], '\n') + 1

	endMarker := profile.CommentPrefix + " " + markerEnd
	rel := strings.Index(source[begin:], endMarker)
	if rel < 0 {
		return suggest.ByteRange{}, false, ErrUnterminatedBlock
	}

	end := begin + rel + len(endMarker)
	if nl := strings.IndexByte(source[end:], '\n'); nl >= 0 {
		end += nl + 1
	} else {
		end = len(source)
	}

	return suggest.ByteRange{Start: begin, End: end}, true, nil
}

// StripBlock returns source without its generated block, if any.
func StripBlock(source string, profile Profile) string {
	rng, ok, err := FindBlock(source, profile)
	if err != nil || !ok {
		return source
	}
	return source[:rng.Start] + source[rng.End:]
}

// insertOffset returns where a new block goes for anchor.
func insertOffset(source string, profile Profile, anchor config.Anchor) int {
	if anchor == config.AnchorEnd {
		return len(source)
	}
	if profile.HeaderPattern == nil {
		return 0
	}

	offset := 0
	for offset < len(source) {
		lineEnd := strings.IndexByte(source[offset:], '\n')
		next := len(source)
		if lineEnd >= 0 {
			next = offset + lineEnd + 1
		}

		line := strings.TrimRight(source[offset:next], "\r\n")
		if !profile.HeaderPattern.MatchString(line) {
			break
		}
		offset = next
	}

	// Do not skip a trailing run of blank lines; keep them below the block.
	for offset > 0 {
		prevStart := strings.LastIndexByte(source[:offset-1], '\n') + 1
		if strings.TrimSpace(source[prevStart:offset]) != "" {
			break
		}
		offset = prevStart
	}

	return offset
}

// Suggest builds the suggestion that puts rendered into source.
// An existing generated block is replaced; otherwise rendered is inserted
// at the anchor.
func Suggest(fileName, source, rendered string, profile Profile, anchor config.Anchor) (suggest.Suggestion, error) {
	rng, found, err := FindBlock(source, profile)
	if err != nil {
		return suggest.Suggestion{}, fmt.Errorf("%s: %w", fileName, err)
	}

	if found {
		return suggest.Single("regenerate re-export block",
			suggest.NewReplacement(fileName, source, rng.Start, rng.End, rendered)), nil
	}

	offset := insertOffset(source, profile, anchor)
	text := rendered
	switch {
	case anchor == config.AnchorEnd:
		if offset > 0 {
			sep := "\n"
			if source[offset-1] != '\n' {
				sep = "\n\n"
			}
			text = sep + rendered
		}
	default:
		if offset > 0 && source[offset-1] != '\n' {
			text = "\n" + text
		}
		if offset < len(source) && source[offset] != '\n' && source[offset] != '\r' {
			text += "\n"
		}
	}

	return suggest.Single("add re-export block",
		suggest.NewInsertion(fileName, source, offset, text)), nil
}
