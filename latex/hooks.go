package latex

import (
	"errors"
	"strings"
)

// ErrMissingImage reports an image identifier the resolver could not
// map while the fail policy is active.
var ErrMissingImage = errors.New("unresolved image reference")

// Highlighter produces the verbatim rendering of a code block. The
// returned markup must be wrapped in a Verbatim environment whose
// closing marker is exactly "\end{Verbatim}"; the translator rewrites
// the environment name when the block sits inside a table.
type Highlighter interface {
	HighlightBlock(code, language string, lineNumbers bool) string
	// Stylesheet returns preamble definitions required by the
	// highlighted markup, emitted once after the document header.
	Stylesheet() string
}

// VerbatimHighlighter is the fallback Highlighter: no coloring, plain
// Verbatim wrapping with optional line numbers.
type VerbatimHighlighter struct{}

// HighlightBlock wraps code in a Verbatim environment.
func (VerbatimHighlighter) HighlightBlock(code, language string, lineNumbers bool) string {
	var sb strings.Builder
	sb.WriteString("\\begin{Verbatim}")
	if lineNumbers {
		sb.WriteString("[numbers=left]")
	}
	sb.WriteString("\n")
	sb.WriteString(code)
	sb.WriteString("\n\\end{Verbatim}")
	return sb.String()
}

// Stylesheet returns the fancyvrb requirement shared by all Verbatim
// output.
func (VerbatimHighlighter) Stylesheet() string {
	return "\\usepackage{fancyvrb}\n"
}

// ImageResolver maps a logical image identifier to a resolved local
// path. A false return means the image is unknown; the configured
// MissingImagePolicy then applies.
type ImageResolver func(id string) (string, bool)

// ImageMap adapts a plain lookup table to an ImageResolver.
func ImageMap(images map[string]string) ImageResolver {
	return func(id string) (string, bool) {
		path, ok := images[id]
		return path, ok
	}
}
