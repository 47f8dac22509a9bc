package latex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgonek/doctree-latex-converter/doctree"
)

func citation(label, text string) *doctree.Node {
	return doctree.NewNode(doctree.KindCitation,
		doctree.NewNode(doctree.KindLabel, doctree.NewText(label)),
		paragraph(text),
	)
}

func TestCitationsMoveToBibliography(t *testing.T) {
	ref := doctree.NewNode(doctree.KindCitationReference, doctree.NewText("GOF95"))

	result := translate(t, Config{},
		document(section("T",
			doctree.NewNode(doctree.KindParagraph,
				doctree.NewText("As shown in "), ref, doctree.NewText(".")),
			citation("GOF95", "Design Patterns, 1995."),
		)),
	)

	assert.Contains(t, result.TeX, `\cite{GOF95}`)
	assert.Contains(t, result.TeX, "\\begin{thebibliography}{GOF95}\n")
	assert.Contains(t, result.TeX, `\bibitem[GOF95]{GOF95}{`)
	assert.Contains(t, result.TeX, "Design Patterns, 1995.")
	assert.Contains(t, result.TeX, "\\end{thebibliography}\n")

	// The citation body must not stay in the document flow.
	bibStart := strings.Index(result.TeX, "\\begin{thebibliography}")
	require.GreaterOrEqual(t, bibStart, 0)
	assert.NotContains(t, result.TeX[:bibStart], "Design Patterns")
}

func TestCitationsKeepDocumentOrder(t *testing.T) {
	result := translate(t, Config{},
		document(section("T",
			citation("AAA", "First entry."),
			citation("BB", "Second entry."),
			citation("C", "Third entry."),
		)),
	)

	first := strings.Index(result.TeX, `\bibitem[AAA]`)
	second := strings.Index(result.TeX, `\bibitem[BB]`)
	third := strings.Index(result.TeX, `\bibitem[C]`)
	require.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)
	assert.Greater(t, third, second)

	// The widest label sets the environment argument.
	assert.Contains(t, result.TeX, "\\begin{thebibliography}{AAA}\n")
}

// Labels are escaped for display, but the cite key must keep raw
// underscores to match \cite references.
func TestCitationUnderscoreKey(t *testing.T) {
	result := translate(t, Config{},
		document(section("T", citation("REF_1", "Underscored."))),
	)

	assert.Contains(t, result.TeX, `\bibitem[REF\_1]{REF_1}{`)
}

// A \cite key is emitted raw so it resolves against the \bibitem key.
func TestCitationReferenceKeyMatchesBibitem(t *testing.T) {
	ref := doctree.NewNode(doctree.KindCitationReference, doctree.NewText("REF_1"))

	result := translate(t, Config{},
		document(section("T",
			doctree.NewNode(doctree.KindParagraph,
				doctree.NewText("See "), ref, doctree.NewText(".")),
			citation("REF_1", "Underscored."),
		)),
	)

	assert.Contains(t, result.TeX, `\cite{REF_1}`)
	assert.NotContains(t, result.TeX, `\cite{REF\_1}`)
	assert.Contains(t, result.TeX, `\bibitem[REF\_1]{REF_1}{`)
}

func TestNoCitationsNoBibliography(t *testing.T) {
	result := translate(t, Config{},
		document(section("T", paragraph("Nothing cited."))),
	)

	assert.NotContains(t, result.TeX, "thebibliography")
}
