package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgonek/doctree-latex-converter/doctree"
)

func newTestTranslator(t testing.TB, cfg Config) *Translator {
	t.Helper()

	tr, err := New(cfg)
	require.NoError(t, err)

	return tr
}

func translate(t testing.TB, cfg Config, roots ...*doctree.Node) Result {
	t.Helper()

	result, err := newTestTranslator(t, cfg).TranslateAll(roots...)
	require.NoError(t, err)

	return result
}

func document(children ...*doctree.Node) *doctree.Node {
	return doctree.NewNode(doctree.KindDocument, children...)
}

func section(title string, children ...*doctree.Node) *doctree.Node {
	node := doctree.NewNode(doctree.KindSection,
		doctree.NewNode(doctree.KindTitle, doctree.NewText(title)))
	node.Append(children...)
	return node
}

func paragraph(text string) *doctree.Node {
	return doctree.NewNode(doctree.KindParagraph, doctree.NewText(text))
}

func TestTranslateBasicDocument(t *testing.T) {
	result := translate(t, Config{Author: "A. Writer", Release: "2.1"},
		document(section("Reference Guide",
			paragraph("An introduction."),
			section("Getting Started",
				paragraph("Install it first."),
			),
		)),
	)

	assert.Contains(t, result.TeX, `\documentclass[letterpaper,10pt,english]{manual}`)
	assert.Contains(t, result.TeX, `\title{Reference Guide}`)
	assert.Contains(t, result.TeX, `\author{A. Writer}`)
	assert.Contains(t, result.TeX, `\release{2.1}`)
	assert.Contains(t, result.TeX, "\\begin{document}")
	assert.Contains(t, result.TeX, "\\maketitle")
	assert.Contains(t, result.TeX, "An introduction.")
	assert.Contains(t, result.TeX, `\chapter{Getting Started}`)
	assert.Contains(t, result.TeX, "Install it first.")
	assert.Contains(t, result.TeX, "\\printindex")
	assert.Contains(t, result.TeX, "\\end{document}")
	assert.Empty(t, result.Warnings)
}

func TestTranslateTitleFallsBackToConfig(t *testing.T) {
	result := translate(t, Config{Title: "Fixed Title"},
		document(section("First Heading", paragraph("Text."))),
	)

	assert.Contains(t, result.TeX, `\title{Fixed Title}`)
	assert.NotContains(t, result.TeX, `\chapter{First Heading}`)
}

func TestTranslateHowtoSectioning(t *testing.T) {
	result := translate(t, Config{DocClass: ClassHowto},
		document(section("Top",
			section("Inner", paragraph("Body.")),
		)),
	)

	assert.Contains(t, result.TeX, `{howto}`)
	assert.Contains(t, result.TeX, `\section{Inner}`)
}

func TestTranslatePartsSectioning(t *testing.T) {
	result := translate(t, Config{UseParts: true},
		document(section("Top",
			section("Inner", paragraph("Body.")),
		)),
	)

	assert.Contains(t, result.TeX, `\part{Inner}`)
}

func TestTranslateAppendices(t *testing.T) {
	result := translate(t, Config{},
		document(section("Content", paragraph("Main."))),
		document(section("Extras", paragraph("Appendix material."))),
	)

	assert.Contains(t, result.TeX, "\n\\appendix\n")
	assert.Contains(t, result.TeX, "Appendix material.")
}

func TestTranslateUnknownKindFails(t *testing.T) {
	_, err := newTestTranslator(t, Config{}).Translate(
		document(doctree.NewNode("mystery")),
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported node kind")
}

func TestTranslateNilDocumentFails(t *testing.T) {
	_, err := newTestTranslator(t, Config{}).Translate(nil)
	require.Error(t, err)
}

func TestTranslateInvalidConfig(t *testing.T) {
	_, err := New(Config{PointSize: "13pt"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pointSize")
}

func TestTranslateReferences(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{name: "external http", uri: "http://example.com/a", want: `\href{http://example.com/a}{here}`},
		{name: "external https", uri: "https://example.com/a", want: `\href{https://example.com/a}{here}`},
		{name: "mailto", uri: "mailto:dev@example.com", want: `\href{mailto:dev@example.com}{here}`},
		{name: "internal", uri: "#intro", want: `\hyperlink{intro}{here}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := doctree.NewNode(doctree.KindReference, doctree.NewText("here"))
			ref.SetAttr("refuri", tt.uri)
			result := translate(t, Config{},
				document(section("T", doctree.NewNode(doctree.KindParagraph, ref))),
			)
			assert.Contains(t, result.TeX, tt.want)
		})
	}
}

func TestTranslateUnusableReferenceWarns(t *testing.T) {
	ref := doctree.NewNode(doctree.KindReference, doctree.NewText("label"))
	ref.SetAttr("refuri", "custom:thing")

	result := translate(t, Config{},
		document(section("T", doctree.NewNode(doctree.KindParagraph, ref))),
	)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningUnusableReference, result.Warnings[0].Type)
	assert.Contains(t, result.TeX, "label")
	assert.NotContains(t, result.TeX, `\href`)
}

func TestTranslateAdmonitions(t *testing.T) {
	result := translate(t, Config{},
		document(section("T",
			doctree.NewNode(doctree.KindNote, paragraph("Careful here.")),
		)),
	)

	assert.Contains(t, result.TeX, `\begin{notice}{note}{Note:}`)
	assert.Contains(t, result.TeX, "Careful here.")
	assert.Contains(t, result.TeX, "\\end{notice}")
}

func TestTranslateAdmonitionLabelOverride(t *testing.T) {
	result := translate(t, Config{Labels: map[string]string{"note": "Hinweis"}},
		document(section("T",
			doctree.NewNode(doctree.KindNote, paragraph("Text.")),
		)),
	)

	assert.Contains(t, result.TeX, `\begin{notice}{note}{Hinweis:}`)
}

func TestTranslateLiteralBlock(t *testing.T) {
	block := doctree.NewNode(doctree.KindLiteralBlock, doctree.NewText("print(1)\nprint(2)\n"))

	result := translate(t, Config{},
		document(section("T", block)),
	)

	assert.Contains(t, result.TeX, "\\begin{Verbatim}\nprint(1)\nprint(2)\n\\end{Verbatim}\n")
	assert.Contains(t, result.TeX, "\\usepackage{fancyvrb}")
}

func TestTranslateLiteralBlockLineNumbers(t *testing.T) {
	block := doctree.NewNode(doctree.KindLiteralBlock,
		doctree.NewText("one\ntwo\nthree"))

	result := translate(t, Config{LinenoThreshold: 3},
		document(section("T", block)),
	)

	assert.Contains(t, result.TeX, "\\begin{Verbatim}[numbers=left]")
}

func TestTranslateLineBlock(t *testing.T) {
	lineBlock := doctree.NewNode(doctree.KindLineBlock,
		doctree.NewNode(doctree.KindLine, doctree.NewText("first line")),
		doctree.NewNode(doctree.KindLine),
		doctree.NewNode(doctree.KindLine, doctree.NewText("third line")),
	)

	result := translate(t, Config{},
		document(section("T", lineBlock)),
	)

	assert.Contains(t, result.TeX, "{\\raggedright{}")
	assert.Contains(t, result.TeX, "first~line\\\\\n")
	// Empty lines render a tie so the forced break is legal.
	assert.Contains(t, result.TeX, "~\\\\\n")
	// The final line keeps no trailing forced break.
	assert.Contains(t, result.TeX, "third~line}\n")
}

func TestTranslateVersionModified(t *testing.T) {
	node := doctree.NewNode(doctree.KindVersionModified, paragraph("Now faster."))
	node.SetAttr("type", "versionchanged").SetAttr("version", "2.6")

	result := translate(t, Config{},
		document(section("T", node)),
	)

	assert.Contains(t, result.TeX, "Changed in version 2.6: ")
}

func TestTranslateIndexEntries(t *testing.T) {
	index := doctree.NewNode(doctree.KindIndex)
	index.SetAttr("entries", []any{
		map[string]any{"type": "single", "value": "parsing; recursive"},
		map[string]any{"type": "pair", "value": "module; os"},
		map[string]any{"type": "triple", "value": "a; b; c"},
	})

	result := translate(t, Config{},
		document(section("T", index)),
	)

	assert.Contains(t, result.TeX, `\index{parsing!recursive}`)
	assert.Contains(t, result.TeX, `\indexii{module}{os}`)
	assert.Contains(t, result.TeX, `\indexiii{a}{b}{c}`)
}

func TestTranslateUnknownIndexTypeWarns(t *testing.T) {
	index := doctree.NewNode(doctree.KindIndex)
	index.SetAttr("entries", []any{
		map[string]any{"type": "quadruple", "value": "x"},
	})

	result := translate(t, Config{},
		document(section("T", index)),
	)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningUnknownIndexType, result.Warnings[0].Type)
}

func TestTranslateRawLatexPassthrough(t *testing.T) {
	latexRaw := doctree.NewNode(doctree.KindRaw, doctree.NewText(`\vspace{1em}`))
	latexRaw.SetAttr("format", "latex")
	htmlRaw := doctree.NewNode(doctree.KindRaw, doctree.NewText("<b>bold</b>"))
	htmlRaw.SetAttr("format", "html")

	result := translate(t, Config{},
		document(section("T", latexRaw, htmlRaw)),
	)

	assert.Contains(t, result.TeX, `\vspace{1em}`)
	assert.NotContains(t, result.TeX, "bold")
}

func TestTranslateImage(t *testing.T) {
	image := doctree.NewNode(doctree.KindImage)
	image.SetAttr("uri", "figures/sample.png").SetAttr("width", "50%")

	result := translate(t, Config{},
		document(section("T", image)),
	)

	assert.Contains(t, result.TeX, `\includegraphics[width=0.500\linewidth]{figures/sample.png}`)
	assert.Contains(t, result.TeX, "graphicx")
}

func TestTranslateMissingImagePolicies(t *testing.T) {
	newImage := func() *doctree.Node {
		image := doctree.NewNode(doctree.KindImage)
		image.SetAttr("uri", "absent.png")
		return image
	}
	resolver := ImageMap(map[string]string{})

	t.Run("skip", func(t *testing.T) {
		result := translate(t, Config{MissingImages: MissingImageSkip, ImageResolver: resolver},
			document(section("T", newImage())),
		)
		assert.NotContains(t, result.TeX, "includegraphics")
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, WarningMissingImage, result.Warnings[0].Type)
	})

	t.Run("fail", func(t *testing.T) {
		_, err := newTestTranslator(t, Config{MissingImages: MissingImageFail, ImageResolver: resolver}).
			Translate(document(section("T", newImage())))
		require.ErrorIs(t, err, ErrMissingImage)
	})

	t.Run("passthrough", func(t *testing.T) {
		result := translate(t, Config{ImageResolver: resolver},
			document(section("T", newImage())),
		)
		assert.Contains(t, result.TeX, `\includegraphics{absent.png}`)
	})
}

func TestTranslateFootnotes(t *testing.T) {
	footnote := doctree.NewNode(doctree.KindFootnote,
		doctree.NewNode(doctree.KindLabel, doctree.NewText("1")),
		paragraph("The footnote text."),
	)
	mark := doctree.NewNode(doctree.KindFootnoteReference, doctree.NewText("1"))

	result := translate(t, Config{},
		document(section("T",
			doctree.NewNode(doctree.KindParagraph, doctree.NewText("See"), mark),
			footnote,
		)),
	)

	assert.Contains(t, result.TeX, `\footnotemark[1]`)
	assert.Contains(t, result.TeX, `\footnotetext[1]{`)
	assert.Contains(t, result.TeX, "The footnote text.")
}

func TestTranslateModule(t *testing.T) {
	module := doctree.NewNode(doctree.KindModule)
	module.SetAttr("modname", "os_path").SetAttr("synopsis", "Path helpers").SetAttr("platform", "posix")

	result := translate(t, Config{},
		document(section("T", module)),
	)

	assert.Contains(t, result.TeX, `\declaremodule[ospath]{}{os\_path}`)
	assert.Contains(t, result.TeX, `\modulesynopsis{Path helpers}`)
	assert.Contains(t, result.TeX, `\platform{posix}`)
}

func TestTranslateProductionList(t *testing.T) {
	named := doctree.NewNode(doctree.KindProduction, doctree.NewText("expr"))
	named.SetAttr("tokenname", "stmt")
	continuation := doctree.NewNode(doctree.KindProduction, doctree.NewText("more"))

	result := translate(t, Config{},
		document(section("T",
			doctree.NewNode(doctree.KindProductionList, named, continuation),
		)),
	)

	assert.Contains(t, result.TeX, "\\begin{productionlist}")
	assert.Contains(t, result.TeX, `\production{stmt}{expr}`)
	assert.Contains(t, result.TeX, `\productioncont{more}`)
	assert.Contains(t, result.TeX, "\\end{productionlist}")
}

func TestTranslateModindex(t *testing.T) {
	result := translate(t, Config{UseModindex: true},
		document(section("T", paragraph("Body."))),
	)

	assert.Contains(t, result.TeX, "\\makemodindex")
	assert.Contains(t, result.TeX, "\\printmodindex")
	assert.Contains(t, result.TeX, `\renewcommand{\indexname}{Module Index}`)
}

func TestTranslateGermanShorthandoff(t *testing.T) {
	result := translate(t, Config{Language: "ngerman"},
		document(section("T", paragraph("Text."))),
	)

	assert.Contains(t, result.TeX, `\shorthandoff{"}`)
	assert.Contains(t, result.TeX, ",english,ngerman]")
}
