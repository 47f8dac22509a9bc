package mdtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgonek/doctree-latex-converter/doctree"
)

func convert(t testing.TB, markdown string) *doctree.Node {
	t.Helper()

	result, err := New().Convert(markdown)
	require.NoError(t, err)
	require.NotNil(t, result.Tree)

	return result.Tree
}

func findAll(root *doctree.Node, kind doctree.Kind) []*doctree.Node {
	var found []*doctree.Node
	if root.Kind == kind {
		found = append(found, root)
	}
	for _, child := range root.Content {
		found = append(found, findAll(child, kind)...)
	}
	return found
}

func TestConvertHeadingNesting(t *testing.T) {
	tree := convert(t, `
# Guide

Intro text.

## Install

Step one.

## Usage

Run it.

# Appendix

Extra.
`)

	require.Len(t, tree.Content, 2)
	guide := tree.Content[0]
	assert.Equal(t, doctree.KindSection, guide.Kind)
	assert.Equal(t, "Guide", guide.Content[0].PlainText())

	// Two subsections under Guide: Install and Usage.
	subsections := findAll(guide, doctree.KindSection)
	require.Len(t, subsections, 3) // guide itself plus two children
	assert.Equal(t, "Install", subsections[1].Content[0].PlainText())
	assert.Equal(t, "Usage", subsections[2].Content[0].PlainText())

	assert.Equal(t, "Appendix", tree.Content[1].Content[0].PlainText())
}

func TestConvertInlineMarkup(t *testing.T) {
	tree := convert(t, "Some *em* and **strong** and `code` here.")

	require.Len(t, findAll(tree, doctree.KindEmphasis), 1)
	require.Len(t, findAll(tree, doctree.KindStrong), 1)
	literals := findAll(tree, doctree.KindLiteral)
	require.Len(t, literals, 1)
	assert.Equal(t, "code", literals[0].PlainText())
}

func TestConvertLink(t *testing.T) {
	tree := convert(t, "See [the docs](https://example.com/docs).")

	refs := findAll(tree, doctree.KindReference)
	require.Len(t, refs, 1)
	assert.Equal(t, "https://example.com/docs", refs[0].GetStringAttr("refuri", ""))
	assert.Equal(t, "the docs", refs[0].PlainText())
}

func TestConvertAutoLink(t *testing.T) {
	tree := convert(t, "Visit <https://example.com> today.")

	refs := findAll(tree, doctree.KindReference)
	require.Len(t, refs, 1)
	assert.Equal(t, "https://example.com", refs[0].GetStringAttr("refuri", ""))
}

func TestConvertCodeFence(t *testing.T) {
	tree := convert(t, "```go\nfunc main() {}\n```\n")

	blocks := findAll(tree, doctree.KindLiteralBlock)
	require.Len(t, blocks, 1)
	assert.Equal(t, "go", blocks[0].GetStringAttr("language", ""))
	assert.Equal(t, "func main() {}", blocks[0].PlainText())
}

func TestConvertLists(t *testing.T) {
	tree := convert(t, `
- alpha
- beta

1. one
2. two
`)

	bullets := findAll(tree, doctree.KindBulletList)
	require.Len(t, bullets, 1)
	assert.Len(t, bullets[0].Content, 2)

	ordered := findAll(tree, doctree.KindEnumeratedList)
	require.Len(t, ordered, 1)
	assert.Len(t, ordered[0].Content, 2)
}

func TestConvertBlockquoteAndRule(t *testing.T) {
	tree := convert(t, `
> quoted text

---
`)

	require.Len(t, findAll(tree, doctree.KindBlockQuote), 1)
	require.Len(t, findAll(tree, doctree.KindTransition), 1)
}

func TestConvertImage(t *testing.T) {
	tree := convert(t, "![diagram](assets/d.png)")

	images := findAll(tree, doctree.KindImage)
	require.Len(t, images, 1)
	assert.Equal(t, "assets/d.png", images[0].GetStringAttr("uri", ""))
	assert.Equal(t, "diagram", images[0].GetStringAttr("alt", ""))
}

func TestConvertTable(t *testing.T) {
	tree := convert(t, `
| Name | Value |
|------|-------|
| a    | 1     |
| b    | 2     |
`)

	tables := findAll(tree, doctree.KindTable)
	require.Len(t, tables, 1)

	tgroup := tables[0].Content[0]
	require.Equal(t, doctree.KindTgroup, tgroup.Kind)
	assert.Equal(t, 2, tgroup.GetIntAttr("cols", 0))
	assert.Len(t, findAll(tgroup, doctree.KindColspec), 2)

	heads := findAll(tgroup, doctree.KindThead)
	require.Len(t, heads, 1)
	require.Len(t, heads[0].Content, 1)

	bodies := findAll(tgroup, doctree.KindTbody)
	require.Len(t, bodies, 1)
	assert.Len(t, bodies[0].Content, 2)
}

func TestConvertStrikethroughWarns(t *testing.T) {
	result, err := New().Convert("some ~~gone~~ text")
	require.NoError(t, err)

	require.Len(t, findAll(result.Tree, doctree.KindEmphasis), 1)
	require.NotEmpty(t, result.Warnings)
}

func TestConvertEmptyInput(t *testing.T) {
	tree := convert(t, "")
	assert.Equal(t, doctree.KindDocument, tree.Kind)
	assert.Empty(t, tree.Content)
}
