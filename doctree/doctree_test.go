package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshal(t *testing.T) {
	input := `{
		"kind": "document",
		"content": [
			{
				"kind": "section",
				"content": [
					{"kind": "title", "content": [{"kind": "text", "text": "Intro"}]},
					{
						"kind": "paragraph",
						"attrs": {"ids": ["p1"], "cols": 2, "scale": 50.5},
						"content": [{"kind": "text", "text": "Hello"}]
					}
				]
			}
		]
	}`

	root, err := Unmarshal([]byte(input))
	require.NoError(t, err)

	require.Equal(t, KindDocument, root.Kind)
	require.Len(t, root.Content, 1)

	section := root.Content[0]
	assert.Equal(t, KindSection, section.Kind)
	require.Len(t, section.Content, 2)
	assert.Equal(t, "Intro", section.Content[0].PlainText())

	para := section.Content[1]
	assert.Equal(t, []string{"p1"}, para.GetStringsAttr("ids"))
	// JSON numbers decode as float64 and must still read as ints.
	assert.Equal(t, 2, para.GetIntAttr("cols", 0))
	assert.Equal(t, 50.5, para.GetFloatAttr("scale", 0))
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	_, err := Unmarshal([]byte("not json"))
	require.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	root := NewNode(KindDocument,
		NewNode(KindParagraph, NewText("body")).SetAttr("ids", []string{"x"}),
	)

	data, err := Marshal(root)
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, "body", decoded.PlainText())
	assert.Equal(t, []string{"x"}, decoded.Content[0].GetStringsAttr("ids"))
}

func TestAttrAccessors(t *testing.T) {
	node := NewNode(KindImage)
	node.SetAttr("uri", "pic.png")
	node.SetAttr("align", "center")
	node.SetAttr("inline", true)

	assert.Equal(t, "pic.png", node.GetStringAttr("uri", ""))
	assert.Equal(t, "fallback", node.GetStringAttr("missing", "fallback"))
	assert.True(t, node.GetBoolAttr("inline", false))
	assert.False(t, node.GetBoolAttr("missing", false))
	assert.True(t, node.HasAttr("align"))
	assert.False(t, node.HasAttr("nothing"))
}

func TestPlainText(t *testing.T) {
	node := NewNode(KindParagraph,
		NewText("a "),
		NewNode(KindEmphasis, NewText("b")),
		NewText(" c"),
	)

	assert.Equal(t, "a b c", node.PlainText())
}

func TestIndex(t *testing.T) {
	first := NewText("one")
	second := NewText("two")
	parent := NewNode(KindParagraph, first, second)

	assert.Equal(t, 0, parent.Index(first))
	assert.Equal(t, 1, parent.Index(second))
	assert.Equal(t, -1, parent.Index(NewText("one")))
}

func TestIsTextElement(t *testing.T) {
	assert.True(t, IsTextElement(KindParagraph))
	assert.True(t, IsTextElement(KindTitle))
	assert.True(t, IsTextElement(KindEmphasis))
	assert.False(t, IsTextElement(KindSection))
	assert.False(t, IsTextElement(KindTable))
}
