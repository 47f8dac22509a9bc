package mdtree

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/rgonek/doctree-latex-converter/doctree"
	"github.com/rgonek/doctree-latex-converter/latex"
)

func (s *state) convertBlockNode(node ast.Node) (*doctree.Node, bool, error) {
	switch typed := node.(type) {
	case *ast.Paragraph:
		return s.convertParagraphNode(typed)
	case *ast.TextBlock:
		return s.convertParagraphNode(typed)
	case *ast.Blockquote:
		return s.convertBlockquoteNode(typed)
	case *ast.FencedCodeBlock:
		return s.convertCodeBlockNode(typed, strings.TrimSpace(string(typed.Language(s.source))))
	case *ast.CodeBlock:
		return s.convertCodeBlockNode(typed, "")
	case *ast.List:
		return s.convertListNode(typed)
	case *ast.ThematicBreak:
		return doctree.NewNode(doctree.KindTransition), true, nil
	case *ast.HTMLBlock:
		raw := doctree.NewNode(doctree.KindRaw, doctree.NewText(s.blockLines(typed)))
		raw.SetAttr("format", []string{"html"})
		return raw, true, nil
	case *east.Table:
		return s.convertTableNode(typed)
	default:
		s.addWarning(
			latex.WarningDroppedFeature,
			node.Kind().String(),
			"unsupported markdown block dropped",
		)
		return nil, false, nil
	}
}

func (s *state) convertParagraphNode(node ast.Node) (*doctree.Node, bool, error) {
	content, err := s.convertInlineChildren(node)
	if err != nil {
		return nil, false, err
	}
	if len(content) == 0 {
		return nil, false, nil
	}
	paragraph := doctree.NewNode(doctree.KindParagraph)
	paragraph.Content = content
	return paragraph, true, nil
}

func (s *state) convertBlockquoteNode(node *ast.Blockquote) (*doctree.Node, bool, error) {
	content, err := s.convertBlockChildren(node)
	if err != nil {
		return nil, false, err
	}
	quote := doctree.NewNode(doctree.KindBlockQuote)
	quote.Content = content
	return quote, true, nil
}

func (s *state) convertCodeBlockNode(node ast.Node, language string) (*doctree.Node, bool, error) {
	code := strings.TrimRight(s.blockLines(node), "\n")
	block := doctree.NewNode(doctree.KindLiteralBlock, doctree.NewText(code))
	if language != "" {
		block.SetAttr("language", language)
	}
	return block, true, nil
}

func (s *state) convertListNode(node *ast.List) (*doctree.Node, bool, error) {
	kind := doctree.KindBulletList
	if node.IsOrdered() {
		kind = doctree.KindEnumeratedList
	}
	list := doctree.NewNode(kind)
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		content, err := s.convertBlockChildren(child)
		if err != nil {
			return nil, false, err
		}
		item := doctree.NewNode(doctree.KindListItem)
		item.Content = content
		list.Append(item)
	}
	return list, true, nil
}

// blockLines concatenates the source segments a block node spans.
func (s *state) blockLines(node ast.Node) string {
	var buf bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(s.source))
	}
	return buf.String()
}
