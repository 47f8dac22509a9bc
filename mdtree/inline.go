package mdtree

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/rgonek/doctree-latex-converter/doctree"
	"github.com/rgonek/doctree-latex-converter/latex"
)

func (s *state) convertInlineChildren(parent ast.Node) ([]*doctree.Node, error) {
	var content []*doctree.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		converted, err := s.convertInlineNode(child)
		if err != nil {
			return nil, err
		}
		content = append(content, converted...)
	}
	return content, nil
}

func (s *state) convertInlineNode(node ast.Node) ([]*doctree.Node, error) {
	switch typed := node.(type) {
	case *ast.Text:
		var content []*doctree.Node
		if value := string(typed.Value(s.source)); value != "" {
			content = append(content, doctree.NewText(value))
		}
		if typed.HardLineBreak() {
			content = append(content, doctree.NewText("\n"))
		} else if typed.SoftLineBreak() {
			content = append(content, doctree.NewText(" "))
		}
		return content, nil

	case *ast.String:
		return []*doctree.Node{doctree.NewText(string(typed.Value))}, nil

	case *ast.Emphasis:
		kind := doctree.KindEmphasis
		if typed.Level >= 2 {
			kind = doctree.KindStrong
		}
		return s.wrapInline(typed, kind)

	case *east.Strikethrough:
		// No struck-through rendering downstream; emphasis keeps the
		// marking visible.
		s.addWarning(
			latex.WarningDroppedFeature,
			typed.Kind().String(),
			"strikethrough rendered as emphasis",
		)
		return s.wrapInline(typed, doctree.KindEmphasis)

	case *ast.CodeSpan:
		return []*doctree.Node{
			doctree.NewNode(doctree.KindLiteral, doctree.NewText(string(typed.Text(s.source)))),
		}, nil

	case *ast.Link:
		href := strings.TrimSpace(string(typed.Destination))
		content, err := s.convertInlineChildren(typed)
		if err != nil {
			return nil, err
		}
		if href == "" {
			return content, nil
		}
		reference := doctree.NewNode(doctree.KindReference)
		reference.SetAttr("refuri", href)
		reference.Content = content
		return []*doctree.Node{reference}, nil

	case *ast.AutoLink:
		url := string(typed.URL(s.source))
		reference := doctree.NewNode(doctree.KindReference, doctree.NewText(url))
		reference.SetAttr("refuri", url)
		return []*doctree.Node{reference}, nil

	case *ast.Image:
		image := doctree.NewNode(doctree.KindImage)
		image.SetAttr("uri", strings.TrimSpace(string(typed.Destination)))
		if alt := strings.TrimSpace(string(typed.Text(s.source))); alt != "" {
			image.SetAttr("alt", alt)
		}
		return []*doctree.Node{image}, nil

	case *ast.RawHTML:
		s.addWarning(
			latex.WarningDroppedFeature,
			typed.Kind().String(),
			"inline HTML dropped",
		)
		return nil, nil

	case *east.TaskCheckBox:
		marker := "[ ] "
		if typed.IsChecked {
			marker = "[x] "
		}
		return []*doctree.Node{doctree.NewText(marker)}, nil

	default:
		if node.HasChildren() {
			return s.convertInlineChildren(node)
		}
		s.addWarning(
			latex.WarningDroppedFeature,
			node.Kind().String(),
			"unsupported inline markdown dropped",
		)
		return nil, nil
	}
}

func (s *state) wrapInline(node ast.Node, kind doctree.Kind) ([]*doctree.Node, error) {
	content, err := s.convertInlineChildren(node)
	if err != nil {
		return nil, err
	}
	wrapped := doctree.NewNode(kind)
	wrapped.Content = content
	return []*doctree.Node{wrapped}, nil
}
