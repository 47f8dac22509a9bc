// Package mdtree parses GFM markdown into a document tree suitable for
// the latex translator.
package mdtree

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/rgonek/doctree-latex-converter/doctree"
	"github.com/rgonek/doctree-latex-converter/latex"
)

// Converter parses GFM markdown into document trees.
type Converter struct {
	parser goldmark.Markdown
}

// Result is a parsed document tree plus the warnings collected while
// building it.
type Result struct {
	Tree     *doctree.Node
	Warnings []latex.Warning
}

type state struct {
	source   []byte
	warnings []latex.Warning
}

// New creates a new markdown Converter.
func New() *Converter {
	return &Converter{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Convert parses a markdown document into a document tree.
func (c *Converter) Convert(markdown string) (Result, error) {
	s := &state{source: []byte(markdown)}

	root := c.parser.Parser().Parse(text.NewReader(s.source))
	doc, err := s.convertDocument(root)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Tree:     doc,
		Warnings: s.warnings,
	}, nil
}

func (s *state) addWarning(warnType latex.WarningType, nodeKind, message string) {
	s.warnings = append(s.warnings, latex.Warning{
		Type:     warnType,
		NodeKind: nodeKind,
		Message:  message,
	})
}

// convertDocument nests the flat markdown heading sequence into
// sections: a heading of level N closes every open section of level N
// or deeper and opens a new one.
func (s *state) convertDocument(root ast.Node) (*doctree.Node, error) {
	doc := doctree.NewNode(doctree.KindDocument)
	parents := []*doctree.Node{doc}
	levels := []int{0}

	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		if heading, ok := child.(*ast.Heading); ok {
			for len(levels) > 1 && levels[len(levels)-1] >= heading.Level {
				parents = parents[:len(parents)-1]
				levels = levels[:len(levels)-1]
			}

			title := doctree.NewNode(doctree.KindTitle)
			inline, err := s.convertInlineChildren(heading)
			if err != nil {
				return nil, err
			}
			title.Content = inline

			section := doctree.NewNode(doctree.KindSection)
			section.Append(title)
			parents[len(parents)-1].Append(section)
			parents = append(parents, section)
			levels = append(levels, heading.Level)
			continue
		}

		converted, handled, err := s.convertBlockNode(child)
		if err != nil {
			return nil, err
		}
		if handled {
			parents[len(parents)-1].Append(converted)
		}
	}

	return doc, nil
}

func (s *state) convertBlockChildren(parent ast.Node) ([]*doctree.Node, error) {
	var content []*doctree.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		converted, handled, err := s.convertBlockNode(child)
		if err != nil {
			return nil, err
		}
		if handled {
			content = append(content, converted)
		}
	}
	return content, nil
}
